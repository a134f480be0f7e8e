package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/mitchellh/mapstructure"

	"prover/internal/anoncreds/models"
	walletmodels "prover/internal/wallet/models"
	dErrors "prover/pkg/domain-errors"
	"prover/pkg/platform/httputil"
	"prover/pkg/requestcontext"
)

// Service defines the claim operations exposed over HTTP.
type Service interface {
	StoreClaim(ctx context.Context, handle walletmodels.Handle, req *models.StoreClaimRequest) (models.ClaimID, error)
	GetClaims(ctx context.Context, handle walletmodels.Handle, filter models.ClaimFilter) ([]models.ClaimInfo, error)
	GetClaimsForProofRequest(ctx context.Context, handle walletmodels.Handle, raw []byte) (*models.ClaimsForProofRequest, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/handles/{handle}/claims", h.HandleStoreClaim)
	r.Get("/handles/{handle}/claims", h.HandleGetClaims)
	r.Post("/handles/{handle}/claims/proof-request", h.HandleGetClaimsForProofRequest)
}

// StoreClaimResponse returns the uuid assigned to a stored claim.
type StoreClaimResponse struct {
	ClaimUUID models.ClaimID `json:"claim_uuid"`
}

// HandleStoreClaim stores a claim in the wallet behind the handle.
func (h *Handler) HandleStoreClaim(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	handle, err := walletmodels.ParseHandle(chi.URLParam(r, "handle"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeJSON[models.StoreClaimRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	id, err := h.service.StoreClaim(ctx, handle, req)
	if err != nil {
		h.logger.WarnContext(ctx, "store claim failed", "error", err, "request_id", requestID, "handle", int32(handle))
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, StoreClaimResponse{ClaimUUID: id})
}

// HandleGetClaims lists the wallet's claims, optionally by issuer_did and schema_seq_no.
func (h *Handler) HandleGetClaims(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	handle, err := walletmodels.ParseHandle(chi.URLParam(r, "handle"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	filter, err := decodeClaimFilter(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	claims, err := h.service.GetClaims(ctx, handle, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "get claims failed", "error", err, "request_id", requestID, "handle", int32(handle))
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, claims)
}

// HandleGetClaimsForProofRequest answers a proof request with candidate claims per key.
func (h *Handler) HandleGetClaimsForProofRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	handle, err := walletmodels.ParseHandle(chi.URLParam(r, "handle"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	body, ok := httputil.ReadBody(w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.GetClaimsForProofRequest(ctx, handle, body)
	if err != nil {
		h.logger.WarnContext(ctx, "get claims for proof request failed", "error", err, "request_id", requestID, "handle", int32(handle))
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, res)
}

func decodeClaimFilter(query url.Values) (models.ClaimFilter, error) {
	input := make(map[string]any, len(query))
	for key, values := range query {
		if len(values) > 0 && values[0] != "" {
			input[key] = values[0]
		}
	}

	var filter models.ClaimFilter
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &filter,
	})
	if err != nil {
		return models.ClaimFilter{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build filter decoder")
	}
	if err := decoder.Decode(input); err != nil {
		return models.ClaimFilter{}, dErrors.Wrap(err, dErrors.CodeInvalidStructure, "invalid claim filter: "+err.Error())
	}
	return filter, nil
}
