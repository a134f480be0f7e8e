package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"prover/internal/wallet/models"
	"prover/pkg/platform/httputil"
	"prover/pkg/requestcontext"
)

// Service defines the wallet lifecycle operations exposed over HTTP.
type Service interface {
	Create(ctx context.Context, req *models.CreateRequest) (*models.Wallet, error)
	Open(ctx context.Context, name, key string) (models.Handle, error)
	Close(ctx context.Context, handle models.Handle) error
	Delete(ctx context.Context, name, key string) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/wallets", h.HandleCreate)
	r.Post("/wallets/{name}/open", h.HandleOpen)
	r.Post("/wallets/{name}/delete", h.HandleDelete)
	r.Post("/handles/{handle}/close", h.HandleClose)
}

// HandleCreate creates a wallet.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.CreateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	wallet, err := h.service.Create(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "create wallet failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, wallet.ToResponse())
}

// HandleOpen opens a wallet and returns its handle.
func (h *Handler) HandleOpen(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	name := chi.URLParam(r, "name")

	req, ok := h.decodeKey(w, r, requestID)
	if !ok {
		return
	}

	handle, err := h.service.Open(ctx, name, req.Key)
	if err != nil {
		h.logger.WarnContext(ctx, "open wallet failed", "error", err, "request_id", requestID, "wallet", name)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, models.OpenResponse{Handle: handle})
}

// HandleDelete deletes a closed wallet and its claims.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	name := chi.URLParam(r, "name")

	req, ok := h.decodeKey(w, r, requestID)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, name, req.Key); err != nil {
		h.logger.WarnContext(ctx, "delete wallet failed", "error", err, "request_id", requestID, "wallet", name)
		httputil.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeKey reads the optional wallet key. An empty body means no key.
func (h *Handler) decodeKey(w http.ResponseWriter, r *http.Request, requestID string) (*models.KeyRequest, bool) {
	if r.Body == nil || r.Body == http.NoBody || r.ContentLength == 0 {
		return &models.KeyRequest{}, true
	}
	return httputil.DecodeAndPrepare[models.KeyRequest](w, r, h.logger, r.Context(), requestID)
}

// HandleClose closes a wallet handle.
func (h *Handler) HandleClose(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	handle, err := models.ParseHandle(chi.URLParam(r, "handle"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Close(ctx, handle); err != nil {
		h.logger.WarnContext(ctx, "close wallet failed", "error", err, "request_id", requestID, "handle", int32(handle))
		httputil.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
