package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"prover/internal/ledger/models"
	"prover/pkg/platform/httputil"
	"prover/pkg/requestcontext"
)

// Builder defines the ledger request builders exposed over HTTP.
type Builder interface {
	BuildNymRequest(submitter, target, verkey, alias, role string) (*models.Request, error)
	BuildAttribRequest(submitter, target, hash, raw, enc string) (*models.Request, error)
	BuildGetNymRequest(submitter, target string) (*models.Request, error)
	BuildGetAttribRequest(submitter, target, data string) (*models.Request, error)
}

type Handler struct {
	builder Builder
	logger  *slog.Logger
}

func New(builder Builder, logger *slog.Logger) *Handler {
	return &Handler{builder: builder, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/ledger/nym", h.HandleNym)
	r.Post("/ledger/attrib", h.HandleAttrib)
	r.Post("/ledger/get-nym", h.HandleGetNym)
	r.Post("/ledger/get-attrib", h.HandleGetAttrib)
}

func (h *Handler) HandleNym(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[models.NymRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.respond(w, r, "nym")(h.builder.BuildNymRequest(req.SubmitterDID, req.TargetDID, req.Verkey, req.Alias, req.Role))
}

func (h *Handler) HandleAttrib(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[models.AttribRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.respond(w, r, "attrib")(h.builder.BuildAttribRequest(req.SubmitterDID, req.TargetDID, req.Hash, req.Raw, req.Enc))
}

func (h *Handler) HandleGetNym(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[models.GetNymRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.respond(w, r, "get_nym")(h.builder.BuildGetNymRequest(req.SubmitterDID, req.TargetDID))
}

func (h *Handler) HandleGetAttrib(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[models.GetAttribRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.respond(w, r, "get_attrib")(h.builder.BuildGetAttribRequest(req.SubmitterDID, req.TargetDID, req.Data))
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, kind string) func(*models.Request, error) {
	return func(built *models.Request, err error) {
		if err != nil {
			h.logger.WarnContext(r.Context(), "build ledger request failed",
				"error", err,
				"request_id", requestcontext.RequestID(r.Context()),
				"kind", kind,
			)
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, built)
	}
}
