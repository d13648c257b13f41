// Package api exposes the dossier service over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sells-group/reputation-cli/internal/collect"
	"github.com/sells-group/reputation-cli/internal/dossier"
	"github.com/sells-group/reputation-cli/internal/model"
	"github.com/sells-group/reputation-cli/pkg/reclameaqui"
)

// DossierService produces a dossier for a search term.
type DossierService interface {
	Dossier(ctx context.Context, term string) (*model.Dossier, error)
}

// Handler serves the dossier endpoints.
type Handler struct {
	svc DossierService
}

// NewHandler creates a Handler.
func NewHandler(svc DossierService) *Handler {
	return &Handler{svc: svc}
}

// Root answers a liveness message.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, map[string]string{"message": "reputation-cli is up"})
}

// Health reports service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Search builds and returns the dossier for the term in the URL.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	term := chi.URLParam(r, "term")
	if term == "" {
		renderError(w, http.StatusBadRequest, "search term is required")
		return
	}

	d, err := h.svc.Dossier(r.Context(), term)
	if err != nil {
		h.renderSearchError(w, r, term, err)
		return
	}

	renderJSON(w, http.StatusOK, d)
}

// renderSearchError maps the error taxonomy to transport statuses: a missed
// search is the caller's problem, upstream contract or transport trouble is a
// bad gateway, everything else is internal.
func (h *Handler) renderSearchError(w http.ResponseWriter, r *http.Request, term string, err error) {
	var schemaErr *dossier.SchemaError
	var apiErr *reclameaqui.APIError

	switch {
	case errors.Is(err, collect.ErrNotFound):
		renderError(w, http.StatusNotFound, "no company matched the search term")
		return
	case errors.As(err, &schemaErr), errors.As(err, &apiErr):
		zap.L().Error("search: upstream failure",
			zap.String("term", term),
			zap.String("request_id", RequestIDFrom(r.Context())),
			zap.Error(err),
		)
		renderError(w, http.StatusBadGateway, "upstream data source is unavailable or changed")
		return
	default:
		zap.L().Error("search: internal failure",
			zap.String("term", term),
			zap.String("request_id", RequestIDFrom(r.Context())),
			zap.Error(err),
		)
		renderError(w, http.StatusInternalServerError, "internal error while building the dossier")
	}
}
