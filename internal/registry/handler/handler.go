// Package handler exposes the read-only registry surface consumed by the
// presentation layer.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"polydom/internal/registry"
	dErrors "polydom/pkg/domain-errors"
	"polydom/pkg/platform/httputil"
)

// Handler wires registry endpoints to the domain catalogue.
type Handler struct {
	registry *registry.Registry
	logger   *slog.Logger
}

// New constructs a registry handler.
func New(r *registry.Registry, logger *slog.Logger) *Handler {
	return &Handler{registry: r, logger: logger}
}

// Register mounts registry endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/domains", h.HandleList)
	r.Get("/domains/{slug}", h.HandleResolve)
	r.Get("/domains/category/{category}", h.HandleListByCategory)
}

// HandleList returns all slugs grouped by category.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	out := make(map[string][]string, len(registry.Categories))
	for _, c := range registry.Categories {
		out[string(c)] = h.registry.ListByCategory(c)
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// HandleResolve returns one domain config, or 404 for unknown slugs.
func (h *Handler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	cfg, ok := h.registry.Resolve(slug)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "unknown domain"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, cfg)
}

// HandleListByCategory returns a category's slugs in catalogue order.
// Unknown categories return an empty list, matching Registry.ListByCategory.
func (h *Handler) HandleListByCategory(w http.ResponseWriter, r *http.Request) {
	category := registry.Category(chi.URLParam(r, "category"))
	httputil.WriteJSON(w, http.StatusOK, map[string][]string{
		"slugs": h.registry.ListByCategory(category),
	})
}
