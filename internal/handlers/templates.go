package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"infogen/internal/models"
)

// TemplateCatalog is the read-only template lookup the handlers need.
type TemplateCatalog interface {
	List(ctx context.Context) ([]models.Template, error)
	FindByID(ctx context.Context, id string) (*models.Template, error)
}

// Templates serves the public template catalog.
type Templates struct {
	catalog TemplateCatalog
}

// NewTemplates creates a new Templates handler group.
func NewTemplates(catalog TemplateCatalog) *Templates {
	return &Templates{catalog: catalog}
}

// List returns every template ordered by category, then name.
func (h *Templates) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.catalog.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": templates})
}

// Get returns one template by id.
func (h *Templates) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	tmpl, err := h.catalog.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if tmpl == nil {
		writeError(w, r, errNotFound("template", id))
		return
	}
	writeJSON(w, http.StatusOK, tmpl)
}
