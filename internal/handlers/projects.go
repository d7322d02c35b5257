package handlers

import (
	"context"
	"net/http"
	"strings"

	"infogen/internal/infographic"
	"infogen/internal/markdown"
	"infogen/internal/middleware"
	"infogen/internal/models"
	"infogen/internal/store"
)

// ProjectStore is the persistence the project handlers need.
type ProjectStore interface {
	List(ctx context.Context, scope store.Scope) ([]models.Project, error)
	FindByID(ctx context.Context, scope store.Scope, id int64) (*models.Project, error)
	Create(ctx context.Context, scope store.Scope, p *models.Project) (*models.Project, error)
	Update(ctx context.Context, scope store.Scope, id int64, patch models.ProjectPatch) (*models.Project, error)
	Delete(ctx context.Context, scope store.Scope, id int64) error
}

// BrandLookup resolves a brand within an owner scope. A nil brand means
// the caller cannot see it.
type BrandLookup interface {
	FindByID(ctx context.Context, scope store.Scope, id int64) (*models.Brand, error)
}

// Projects groups the project handlers. Every route runs behind
// RequireAuth and is scoped to the caller.
type Projects struct {
	store   ProjectStore
	brands  BrandLookup
	service *infographic.Service
}

// NewProjects creates a new Projects handler group.
func NewProjects(s ProjectStore, brands BrandLookup, service *infographic.Service) *Projects {
	return &Projects{store: s, brands: brands, service: service}
}

type createProjectRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	TemplateID string `json:"templateId"`
	BrandID    *int64 `json:"brandId"`
}

// List returns the caller's projects, newest first.
func (h *Projects) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.store.List(r.Context(), middleware.ScopeFromCtx(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": projects})
}

// Create stores a new project with empty design data.
func (h *Projects) Create(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if msg := validateProject(req.Title, req.Content, req.TemplateID); msg != "" {
		writeError(w, r, invalid("%s", msg))
		return
	}

	scope := middleware.ScopeFromCtx(r.Context())
	if err := h.checkBrand(r.Context(), scope, req.BrandID); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.store.Create(r.Context(), scope, &models.Project{
		Title:      strings.TrimSpace(req.Title),
		Content:    req.Content,
		TemplateID: strings.TrimSpace(req.TemplateID),
		BrandID:    req.BrandID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Get returns one project.
func (h *Projects) Get(w http.ResponseWriter, r *http.Request) {
	project, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// Update applies a partial update. Only supplied fields change.
func (h *Projects) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var patch models.ProjectPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, r, err)
		return
	}
	if string(patch.DesignData) == "null" {
		patch.DesignData = nil
	}
	if msg := validateProjectPatch(&patch); msg != "" {
		writeError(w, r, invalid("%s", msg))
		return
	}

	scope := middleware.ScopeFromCtx(r.Context())
	if err := h.checkBrand(r.Context(), scope, patch.BrandID); err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := h.store.Update(r.Context(), scope, id, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete removes a project.
func (h *Projects) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.store.Delete(r.Context(), middleware.ScopeFromCtx(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Preview renders the project's markdown content as an HTML fragment.
func (h *Projects) Preview(w http.ResponseWriter, r *http.Request) {
	project, ok := h.load(w, r)
	if !ok {
		return
	}

	html, err := markdown.ToHTML(project.Content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": project.ID, "title": project.Title, "html": html})
}

// Infographic builds a document from the stored project content, template
// and brand.
func (h *Projects) Infographic(w http.ResponseWriter, r *http.Request) {
	project, ok := h.load(w, r)
	if !ok {
		return
	}

	doc, err := h.service.BuildInfographic(r.Context(), middleware.ScopeFromCtx(r.Context()),
		project.Content, project.TemplateID, project.BrandID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// checkBrand verifies that a referenced brand exists in scope. Projects may
// only point at their owner's brands.
func (h *Projects) checkBrand(ctx context.Context, scope store.Scope, id *int64) error {
	if id == nil {
		return nil
	}
	brand, err := h.brands.FindByID(ctx, scope, *id)
	if err != nil {
		return err
	}
	if brand == nil {
		return errNotFound("brand", *id)
	}
	return nil
}

// load fetches the {id} project in the caller's scope, writing the error
// response itself when it cannot.
func (h *Projects) load(w http.ResponseWriter, r *http.Request) (*models.Project, bool) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}

	project, err := h.store.FindByID(r.Context(), middleware.ScopeFromCtx(r.Context()), id)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	if project == nil {
		writeError(w, r, errNotFound("project", id))
		return nil, false
	}
	return project, true
}
