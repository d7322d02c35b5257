package handlers

import (
	"context"
	"net/http"
	"strings"

	"infogen/internal/middleware"
	"infogen/internal/models"
	"infogen/internal/store"
)

// BrandStore is the persistence the brand handlers need.
type BrandStore interface {
	List(ctx context.Context, scope store.Scope) ([]models.Brand, error)
	Create(ctx context.Context, scope store.Scope, b *models.Brand) (*models.Brand, error)
	Update(ctx context.Context, scope store.Scope, id int64, patch models.BrandPatch) (*models.Brand, error)
	Delete(ctx context.Context, scope store.Scope, id int64) error
}

// Brands groups the brand CRUD handlers. Every route runs behind
// RequireAuth and is scoped to the caller.
type Brands struct {
	store BrandStore
}

// NewBrands creates a new Brands handler group.
func NewBrands(s BrandStore) *Brands {
	return &Brands{store: s}
}

type createBrandRequest struct {
	Name             string   `json:"name"`
	WatermarkText    *string  `json:"watermarkText"`
	WatermarkLogoURL *string  `json:"watermarkLogoUrl"`
	ColorPalette     []string `json:"colorPalette"`
	HeadingFont      string   `json:"headingFont"`
	BodyFont         string   `json:"bodyFont"`
}

// List returns the caller's brands, newest first.
func (h *Brands) List(w http.ResponseWriter, r *http.Request) {
	brands, err := h.store.List(r.Context(), middleware.ScopeFromCtx(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"brands": brands})
}

// Create stores a new brand for the caller.
func (h *Brands) Create(w http.ResponseWriter, r *http.Request) {
	var req createBrandRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	brand := &models.Brand{
		Name:             strings.TrimSpace(req.Name),
		WatermarkText:    nonEmpty(req.WatermarkText),
		WatermarkLogoURL: nonEmpty(req.WatermarkLogoURL),
		ColorPalette:     req.ColorPalette,
		HeadingFont:      orDefault(req.HeadingFont, "Inter"),
		BodyFont:         orDefault(req.BodyFont, "Inter"),
	}
	if brand.ColorPalette == nil {
		brand.ColorPalette = []string{}
	}
	if msg := validateBrand(brand); msg != "" {
		writeError(w, r, invalid("%s", msg))
		return
	}

	created, err := h.store.Create(r.Context(), middleware.ScopeFromCtx(r.Context()), brand)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update applies a partial update. Only supplied fields change.
func (h *Brands) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var patch models.BrandPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, r, err)
		return
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		patch.Name = &name
	}
	if msg := validateBrandPatch(&patch); msg != "" {
		writeError(w, r, invalid("%s", msg))
		return
	}

	updated, err := h.store.Update(r.Context(), middleware.ScopeFromCtx(r.Context()), id, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete removes a brand that no project uses.
func (h *Brands) Delete(w http.ResponseWriter, r *http.Request) {
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

// nonEmpty maps blank optional strings to nil.
func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func orDefault(s, fallback string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return fallback
}
