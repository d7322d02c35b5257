// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"infogen/internal/infographic"
	"infogen/internal/middleware"
	"infogen/internal/slug"
	"infogen/internal/storage"
)

// ManifestStore persists export manifests. storage.Client satisfies it.
type ManifestStore interface {
	Upload(ctx context.Context, key, contentType string, body []byte) error
	FileURL(key string) string
}

// Generate groups the generation endpoints: document building, export,
// suggestions and animation scripts.
type Generate struct {
	service   *infographic.Service
	manifests ManifestStore
	now       func() time.Time
}

// NewGenerate creates a new Generate handler group. manifests may be nil
// when object storage is not configured; exports then skip the manifest.
func NewGenerate(service *infographic.Service, manifests ManifestStore) *Generate {
	return &Generate{service: service, manifests: manifests, now: time.Now}
}

type buildRequest struct {
	Content    string `json:"content"`
	TemplateID string `json:"templateId"`
	BrandID    *int64 `json:"brandId"`
}

// BuildInfographic turns free text into a structured document. Signed-in
// callers may apply their own brands.
func (h *Generate) BuildInfographic(w http.ResponseWriter, r *http.Request) {
	var req buildRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if msg := validateText(req.Content); msg != "" {
		writeError(w, r, invalid("%s", msg))
		return
	}
	if msg := validateTemplateID(req.TemplateID); msg != "" {
		writeError(w, r, invalid("%s", msg))
		return
	}

	doc, err := h.service.BuildInfographic(r.Context(), middleware.ScopeFromCtx(r.Context()),
		req.Content, strings.TrimSpace(req.TemplateID), req.BrandID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

type exportRequest struct {
	Content      string `json:"content"`
	TemplateID   string `json:"templateId"`
	BrandID      *int64 `json:"brandId"`
	Format       string `json:"format"`
	Size         string `json:"size"`
	CustomWidth  *int   `json:"customWidth"`
	CustomHeight *int   `json:"customHeight"`
	Quality      string `json:"quality"`
}

type exportResponse struct {
	DownloadURL string    `json:"downloadUrl"`
	PreviewURL  string    `json:"previewUrl"`
	ManifestURL string    `json:"manifestUrl,omitempty"`
	Format      string    `json:"format"`
	Size        string    `json:"size"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Quality     string    `json:"quality"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// exportManifest is what gets stored for the renderer to pick up.
type exportManifest struct {
	Filename string                `json:"filename"`
	Format   string                `json:"format"`
	Width    int                   `json:"width"`
	Height   int                   `json:"height"`
	Quality  string                `json:"quality"`
	Document *infographic.Document `json:"document"`
}

// presetSizes are the pixel dimensions of the named export sizes.
var presetSizes = map[string][2]int{
	"square":     {1080, 1080},
	"vertical":   {1080, 1920},
	"horizontal": {1920, 1080},
	"story":      {1080, 1920},
}

// Export validates export options and returns placeholder download and
// preview URLs. Rendering itself is out of scope; when object storage is
// configured the built document is stored as a manifest for a renderer.
func (h *Generate) Export(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if msg := validateExport(&req); msg != "" {
		writeError(w, r, invalid("%s", msg))
		return
	}

	doc, err := h.service.BuildInfographic(r.Context(), middleware.ScopeFromCtx(r.Context()),
		req.Content, strings.TrimSpace(req.TemplateID), req.BrandID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	now := h.now()
	filename := slug.Filename(doc.Title, req.Format, now)
	width, height := exportDimensions(&req)

	resp := exportResponse{
		DownloadURL: "/downloads/" + filename,
		PreviewURL:  "/previews/" + filename,
		Format:      req.Format,
		Size:        req.Size,
		Width:       width,
		Height:      height,
		Quality:     req.Quality,
		GeneratedAt: now,
	}

	if h.manifests != nil {
		manifest := exportManifest{
			Filename: filename,
			Format:   req.Format,
			Width:    width,
			Height:   height,
			Quality:  req.Quality,
			Document: doc,
		}
		if url, err := h.storeManifest(r.Context(), now, filename, &manifest); err != nil {
			slog.Warn("store export manifest failed", "error", err, "file", filename)
		} else {
			resp.ManifestURL = url
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Generate) storeManifest(ctx context.Context, now time.Time, filename string, m *exportManifest) (string, error) {
	body, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	key := storage.ManifestKey(now, strings.TrimSuffix(filename, "."+m.Format))
	if err := h.manifests.Upload(ctx, key, "application/json", body); err != nil {
		return "", err
	}
	return h.manifests.FileURL(key), nil
}

func exportDimensions(req *exportRequest) (int, int) {
	if req.Size == "custom" {
		return *req.CustomWidth, *req.CustomHeight
	}
	dims := presetSizes[req.Size]
	return dims[0], dims[1]
}

type suggestionsRequest struct {
	Content    string `json:"content"`
	TemplateID string `json:"templateId"`
}

// Suggestions returns advisory hints for the content and template.
func (h *Generate) Suggestions(w http.ResponseWriter, r *http.Request) {
	var req suggestionsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"suggestions": infographic.Suggest(req.Content, req.TemplateID),
	})
}

type animationRequest struct {
	Content string `json:"content"`
	infographic.AnimationParams
}

// AnimationScript builds a timed scene list for an animated infographic.
// A zero scene count means the default.
func (h *Generate) AnimationScript(w http.ResponseWriter, r *http.Request) {
	var req animationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if msg := validateAnimation(req.Content, &req.AnimationParams); msg != "" {
		writeError(w, r, invalid("%s", msg))
		return
	}
	if req.SceneCount == 0 {
		req.SceneCount = infographic.DefaultSceneCount
	}

	writeJSON(w, http.StatusOK, h.service.AnimationScript(req.Content, req.AnimationParams))
}
