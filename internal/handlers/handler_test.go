// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests:
// in-memory stores, a fixed clock and request helpers. Integration tests
// that need PostgreSQL are skipped when it is unavailable.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"infogen/internal/infographic"
	"infogen/internal/middleware"
	"infogen/internal/models"
	"infogen/internal/session"
	"infogen/internal/store"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

var testUser = &session.Data{UserID: "user_123", Email: "user@example.com"}

func owner(scope store.Scope) *string {
	if scope.Anonymous() {
		return nil
	}
	id := scope.UserID
	return &id
}

func visible(scope store.Scope, userID *string) bool {
	if scope.Anonymous() {
		return userID == nil
	}
	return userID != nil && *userID == scope.UserID
}

// memBrands is an in-memory BrandStore with the same error contract as
// store.BrandStore.
type memBrands struct {
	mu       sync.Mutex
	next     int64
	rows     map[int64]models.Brand
	projects *memProjects
	err      error
}

func newMemBrands() *memBrands {
	return &memBrands{rows: map[int64]models.Brand{}}
}

func (m *memBrands) List(_ context.Context, scope store.Scope) ([]models.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []models.Brand{}
	for _, b := range m.rows {
		if visible(scope, b.UserID) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memBrands) FindByID(_ context.Context, scope store.Scope, id int64) (*models.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[id]
	if !ok || !visible(scope, b.UserID) {
		return nil, nil
	}
	return &b, nil
}

func (m *memBrands) Create(_ context.Context, scope store.Scope, b *models.Brand) (*models.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.next++
	created := *b
	created.ID = m.next
	created.UserID = owner(scope)
	created.CreatedAt, created.UpdatedAt = testNow, testNow
	m.rows[created.ID] = created
	return &created, nil
}

func (m *memBrands) Update(_ context.Context, scope store.Scope, id int64, p models.BrandPatch) (*models.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.IsEmpty() {
		return nil, fmt.Errorf("update brand: %w: no fields to update", models.ErrInvalidRequest)
	}
	b, ok := m.rows[id]
	if !ok || !visible(scope, b.UserID) {
		return nil, fmt.Errorf("update brand %d: %w", id, models.ErrNotFound)
	}
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.WatermarkText != nil {
		b.WatermarkText = p.WatermarkText
	}
	if p.WatermarkLogoURL != nil {
		b.WatermarkLogoURL = p.WatermarkLogoURL
	}
	if p.ColorPalette != nil {
		b.ColorPalette = *p.ColorPalette
	}
	if p.HeadingFont != nil {
		b.HeadingFont = *p.HeadingFont
	}
	if p.BodyFont != nil {
		b.BodyFont = *p.BodyFont
	}
	m.rows[id] = b
	return &b, nil
}

func (m *memBrands) Delete(_ context.Context, scope store.Scope, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[id]
	if !ok || !visible(scope, b.UserID) {
		return fmt.Errorf("delete brand %d: %w", id, models.ErrNotFound)
	}
	if m.projects != nil {
		if n := m.projects.countBrand(id); n > 0 {
			return fmt.Errorf("delete brand %d: %w: brand is used by %d project(s)", id, models.ErrPreconditionFailed, n)
		}
	}
	delete(m.rows, id)
	return nil
}

// memProjects is an in-memory ProjectStore.
type memProjects struct {
	mu   sync.Mutex
	next int64
	rows map[int64]models.Project
}

func newMemProjects() *memProjects {
	return &memProjects{rows: map[int64]models.Project{}}
}

func (m *memProjects) countBrand(id int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, p := range m.rows {
		if p.BrandID != nil && *p.BrandID == id {
			n++
		}
	}
	return n
}

func (m *memProjects) List(_ context.Context, scope store.Scope) ([]models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Project{}
	for _, p := range m.rows {
		if visible(scope, p.UserID) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memProjects) FindByID(_ context.Context, scope store.Scope, id int64) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok || !visible(scope, p.UserID) {
		return nil, nil
	}
	return &p, nil
}

func (m *memProjects) Create(_ context.Context, scope store.Scope, p *models.Project) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	created := *p
	created.ID = m.next
	created.UserID = owner(scope)
	created.DesignData = json.RawMessage(`{}`)
	created.CreatedAt, created.UpdatedAt = testNow, testNow
	m.rows[created.ID] = created
	return &created, nil
}

func (m *memProjects) Update(_ context.Context, scope store.Scope, id int64, patch models.ProjectPatch) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if patch.IsEmpty() {
		return nil, fmt.Errorf("update project: %w: no fields to update", models.ErrInvalidRequest)
	}
	p, ok := m.rows[id]
	if !ok || !visible(scope, p.UserID) {
		return nil, fmt.Errorf("update project %d: %w", id, models.ErrNotFound)
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.TemplateID != nil {
		p.TemplateID = *patch.TemplateID
	}
	if patch.BrandID != nil {
		p.BrandID = patch.BrandID
	}
	if len(patch.DesignData) > 0 {
		p.DesignData = patch.DesignData
	}
	m.rows[id] = p
	return &p, nil
}

func (m *memProjects) Delete(_ context.Context, scope store.Scope, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok || !visible(scope, p.UserID) {
		return fmt.Errorf("delete project %d: %w", id, models.ErrNotFound)
	}
	delete(m.rows, id)
	return nil
}

// memTemplates is an in-memory TemplateCatalog.
type memTemplates struct {
	list []models.Template
	err  error
}

func newMemTemplates() *memTemplates {
	return &memTemplates{list: []models.Template{
		{ID: "bullet-points", Name: "Bullet Points", Category: "lists", Config: json.RawMessage(`{"colors":["#111111"]}`)},
		{ID: "infographic-steps", Name: "Process Steps", Category: "process", Config: json.RawMessage(`{"colors":["#222222"]}`)},
	}}
}

func (m *memTemplates) List(context.Context) ([]models.Template, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.list, nil
}

func (m *memTemplates) FindByID(_ context.Context, id string) (*models.Template, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, t := range m.list {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, nil
}

// memManifests records uploaded manifests.
type memManifests struct {
	keys   []string
	bodies [][]byte
	err    error
}

func (m *memManifests) Upload(_ context.Context, key, _ string, body []byte) error {
	if m.err != nil {
		return m.err
	}
	m.keys = append(m.keys, key)
	m.bodies = append(m.bodies, body)
	return nil
}

func (m *memManifests) FileURL(key string) string {
	return "https://cdn.example.com/" + key
}

// testEnv holds all dependencies for handler tests.
type testEnv struct {
	Brands    *memBrands
	Projects  *memProjects
	Templates *memTemplates
	Manifests *memManifests
	Service   *infographic.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	projects := newMemProjects()
	brands := newMemBrands()
	brands.projects = projects
	templates := newMemTemplates()
	builder := &infographic.Builder{Now: func() time.Time { return testNow }}

	return &testEnv{
		Brands:    brands,
		Projects:  projects,
		Templates: templates,
		Manifests: &memManifests{},
		Service:   infographic.NewService(templates, brands, builder),
	}
}

// ctxWithUser adds the user to a context using the middleware key.
func ctxWithUser(ctx context.Context, user *session.Data) context.Context {
	return context.WithValue(ctx, middleware.UserKey, user)
}

// newRequest builds a request with an optional JSON body and the test user.
func newRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	r := httptest.NewRequest(method, target, &buf)
	r.Header.Set("Content-Type", "application/json")
	return r.WithContext(ctxWithUser(r.Context(), testUser))
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// serve runs h and returns the recorder.
func serve(h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h(rr, r)
	return rr
}

// decode unmarshals the recorder body into dst.
func decode(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode body %q: %v", rr.Body.String(), err)
	}
}

// assertError checks status and error code of an error response.
func assertError(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rr.Code != status {
		t.Errorf("status: got %d, want %d (body %s)", rr.Code, status, rr.Body.String())
	}
	var body errorBody
	decode(t, rr, &body)
	if body.Code != code {
		t.Errorf("code: got %q, want %q", body.Code, code)
	}
}
