package infographic

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infogen/internal/models"
	"infogen/internal/store"
)

type fakeTemplates struct {
	templates map[string]*models.Template
	err       error
}

func (f *fakeTemplates) FindByID(_ context.Context, id string) (*models.Template, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.templates[id], nil
}

type fakeBrands struct {
	brands    map[int64]*models.Brand
	err       error
	lastScope store.Scope
	calls     int
}

func (f *fakeBrands) FindByID(_ context.Context, scope store.Scope, id int64) (*models.Brand, error) {
	f.calls++
	f.lastScope = scope
	if f.err != nil {
		return nil, f.err
	}
	return f.brands[id], nil
}

func newTestService(brands *fakeBrands) *Service {
	templates := &fakeTemplates{templates: map[string]*models.Template{
		"bullet-points": {ID: "bullet-points", Name: "Bullet Points"},
	}}
	return NewService(templates, brands, fixedBuilder())
}

func TestServiceBuildInfographic(t *testing.T) {
	brands := &fakeBrands{}
	svc := newTestService(brands)

	doc, err := svc.BuildInfographic(context.Background(), store.Scope{}, "- one\n- two", "bullet-points", nil)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "bullet-points", doc.TemplateID)
	assert.Equal(t, SectionBullets, doc.Sections[1].Type)
	assert.Equal(t, DefaultWatermark, doc.Sections[len(doc.Sections)-1].Content.(FooterContent).Watermark)
	assert.Zero(t, brands.calls)
}

func TestServiceUnknownTemplate(t *testing.T) {
	svc := newTestService(&fakeBrands{})

	_, err := svc.BuildInfographic(context.Background(), store.Scope{}, "text", "nope", nil)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestServiceTemplateLookupError(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewService(&fakeTemplates{err: boom}, &fakeBrands{}, fixedBuilder())

	_, err := svc.BuildInfographic(context.Background(), store.Scope{}, "text", "bullet-points", nil)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, models.ErrNotFound)
}

func TestServiceAppliesBrandWithinScope(t *testing.T) {
	watermark := "Acme"
	brands := &fakeBrands{brands: map[int64]*models.Brand{
		7: {ID: 7, Name: "Acme", WatermarkText: &watermark, ColorPalette: []string{"#FF0000"}},
	}}
	svc := newTestService(brands)
	id := int64(7)

	doc, err := svc.BuildInfographic(context.Background(), store.UserScope("user_123"), "- one", "bullet-points", &id)
	require.NoError(t, err)
	assert.Equal(t, store.UserScope("user_123"), brands.lastScope)
	assert.Equal(t, []string{"#FF0000"}, doc.Colors)
	assert.Equal(t, "Acme", doc.Sections[len(doc.Sections)-1].Content.(FooterContent).Watermark)
}

func TestServiceMissingBrandIsIgnored(t *testing.T) {
	svc := newTestService(&fakeBrands{})
	id := int64(99)

	doc, err := svc.BuildInfographic(context.Background(), store.Scope{}, "- one", "bullet-points", &id)
	require.NoError(t, err)
	assert.Equal(t, DefaultColors, doc.Colors)
}

func TestServiceBrandLookupError(t *testing.T) {
	boom := errors.New("timeout")
	svc := newTestService(&fakeBrands{err: boom})
	id := int64(1)

	_, err := svc.BuildInfographic(context.Background(), store.Scope{}, "- one", "bullet-points", &id)
	assert.ErrorIs(t, err, boom)
}

func TestServiceAnimationScript(t *testing.T) {
	svc := newTestService(&fakeBrands{})

	script := svc.AnimationScript(quarterlyText, AnimationParams{Pacing: PacingModerate})
	assert.Len(t, script.Scenes, 5)
	assert.Equal(t, fixedNow, script.GeneratedAt)
}

func TestNewServiceDefaultsBuilder(t *testing.T) {
	svc := NewService(&fakeTemplates{}, &fakeBrands{}, nil)
	require.NotNil(t, svc.builder)
	assert.NotNil(t, svc.builder.Now)
}
