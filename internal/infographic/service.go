// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package infographic

import (
	"context"
	"fmt"

	"infogen/internal/models"
	"infogen/internal/store"
)

// TemplateSource looks up catalog templates. A nil template means unknown.
type TemplateSource interface {
	FindByID(ctx context.Context, id string) (*models.Template, error)
}

// BrandSource looks up brands within an owner scope. A nil brand means none.
type BrandSource interface {
	FindByID(ctx context.Context, scope store.Scope, id int64) (*models.Brand, error)
}

// Service resolves templates and brands and runs the builder. The same
// pipeline serves signed-in and anonymous callers; only the scope differs.
type Service struct {
	templates TemplateSource
	brands    BrandSource
	builder   *Builder
}

// NewService wires the pipeline to its lookups.
func NewService(templates TemplateSource, brands BrandSource, builder *Builder) *Service {
	if builder == nil {
		builder = NewBuilder()
	}
	return &Service{templates: templates, brands: brands, builder: builder}
}

// BuildInfographic extracts features from text and builds a document for
// templateID. An unknown template is a not-found error; a brand id that
// does not resolve within scope is ignored.
func (s *Service) BuildInfographic(ctx context.Context, scope store.Scope, text, templateID string, brandID *int64) (*Document, error) {
	tmpl, err := s.templates.FindByID(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("load template: %w", err)
	}
	if tmpl == nil {
		return nil, fmt.Errorf("template %q: %w", templateID, models.ErrNotFound)
	}

	var brand *models.Brand
	if brandID != nil {
		brand, err = s.brands.FindByID(ctx, scope, *brandID)
		if err != nil {
			return nil, fmt.Errorf("load brand: %w", err)
		}
	}

	doc := s.builder.Build(Extract(text, InfographicOptions()), *tmpl, brand)
	return &doc, nil
}

// AnimationScript builds an animation script for text.
func (s *Service) AnimationScript(text string, params AnimationParams) AnimationScript {
	return s.builder.AnimationScript(text, params)
}
