// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"infogen/internal/models"
)

var brandColumns = []string{
	"id", "user_id", "name", "watermark_text", "watermark_logo_url",
	"color_palette", "heading_font", "body_font", "created_at", "updated_at",
}

// BrandStore handles all brand-related database operations.
type BrandStore struct {
	db *sql.DB
}

// NewBrandStore creates a new BrandStore with the given database connection.
func NewBrandStore(db *sql.DB) *BrandStore {
	return &BrandStore{db: db}
}

// List returns the brands visible in scope, newest first.
func (s *BrandStore) List(ctx context.Context, scope Scope) ([]models.Brand, error) {
	query, args, err := psql.Select(brandColumns...).From("brands").
		Where(scope.where(nil)).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list brands: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	brands := []models.Brand{}
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		brands = append(brands, *b)
	}
	return brands, rows.Err()
}

// FindByID retrieves a brand by id within scope. Returns nil if not found.
func (s *BrandStore) FindByID(ctx context.Context, scope Scope, id int64) (*models.Brand, error) {
	query, args, err := psql.Select(brandColumns...).From("brands").
		Where(scope.where(sq.Eq{"id": id})).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find brand: %w", err)
	}

	b, err := scanBrand(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find brand by id: %w", err)
	}
	return b, nil
}

// Create inserts a new brand owned by the scope's user and returns the
// stored row. A nil color palette is stored as an empty list.
func (s *BrandStore) Create(ctx context.Context, scope Scope, b *models.Brand) (*models.Brand, error) {
	palette, err := encodePalette(b.ColorPalette)
	if err != nil {
		return nil, fmt.Errorf("create brand: %w", err)
	}

	query, args, err := psql.Insert("brands").
		Columns("user_id", "name", "watermark_text", "watermark_logo_url", "color_palette", "heading_font", "body_font").
		Values(scope.owner(), b.Name, b.WatermarkText, b.WatermarkLogoURL, palette, b.HeadingFont, b.BodyFont).
		Suffix(returning(brandColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create brand: %w", err)
	}

	created, err := scanBrand(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("create brand: %w", err)
	}
	return created, nil
}

// Update applies the supplied fields of patch to the brand and bumps
// updated_at. An empty patch is rejected before any query runs.
func (s *BrandStore) Update(ctx context.Context, scope Scope, id int64, patch models.BrandPatch) (*models.Brand, error) {
	if patch.IsEmpty() {
		return nil, fmt.Errorf("update brand: %w: no fields to update", models.ErrInvalidRequest)
	}

	q := psql.Update("brands")
	if patch.Name != nil {
		q = q.Set("name", *patch.Name)
	}
	if patch.WatermarkText != nil {
		q = q.Set("watermark_text", *patch.WatermarkText)
	}
	if patch.WatermarkLogoURL != nil {
		q = q.Set("watermark_logo_url", *patch.WatermarkLogoURL)
	}
	if patch.ColorPalette != nil {
		palette, err := encodePalette(*patch.ColorPalette)
		if err != nil {
			return nil, fmt.Errorf("update brand: %w", err)
		}
		q = q.Set("color_palette", palette)
	}
	if patch.HeadingFont != nil {
		q = q.Set("heading_font", *patch.HeadingFont)
	}
	if patch.BodyFont != nil {
		q = q.Set("body_font", *patch.BodyFont)
	}

	query, args, err := q.Set("updated_at", sq.Expr("NOW()")).
		Where(scope.where(sq.Eq{"id": id})).
		Suffix(returning(brandColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update brand: %w", err)
	}

	updated, err := scanBrand(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update brand %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update brand: %w", err)
	}
	return updated, nil
}

// Delete removes a brand owned by scope. A brand outside scope is not found;
// deletion is refused while any project still references the brand.
func (s *BrandStore) Delete(ctx context.Context, scope Scope, id int64) error {
	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		query, args, err := psql.Select("id").From("brands").
			Where(scope.where(sq.Eq{"id": id})).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return fmt.Errorf("build lock brand: %w", err)
		}
		var locked int64
		err = tx.QueryRowContext(ctx, query, args...).Scan(&locked)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("delete brand %d: %w", id, models.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("lock brand: %w", err)
		}

		var inUse int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM projects WHERE brand_id = $1`, id,
		).Scan(&inUse); err != nil {
			return fmt.Errorf("count brand projects: %w", err)
		}
		if inUse > 0 {
			return fmt.Errorf("delete brand %d: %w: brand is used by %d project(s)",
				id, models.ErrPreconditionFailed, inUse)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM brands WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete brand: %w", err)
		}
		return nil
	})
}

func scanBrand(r rowScanner) (*models.Brand, error) {
	var (
		b       models.Brand
		palette []byte
	)
	if err := r.Scan(
		&b.ID, &b.UserID, &b.Name, &b.WatermarkText, &b.WatermarkLogoURL,
		&palette, &b.HeadingFont, &b.BodyFont, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	b.ColorPalette = []string{}
	if len(palette) > 0 {
		if err := json.Unmarshal(palette, &b.ColorPalette); err != nil {
			return nil, fmt.Errorf("decode color palette: %w", err)
		}
	}
	return &b, nil
}

func encodePalette(colors []string) (string, error) {
	if colors == nil {
		colors = []string{}
	}
	data, err := json.Marshal(colors)
	if err != nil {
		return "", fmt.Errorf("encode color palette: %w", err)
	}
	return string(data), nil
}

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}
