// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"infogen/internal/models"
)

var projectColumns = []string{
	"id", "user_id", "title", "content", "template_id", "brand_id",
	"design_data", "created_at", "updated_at",
}

// ProjectStore handles all project-related database operations.
type ProjectStore struct {
	db *sql.DB
}

// NewProjectStore creates a new ProjectStore with the given database connection.
func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

// List returns the projects visible in scope, newest first.
func (s *ProjectStore) List(ctx context.Context, scope Scope) ([]models.Project, error) {
	query, args, err := psql.Select(projectColumns...).From("projects").
		Where(scope.where(nil)).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list projects: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// FindByID retrieves a project by id within scope. Returns nil if not found.
func (s *ProjectStore) FindByID(ctx context.Context, scope Scope, id int64) (*models.Project, error) {
	query, args, err := psql.Select(projectColumns...).From("projects").
		Where(scope.where(sq.Eq{"id": id})).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find project: %w", err)
	}

	p, err := scanProject(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project by id: %w", err)
	}
	return p, nil
}

// Create inserts a new project owned by the scope's user. Design data always
// starts as an empty object.
func (s *ProjectStore) Create(ctx context.Context, scope Scope, p *models.Project) (*models.Project, error) {
	query, args, err := psql.Insert("projects").
		Columns("user_id", "title", "content", "template_id", "brand_id", "design_data").
		Values(scope.owner(), p.Title, p.Content, p.TemplateID, p.BrandID, "{}").
		Suffix(returning(projectColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create project: %w", err)
	}

	created, err := scanProject(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return created, nil
}

// Update applies the supplied fields of patch to the project and bumps
// updated_at. An empty patch is rejected before any query runs.
func (s *ProjectStore) Update(ctx context.Context, scope Scope, id int64, patch models.ProjectPatch) (*models.Project, error) {
	if patch.IsEmpty() {
		return nil, fmt.Errorf("update project: %w: no fields to update", models.ErrInvalidRequest)
	}

	q := psql.Update("projects")
	if patch.Title != nil {
		q = q.Set("title", *patch.Title)
	}
	if patch.Content != nil {
		q = q.Set("content", *patch.Content)
	}
	if patch.TemplateID != nil {
		q = q.Set("template_id", *patch.TemplateID)
	}
	if patch.BrandID != nil {
		q = q.Set("brand_id", *patch.BrandID)
	}
	if len(patch.DesignData) > 0 {
		q = q.Set("design_data", string(patch.DesignData))
	}

	query, args, err := q.Set("updated_at", sq.Expr("NOW()")).
		Where(scope.where(sq.Eq{"id": id})).
		Suffix(returning(projectColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update project: %w", err)
	}

	updated, err := scanProject(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update project %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return updated, nil
}

// Delete removes a project within scope.
func (s *ProjectStore) Delete(ctx context.Context, scope Scope, id int64) error {
	query, args, err := psql.Delete("projects").Where(scope.where(sq.Eq{"id": id})).ToSql()
	if err != nil {
		return fmt.Errorf("build delete project: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("delete project %d: %w", id, models.ErrNotFound)
	}
	return nil
}

func scanProject(r rowScanner) (*models.Project, error) {
	var (
		p      models.Project
		design []byte
	)
	if err := r.Scan(
		&p.ID, &p.UserID, &p.Title, &p.Content, &p.TemplateID, &p.BrandID,
		&design, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(design) == 0 {
		design = []byte("{}")
	}
	p.DesignData = design
	return &p, nil
}
