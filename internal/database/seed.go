package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// catalogTemplate is one row of the built-in template catalog.
type catalogTemplate struct {
	id, name, category, previewURL, config string
}

// catalog is the template set shipped with the generator. Template ids are
// the keys the section builder dispatches on.
var catalog = []catalogTemplate{
	{"modern-stats", "Modern Stats", "statistics", "/previews/templates/modern-stats.png",
		`{"colors":["#2563EB","#1E40AF","#3B82F6"]}`},
	{"statistics-dashboard", "Statistics Dashboard", "statistics", "/previews/templates/statistics-dashboard.png",
		`{"colors":["#0EA5E9","#6366F1","#22C55E"]}`},
	{"data-visualization", "Data Visualization", "statistics", "/previews/templates/data-visualization.png",
		`{"colors":["#8B5CF6","#06B6D4","#F59E0B"]}`},
	{"bullet-points", "Bullet Points", "lists", "/previews/templates/bullet-points.png",
		`{"colors":["#3B82F6","#10B981","#F59E0B"]}`},
	{"infographic-steps", "Step by Step", "process", "/previews/templates/infographic-steps.png",
		`{"colors":["#F97316","#EF4444","#EAB308"]}`},
	{"comparison-chart", "Comparison Chart", "comparison", "/previews/templates/comparison-chart.png",
		`{"colors":["#EC4899","#8B5CF6","#14B8A6"]}`},
	{"before-after", "Before & After", "comparison", "/previews/templates/before-after.png",
		`{"colors":["#64748B","#10B981","#0EA5E9"]}`},
	{"feature-highlights", "Feature Highlights", "marketing", "/previews/templates/feature-highlights.png",
		`{"colors":["#6366F1","#EC4899","#F59E0B"]}`},
	{"tips-tricks", "Tips & Tricks", "marketing", "/previews/templates/tips-tricks.png",
		`{"colors":["#84CC16","#06B6D4","#F97316"]}`},
}

// Seed populates the template catalog. Existing rows are left untouched,
// so the call is safe to repeat on every start in development.
func Seed(ctx context.Context, db *sql.DB) error {
	var inserted int64
	for _, t := range catalog {
		result, err := db.ExecContext(ctx, `
			INSERT INTO templates (id, name, category, preview_url, config)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO NOTHING
		`, t.id, t.name, t.category, t.previewURL, t.config)
		if err != nil {
			return fmt.Errorf("seed template %s: %w", t.id, err)
		}
		n, _ := result.RowsAffected()
		inserted += n
	}

	if inserted == 0 {
		slog.Info("template catalog already seeded, skipping")
		return nil
	}

	slog.Info("template catalog seeded", "inserted", inserted)
	return nil
}
