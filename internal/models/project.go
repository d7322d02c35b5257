// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"
)

// Project is a saved infographic draft: the raw text, the chosen template
// and optionally a brand. DesignData is a free-form document owned by the
// frontend; new projects start with an empty object.
type Project struct {
	ID         int64           `json:"id"`
	UserID     *string         `json:"-"`
	Title      string          `json:"title"`
	Content    string          `json:"content"`
	TemplateID string          `json:"templateId"`
	BrandID    *int64          `json:"brandId,omitempty"`
	DesignData json.RawMessage `json:"designData"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// ProjectPatch lists the project fields an update may change.
type ProjectPatch struct {
	Title      *string         `json:"title"`
	Content    *string         `json:"content"`
	TemplateID *string         `json:"templateId"`
	BrandID    *int64          `json:"brandId"`
	DesignData json.RawMessage `json:"designData"`
}

// IsEmpty reports whether the patch changes nothing.
func (p *ProjectPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.TemplateID == nil &&
		p.BrandID == nil && len(p.DesignData) == 0
}
