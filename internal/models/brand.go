// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Brand is a reusable style bundle (palette, fonts, watermark) a user can
// apply across projects. A brand carries either a text watermark or a logo
// URL; the server does not enforce that the two are exclusive.
type Brand struct {
	ID               int64     `json:"id"`
	UserID           *string   `json:"-"`
	Name             string    `json:"name"`
	WatermarkText    *string   `json:"watermarkText,omitempty"`
	WatermarkLogoURL *string   `json:"watermarkLogoUrl,omitempty"`
	ColorPalette     []string  `json:"colorPalette"`
	HeadingFont      string    `json:"headingFont"`
	BodyFont         string    `json:"bodyFont"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// BrandPatch lists the brand fields an update may change. Nil fields are
// left untouched. An empty string for a watermark clears it.
type BrandPatch struct {
	Name             *string   `json:"name"`
	WatermarkText    *string   `json:"watermarkText"`
	WatermarkLogoURL *string   `json:"watermarkLogoUrl"`
	ColorPalette     *[]string `json:"colorPalette"`
	HeadingFont      *string   `json:"headingFont"`
	BodyFont         *string   `json:"bodyFont"`
}

// IsEmpty reports whether the patch changes nothing.
func (p *BrandPatch) IsEmpty() bool {
	return p.Name == nil && p.WatermarkText == nil && p.WatermarkLogoURL == nil &&
		p.ColorPalette == nil && p.HeadingFont == nil && p.BodyFont == nil
}
