// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"
)

// Template is an entry in the read-only template catalog. The catalog is
// seeded out of band; the API never writes to it. Config is an opaque JSON
// document that carries at least a default color list.
type Template struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	PreviewURL string          `json:"previewUrl"`
	Config     json.RawMessage `json:"config"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// templateConfig is the subset of Template.Config the generator reads.
type templateConfig struct {
	Colors   []string `json:"colors"`
	Strategy string   `json:"strategy"`
}

func (t *Template) config() templateConfig {
	var cfg templateConfig
	if len(t.Config) == 0 {
		return cfg
	}
	// A malformed config is treated as empty so the caller falls back to defaults.
	_ = json.Unmarshal(t.Config, &cfg)
	return cfg
}

// Colors returns the template's default color list, or nil when the config
// does not define one.
func (t *Template) Colors() []string {
	return t.config().Colors
}

// Strategy returns the optional section strategy override from the config.
func (t *Template) Strategy() string {
	return t.config().Strategy
}
