// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug turns infographic titles into file-name-safe slugs used for
// export downloads and stored manifests.
package slug

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// maxLength caps a slug so generated file names stay readable.
	maxLength = 60

	// fallback is used when a title has no usable characters.
	fallback = "infographic"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, space or hyphen.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// separators collapses runs of whitespace and hyphens into one hyphen.
	separators = regexp.MustCompile(`[\s-]+`)
)

// Generate creates a lowercase, hyphen-separated slug from the given title,
// cut at a word boundary once it exceeds maxLength.
// Example: "Q3 Results: Revenue +40%" → "q3-results-revenue-40"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = separators.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	if len(result) > maxLength {
		result = result[:maxLength]
		if i := strings.LastIndex(result, "-"); i > 0 {
			result = result[:i]
		}
	}
	return result
}

// Filename builds an export file name of the form "<slug>-<unix>.<ext>".
// Titles without usable characters fall back to "infographic".
func Filename(title, ext string, at time.Time) string {
	base := Generate(title)
	if base == "" {
		base = fallback
	}
	return fmt.Sprintf("%s-%d.%s", base, at.Unix(), ext)
}
