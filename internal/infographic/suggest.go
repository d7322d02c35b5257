// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package infographic

import "strings"

// SuggestionType groups suggestions for the editor UI.
type SuggestionType string

const (
	SuggestionLayout  SuggestionType = "layout"
	SuggestionColor   SuggestionType = "color"
	SuggestionContent SuggestionType = "content"
	SuggestionChart   SuggestionType = "chart"
)

// Suggestion is an advisory, non-binding hint. Value is an opaque payload
// the client may apply directly.
type Suggestion struct {
	Type        SuggestionType `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Value       map[string]any `json:"value"`
}

// longContentThreshold is the byte length above which a multi-column layout
// is suggested.
const longContentThreshold = 500

var professionalBlue = Suggestion{
	Type:        SuggestionColor,
	Title:       "Professional Blue Palette",
	Description: "Use a professional blue color scheme for data-focused content.",
	Value:       map[string]any{"primary": "#2563EB", "secondary": "#1E40AF", "accent": "#3B82F6"},
}

// paletteSuggestions maps template ids to the palette recommended for them.
var paletteSuggestions = map[string]Suggestion{
	"modern-stats":         professionalBlue,
	"statistics-dashboard": professionalBlue,
}

// suggestionRule inspects the request and returns a suggestion when it applies.
type suggestionRule func(text, templateID string) (Suggestion, bool)

// suggestionRules run in order; every matching rule contributes.
var suggestionRules = []suggestionRule{
	func(text, _ string) (Suggestion, bool) {
		if len(text) <= longContentThreshold {
			return Suggestion{}, false
		}
		return Suggestion{
			Type:        SuggestionLayout,
			Title:       "Consider Multi-Column Layout",
			Description: "Your content is long. A multi-column layout keeps it readable.",
			Value:       map[string]any{"columns": 2},
		}, true
	},
	func(_, templateID string) (Suggestion, bool) {
		s, ok := paletteSuggestions[templateID]
		return s, ok
	},
	func(text, _ string) (Suggestion, bool) {
		if strings.Contains(text, "statistics") || strings.Contains(text, "data") {
			return Suggestion{}, false
		}
		return Suggestion{
			Type:        SuggestionContent,
			Title:       "Add Supporting Data",
			Description: "Statistics or data points would strengthen your message.",
			Value:       map[string]any{"suggestion": "Include relevant statistics or data points"},
		}, true
	},
	func(text, _ string) (Suggestion, bool) {
		if !strings.Contains(text, "increase") && !strings.Contains(text, "growth") {
			return Suggestion{}, false
		}
		return Suggestion{
			Type:        SuggestionChart,
			Title:       "Add Growth Chart",
			Description: "Your content mentions growth. A line chart would show the trend.",
			Value:       map[string]any{"chartType": "line", "data": "growth-trend"},
		}, true
	},
}

// Suggest evaluates every rule against text and templateID. Rules are
// independent: results are neither ranked nor deduplicated.
func Suggest(text, templateID string) []Suggestion {
	suggestions := []Suggestion{}
	for _, rule := range suggestionRules {
		if s, ok := rule(text, templateID); ok {
			suggestions = append(suggestions, s)
		}
	}
	return suggestions
}
