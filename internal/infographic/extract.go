// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package infographic turns free text into structured infographic documents,
// advisory suggestions and animation scripts. Everything here is a pure
// function of its inputs except for the generation timestamp, which comes
// from an injectable clock on Builder.
package infographic

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Theme is a content theme detected by keyword.
type Theme string

const (
	ThemeGrowth     Theme = "growth"
	ThemeData       Theme = "data"
	ThemeProcess    Theme = "process"
	ThemeComparison Theme = "comparison"
	ThemeFeatures   Theme = "features"
)

// themeClusters is checked in order; each theme is reported at most once.
var themeClusters = []struct {
	theme    Theme
	keywords []string
}{
	{ThemeGrowth, []string{"growth", "increase", "grew"}},
	{ThemeData, []string{"data", "analytics", "statistic", "metric"}},
	{ThemeProcess, []string{"process", "step", "workflow"}},
	{ThemeComparison, []string{"comparison", "compare", "versus", " vs"}},
	{ThemeFeatures, []string{"feature", "benefit", "advantage", "tip"}},
}

// Stat labels are assigned by occurrence index, not by meaning.
var (
	rateLabels  = []string{"Growth Rate", "Conversion Rate", "Success Rate", "Retention", "Satisfaction", "Engagement"}
	countLabels = []string{"Users", "Revenue", "Customers", "Projects", "Downloads", "Countries"}
)

const defaultConclusion = "Transform your approach with these insights."

var (
	numberPattern   = regexp.MustCompile(`\d+(?:\.\d+)?%?`)
	bulletPattern   = regexp.MustCompile(`^\s*[•\-*]\s+`)
	stepPattern     = regexp.MustCompile(`^\s*\d+[.)]\s+`)
	headerPrefix    = regexp.MustCompile(`^#+\s*`)
	nonWordPattern  = regexp.MustCompile(`[^\w\s]`)
	sentenceBreaker = regexp.MustCompile(`[.!?]\s|\n`)
)

// ExtractOptions tunes the caps and fallback title of one extractor variant.
type ExtractOptions struct {
	MaxStats      int
	MaxBullets    int
	MaxSteps      int
	MaxKeyPoints  int
	FallbackTitle string
}

// InfographicOptions are the extractor settings for document building.
func InfographicOptions() ExtractOptions {
	return ExtractOptions{MaxStats: 6, MaxBullets: 8, MaxSteps: 6, MaxKeyPoints: 5, FallbackTitle: "Your Infographic"}
}

// AnimationOptions are the extractor settings for animation scripts.
func AnimationOptions() ExtractOptions {
	return ExtractOptions{MaxStats: 4, MaxBullets: 6, MaxSteps: 5, MaxKeyPoints: 5, FallbackTitle: "Animated Infographic"}
}

// Stat is one numeric token found in the text.
type Stat struct {
	Value   string `json:"value"`
	Label   string `json:"label"`
	Context string `json:"context"`
}

// Comparison is a detected before/after or A-versus-B marker.
type Comparison struct {
	Kind   string `json:"kind"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// Features is everything the extractor found in one piece of text.
type Features struct {
	Title        string       `json:"title"`
	Stats        []Stat       `json:"stats"`
	BulletPoints []string     `json:"bulletPoints"`
	Steps        []string     `json:"steps"`
	KeyPoints    []string     `json:"keyPoints"`
	Themes       []Theme      `json:"themes"`
	Comparisons  []Comparison `json:"comparisons"`
	Conclusion   string       `json:"conclusion"`
	WordCount    int          `json:"wordCount"`
}

// HasTheme reports whether theme was detected.
func (f Features) HasTheme(theme Theme) bool {
	for _, t := range f.Themes {
		if t == theme {
			return true
		}
	}
	return false
}

// Extract scans text for titles, numbers, list items, themes and comparison
// markers. It never fails: empty input yields empty collections and the
// fallback title.
func Extract(text string, opts ExtractOptions) Features {
	lines := nonBlankLines(text)

	f := Features{
		Title:        extractTitle(lines, opts.FallbackTitle),
		Stats:        extractStats(text, opts.MaxStats),
		BulletPoints: []string{},
		Steps:        []string{},
		KeyPoints:    []string{},
		Themes:       detectThemes(text),
		Comparisons:  detectComparisons(text),
		Conclusion:   extractConclusion(lines),
		WordCount:    len(strings.Fields(text)),
	}

	for _, line := range lines {
		switch {
		case bulletPattern.MatchString(line):
			item := strings.TrimSpace(bulletPattern.ReplaceAllString(line, ""))
			if item != "" && len(f.BulletPoints) < opts.MaxBullets {
				f.BulletPoints = append(f.BulletPoints, item)
			}
		case stepPattern.MatchString(line):
			item := strings.TrimSpace(stepPattern.ReplaceAllString(line, ""))
			if item != "" && len(f.Steps) < opts.MaxSteps {
				f.Steps = append(f.Steps, item)
			}
		default:
			point := strings.TrimSpace(line)
			n := utf8.RuneCountInString(point)
			if !strings.HasPrefix(point, "#") && n > 10 && n < 100 && len(f.KeyPoints) < opts.MaxKeyPoints {
				f.KeyPoints = append(f.KeyPoints, point)
			}
		}
	}

	return f
}

func nonBlankLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func extractTitle(lines []string, fallback string) string {
	for _, line := range lines {
		if strings.HasPrefix(line, "#") {
			if title := headerPrefix.ReplaceAllString(line, ""); strings.TrimSpace(title) != "" {
				return title
			}
		}
	}

	for _, line := range lines {
		candidate := strings.TrimSpace(line)
		n := utf8.RuneCountInString(candidate)
		if n > 5 && n < 80 && !strings.Contains(candidate, ".") && !startsWithMarker(candidate) {
			return candidate
		}
	}

	return fallback
}

// startsWithMarker reports whether s opens with a list glyph or a digit.
func startsWithMarker(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return strings.ContainsRune("•-*+.", r) || unicode.IsDigit(r)
}

func extractStats(text string, limit int) []Stat {
	stats := []Stat{}
	for i, loc := range numberPattern.FindAllStringIndex(text, limit) {
		value := text[loc[0]:loc[1]]

		var label string
		if strings.HasSuffix(value, "%") {
			label = rateLabels[i%len(rateLabels)]
		} else {
			label = countLabels[i%len(countLabels)]
		}

		context := statContext(text, loc[0])
		if context == "" {
			context = strings.ToLower(label)
		}
		stats = append(stats, Stat{Value: value, Label: label, Context: context})
	}
	return stats
}

// statContext returns up to three words preceding offset within its sentence.
func statContext(text string, offset int) string {
	prefix := text[:offset]
	if breaks := sentenceBreaker.FindAllStringIndex(prefix, -1); len(breaks) > 0 {
		prefix = prefix[breaks[len(breaks)-1][1]:]
	}

	words := strings.Fields(prefix)
	if len(words) > 3 {
		words = words[len(words)-3:]
	}
	return strings.Join(strings.Fields(nonWordPattern.ReplaceAllString(strings.Join(words, " "), "")), " ")
}

func detectThemes(text string) []Theme {
	lower := strings.ToLower(text)
	themes := []Theme{}
	for _, cluster := range themeClusters {
		for _, kw := range cluster.keywords {
			if strings.Contains(lower, kw) {
				themes = append(themes, cluster.theme)
				break
			}
		}
	}
	return themes
}

func detectComparisons(text string) []Comparison {
	comparisons := []Comparison{}
	if strings.Contains(text, "before") && strings.Contains(text, "after") {
		comparisons = append(comparisons, Comparison{Kind: "before-after", Before: "Previous State", After: "Improved State"})
	}
	if strings.Contains(text, " vs ") || strings.Contains(text, " versus ") {
		comparisons = append(comparisons, Comparison{Kind: "versus", Before: "Option A", After: "Option B"})
	}
	return comparisons
}

func extractConclusion(lines []string) string {
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if utf8.RuneCountInString(line) > 20 && !startsWithMarker(line) && !strings.HasPrefix(line, "#") {
			return line
		}
	}
	return defaultConclusion
}
