// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package infographic

import (
	"fmt"
	"strings"
	"time"

	"infogen/internal/models"
)

const (
	// DefaultWatermark signs documents built without a brand watermark.
	DefaultWatermark = "Created with Infogen"

	// DefaultFont is used for both headings and body without a brand.
	DefaultFont = "Inter"

	footerDateLayout = "January 2, 2006"
)

// DefaultColors apply when neither the brand nor the template has colors.
var DefaultColors = []string{"#3B82F6", "#10B981", "#F59E0B"}

// SectionType tags one block of a Document.
type SectionType string

const (
	SectionHeader     SectionType = "header"
	SectionStats      SectionType = "stats"
	SectionBullets    SectionType = "bullets"
	SectionSteps      SectionType = "steps"
	SectionComparison SectionType = "comparison"
	SectionFeatures   SectionType = "features"
	SectionTips       SectionType = "tips"
	SectionChart      SectionType = "chart"
	SectionContent    SectionType = "content"
	SectionFooter     SectionType = "footer"
)

// Section is one typed block. Content holds the section's *Content struct.
type Section struct {
	Type    SectionType `json:"type"`
	Content any         `json:"content"`
}

type HeaderContent struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

type StatsContent struct {
	Stats  []Stat `json:"stats"`
	Layout string `json:"layout"`
}

type BulletsContent struct {
	Items []string `json:"items"`
}

type Step struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type StepsContent struct {
	Steps []Step `json:"steps"`
}

type ComparisonContent struct {
	Comparisons []Comparison `json:"comparisons"`
}

type Feature struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
}

type FeaturesContent struct {
	Features []Feature `json:"features"`
}

type TipsContent struct {
	Tips []string `json:"tips"`
}

type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type ChartContent struct {
	ChartType string       `json:"chartType"`
	Data      []ChartPoint `json:"data"`
}

type TextContent struct {
	Paragraphs []string `json:"paragraphs"`
}

type FooterContent struct {
	Watermark        string `json:"watermark"`
	WatermarkLogoURL string `json:"watermarkLogoUrl,omitempty"`
	Date             string `json:"date"`
}

// Fonts is the resolved heading/body font pair.
type Fonts struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// Document is a fully structured infographic ready for the renderer.
type Document struct {
	Title       string    `json:"title"`
	TemplateID  string    `json:"templateId"`
	Sections    []Section `json:"sections"`
	Colors      []string  `json:"colors"`
	Fonts       Fonts     `json:"fonts"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Builder assembles documents and animation scripts from extracted features.
type Builder struct {
	// Now supplies generation timestamps.
	Now func() time.Time
}

// NewBuilder returns a Builder using the wall clock.
func NewBuilder() *Builder {
	return &Builder{Now: time.Now}
}

func (b *Builder) now() time.Time {
	if b == nil || b.Now == nil {
		return time.Now()
	}
	return b.Now()
}

// Build maps features onto an ordered section list for tmpl, applying brand
// colors, fonts and watermark when brand is non-nil.
func (b *Builder) Build(f Features, tmpl models.Template, brand *models.Brand) Document {
	generatedAt := b.now()

	sections := []Section{{
		Type:    SectionHeader,
		Content: HeaderContent{Title: f.Title, Subtitle: subtitle(f.WordCount)},
	}}

	if body, ok := strategyFor(tmpl).section(f); ok {
		sections = append(sections, body)
	}

	if chart, ok := chartSection(f); ok {
		sections = append(sections, chart)
	}

	sections = append(sections, footerSection(brand, generatedAt))

	return Document{
		Title:       f.Title,
		TemplateID:  tmpl.ID,
		Sections:    sections,
		Colors:      resolveColors(tmpl, brand),
		Fonts:       resolveFonts(brand),
		GeneratedAt: generatedAt,
	}
}

func subtitle(words int) string {
	if words == 1 {
		return "Key insights from 1 word"
	}
	return fmt.Sprintf("Key insights from %d words", words)
}

// chartSection adds mock chart data for growth or comparison content.
// Growth wins when both themes are present.
func chartSection(f Features) (Section, bool) {
	switch {
	case f.HasTheme(ThemeGrowth):
		return Section{Type: SectionChart, Content: ChartContent{
			ChartType: "line",
			Data: []ChartPoint{
				{Label: "Q1", Value: 20},
				{Label: "Q2", Value: 35},
				{Label: "Q3", Value: 50},
				{Label: "Q4", Value: 75},
			},
		}}, true
	case f.HasTheme(ThemeComparison):
		return Section{Type: SectionChart, Content: ChartContent{
			ChartType: "bar",
			Data: []ChartPoint{
				{Label: "Option A", Value: 65},
				{Label: "Option B", Value: 80},
				{Label: "Option C", Value: 45},
			},
		}}, true
	}
	return Section{}, false
}

func footerSection(brand *models.Brand, at time.Time) Section {
	footer := FooterContent{Watermark: DefaultWatermark, Date: at.Format(footerDateLayout)}
	if brand != nil {
		if brand.WatermarkText != nil && strings.TrimSpace(*brand.WatermarkText) != "" {
			footer.Watermark = *brand.WatermarkText
		}
		if brand.WatermarkLogoURL != nil {
			footer.WatermarkLogoURL = *brand.WatermarkLogoURL
		}
	}
	return Section{Type: SectionFooter, Content: footer}
}

func resolveColors(tmpl models.Template, brand *models.Brand) []string {
	if brand != nil && len(brand.ColorPalette) > 0 {
		return brand.ColorPalette
	}
	if colors := tmpl.Colors(); len(colors) > 0 {
		return colors
	}
	return append([]string(nil), DefaultColors...)
}

func resolveFonts(brand *models.Brand) Fonts {
	fonts := Fonts{Heading: DefaultFont, Body: DefaultFont}
	if brand != nil {
		if brand.HeadingFont != "" {
			fonts.Heading = brand.HeadingFont
		}
		if brand.BodyFont != "" {
			fonts.Body = brand.BodyFont
		}
	}
	return fonts
}
