// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package infographic

import (
	"fmt"
	"strings"

	"infogen/internal/models"
)

// Strategy selects how the primary body section of a document is built.
type Strategy string

const (
	StrategyBullets    Strategy = "bullets"
	StrategySteps      Strategy = "steps"
	StrategyStats      Strategy = "stats"
	StrategyComparison Strategy = "comparison"
	StrategyFeatures   Strategy = "features"
	StrategyTips       Strategy = "tips"
	StrategyFallback   Strategy = "fallback"
)

// templateStrategies maps built-in template ids to their strategy. Other
// templates may name a strategy in their config; anything else falls back.
var templateStrategies = map[string]Strategy{
	"bullet-points":        StrategyBullets,
	"infographic-steps":    StrategySteps,
	"statistics-dashboard": StrategyStats,
	"data-visualization":   StrategyStats,
	"comparison-chart":     StrategyComparison,
	"before-after":         StrategyComparison,
	"feature-highlights":   StrategyFeatures,
	"tips-tricks":          StrategyTips,
}

// sectionFunc builds a body section, reporting false when the features
// hold nothing for it.
type sectionFunc func(Features) (Section, bool)

var strategies = map[Strategy]sectionFunc{
	StrategyBullets:    bulletsSection,
	StrategySteps:      stepsSection,
	StrategyStats:      statsSection,
	StrategyComparison: comparisonSection,
	StrategyFeatures:   featuresSection,
	StrategyTips:       tipsSection,
	StrategyFallback:   fallbackSection,
}

var featureIcons = []string{"zap", "shield", "star", "target"}

const (
	maxFeatures = 4
	maxTips     = 5
)

// ParseStrategy returns the strategy named s, if any.
func ParseStrategy(s string) (Strategy, bool) {
	st := Strategy(s)
	_, ok := strategies[st]
	return st, ok
}

// strategyFor resolves the strategy for tmpl: a known config override wins,
// then the built-in table, then the fallback chain.
func strategyFor(tmpl models.Template) Strategy {
	if st, ok := ParseStrategy(tmpl.Strategy()); ok {
		return st
	}
	if st, ok := templateStrategies[tmpl.ID]; ok {
		return st
	}
	return StrategyFallback
}

func (s Strategy) section(f Features) (Section, bool) {
	fn, ok := strategies[s]
	if !ok {
		fn = fallbackSection
	}
	return fn(f)
}

func bulletsSection(f Features) (Section, bool) {
	if len(f.BulletPoints) == 0 {
		return Section{}, false
	}
	return Section{Type: SectionBullets, Content: BulletsContent{Items: f.BulletPoints}}, true
}

func stepsSection(f Features) (Section, bool) {
	if len(f.Steps) == 0 {
		return Section{}, false
	}
	steps := make([]Step, len(f.Steps))
	for i, text := range f.Steps {
		steps[i] = Step{Number: i + 1, Title: stepTitle(text, i+1), Description: text}
	}
	return Section{Type: SectionSteps, Content: StepsContent{Steps: steps}}, true
}

// stepTitle is the text before the first period, or "Step N".
func stepTitle(text string, n int) string {
	if i := strings.Index(text, "."); i > 0 {
		if title := strings.TrimSpace(text[:i]); title != "" {
			return title
		}
	}
	return fmt.Sprintf("Step %d", n)
}

func statsSection(f Features) (Section, bool) {
	if len(f.Stats) == 0 {
		return Section{}, false
	}
	layout := "grid"
	if len(f.Stats) <= 3 {
		layout = "horizontal"
	}
	return Section{Type: SectionStats, Content: StatsContent{Stats: f.Stats, Layout: layout}}, true
}

func comparisonSection(f Features) (Section, bool) {
	if len(f.Comparisons) == 0 {
		return Section{}, false
	}
	return Section{Type: SectionComparison, Content: ComparisonContent{Comparisons: f.Comparisons}}, true
}

func featuresSection(f Features) (Section, bool) {
	points := f.KeyPoints
	if len(points) > maxFeatures {
		points = points[:maxFeatures]
	}
	features := make([]Feature, len(points))
	for i, p := range points {
		features[i] = Feature{Icon: featureIcons[i%len(featureIcons)], Text: p}
	}
	return Section{Type: SectionFeatures, Content: FeaturesContent{Features: features}}, true
}

func tipsSection(f Features) (Section, bool) {
	tips := f.KeyPoints
	if len(tips) > maxTips {
		tips = tips[:maxTips]
	}
	return Section{Type: SectionTips, Content: TipsContent{Tips: append([]string{}, tips...)}}, true
}

// fallbackSection prefers bullets, then stats, then the key points as
// plain content. It always produces a section.
func fallbackSection(f Features) (Section, bool) {
	if s, ok := bulletsSection(f); ok {
		return s, true
	}
	if s, ok := statsSection(f); ok {
		return s, true
	}
	paragraphs := append([]string{}, f.KeyPoints...)
	if len(paragraphs) == 0 {
		paragraphs = []string{f.Conclusion}
	}
	return Section{Type: SectionContent, Content: TextContent{Paragraphs: paragraphs}}, true
}
