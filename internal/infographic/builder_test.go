package infographic

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infogen/internal/models"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func fixedBuilder() *Builder {
	return &Builder{Now: func() time.Time { return fixedNow }}
}

func newTemplate(id, config string) models.Template {
	t := models.Template{ID: id, Name: id}
	if config != "" {
		t.Config = json.RawMessage(config)
	}
	return t
}

func build(text string, template models.Template, brand *models.Brand) Document {
	return fixedBuilder().Build(Extract(text, InfographicOptions()), template, brand)
}

func sectionTypes(doc Document) []SectionType {
	types := make([]SectionType, len(doc.Sections))
	for i, s := range doc.Sections {
		types[i] = s.Type
	}
	return types
}

func TestBuildGrowthReportExample(t *testing.T) {
	text := "# Growth Report\n• Revenue up 45%\n• 1.2K new users\n1. Analyze\n2. Act"
	doc := build(text, newTemplate("bullet-points", ""), nil)

	require.Equal(t, []SectionType{SectionHeader, SectionBullets, SectionChart, SectionFooter}, sectionTypes(doc))

	header := doc.Sections[0].Content.(HeaderContent)
	assert.Equal(t, "Growth Report", header.Title)
	assert.Equal(t, "Growth Report", doc.Title)

	bullets := doc.Sections[1].Content.(BulletsContent)
	assert.Equal(t, []string{"Revenue up 45%", "1.2K new users"}, bullets.Items)

	chart := doc.Sections[2].Content.(ChartContent)
	assert.Equal(t, "line", chart.ChartType)
	assert.Equal(t, []ChartPoint{{"Q1", 20}, {"Q2", 35}, {"Q3", 50}, {"Q4", 75}}, chart.Data)
}

func TestBuildHeaderAndFooter(t *testing.T) {
	doc := build("just some words here", newTemplate("bullet-points", ""), nil)

	require.GreaterOrEqual(t, len(doc.Sections), 2)
	assert.Equal(t, SectionHeader, doc.Sections[0].Type)
	assert.Equal(t, "Key insights from 4 words", doc.Sections[0].Content.(HeaderContent).Subtitle)

	last := doc.Sections[len(doc.Sections)-1]
	require.Equal(t, SectionFooter, last.Type)
	footer := last.Content.(FooterContent)
	assert.Equal(t, DefaultWatermark, footer.Watermark)
	assert.Equal(t, "March 14, 2026", footer.Date)
	assert.Empty(t, footer.WatermarkLogoURL)
	assert.Equal(t, fixedNow, doc.GeneratedAt)
}

func TestBuildKnownTemplateWithoutSourceSkipsBody(t *testing.T) {
	doc := build("Plain words only", newTemplate("bullet-points", ""), nil)
	assert.Equal(t, []SectionType{SectionHeader, SectionFooter}, sectionTypes(doc))
}

func TestBuildSteps(t *testing.T) {
	text := "1. Plan the launch. Pick a date\n2. Ship"
	doc := build(text, newTemplate("infographic-steps", ""), nil)

	require.Equal(t, SectionSteps, doc.Sections[1].Type)
	steps := doc.Sections[1].Content.(StepsContent).Steps
	assert.Equal(t, []Step{
		{Number: 1, Title: "Plan the launch", Description: "Plan the launch. Pick a date"},
		{Number: 2, Title: "Step 2", Description: "Ship"},
	}, steps)
}

func TestBuildStatsLayout(t *testing.T) {
	for _, id := range []string{"statistics-dashboard", "data-visualization"} {
		few := build("Numbers: 10 and 20 and 30", newTemplate(id, ""), nil)
		require.Equal(t, SectionStats, few.Sections[1].Type, id)
		assert.Equal(t, "horizontal", few.Sections[1].Content.(StatsContent).Layout)

		many := build("Numbers: 10 and 20 and 30 and 40", newTemplate(id, ""), nil)
		assert.Equal(t, "grid", many.Sections[1].Content.(StatsContent).Layout)
	}
}

func TestBuildComparison(t *testing.T) {
	for _, id := range []string{"comparison-chart", "before-after"} {
		doc := build("Life before and after the move", newTemplate(id, ""), nil)
		require.Equal(t, SectionComparison, doc.Sections[1].Type, id)
		comps := doc.Sections[1].Content.(ComparisonContent).Comparisons
		require.Len(t, comps, 1)
		assert.Equal(t, "before-after", comps[0].Kind)
	}
}

func TestBuildFeaturesCycleIcons(t *testing.T) {
	text := "First feature of the product\nSecond feature of the product\nThird feature of the product\nFourth feature of the product\nFifth feature of the product"
	doc := build(text, newTemplate("feature-highlights", ""), nil)

	require.Equal(t, SectionFeatures, doc.Sections[1].Type)
	features := doc.Sections[1].Content.(FeaturesContent).Features
	require.Len(t, features, 4)
	assert.Equal(t, []string{"zap", "shield", "star", "target"},
		[]string{features[0].Icon, features[1].Icon, features[2].Icon, features[3].Icon})
	assert.Equal(t, "First feature of the product", features[0].Text)
}

func TestBuildFeaturesAndTipsAlwaysEmitted(t *testing.T) {
	features := build("", newTemplate("feature-highlights", ""), nil)
	require.Equal(t, SectionFeatures, features.Sections[1].Type)
	assert.Empty(t, features.Sections[1].Content.(FeaturesContent).Features)

	tips := build("", newTemplate("tips-tricks", ""), nil)
	require.Equal(t, SectionTips, tips.Sections[1].Type)
	assert.NotNil(t, tips.Sections[1].Content.(TipsContent).Tips)
}

func TestBuildUnknownTemplateFallback(t *testing.T) {
	tests := []struct {
		name string
		text string
		want SectionType
	}{
		{"bullets first", "- one item\nRevenue 45%", SectionBullets},
		{"then stats", "Revenue reached 45% this year", SectionStats},
		{"then content", "A plain sentence with no lists", SectionContent},
		{"empty text", "", SectionContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := build(tt.text, newTemplate("mystery-template", ""), nil)
			require.GreaterOrEqual(t, len(doc.Sections), 3)
			assert.Equal(t, tt.want, doc.Sections[1].Type)
		})
	}
}

func TestBuildContentFallbackUsesConclusion(t *testing.T) {
	doc := build("", newTemplate("mystery-template", ""), nil)
	content := doc.Sections[1].Content.(TextContent)
	assert.Equal(t, []string{defaultConclusion}, content.Paragraphs)
}

func TestBuildConfigStrategyOverride(t *testing.T) {
	text := "A tip that is long enough\n- a bullet"

	doc := build(text, newTemplate("seasonal-tips", `{"strategy":"tips"}`), nil)
	assert.Equal(t, SectionTips, doc.Sections[1].Type)

	unknown := build(text, newTemplate("seasonal-tips", `{"strategy":"holographic"}`), nil)
	assert.Equal(t, SectionBullets, unknown.Sections[1].Type)
}

func TestBuildChartSelection(t *testing.T) {
	comparison := build("Apples vs oranges", newTemplate("mystery-template", ""), nil)
	chart := comparison.Sections[len(comparison.Sections)-2]
	require.Equal(t, SectionChart, chart.Type)
	assert.Equal(t, "bar", chart.Content.(ChartContent).ChartType)
	assert.Equal(t, []ChartPoint{{"Option A", 65}, {"Option B", 80}, {"Option C", 45}}, chart.Content.(ChartContent).Data)

	both := build("Growth of apples vs oranges", newTemplate("mystery-template", ""), nil)
	assert.Equal(t, "line", both.Sections[len(both.Sections)-2].Content.(ChartContent).ChartType)

	none := build("Nothing special here", newTemplate("mystery-template", ""), nil)
	for _, s := range none.Sections {
		assert.NotEqual(t, SectionChart, s.Type)
	}
}

func TestBuildColorsAndFonts(t *testing.T) {
	withColors := newTemplate("bullet-points", `{"colors":["#111111","#222222"]}`)
	watermark := "Acme Inc"
	logo := "https://cdn.example.com/logo.png"
	brand := &models.Brand{
		Name:             "Acme",
		WatermarkText:    &watermark,
		WatermarkLogoURL: &logo,
		ColorPalette:     []string{"#ABCDEF"},
		HeadingFont:      "Poppins",
		BodyFont:         "Lora",
	}

	branded := build("text", withColors, brand)
	assert.Equal(t, []string{"#ABCDEF"}, branded.Colors)
	assert.Equal(t, Fonts{Heading: "Poppins", Body: "Lora"}, branded.Fonts)
	footer := branded.Sections[len(branded.Sections)-1].Content.(FooterContent)
	assert.Equal(t, "Acme Inc", footer.Watermark)
	assert.Equal(t, logo, footer.WatermarkLogoURL)

	templated := build("text", withColors, &models.Brand{Name: "Bare"})
	assert.Equal(t, []string{"#111111", "#222222"}, templated.Colors)
	assert.Equal(t, Fonts{Heading: DefaultFont, Body: DefaultFont}, templated.Fonts)
	assert.Equal(t, DefaultWatermark, templated.Sections[len(templated.Sections)-1].Content.(FooterContent).Watermark)

	plain := build("text", newTemplate("bullet-points", ""), nil)
	assert.Equal(t, DefaultColors, plain.Colors)

	plain.Colors[0] = "#000000"
	assert.Equal(t, "#3B82F6", DefaultColors[0])
}

func TestBuildIsDeterministic(t *testing.T) {
	text := "# Report\n- one\n- two\nSales grew 40% versus last year"
	template := newTemplate("comparison-chart", `{"colors":["#111111"]}`)

	first := build(text, template, nil)
	second := build(text, template, nil)
	assert.Equal(t, first, second)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestDocumentJSONShape(t *testing.T) {
	doc := build("- one", newTemplate("bullet-points", ""), nil)
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "bullet-points", decoded["templateId"])

	sections := decoded["sections"].([]any)
	bullets := sections[1].(map[string]any)
	assert.Equal(t, "bullets", bullets["type"])
	assert.Equal(t, []any{"one"}, bullets["content"].(map[string]any)["items"])
}

func TestParseStrategy(t *testing.T) {
	for _, name := range []string{"bullets", "steps", "stats", "comparison", "features", "tips", "fallback"} {
		st, ok := ParseStrategy(name)
		assert.True(t, ok, name)
		assert.Equal(t, Strategy(name), st)
	}
	_, ok := ParseStrategy("carousel")
	assert.False(t, ok)
}
