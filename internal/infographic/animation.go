// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package infographic

import (
	"math"
	"strings"
	"time"
)

// Pacing controls the base duration of every scene.
type Pacing string

const (
	PacingFast     Pacing = "fast"
	PacingModerate Pacing = "moderate"
	PacingSlow     Pacing = "slow"
)

// DefaultSceneCount is used when a caller does not ask for a scene count.
const DefaultSceneCount = 5

// BaseDuration returns the per-scene base in seconds. Unknown pacing is
// treated as moderate.
func (p Pacing) BaseDuration() float64 {
	switch p {
	case PacingFast:
		return 2
	case PacingSlow:
		return 5
	default:
		return 3
	}
}

// AnimationParams describe the requested animation.
type AnimationParams struct {
	TargetAudience string   `json:"targetAudience"`
	DesignStyle    string   `json:"designStyle"`
	ColorPalette   []string `json:"colorPalette"`
	Typography     string   `json:"typography"`
	Pacing         Pacing   `json:"pacing"`
	SceneCount     int      `json:"sceneCount"`
}

// Scene is one timed unit of an animation script.
type Scene struct {
	SceneNumber          int     `json:"sceneNumber"`
	KeyText              string  `json:"keyText"`
	VisualDescription    string  `json:"visualDescription"`
	AnimationDescription string  `json:"animationDescription"`
	Duration             float64 `json:"duration"`
}

// AnimationScript is an ordered scene list with styling metadata.
type AnimationScript struct {
	Scenes        []Scene   `json:"scenes"`
	OverallStyle  string    `json:"overallStyle"`
	ColorPalette  []string  `json:"colorPalette"`
	Typography    string    `json:"typography"`
	TotalDuration float64   `json:"totalDuration"`
	GeneratedAt   time.Time `json:"generatedAt"`
}

// Per-item duration increments, in seconds.
const (
	statSeconds   = 0.5
	bulletSeconds = 0.5
	stepSeconds   = 0.6
)

// AnimationScript extracts features from text and lays them out as scenes:
// title, statistics, bullets or steps, a growth or process metaphor, and a
// closing line. The list is cut to params.SceneCount when it is positive,
// which can drop the closing scene.
func (b *Builder) AnimationScript(text string, params AnimationParams) AnimationScript {
	f := Extract(text, AnimationOptions())
	base := params.Pacing.BaseDuration()

	var scenes []Scene
	add := func(key, visual, motion string, duration float64) {
		scenes = append(scenes, Scene{
			SceneNumber:          len(scenes) + 1,
			KeyText:              key,
			VisualDescription:    visual,
			AnimationDescription: motion,
			Duration:             roundTenth(duration),
		})
	}

	add(f.Title,
		"Bold centered title over a quiet geometric background with accents in the primary color.",
		"Title types on character by character while background shapes fade and scale in, then the frame settles with a soft bounce.",
		base+1)

	if len(f.Stats) > 0 {
		parts := make([]string, len(f.Stats))
		for i, s := range f.Stats {
			parts[i] = s.Value + " " + s.Context
		}
		add(strings.Join(parts, " • "),
			"Each statistic sits in its own card or progress ring with an icon for the metric.",
			"Cards slide up one after another, numbers count up from zero and rings fill clockwise as they count.",
			base+statSeconds*float64(len(f.Stats)))
	}

	switch {
	case len(f.BulletPoints) > 0:
		add("Key Benefits",
			"Vertical list of points, each with a checkmark or topical icon under a clear heading.",
			"Heading slides down, then points enter from the left in sequence while their checkmarks draw in.",
			base+bulletSeconds*float64(len(f.BulletPoints)))
	case len(f.Steps) > 0:
		add("Step-by-Step Process",
			"Numbered circles on a vertical timeline joined by connector lines, with a short label per step.",
			"Circles pop in one at a time, connectors draw between them and a checkmark closes the sequence.",
			base+stepSeconds*float64(len(f.Steps)))
	}

	switch {
	case f.HasTheme(ThemeGrowth):
		add("Exponential Growth",
			"Upward trending line or bar chart, optionally framed as a rising arrow or staircase.",
			"Axes draw first, the line traces left to right and bars fill from the bottom as the arrow rises.",
			base+1)
	case f.HasTheme(ThemeProcess):
		add("Streamlined Process",
			"Flow diagram of connected stages using gears, arrows or a pipeline metaphor.",
			"Stages appear in workflow order, arrows flow between them and gears turn in sync.",
			base+1)
	}

	add(f.Conclusion,
		"Focused closing message with a clear call to action.",
		"Message scales in, supporting icons pulse gently and the brand mark lands last.",
		base)

	if n := params.SceneCount; n > 0 && n < len(scenes) {
		scenes = scenes[:n]
	}

	var total float64
	for _, s := range scenes {
		total += s.Duration
	}

	palette := params.ColorPalette
	if palette == nil {
		palette = []string{}
	}

	return AnimationScript{
		Scenes:        scenes,
		OverallStyle:  params.DesignStyle,
		ColorPalette:  palette,
		Typography:    params.Typography,
		TotalDuration: roundTenth(total),
		GeneratedAt:   b.now(),
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
