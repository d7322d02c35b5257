package handlers

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"infogen/internal/infographic"
	"infogen/internal/models"
)

// Validation limits for brand, project and generation inputs.
const (
	maxNameLen       = 100
	maxWatermarkLen  = 100
	maxURLLen        = 2048
	maxFontLen       = 100
	maxPaletteColors = 12
	maxTitleLen      = 300
	maxContentLen    = 100_000
	maxTemplateIDLen = 100
	maxSceneCount    = 20
	minCustomSide    = 100
	maxCustomSide    = 4000
)

var hexColor = regexp.MustCompile(`^#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// validateBrand checks a full brand and returns the first error found.
func validateBrand(b *models.Brand) string {
	if msg := validateBrandName(b.Name); msg != "" {
		return msg
	}
	if b.WatermarkText != nil && utf8.RuneCountInString(*b.WatermarkText) > maxWatermarkLen {
		return "Watermark text is too long (max 100 characters)."
	}
	if b.WatermarkLogoURL != nil && utf8.RuneCountInString(*b.WatermarkLogoURL) > maxURLLen {
		return "Watermark logo URL is too long (max 2048 characters)."
	}
	if msg := validatePalette(b.ColorPalette); msg != "" {
		return msg
	}
	if utf8.RuneCountInString(b.HeadingFont) > maxFontLen || utf8.RuneCountInString(b.BodyFont) > maxFontLen {
		return "Font name is too long (max 100 characters)."
	}
	return ""
}

// validateBrandPatch checks only the fields a patch supplies.
func validateBrandPatch(p *models.BrandPatch) string {
	if p.Name != nil {
		if msg := validateBrandName(*p.Name); msg != "" {
			return msg
		}
	}
	if p.WatermarkText != nil && utf8.RuneCountInString(*p.WatermarkText) > maxWatermarkLen {
		return "Watermark text is too long (max 100 characters)."
	}
	if p.WatermarkLogoURL != nil && utf8.RuneCountInString(*p.WatermarkLogoURL) > maxURLLen {
		return "Watermark logo URL is too long (max 2048 characters)."
	}
	if p.ColorPalette != nil {
		if msg := validatePalette(*p.ColorPalette); msg != "" {
			return msg
		}
	}
	if p.HeadingFont != nil && strings.TrimSpace(*p.HeadingFont) == "" {
		return "Heading font cannot be empty."
	}
	if p.BodyFont != nil && strings.TrimSpace(*p.BodyFont) == "" {
		return "Body font cannot be empty."
	}
	return ""
}

func validateBrandName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Brand name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Brand name is too long (max 100 characters)."
	}
	return ""
}

func validatePalette(colors []string) string {
	if len(colors) > maxPaletteColors {
		return fmt.Sprintf("Color palette has too many colors (max %d).", maxPaletteColors)
	}
	for _, c := range colors {
		if !hexColor.MatchString(c) {
			return fmt.Sprintf("Invalid color %q (expected #RGB or #RRGGBB).", c)
		}
	}
	return ""
}

// validateProject checks project inputs on create.
func validateProject(title, content, templateID string) string {
	if msg := validateTitle(title); msg != "" {
		return msg
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return "Content is too long (max 100,000 characters)."
	}
	return validateTemplateID(templateID)
}

// validateProjectPatch checks only the fields a patch supplies.
func validateProjectPatch(p *models.ProjectPatch) string {
	if p.Title != nil {
		if msg := validateTitle(*p.Title); msg != "" {
			return msg
		}
	}
	if p.Content != nil && utf8.RuneCountInString(*p.Content) > maxContentLen {
		return "Content is too long (max 100,000 characters)."
	}
	if p.TemplateID != nil {
		if msg := validateTemplateID(*p.TemplateID); msg != "" {
			return msg
		}
	}
	if len(p.DesignData) > 0 && (p.DesignData[0] != '{') {
		return "Design data must be a JSON object."
	}
	return ""
}

func validateTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	return ""
}

func validateTemplateID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return "Template id is required."
	}
	if len(id) > maxTemplateIDLen {
		return "Template id is too long (max 100 characters)."
	}
	return ""
}

// validateText checks the free text fed to the generators.
func validateText(content string) string {
	if strings.TrimSpace(content) == "" {
		return "Content is required."
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return "Content is too long (max 100,000 characters)."
	}
	return ""
}

var (
	exportFormats   = []string{"png", "jpg", "pdf", "svg"}
	exportSizes     = []string{"square", "vertical", "horizontal", "story", "custom"}
	exportQualities = []string{"low", "medium", "high"}
)

// validateExport checks an export request.
func validateExport(req *exportRequest) string {
	if msg := validateText(req.Content); msg != "" {
		return msg
	}
	if msg := validateTemplateID(req.TemplateID); msg != "" {
		return msg
	}
	if !oneOf(req.Format, exportFormats) {
		return "Format must be one of png, jpg, pdf, svg."
	}
	if !oneOf(req.Size, exportSizes) {
		return "Size must be one of square, vertical, horizontal, story, custom."
	}
	if !oneOf(req.Quality, exportQualities) {
		return "Quality must be one of low, medium, high."
	}
	if req.Size == "custom" {
		if req.CustomWidth == nil || req.CustomHeight == nil {
			return "Custom size requires customWidth and customHeight."
		}
		if !inRange(*req.CustomWidth) || !inRange(*req.CustomHeight) {
			return fmt.Sprintf("Custom dimensions must be between %d and %d pixels.", minCustomSide, maxCustomSide)
		}
	}
	return ""
}

// validateAnimation checks an animation request.
func validateAnimation(content string, params *infographic.AnimationParams) string {
	if msg := validateText(content); msg != "" {
		return msg
	}
	if params.SceneCount < 0 || params.SceneCount > maxSceneCount {
		return fmt.Sprintf("Scene count must be between 0 and %d.", maxSceneCount)
	}
	switch params.Pacing {
	case "", infographic.PacingFast, infographic.PacingModerate, infographic.PacingSlow:
	default:
		return "Pacing must be one of fast, moderate, slow."
	}
	return validatePalette(params.ColorPalette)
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

func inRange(px int) bool {
	return px >= minCustomSide && px <= maxCustomSide
}
