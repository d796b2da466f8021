package sheet

// LayoutTemplate selects which slot geometry table a sheet is composed
// against. Exactly two canonical templates exist.
type LayoutTemplate string

// The canonical templates.
const (
	// TemplateModern12 is the current 12-column grid.
	TemplateModern12 LayoutTemplate = "modern12"

	// TemplateLegacy is the pre-grid layout kept for re-rendering old runs.
	TemplateLegacy LayoutTemplate = "legacy"
)

// ValidTemplates is the set of canonical layout templates.
var ValidTemplates = map[LayoutTemplate]bool{
	TemplateModern12: true,
	TemplateLegacy:   true,
}

// templateAliases folds historical and alternate template spellings into the
// two canonical values.
var templateAliases = map[string]LayoutTemplate{
	"modern":       TemplateModern12,
	"modern_12col": TemplateModern12,
	"12col":        TemplateModern12,
	"grid12":       TemplateModern12,
	"twelve":       TemplateModern12,
	"default":      TemplateModern12,
	"v2":           TemplateModern12,

	"classic":  TemplateLegacy,
	"old":      TemplateLegacy,
	"original": TemplateLegacy,
	"v1":       TemplateLegacy,
}

// NormalizeTemplate maps a raw template name to a canonical LayoutTemplate.
//
// Unlike panel keys, template normalization has a default branch instead of
// a pass-through: anything unrecognized (including the empty string) resolves
// to the modern 12-column template. A sheet must always have a slot table.
func NormalizeTemplate(raw string) LayoutTemplate {
	if ValidTemplates[LayoutTemplate(raw)] {
		return LayoutTemplate(raw)
	}
	if canonical, ok := templateAliases[raw]; ok {
		return canonical
	}
	return TemplateModern12
}

// =============================================================================
// Canvas Tiers
// =============================================================================

// Fixed canvas tiers, both ISO-A1 landscape (aspect ratio ~1.41421).
// The working tier is used for interactive preview and all metric
// computation; the print tier only at final export.
const (
	// WorkingWidth and WorkingHeight are the low-resolution tier.
	WorkingWidth  = 1792
	WorkingHeight = 1269

	// PrintWidth and PrintHeight are the high-resolution tier
	// (A1 landscape at 300 dpi).
	PrintWidth  = 9933
	PrintHeight = 7016
)

// CanvasSize returns the canvas dimensions for the given resolution tier.
func CanvasSize(highResolution bool) (width, height int) {
	if highResolution {
		return PrintWidth, PrintHeight
	}
	return WorkingWidth, WorkingHeight
}
