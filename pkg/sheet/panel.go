// Package sheet defines the canonical vocabulary of an architectural
// presentation sheet: panel types, layout templates, canvas tiers, and the
// per-panel policies (strict/lenient tier, fill mode) that the QA gates
// consume.
//
// All lookup tables in this package are process-wide immutable constant
// data. They are initialized once at load time and never mutated, so no
// synchronization is needed.
//
// # Key Normalization
//
// Panel generators and historical sheet manifests refer to panels by a
// variety of short names and aliases. NormalizeKey folds every recognized
// alias into one canonical PanelType. Normalization is deliberately
// permissive: an unrecognized key passes through unchanged rather than
// failing, so that new panel kinds can flow through the system before this
// table learns about them. Downstream, the QA gate marks such panels
// SKIPPED because no layout slot exists for them.
package sheet

// PanelType is the canonical identifier for one panel on the sheet.
type PanelType string

// The canonical panel set. Exactly 17 types exist; every alias resolves to
// one of these.
const (
	PanelHero3D          PanelType = "hero_3d"
	PanelInterior3D      PanelType = "interior_3d"
	PanelAxonometric     PanelType = "axonometric"
	PanelSiteDiagram     PanelType = "site_diagram"
	PanelMaterialPalette PanelType = "material_palette"
	PanelClimateSummary  PanelType = "climate_summary"
	PanelFloorPlanGround PanelType = "floor_plan_ground"
	PanelFloorPlanFirst  PanelType = "floor_plan_first"
	PanelFloorPlanLevel2 PanelType = "floor_plan_level2"
	PanelElevationNorth  PanelType = "elevation_north"
	PanelElevationSouth  PanelType = "elevation_south"
	PanelElevationEast   PanelType = "elevation_east"
	PanelElevationWest   PanelType = "elevation_west"
	PanelSectionLong     PanelType = "section_long"
	PanelSectionCross    PanelType = "section_cross"
	PanelScheduleNotes   PanelType = "schedule_notes"
	PanelTitleBlock      PanelType = "title_block"
)

// CanonicalPanels lists every canonical panel type in sheet order
// (hero first, title block last).
var CanonicalPanels = []PanelType{
	PanelHero3D,
	PanelInterior3D,
	PanelAxonometric,
	PanelSiteDiagram,
	PanelMaterialPalette,
	PanelClimateSummary,
	PanelFloorPlanGround,
	PanelFloorPlanFirst,
	PanelFloorPlanLevel2,
	PanelElevationNorth,
	PanelElevationSouth,
	PanelElevationEast,
	PanelElevationWest,
	PanelSectionLong,
	PanelSectionCross,
	PanelScheduleNotes,
	PanelTitleBlock,
}

// ValidPanels is the set of canonical panel types.
var ValidPanels = func() map[PanelType]bool {
	m := make(map[PanelType]bool, len(CanonicalPanels))
	for _, p := range CanonicalPanels {
		m[p] = true
	}
	return m
}()

// panelAliases maps every recognized alias or short name to its canonical
// panel type. Canonical values are intentionally absent: NormalizeKey
// returns them unchanged, which also makes it idempotent.
var panelAliases = map[string]PanelType{
	// Hero 3D view
	"hero":           PanelHero3D,
	"hero_view":      PanelHero3D,
	"hero_render":    PanelHero3D,
	"main_render":    PanelHero3D,
	"perspective":    PanelHero3D,
	"exterior_3d":    PanelHero3D,
	"3d_view":        PanelHero3D,
	"render":         PanelHero3D,

	// Interior 3D view
	"interior":        PanelInterior3D,
	"interior_view":   PanelInterior3D,
	"interior_render": PanelInterior3D,

	// Axonometric
	"axo":        PanelAxonometric,
	"axon":       PanelAxonometric,
	"isometric":  PanelAxonometric,
	"axonometry": PanelAxonometric,

	// Site diagram
	"site":      PanelSiteDiagram,
	"site_plan": PanelSiteDiagram,
	"location":  PanelSiteDiagram,
	"context":   PanelSiteDiagram,

	// Material palette
	"materials":       PanelMaterialPalette,
	"palette":         PanelMaterialPalette,
	"material_board":  PanelMaterialPalette,
	"material_swatch": PanelMaterialPalette,

	// Climate summary
	"climate":        PanelClimateSummary,
	"climate_data":   PanelClimateSummary,
	"environmental":  PanelClimateSummary,
	"sustainability": PanelClimateSummary,

	// Floor plans
	"plan":              PanelFloorPlanGround,
	"ground_floor":      PanelFloorPlanGround,
	"ground_plan":       PanelFloorPlanGround,
	"floor_plan":        PanelFloorPlanGround,
	"floor_plan_0":      PanelFloorPlanGround,
	"plan_ground":       PanelFloorPlanGround,
	"first_floor":       PanelFloorPlanFirst,
	"floor_plan_1":      PanelFloorPlanFirst,
	"plan_first":        PanelFloorPlanFirst,
	"upper_plan":        PanelFloorPlanFirst,
	"second_floor":      PanelFloorPlanLevel2,
	"floor_plan_2":      PanelFloorPlanLevel2,
	"floor_plan_second": PanelFloorPlanLevel2,
	"plan_level2":       PanelFloorPlanLevel2,

	// Elevations
	"north":           PanelElevationNorth,
	"north_elevation": PanelElevationNorth,
	"elev_north":      PanelElevationNorth,
	"south":           PanelElevationSouth,
	"south_elevation": PanelElevationSouth,
	"elev_south":      PanelElevationSouth,
	"east":            PanelElevationEast,
	"east_elevation":  PanelElevationEast,
	"elev_east":       PanelElevationEast,
	"west":            PanelElevationWest,
	"west_elevation":  PanelElevationWest,
	"elev_west":       PanelElevationWest,

	// Sections
	"section":            PanelSectionLong,
	"section_a":          PanelSectionLong,
	"section_aa":         PanelSectionLong,
	"longitudinal":       PanelSectionLong,
	"long_section":       PanelSectionLong,
	"section_b":          PanelSectionCross,
	"section_bb":         PanelSectionCross,
	"cross_section":      PanelSectionCross,
	"transverse_section": PanelSectionCross,

	// Schedule / notes
	"schedule":      PanelScheduleNotes,
	"notes":         PanelScheduleNotes,
	"room_schedule": PanelScheduleNotes,
	"annotations":   PanelScheduleNotes,

	// Title block
	"title":      PanelTitleBlock,
	"titleblock": PanelTitleBlock,
	"cartouche":  PanelTitleBlock,
}

// NormalizeKey maps a raw panel key to its canonical PanelType.
//
// The function is total: every input produces an output. Canonical values
// map to themselves, recognized aliases fold into their canonical type, and
// unrecognized keys pass through unchanged (see the package comment on
// permissive normalization).
func NormalizeKey(raw string) PanelType {
	if canonical, ok := panelAliases[raw]; ok {
		return canonical
	}
	return PanelType(raw)
}

// IsCanonical reports whether t is one of the 17 canonical panel types.
func IsCanonical(t PanelType) bool {
	return ValidPanels[t]
}
