package layout

import "github.com/draughtworks/sheetgate/pkg/sheet"

// =============================================================================
// Slot Tables - Single Source of Truth for Sheet Geometry
// =============================================================================
//
// Both tables place all 17 canonical panels in the unit square. Geometry is
// hand-tuned per template, not derived from a shared grid: the two templates
// disagree materially (the hero render spans 0.42 of the width on the modern
// grid, 0.34 on the legacy one), so template choice changes pixel output.
//
// Edits here must keep slots pairwise disjoint; TestOverlapAudit enforces
// the seam bound.

// modernSlots is the 12-column grid. Top band: hero render plus stacked
// floor plans. Middle band: the four elevations. Lower band: sections and
// the fill-mode studies. Bottom: data strip and title block.
var modernSlots = map[sheet.PanelType]Slot{
	sheet.PanelHero3D:          {X: 0.00, Y: 0.00, Width: 0.42, Height: 0.38},
	sheet.PanelFloorPlanGround: {X: 0.42, Y: 0.00, Width: 0.29, Height: 0.38},
	sheet.PanelFloorPlanFirst:  {X: 0.71, Y: 0.00, Width: 0.29, Height: 0.19},
	sheet.PanelFloorPlanLevel2: {X: 0.71, Y: 0.19, Width: 0.29, Height: 0.19},

	sheet.PanelElevationNorth: {X: 0.00, Y: 0.38, Width: 0.25, Height: 0.24},
	sheet.PanelElevationSouth: {X: 0.25, Y: 0.38, Width: 0.25, Height: 0.24},
	sheet.PanelElevationEast:  {X: 0.50, Y: 0.38, Width: 0.25, Height: 0.24},
	sheet.PanelElevationWest:  {X: 0.75, Y: 0.38, Width: 0.25, Height: 0.24},

	sheet.PanelSectionLong:  {X: 0.00, Y: 0.62, Width: 0.25, Height: 0.24},
	sheet.PanelSectionCross: {X: 0.25, Y: 0.62, Width: 0.25, Height: 0.24},
	sheet.PanelAxonometric:  {X: 0.50, Y: 0.62, Width: 0.17, Height: 0.24},
	sheet.PanelInterior3D:   {X: 0.67, Y: 0.62, Width: 0.17, Height: 0.24},
	sheet.PanelSiteDiagram:  {X: 0.84, Y: 0.62, Width: 0.16, Height: 0.24},

	sheet.PanelMaterialPalette: {X: 0.00, Y: 0.86, Width: 0.38, Height: 0.07},
	sheet.PanelClimateSummary:  {X: 0.38, Y: 0.86, Width: 0.30, Height: 0.07},
	sheet.PanelScheduleNotes:   {X: 0.68, Y: 0.86, Width: 0.32, Height: 0.07},

	sheet.PanelTitleBlock: {X: 0.00, Y: 0.93, Width: 1.00, Height: 0.07},
}

// legacySlots is the pre-grid layout: hero and studies in a left column,
// floor plans in a middle column, elevations stacked on the right, sections
// and data panels across the bottom.
var legacySlots = map[sheet.PanelType]Slot{
	sheet.PanelHero3D:      {X: 0.00, Y: 0.00, Width: 0.34, Height: 0.34},
	sheet.PanelSiteDiagram: {X: 0.00, Y: 0.34, Width: 0.17, Height: 0.20},
	sheet.PanelInterior3D:  {X: 0.17, Y: 0.34, Width: 0.17, Height: 0.20},
	sheet.PanelAxonometric: {X: 0.00, Y: 0.54, Width: 0.34, Height: 0.18},

	sheet.PanelFloorPlanGround: {X: 0.34, Y: 0.00, Width: 0.33, Height: 0.24},
	sheet.PanelFloorPlanFirst:  {X: 0.34, Y: 0.24, Width: 0.33, Height: 0.24},
	sheet.PanelFloorPlanLevel2: {X: 0.34, Y: 0.48, Width: 0.33, Height: 0.24},

	sheet.PanelElevationNorth: {X: 0.67, Y: 0.00, Width: 0.33, Height: 0.18},
	sheet.PanelElevationSouth: {X: 0.67, Y: 0.18, Width: 0.33, Height: 0.18},
	sheet.PanelElevationEast:  {X: 0.67, Y: 0.36, Width: 0.33, Height: 0.18},
	sheet.PanelElevationWest:  {X: 0.67, Y: 0.54, Width: 0.33, Height: 0.18},

	sheet.PanelSectionLong:     {X: 0.00, Y: 0.72, Width: 0.34, Height: 0.16},
	sheet.PanelSectionCross:    {X: 0.34, Y: 0.72, Width: 0.33, Height: 0.16},
	sheet.PanelMaterialPalette: {X: 0.67, Y: 0.72, Width: 0.165, Height: 0.16},
	sheet.PanelClimateSummary:  {X: 0.835, Y: 0.72, Width: 0.165, Height: 0.16},

	sheet.PanelScheduleNotes: {X: 0.00, Y: 0.88, Width: 1.00, Height: 0.06},
	sheet.PanelTitleBlock:    {X: 0.00, Y: 0.94, Width: 1.00, Height: 0.06},
}

// slotTable returns the base slot table for a canonical template.
func slotTable(t sheet.LayoutTemplate) map[sheet.PanelType]Slot {
	if t == sheet.TemplateLegacy {
		return legacySlots
	}
	return modernSlots
}
