package sheet

// =============================================================================
// Strict / Lenient Tiers
// =============================================================================

// strictPanels are the export-blocking tier: a missing or failed panel of
// one of these types blocks export. Together with lenientPanels this
// partitions the 16 non-title-block canonical types exactly once; the title
// block belongs to neither tier (it is generated, never submitted).
var strictPanels = map[PanelType]bool{
	PanelHero3D:          true,
	PanelFloorPlanGround: true,
	PanelFloorPlanFirst:  true,
	PanelFloorPlanLevel2: true,
	PanelElevationNorth:  true,
	PanelElevationSouth:  true,
	PanelElevationEast:   true,
	PanelElevationWest:   true,
	PanelSectionLong:     true,
	PanelSectionCross:    true,
}

// lenientPanels are the warning-only tier.
var lenientPanels = map[PanelType]bool{
	PanelInterior3D:      true,
	PanelAxonometric:     true,
	PanelSiteDiagram:     true,
	PanelMaterialPalette: true,
	PanelClimateSummary:  true,
	PanelScheduleNotes:   true,
}

// IsStrict reports whether t belongs to the export-blocking tier.
func IsStrict(t PanelType) bool {
	return strictPanels[t]
}

// IsLenient reports whether t belongs to the warning-only tier.
func IsLenient(t PanelType) bool {
	return lenientPanels[t]
}

// technicalPanels are orthographic line drawings: floor plans, elevations,
// and sections. These are the only types the occupancy minimum applies to.
var technicalPanels = map[PanelType]bool{
	PanelFloorPlanGround: true,
	PanelFloorPlanFirst:  true,
	PanelFloorPlanLevel2: true,
	PanelElevationNorth:  true,
	PanelElevationSouth:  true,
	PanelElevationEast:   true,
	PanelElevationWest:   true,
	PanelSectionLong:     true,
	PanelSectionCross:    true,
}

// IsTechnical reports whether t is a technical drawing type.
func IsTechnical(t PanelType) bool {
	return technicalPanels[t]
}

// =============================================================================
// Fit Policy
// =============================================================================

// FitMode is how a submitted image is fitted into its layout slot.
type FitMode string

const (
	// FitFill crops the image to cover the slot completely.
	FitFill FitMode = "fill"

	// FitScale letterboxes the image inside the slot, preserving its
	// aspect ratio.
	FitScale FitMode = "scaleToFit"
)

// fillPanels render photographic or 3D content where cropping is harmless.
// Everything else is line art or tabular content that must never be cropped.
var fillPanels = map[PanelType]bool{
	PanelHero3D:          true,
	PanelInterior3D:      true,
	PanelAxonometric:     true,
	PanelSiteDiagram:     true,
	PanelMaterialPalette: true,
}

// FitModeFor returns the rendering fit mode for a panel type.
func FitModeFor(t PanelType) FitMode {
	if fillPanels[t] {
		return FitFill
	}
	return FitScale
}

// Occupancy returns the fraction of a slot's area covered by an image of
// intrinsic size imgW x imgH after scale-to-fit placement, clamped to [0,1].
//
// Fill-mode panels always occupy their slot fully (cropping covers it by
// construction); callers should use 1.0 for those and reserve Occupancy for
// scale-to-fit panels. Degenerate inputs (a zero-area slot or image) yield 0.
func Occupancy(slotW, slotH, imgW, imgH int) float64 {
	if slotW <= 0 || slotH <= 0 || imgW <= 0 || imgH <= 0 {
		return 0
	}
	scale := min(float64(slotW)/float64(imgW), float64(slotH)/float64(imgH))
	occ := (float64(imgW) * scale * float64(imgH) * scale) / (float64(slotW) * float64(slotH))
	if occ > 1 {
		return 1
	}
	if occ < 0 {
		return 0
	}
	return occ
}
