package layout

import (
	"cmp"
	"slices"

	"github.com/draughtworks/sheetgate/pkg/sheet"
)

// SeamTolerance is the largest pairwise slot overlap, as a fraction of
// total canvas area, that the overlap audit accepts. The shipped tables are
// fully disjoint; the tolerance exists so the audit flags real defects
// instead of sub-pixel seam noise after table edits.
const SeamTolerance = 0.015

// Options selects a layout variant.
type Options struct {
	// Template is normalized via sheet.NormalizeTemplate, so aliases and
	// the empty string are acceptable.
	Template string `json:"template,omitempty"`

	// FloorCount is the number of storeys (1..3). Values below 1 are
	// treated as 1, above 3 as 3.
	FloorCount int `json:"floor_count,omitempty"`

	// HighResolution selects the print canvas tier instead of the
	// working tier.
	HighResolution bool `json:"high_resolution,omitempty"`
}

// Layout is a resolved slot grid: one normalized rectangle per applicable
// panel type on a fixed canvas. Treat it as immutable once returned.
type Layout struct {
	Template     sheet.LayoutTemplate     `json:"template"`
	CanvasWidth  int                      `json:"canvas_width"`
	CanvasHeight int                      `json:"canvas_height"`
	Slots        map[sheet.PanelType]Slot `json:"slots"`
}

// Resolve computes the slot grid for the given options.
//
// The base table is selected by the normalized template; floor-count
// pruning then removes floor_plan_first below 2 storeys and
// floor_plan_level2 below 3. The ground floor plan is always retained.
// Under the modern template this yields 17/16/15 slots for 3/2/1 storeys.
func Resolve(opts Options) Layout {
	template := sheet.NormalizeTemplate(opts.Template)
	floors := clampFloors(opts.FloorCount)
	width, height := sheet.CanvasSize(opts.HighResolution)

	base := slotTable(template)
	slots := make(map[sheet.PanelType]Slot, len(base))
	for panel, slot := range base {
		if panel == sheet.PanelFloorPlanFirst && floors < 2 {
			continue
		}
		if panel == sheet.PanelFloorPlanLevel2 && floors < 3 {
			continue
		}
		slots[panel] = slot
	}

	return Layout{
		Template:     template,
		CanvasWidth:  width,
		CanvasHeight: height,
		Slots:        slots,
	}
}

func clampFloors(n int) int {
	if n < 1 {
		return 1
	}
	if n > 3 {
		return 3
	}
	return n
}

// Placements returns the layout's slots in sheet order (hero first, title
// block last), for deterministic rendering and reporting.
func (l Layout) Placements() []Placement {
	order := make(map[sheet.PanelType]int, len(sheet.CanonicalPanels))
	for i, p := range sheet.CanonicalPanels {
		order[p] = i
	}

	placements := make([]Placement, 0, len(l.Slots))
	for panel, slot := range l.Slots {
		placements = append(placements, Placement{Panel: panel, Slot: slot})
	}
	slices.SortFunc(placements, func(a, b Placement) int {
		return cmp.Compare(order[a.Panel], order[b.Panel])
	})
	return placements
}

// PixelRectFor projects the slot for the given panel onto the layout's
// canvas. The second return is false if the panel has no slot.
func (l Layout) PixelRectFor(panel sheet.PanelType) (PixelRect, bool) {
	slot, ok := l.Slots[panel]
	if !ok {
		return PixelRect{}, false
	}
	return slot.PixelRect(l.CanvasWidth, l.CanvasHeight), true
}

// Overlap records one pair of slots whose intersection exceeds the seam
// tolerance.
type Overlap struct {
	A, B     sheet.PanelType
	Fraction float64 // intersection area as a fraction of the canvas
}

// OverlapAudit returns every slot pair overlapping by more than
// SeamTolerance of the canvas area. A non-empty result is a layout defect
// in the slot tables, not a property of any particular request.
func (l Layout) OverlapAudit() []Overlap {
	placements := l.Placements()

	var defects []Overlap
	for i := 0; i < len(placements); i++ {
		for j := i + 1; j < len(placements); j++ {
			frac := placements[i].Slot.Intersection(placements[j].Slot)
			if frac > SeamTolerance {
				defects = append(defects, Overlap{
					A:        placements[i].Panel,
					B:        placements[j].Panel,
					Fraction: frac,
				})
			}
		}
	}
	return defects
}
