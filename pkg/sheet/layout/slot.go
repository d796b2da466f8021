// Package layout resolves the deterministic slot grid of a presentation
// sheet: which panel goes where, in normalized [0,1] coordinates, and how a
// normalized slot projects onto a pixel canvas.
//
// A resolved Layout is computed fresh per compose request from the static
// per-template tables and is never mutated afterwards. Resolution is fully
// deterministic: the same (template, floor count, resolution tier) always
// yields bit-identical slot geometry.
package layout

import (
	"math"

	"github.com/draughtworks/sheetgate/pkg/sheet"
)

// Slot is a panel's rectangle in the normalized unit square. X/Y is the
// top-left corner; all four values lie in [0,1].
type Slot struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the right edge of the slot.
func (s Slot) Right() float64 { return s.X + s.Width }

// Bottom returns the bottom edge of the slot.
func (s Slot) Bottom() float64 { return s.Y + s.Height }

// Area returns the slot's area as a fraction of the canvas.
func (s Slot) Area() float64 { return s.Width * s.Height }

// Intersection returns the overlap area of two slots as a fraction of the
// canvas, 0 if they are disjoint.
func (s Slot) Intersection(o Slot) float64 {
	w := math.Min(s.Right(), o.Right()) - math.Max(s.X, o.X)
	h := math.Min(s.Bottom(), o.Bottom()) - math.Max(s.Y, o.Y)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// PixelRect is an integer rectangle on a pixel canvas.
type PixelRect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PixelRect projects the slot onto a canvas of the given size.
//
// Each edge is rounded to the nearest pixel independently, so adjacent
// slots stay seam-free within one pixel. The result is clamped to the
// canvas bounds; for well-formed slots and positive dimensions this
// function cannot fail.
func (s Slot) PixelRect(canvasWidth, canvasHeight int) PixelRect {
	r := PixelRect{
		X:      int(math.Round(s.X * float64(canvasWidth))),
		Y:      int(math.Round(s.Y * float64(canvasHeight))),
		Width:  int(math.Round(s.Width * float64(canvasWidth))),
		Height: int(math.Round(s.Height * float64(canvasHeight))),
	}
	if r.X+r.Width > canvasWidth {
		r.Width = canvasWidth - r.X
	}
	if r.Y+r.Height > canvasHeight {
		r.Height = canvasHeight - r.Y
	}
	return r
}

// ToPixelRect projects a normalized slot onto a canvas. It is the
// free-function form of Slot.PixelRect for callers holding loose values.
func ToPixelRect(s Slot, canvasWidth, canvasHeight int) PixelRect {
	return s.PixelRect(canvasWidth, canvasHeight)
}

// Placement pairs a panel type with its resolved slot, for callers that
// want a stable iteration order instead of map iteration.
type Placement struct {
	Panel sheet.PanelType
	Slot  Slot
}
