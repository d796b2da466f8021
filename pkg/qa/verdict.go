// Package qa implements the two release gates that judge a composed sheet:
// the per-panel consistency gate and the final export gate.
//
// Both gates are pure classification functions. Nothing here performs I/O
// or holds state between evaluations: the same submissions, layout, and
// checks always produce the same verdicts and the same decision. Failure
// conditions are captured as data (verdict statuses and reasons), never as
// exceptions, so a single bad panel cannot abort evaluation of the batch.
//
// The export decision is fail-closed: a missing strict-tier panel, an
// unresolved strict failure, or an enabled check that could not run all
// resolve to "blocked".
package qa

import (
	"image"

	"github.com/draughtworks/sheetgate/pkg/sheet"
	"github.com/draughtworks/sheetgate/pkg/sheet/layout"
)

// Gate thresholds. Fixed constants, not deployment-profile knobs: they
// describe when a composition is geometrically unusable, which does not
// vary by content type.
const (
	// MinSlotPx is the thin-strip minimum: a scale-to-fit slot whose
	// projected width or height is at or below this many pixels cannot
	// legibly hold a drawing.
	MinSlotPx = 50

	// MinOccupancy is the smallest acceptable occupied-area fraction for
	// a strict technical panel.
	MinOccupancy = 0.40
)

// Status classifies one panel's verdict.
type Status string

const (
	// StatusOK means the panel composed cleanly.
	StatusOK Status = "OK"

	// StatusFailed means the panel composed but violated a gate rule.
	StatusFailed Status = "FAILED"

	// StatusMissing means no image was submitted for the panel.
	StatusMissing Status = "MISSING"

	// StatusSkipped means the panel has no slot in the resolved layout.
	StatusSkipped Status = "SKIPPED"
)

// Verdict failure reasons. These are stable machine-readable tokens; any
// free-form detail is appended after a colon.
const (
	ReasonThinStrip    = "THIN_STRIP"
	ReasonLowOccupancy = "LOW_OCCUPANCY"
	ReasonMissingImage = "MISSING_IMAGE"
	ReasonDecodeError  = "DECODE_ERROR"
)

// Submission is one externally produced panel image offered for
// composition. The gate only reads it; ownership stays with the caller.
type Submission struct {
	// RawKey is the key as submitted; it is normalized before gating.
	RawKey string

	// Type is the canonical panel type. Zero value means "derive from
	// RawKey via sheet.NormalizeKey".
	Type sheet.PanelType

	// Image is the decoded panel raster, nil when the generator returned
	// nothing.
	Image image.Image

	// IntrinsicWidth and IntrinsicHeight are the submitted raster's pixel
	// size. Zero values are derived from Image when it is present.
	IntrinsicWidth  int
	IntrinsicHeight int

	// GeneratorID identifies which upstream generator produced the image.
	GeneratorID string

	// Vector optionally carries vector (SVG) content submitted alongside
	// the raster for technical panels.
	Vector []byte

	// Err records a decode failure from the host's image loading. The
	// gate folds it into a FAILED verdict instead of propagating it.
	Err error
}

// PanelID returns the canonical panel type for the submission.
func (s Submission) PanelID() sheet.PanelType {
	if s.Type != "" {
		return s.Type
	}
	return sheet.NormalizeKey(s.RawKey)
}

// intrinsicSize resolves the submitted raster size, falling back to the
// decoded image bounds.
func (s Submission) intrinsicSize() (int, int) {
	w, h := s.IntrinsicWidth, s.IntrinsicHeight
	if (w == 0 || h == 0) && s.Image != nil {
		b := s.Image.Bounds()
		w, h = b.Dx(), b.Dy()
	}
	return w, h
}

// Verdict is the consistency gate's judgement of one panel.
type Verdict struct {
	Status    Status        `json:"status"`
	FitMode   sheet.FitMode `json:"fit_mode,omitempty"`
	Occupancy float64       `json:"occupancy,omitempty"`

	// SlotRect is the panel's projected slot on the layout canvas.
	SlotRect layout.PixelRect `json:"slot_rect,omitempty"`

	// IntrinsicWidth and IntrinsicHeight echo the submitted raster size.
	IntrinsicWidth  int `json:"intrinsic_width,omitempty"`
	IntrinsicHeight int `json:"intrinsic_height,omitempty"`

	Reasons []string `json:"reasons,omitempty"`
}

// Evaluation is the consistency gate's aggregate output.
type Evaluation struct {
	// PanelQA maps each submitted panel to its verdict.
	PanelQA map[sheet.PanelType]Verdict `json:"panel_qa"`

	// StrictFailures lists strict-tier panels that are missing or failed,
	// in sheet order. Any entry blocks export.
	StrictFailures []sheet.PanelType `json:"strict_failures,omitempty"`

	// ComposedCount is the number of OK verdicts.
	ComposedCount int `json:"composed_count"`
}
