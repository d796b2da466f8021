// Package report defines the serialized record of one gate run: the resolved
// layout, the per-panel verdicts, the pairwise metrics, and the export
// decision, in a single JSON document that downstream tooling can archive or
// diff between runs.
package report

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/draughtworks/sheetgate/pkg/errors"
	"github.com/draughtworks/sheetgate/pkg/metrics"
	"github.com/draughtworks/sheetgate/pkg/qa"
	"github.com/draughtworks/sheetgate/pkg/sheet"
	"github.com/draughtworks/sheetgate/pkg/sheet/layout"
)

// =============================================================================
// Report - Gate Run Record
// =============================================================================

// Placement is one slot of the resolved layout, echoed into the report with
// both its fractional and projected pixel geometry.
type Placement struct {
	Panel     sheet.PanelType  `json:"panel"`
	Slot      layout.Slot      `json:"slot"`
	PixelRect layout.PixelRect `json:"pixel_rect"`
}

// PairResult is one cross-view comparison outcome. Error is set when the
// metrics could not be computed (a missing or failed panel).
type PairResult struct {
	A       sheet.PanelType   `json:"a"`
	B       sheet.PanelType   `json:"b"`
	Metrics *metrics.Pairwise `json:"metrics,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// Report is the full record of one gate run.
type Report struct {
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`

	// Run configuration.
	Template       sheet.LayoutTemplate `json:"template"`
	Profile        string               `json:"profile"`
	FloorCount     int                  `json:"floor_count"`
	HighResolution bool                 `json:"high_resolution"`
	CanvasWidth    int                  `json:"canvas_width"`
	CanvasHeight   int                  `json:"canvas_height"`

	// Resolved geometry, in sheet order.
	Placements []Placement `json:"placements"`

	// Gate outcomes.
	Evaluation qa.Evaluation `json:"evaluation"`
	Pairs      []PairResult  `json:"pairs,omitempty"`
	Checks     []qa.Check    `json:"checks,omitempty"`
	Decision   qa.Decision   `json:"decision"`
}

// New assembles a report from a finished gate run, stamping it with a fresh
// run ID and the current time.
func New(l layout.Layout, opts layout.Options, profile string, eval qa.Evaluation, pairs []PairResult, checks []qa.Check, decision qa.Decision) Report {
	placements := make([]Placement, 0, len(l.Slots))
	for _, p := range l.Placements() {
		placements = append(placements, Placement{
			Panel:     p.Panel,
			Slot:      p.Slot,
			PixelRect: p.Slot.PixelRect(l.CanvasWidth, l.CanvasHeight),
		})
	}

	return Report{
		RunID:          uuid.NewString(),
		CreatedAt:      time.Now().UTC(),
		Template:       l.Template,
		Profile:        profile,
		FloorCount:     opts.FloorCount,
		HighResolution: opts.HighResolution,
		CanvasWidth:    l.CanvasWidth,
		CanvasHeight:   l.CanvasHeight,
		Placements:     placements,
		Evaluation:     eval,
		Pairs:          pairs,
		Checks:         checks,
		Decision:       decision,
	}
}

// =============================================================================
// Report Serialization API
// =============================================================================

// Marshal serializes a Report to pretty-printed JSON bytes.
func Marshal(r Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Report and validates the
// invariants a well-formed record must hold.
func Unmarshal(data []byte) (Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return Report{}, errors.Wrap(errors.ErrCodeInvalidManifest, err, "unmarshal report")
	}

	if r.RunID == "" {
		return Report{}, errors.New(errors.ErrCodeInvalidManifest, "report has no run ID")
	}
	if r.CanvasWidth <= 0 || r.CanvasHeight <= 0 {
		return Report{}, errors.New(errors.ErrCodeInvalidManifest, "report canvas %dx%d is not positive", r.CanvasWidth, r.CanvasHeight)
	}
	if !r.Decision.CanExport && len(r.Decision.BlockReasons) == 0 {
		return Report{}, errors.New(errors.ErrCodeInvalidManifest, "blocked decision carries no reasons")
	}

	return r, nil
}

// WriteFile writes a Report to a JSON file.
func WriteFile(r Report, path string) error {
	data, err := Marshal(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Report from a JSON file.
func ReadFile(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Report{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "report file %s", path)
		}
		return Report{}, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	return Unmarshal(data)
}
