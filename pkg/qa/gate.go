package qa

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/draughtworks/sheetgate/pkg/sheet"
	"github.com/draughtworks/sheetgate/pkg/sheet/layout"
)

// Evaluate runs the consistency gate over a batch of submissions against a
// resolved layout.
//
// Per submission, in canonical type space:
//
//  1. No slot in the layout → SKIPPED.
//  2. No image (or a recorded decode failure) → MISSING/FAILED; strict-tier
//     panels join StrictFailures.
//  3. Otherwise the slot is projected to pixels and the fit policy applied:
//     scale-to-fit slots at or under the thin-strip minimum fail with
//     THIN_STRIP; strict technical panels under the occupancy minimum fail
//     with LOW_OCCUPANCY; everything else is OK with fit mode, occupancy,
//     projected slot size, and intrinsic size recorded.
//
// Later submissions for the same panel type overwrite earlier ones, keeping
// one verdict per panel.
func Evaluate(submissions []Submission, l layout.Layout) Evaluation {
	eval := Evaluation{
		PanelQA: make(map[sheet.PanelType]Verdict, len(submissions)),
	}
	strict := make(map[sheet.PanelType]bool)

	for _, sub := range submissions {
		panel := sub.PanelID()
		verdict := judge(sub, panel, l)

		if prev, ok := eval.PanelQA[panel]; ok && prev.Status == StatusOK {
			eval.ComposedCount--
		}
		eval.PanelQA[panel] = verdict

		if verdict.Status == StatusOK {
			eval.ComposedCount++
		}
		if (verdict.Status == StatusMissing || verdict.Status == StatusFailed) && sheet.IsStrict(panel) {
			strict[panel] = true
		} else {
			delete(strict, panel)
		}
	}

	eval.StrictFailures = sortedPanels(strict)
	return eval
}

// judge produces the verdict for a single submission.
func judge(sub Submission, panel sheet.PanelType, l layout.Layout) Verdict {
	slot, ok := l.Slots[panel]
	if !ok {
		return Verdict{Status: StatusSkipped}
	}

	if sub.Err != nil {
		return Verdict{
			Status:  StatusFailed,
			Reasons: []string{fmt.Sprintf("%s: %v", ReasonDecodeError, sub.Err)},
		}
	}

	imgW, imgH := sub.intrinsicSize()
	if sub.Image == nil && (imgW == 0 || imgH == 0) {
		return Verdict{
			Status:  StatusMissing,
			Reasons: []string{ReasonMissingImage},
		}
	}

	rect := slot.PixelRect(l.CanvasWidth, l.CanvasHeight)
	mode := sheet.FitModeFor(panel)

	verdict := Verdict{
		Status:          StatusOK,
		FitMode:         mode,
		SlotRect:        rect,
		IntrinsicWidth:  imgW,
		IntrinsicHeight: imgH,
		Occupancy:       1.0, // fill mode covers the slot by construction
	}

	if mode == sheet.FitScale {
		if rect.Width <= MinSlotPx || rect.Height <= MinSlotPx {
			verdict.Status = StatusFailed
			verdict.Occupancy = 0
			verdict.Reasons = []string{fmt.Sprintf("%s: slot %dx%d", ReasonThinStrip, rect.Width, rect.Height)}
			return verdict
		}

		verdict.Occupancy = sheet.Occupancy(rect.Width, rect.Height, imgW, imgH)
		if verdict.Occupancy < MinOccupancy && sheet.IsStrict(panel) && sheet.IsTechnical(panel) {
			verdict.Status = StatusFailed
			verdict.Reasons = []string{fmt.Sprintf("%s: %.1f%% of slot", ReasonLowOccupancy, verdict.Occupancy*100)}
			return verdict
		}
	}

	return verdict
}

// sortedPanels returns the set's members in sheet order, with any
// non-canonical types after them alphabetically.
func sortedPanels(set map[sheet.PanelType]bool) []sheet.PanelType {
	if len(set) == 0 {
		return nil
	}
	order := make(map[sheet.PanelType]int, len(sheet.CanonicalPanels))
	for i, p := range sheet.CanonicalPanels {
		order[p] = i
	}

	panels := make([]sheet.PanelType, 0, len(set))
	for p := range set {
		panels = append(panels, p)
	}
	slices.SortFunc(panels, func(a, b sheet.PanelType) int {
		ia, aok := order[a]
		ib, bok := order[b]
		switch {
		case aok && bok:
			return cmp.Compare(ia, ib)
		case aok:
			return -1
		case bok:
			return 1
		default:
			return cmp.Compare(a, b)
		}
	})
	return panels
}
