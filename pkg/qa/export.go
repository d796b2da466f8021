package qa

import (
	"fmt"

	"github.com/draughtworks/sheetgate/pkg/sheet"
)

// Check is the outcome of one optional export-gate check. The caller runs
// the check (or fails to) and hands the outcome to Decide; the gate itself
// never computes metrics.
type Check struct {
	// Name identifies the check in block reasons, e.g.
	// "cross-view elevation_north/elevation_south".
	Name string `json:"name"`

	// Enabled checks participate in the decision. Disabled checks are
	// recorded but ignored.
	Enabled bool `json:"enabled"`

	// Ran is false when the check could not be executed (missing input,
	// compute failure). An enabled check that did not run blocks export.
	Ran bool `json:"ran"`

	// Passed is the check's result, meaningful only when Ran is true.
	Passed bool `json:"passed"`

	// Detail carries a human-readable explanation for the report.
	Detail string `json:"detail,omitempty"`
}

// Decision is the export gate's output.
type Decision struct {
	CanExport    bool     `json:"can_export"`
	BlockReasons []string `json:"block_reasons,omitempty"`
}

// Decide combines the consistency gate's evaluation with optional check
// outcomes into the final export decision.
//
// Export opens only when there are no strict failures and every enabled
// check ran and passed. The gate is fail-closed: an enabled check that
// could not run blocks export exactly like a failing one. Every blocking
// condition contributes an itemized reason; the decision never collapses
// to a bare boolean without explanation.
func Decide(eval Evaluation, checks []Check) Decision {
	d := Decision{CanExport: true}

	for _, panel := range eval.StrictFailures {
		d.block(fmt.Sprintf("strict panel %s: %s", panel, failureSummary(eval.PanelQA[panel])))
	}

	// Defensive re-scan: a strict panel verdict that failed but somehow
	// missed the StrictFailures list still blocks.
	seen := make(map[sheet.PanelType]bool, len(eval.StrictFailures))
	for _, p := range eval.StrictFailures {
		seen[p] = true
	}
	for _, panel := range sortedVerdictPanels(eval.PanelQA) {
		verdict := eval.PanelQA[panel]
		if seen[panel] || !sheet.IsStrict(panel) {
			continue
		}
		if verdict.Status == StatusFailed || verdict.Status == StatusMissing {
			d.block(fmt.Sprintf("strict panel %s: %s", panel, failureSummary(verdict)))
		}
	}

	for _, check := range checks {
		if !check.Enabled {
			continue
		}
		switch {
		case !check.Ran:
			d.block(fmt.Sprintf("check %s could not run: %s", check.Name, orUnknown(check.Detail)))
		case !check.Passed:
			d.block(fmt.Sprintf("check %s failed: %s", check.Name, orUnknown(check.Detail)))
		}
	}

	return d
}

func (d *Decision) block(reason string) {
	d.CanExport = false
	d.BlockReasons = append(d.BlockReasons, reason)
}

func failureSummary(v Verdict) string {
	switch {
	case len(v.Reasons) > 0:
		return v.Reasons[0]
	case v.Status == StatusMissing:
		return ReasonMissingImage
	default:
		return string(v.Status)
	}
}

func orUnknown(detail string) string {
	if detail == "" {
		return "no detail recorded"
	}
	return detail
}

func sortedVerdictPanels(m map[sheet.PanelType]Verdict) []sheet.PanelType {
	set := make(map[sheet.PanelType]bool, len(m))
	for p := range m {
		set[p] = true
	}
	return sortedPanels(set)
}
