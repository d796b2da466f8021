package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/draughtworks/sheetgate/pkg/qa"
	"github.com/draughtworks/sheetgate/pkg/sheet"
	"github.com/draughtworks/sheetgate/pkg/sheet/layout"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleStatusOK      = lipgloss.NewStyle().Foreground(colorGreen)
	styleStatusFailed  = lipgloss.NewStyle().Foreground(colorRed)
	styleStatusMissing = lipgloss.NewStyle().Foreground(colorYellow)
	styleStatusSkipped = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}

// =============================================================================
// Verdict Table
// =============================================================================

// statusStyle maps a verdict status to its display style.
func statusStyle(s qa.Status) lipgloss.Style {
	switch s {
	case qa.StatusOK:
		return styleStatusOK
	case qa.StatusFailed:
		return styleStatusFailed
	case qa.StatusMissing:
		return styleStatusMissing
	default:
		return styleStatusSkipped
	}
}

// renderVerdictTable renders the per-panel verdicts as a bordered table in
// sheet order.
func renderVerdictTable(eval qa.Evaluation) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	ordered := make([]sheet.PanelType, 0, len(eval.PanelQA))
	for _, p := range sheet.CanonicalPanels {
		if _, ok := eval.PanelQA[p]; ok {
			ordered = append(ordered, p)
		}
	}
	for p := range eval.PanelQA {
		if !sheet.IsCanonical(p) {
			ordered = append(ordered, p)
		}
	}

	var rows [][]string
	for _, p := range ordered {
		v := eval.PanelQA[p]
		occupancy := "-"
		if v.FitMode == sheet.FitScale && v.Status != qa.StatusSkipped {
			occupancy = fmt.Sprintf("%.0f%%", v.Occupancy*100)
		}
		reason := ""
		if len(v.Reasons) > 0 {
			reason = v.Reasons[0]
		}
		rows = append(rows, []string{
			string(p),
			string(v.Status),
			string(v.FitMode),
			occupancy,
			reason,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Panel", "Status", "Fit", "Occupancy", "Reason").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row >= len(ordered) {
				return lipgloss.NewStyle()
			}
			if col == 1 {
				return statusStyle(eval.PanelQA[ordered[row]].Status)
			}
			return StyleValue
		})

	return t.Render()
}

// renderPlacementTable renders the resolved slot geometry as a table.
func renderPlacementTable(l layout.Layout) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	var rows [][]string
	for _, p := range l.Placements() {
		rect := p.Slot.PixelRect(l.CanvasWidth, l.CanvasHeight)
		rows = append(rows, []string{
			string(p.Panel),
			strconv.Itoa(rect.X),
			strconv.Itoa(rect.Y),
			strconv.Itoa(rect.Width),
			strconv.Itoa(rect.Height),
			string(sheet.FitModeFor(p.Panel)),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Panel", "X", "Y", "W", "H", "Fit").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return StyleValue
		})

	return t.Render()
}
