package report

import (
	"bytes"
	"fmt"

	"github.com/draughtworks/sheetgate/pkg/qa"
	"github.com/draughtworks/sheetgate/pkg/sheet"
	"github.com/draughtworks/sheetgate/pkg/sheet/layout"
)

// =============================================================================
// Layout Preview SVG
// =============================================================================

// Verdict fill colors for the preview. Slots without a verdict render in the
// neutral tone.
var statusFills = map[qa.Status]string{
	qa.StatusOK:      "#d3e8d3",
	qa.StatusFailed:  "#f0c8c8",
	qa.StatusMissing: "#f0e3c0",
	qa.StatusSkipped: "#e4e4e4",
}

const neutralFill = "#f4f2ee"

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	verdicts map[sheet.PanelType]qa.Verdict
	title    string
}

// WithVerdicts colors each slot by its gate verdict.
func WithVerdicts(v map[sheet.PanelType]qa.Verdict) SVGOption {
	return func(r *svgRenderer) { r.verdicts = v }
}

// WithTitle draws a caption along the sheet's top edge.
func WithTitle(title string) SVGOption {
	return func(r *svgRenderer) { r.title = title }
}

// RenderSVG draws the resolved layout as a slot-outline preview: one labeled
// rectangle per placement at its projected pixel position. It is a debugging
// aid for template work, not the composed sheet.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	var r svgRenderer
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		l.CanvasWidth, l.CanvasHeight, l.CanvasWidth, l.CanvasHeight)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%d" height="%d" fill="#ffffff" stroke="#333333"/>`+"\n",
		l.CanvasWidth, l.CanvasHeight)

	for _, p := range l.Placements() {
		rect := p.Slot.PixelRect(l.CanvasWidth, l.CanvasHeight)
		renderSlot(&buf, p.Panel, rect, r.fillFor(p.Panel))
	}

	if r.title != "" {
		fmt.Fprintf(&buf, `  <text x="%d" y="%d" font-family="monospace" font-size="%d" fill="#333333">%s</text>`+"\n",
			l.CanvasWidth/100, l.CanvasHeight/40, l.CanvasHeight/50, escapeText(r.title))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) fillFor(panel sheet.PanelType) string {
	if verdict, ok := r.verdicts[panel]; ok {
		if fill, ok := statusFills[verdict.Status]; ok {
			return fill
		}
	}
	return neutralFill
}

func renderSlot(buf *bytes.Buffer, panel sheet.PanelType, rect layout.PixelRect, fill string) {
	fmt.Fprintf(buf, `  <rect id="slot-%s" x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="#555555"/>`+"\n",
		panel, rect.X, rect.Y, rect.Width, rect.Height, fill)

	// Label sized to the slot so thin strips stay readable.
	fontSize := rect.Height / 6
	if max := rect.Width / 12; fontSize > max {
		fontSize = max
	}
	if fontSize < 8 {
		fontSize = 8
	}
	fmt.Fprintf(buf, `  <text x="%d" y="%d" font-family="monospace" font-size="%d" fill="#333333" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		rect.X+rect.Width/2, rect.Y+rect.Height/2, fontSize, panel)
}

func escapeText(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '&':
			buf.WriteString("&amp;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
