package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/draughtworks/sheetgate/pkg/report"
	"github.com/draughtworks/sheetgate/pkg/sheet"
	"github.com/draughtworks/sheetgate/pkg/sheet/layout"
)

// layoutCommand creates the layout command for resolving slot geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		opts    layout.Options
		jsonOut string
		svgOut  string
	)
	opts.Template = string(sheet.TemplateModern12)
	opts.FloorCount = 1

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Resolve a template into slot geometry",
		Long: `Resolve a template into slot geometry.

The layout command turns a template name and floor count into the pixel-exact
slot grid a sheet batch will be composed onto. The resolution is deterministic:
the same inputs always produce the same grid.

Use --svg to write a labeled slot-outline preview for template work.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayoutResolve(opts, jsonOut, svgOut)
		},
	}

	cmd.Flags().StringVarP(&opts.Template, "template", "t", opts.Template, "layout template: modern12 (default), legacy")
	cmd.Flags().IntVarP(&opts.FloorCount, "floors", "f", opts.FloorCount, "storey count (1-3), prunes upper floor plans")
	cmd.Flags().BoolVar(&opts.HighResolution, "high-res", opts.HighResolution, "project onto the print canvas instead of the working canvas")
	cmd.Flags().StringVar(&jsonOut, "json", "", "write the resolved slot grid as JSON")
	cmd.Flags().StringVar(&svgOut, "svg", "", "write a labeled slot-outline preview SVG")

	return cmd
}

// runLayoutResolve resolves the grid, prints it, and writes optional outputs.
func (c *CLI) runLayoutResolve(opts layout.Options, jsonOut, svgOut string) error {
	l := layout.Resolve(opts)

	printInfo("%s  %s canvas %s",
		StyleHighlight.Render(string(l.Template)),
		StyleDim.Render(fmt.Sprintf("%d slots,", len(l.Slots))),
		StyleValue.Render(fmt.Sprintf("%dx%d", l.CanvasWidth, l.CanvasHeight)))
	printNewline()
	fmt.Println(renderPlacementTable(l))

	if overlaps := l.OverlapAudit(); len(overlaps) > 0 {
		printNewline()
		for _, o := range overlaps {
			printWarning("slots %s and %s overlap by %.4f of the canvas", o.A, o.B, o.Fraction)
		}
	}

	if jsonOut != "" {
		data, err := json.MarshalIndent(l, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal layout: %w", err)
		}
		if err := os.WriteFile(jsonOut, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", jsonOut, err)
		}
		printFile(jsonOut)
	}

	if svgOut != "" {
		svg := report.RenderSVG(l, report.WithTitle(string(l.Template)))
		if err := os.WriteFile(svgOut, svg, 0644); err != nil {
			return fmt.Errorf("write %s: %w", svgOut, err)
		}
		printFile(svgOut)
	}

	return nil
}
