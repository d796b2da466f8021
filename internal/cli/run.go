package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/draughtworks/sheetgate/pkg/report"
)

// runCommand creates the run command, the main entry point of the gate.
func (c *CLI) runCommand() *cobra.Command {
	var (
		output       string
		svgOut       string
		profileName  string
		profilesFile string
		noCache      bool
		refresh      bool
		workers      int
	)

	cmd := &cobra.Command{
		Use:   "run [manifest.toml]",
		Short: "Evaluate a sheet manifest and decide export",
		Long: `Evaluate a sheet manifest and decide export.

The run command loads a TOML manifest describing one sheet batch, resolves the
layout, judges every panel against its slot, measures cross-view consistency,
and decides whether the composed sheet may be exported. The full record of the
run is written as a JSON report next to the manifest.

The command exits non-zero when export is blocked, so it can gate a pipeline
step directly.

Pairwise metrics are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGate(cmd.Context(), args[0], runGateOpts{
				output:       output,
				svgOut:       svgOut,
				profileName:  profileName,
				profilesFile: profilesFile,
				noCache:      noCache,
				refresh:      refresh,
				workers:      workers,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "report file (default: <manifest>.report.json)")
	cmd.Flags().StringVar(&svgOut, "svg", "", "write a verdict-colored layout preview SVG")
	cmd.Flags().StringVarP(&profileName, "profile", "p", "", "profile name (overrides the manifest)")
	cmd.Flags().StringVar(&profilesFile, "profiles-file", "", "TOML file with custom profiles")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute cached hashes and metrics")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent pairwise comparisons (default 4)")

	return cmd
}

type runGateOpts struct {
	output       string
	svgOut       string
	profileName  string
	profilesFile string
	noCache      bool
	refresh      bool
	workers      int
}

// runGate loads the manifest, executes the pipeline, and reports the decision.
func (c *CLI) runGate(ctx context.Context, manifestPath string, cliOpts runGateOpts) error {
	manifest, err := LoadManifest(manifestPath)
	if err != nil {
		return fmt.Errorf("load manifest %s: %w", manifestPath, err)
	}

	profileName := cliOpts.profileName
	if profileName == "" {
		profileName = manifest.Profile
	}
	profile, err := resolveProfile(profileName, cliOpts.profilesFile)
	if err != nil {
		return fmt.Errorf("resolve profile: %w", err)
	}

	runner, err := c.newRunner(cliOpts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := manifest.Options()
	opts.Profile = profile
	opts.Workers = cliOpts.workers
	opts.Refresh = cliOpts.refresh
	opts.Logger = c.Logger

	items := manifest.Items(filepath.Dir(manifestPath))

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Gating %d panels...", len(items)))
	spinner.Start()

	result, err := runner.Execute(ctx, items, opts)
	if err != nil {
		spinner.StopWithError("Gate run failed")
		return fmt.Errorf("execute gate: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printInfo("%s  %s profile %s",
		StyleHighlight.Render(string(result.Layout.Template)),
		StyleDim.Render(fmt.Sprintf("%d/%d composed,", result.Stats.ComposedCount, result.Stats.PanelCount)),
		StyleValue.Render(profile.Name))
	printNewline()
	fmt.Println(renderVerdictTable(result.Evaluation))
	printNewline()
	printPairResults(result.Pairs)

	outputPath := cliOpts.output
	if outputPath == "" {
		base := strings.TrimSuffix(manifestPath, filepath.Ext(manifestPath))
		outputPath = base + ".report.json"
	}
	if err := report.WriteFile(result.Report(opts), outputPath); err != nil {
		return fmt.Errorf("write report %s: %w", outputPath, err)
	}
	printFile(outputPath)

	if cliOpts.svgOut != "" {
		svg := report.RenderSVG(result.Layout,
			report.WithVerdicts(result.Evaluation.PanelQA),
			report.WithTitle(fmt.Sprintf("%s / %s", result.Layout.Template, profile.Name)))
		if err := os.WriteFile(cliOpts.svgOut, svg, 0644); err != nil {
			return fmt.Errorf("write %s: %w", cliOpts.svgOut, err)
		}
		printFile(cliOpts.svgOut)
	}
	printNewline()

	if !result.Decision.CanExport {
		printError("Export blocked")
		for _, reason := range result.Decision.BlockReasons {
			printDetail("%s", reason)
		}
		return fmt.Errorf("export blocked: %d reasons", len(result.Decision.BlockReasons))
	}

	printSuccess("Export approved")
	return nil
}

// printPairResults prints one line per cross-view comparison.
func printPairResults(pairs []report.PairResult) {
	for _, p := range pairs {
		label := fmt.Sprintf("%s / %s", p.A, p.B)
		if p.Error != "" {
			printWarning("%s: %s", label, p.Error)
			continue
		}
		printDetail("%s: ssim=%.2f phash=%.2f edges=%.2f", label,
			p.Metrics.SSIM, p.Metrics.PHashSimilarity, p.Metrics.EdgeOverlap)
	}
}
