// Package pipeline provides the core gate pipeline for Sheetgate.
//
// This package implements the complete resolve → evaluate → compare → decide
// run that can be used by CLI, API, and worker components. Centralizing the
// logic keeps behavior consistent across entry points.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Resolve: Turn template and floor count into a pixel-exact layout
//  2. Evaluate: Judge every submitted panel against the layout
//  3. Compare: Compute pairwise similarity metrics for cross-view pairs
//  4. Decide: Combine verdicts and check outcomes into the export decision
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Template:   "modern12",
//	    FloorCount: 2,
//	    Profile:    qa.DefaultProfile(),
//	}
//	result, err := runner.Execute(ctx, items, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Decision.CanExport {
//	    // inspect result.Decision.BlockReasons
//	}
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/draughtworks/sheetgate/pkg/cache"
	"github.com/draughtworks/sheetgate/pkg/metrics"
	"github.com/draughtworks/sheetgate/pkg/qa"
	"github.com/draughtworks/sheetgate/pkg/report"
	"github.com/draughtworks/sheetgate/pkg/sheet"
	"github.com/draughtworks/sheetgate/pkg/sheet/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

const (
	// DefaultWorkers is the number of concurrent pairwise comparisons.
	// Comparisons are CPU-bound over small planes; a handful of workers
	// saturates the useful parallelism for the designated pair list.
	DefaultWorkers = 4

	// DefaultFloorCount is assumed when a manifest does not state one.
	DefaultFloorCount = 1
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a gate run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Template       string `json:"template,omitempty"`
	FloorCount     int    `json:"floor_count,omitempty"`
	HighResolution bool   `json:"high_resolution,omitempty"`

	// Gate options. A zero-value Profile means qa.DefaultProfile().
	Profile qa.Profile `json:"profile,omitempty"`

	// Compare options
	Workers int  `json:"workers,omitempty"`
	Refresh bool `json:"refresh,omitempty"` // bypass cached hashes and metrics

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	o.Template = string(sheet.NormalizeTemplate(o.Template))
	if o.FloorCount == 0 {
		o.FloorCount = DefaultFloorCount
	}
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	if o.Profile.Name == "" {
		o.Profile = qa.DefaultProfile()
	}
	if err := o.Profile.Validate(); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// LayoutOptions returns the layout resolution parameters.
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{
		Template:       o.Template,
		FloorCount:     o.FloorCount,
		HighResolution: o.HighResolution,
	}
}

// PairKeyOpts returns cache key options for pairwise metric caching.
func (o *Options) PairKeyOpts() cache.PairKeyOpts {
	return cache.PairKeyOpts{
		MetricSize: metrics.MetricResolution,
		HashSize:   metrics.HashResolution,
	}
}

// =============================================================================
// Items - Batch Input
// =============================================================================

// Item is one raw panel input: the submitted key plus the undecoded image
// bytes. Decoding happens inside the pipeline so a corrupt file becomes a
// FAILED verdict instead of aborting the batch.
type Item struct {
	// Key is the panel key as submitted (aliases allowed).
	Key string `json:"key"`

	// Data holds the raw image bytes, nil when the generator produced
	// nothing for this panel.
	Data []byte `json:"-"`

	// Vector optionally carries SVG content submitted alongside the raster.
	Vector []byte `json:"-"`

	// GeneratorID identifies the upstream generator.
	GeneratorID string `json:"generator_id,omitempty"`

	// Err records a load failure from the host (unreadable file). It is
	// folded into the panel's verdict.
	Err error `json:"-"`
}

// =============================================================================
// Result - Pipeline Output
// =============================================================================

// Result contains the outputs of a gate run.
type Result struct {
	// Layout is the resolved slot geometry the batch was judged against.
	Layout layout.Layout

	// Evaluation holds the per-panel verdicts.
	Evaluation qa.Evaluation

	// Pairs holds the cross-view metric outcomes.
	Pairs []report.PairResult

	// Checks holds every check outcome handed to the export gate.
	Checks []qa.Check

	// Decision is the final export decision.
	Decision qa.Decision

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks cache effectiveness for the compare stage.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PanelCount    int
	ComposedCount int
	EvaluateTime  time.Duration
	CompareTime   time.Duration
}

// CacheInfo tracks cache hits during pairwise comparison.
type CacheInfo struct {
	PairHits   int
	PairMisses int
}

// Report assembles the serializable run record from a finished result.
func (res *Result) Report(opts Options) report.Report {
	return report.New(res.Layout, opts.LayoutOptions(), opts.Profile.Name,
		res.Evaluation, res.Pairs, res.Checks, res.Decision)
}
