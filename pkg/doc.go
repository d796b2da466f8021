// Package pkg provides the core libraries for Sheetgate panel composition QA.
//
// # Overview
//
// Sheetgate gates AI-generated architectural panel batches before they are
// composed onto an ISO A1 presentation sheet. The pkg directory is organized
// into five main areas:
//
//  1. [sheet] - Sheet vocabulary (panel types, tiers, fit policy, templates)
//  2. [sheet/layout] - Deterministic slot grid resolution and pixel projection
//  3. [metrics] - Perceptual similarity kernels (SSIM, pHash, edge overlap)
//  4. [qa] - Consistency gate, deployment profiles, and the export decision
//  5. [pipeline] - Orchestration (resolve → evaluate → compare → decide)
//
// # Architecture
//
// The typical data flow through Sheetgate:
//
//	Generated Panel Batch
//	         ↓
//	    [sheet/layout] package (resolve template into slot geometry)
//	         ↓
//	    [qa] package (judge every panel against its slot)
//	         ↓
//	    [metrics] package (cross-view similarity for designated pairs)
//	         ↓
//	    [qa] export gate → [report] JSON record
//
// # Quick Start
//
// Gate a batch and inspect the decision:
//
//	import (
//	    "context"
//	    "github.com/draughtworks/sheetgate/pkg/pipeline"
//	    "github.com/draughtworks/sheetgate/pkg/qa"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(context.Background(), items, pipeline.Options{
//	    Template:   "modern12",
//	    FloorCount: 2,
//	    Profile:    qa.DefaultProfile(),
//	})
//	if err != nil {
//	    // configuration problem, not a panel failure
//	}
//	if !result.Decision.CanExport {
//	    for _, reason := range result.Decision.BlockReasons {
//	        fmt.Println(reason)
//	    }
//	}
//
// # Main Packages
//
// [sheet] - The sheet vocabulary: the seventeen canonical panel types with
// alias normalization, the strict/lenient tier partition, fit modes, and
// occupancy. Everything else builds on these tables.
//
// [sheet/layout] - Template resolution. Turns a template name and floor
// count into normalized slots and projects them onto the working or print
// canvas with deterministic rounding.
//
// [metrics] - Pure image kernels: grayscale SSIM, 64-bit DCT perceptual
// hashes, and Sobel edge-overlap. No thresholds live here; the kernels
// report scores and the [qa] profiles judge them.
//
// [qa] - The gate itself. Evaluate judges a batch against a layout,
// profiles carry per-deployment thresholds and cross-view pair lists, and
// Decide folds verdicts and check outcomes into the fail-closed export
// decision.
//
// [report] - The serialized record of one run: resolved geometry, verdicts,
// pairwise metrics, and the decision, plus a slot-outline SVG preview.
//
// ## Infrastructure
//
// [pipeline] - Complete gate pipeline (resolve → evaluate → compare →
// decide) used by the CLI and any embedding service. Ensures consistent
// behavior across entry points.
//
// [cache] - Content-addressed caching for perceptual hashes and pairwise
// metrics. File-backed for the CLI, Redis-backed for shared deployments,
// null for tests.
//
// [observability] - Hook registry for gate, metric, and cache events.
//
// [errors] - Structured errors with machine-readable codes.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/qa/...        # Specific package
//	go test -run Example        # Examples only
//
// [sheet]: https://pkg.go.dev/github.com/draughtworks/sheetgate/pkg/sheet
// [sheet/layout]: https://pkg.go.dev/github.com/draughtworks/sheetgate/pkg/sheet/layout
// [metrics]: https://pkg.go.dev/github.com/draughtworks/sheetgate/pkg/metrics
// [qa]: https://pkg.go.dev/github.com/draughtworks/sheetgate/pkg/qa
// [report]: https://pkg.go.dev/github.com/draughtworks/sheetgate/pkg/report
// [pipeline]: https://pkg.go.dev/github.com/draughtworks/sheetgate/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/draughtworks/sheetgate/pkg/cache
// [observability]: https://pkg.go.dev/github.com/draughtworks/sheetgate/pkg/observability
// [errors]: https://pkg.go.dev/github.com/draughtworks/sheetgate/pkg/errors
package pkg
