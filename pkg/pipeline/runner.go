package pipeline

import (
	"context"
	"encoding/json"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/draughtworks/sheetgate/pkg/cache"
	"github.com/draughtworks/sheetgate/pkg/errors"
	"github.com/draughtworks/sheetgate/pkg/metrics"
	"github.com/draughtworks/sheetgate/pkg/observability"
	"github.com/draughtworks/sheetgate/pkg/qa"
	"github.com/draughtworks/sheetgate/pkg/report"
	"github.com/draughtworks/sheetgate/pkg/sheet"
	"github.com/draughtworks/sheetgate/pkg/sheet/layout"
)

// Runner encapsulates gate execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store run results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete resolve → evaluate → compare → decide pipeline.
func (r *Runner) Execute(ctx context.Context, items []Item, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidProfile, err, "invalid options")
	}
	logger := r.logger(opts)

	result := &Result{}

	// Stage 1: Resolve
	result.Layout = layout.Resolve(opts.LayoutOptions())
	logger.Info("resolved layout",
		"template", result.Layout.Template,
		"slots", len(result.Layout.Slots),
		"canvas", result.Layout.CanvasWidth)

	// Stage 2: Evaluate
	evalStart := time.Now()
	subs := make([]qa.Submission, 0, len(items))
	for _, item := range items {
		subs = append(subs, decodeItem(item))
	}

	observability.Gate().OnEvaluateStart(ctx, opts.Template, len(subs))
	result.Evaluation = qa.Evaluate(subs, result.Layout)
	result.Stats.EvaluateTime = time.Since(evalStart)
	result.Stats.PanelCount = len(result.Evaluation.PanelQA)
	result.Stats.ComposedCount = result.Evaluation.ComposedCount
	observability.Gate().OnEvaluateComplete(ctx, opts.Template,
		result.Evaluation.ComposedCount, result.Stats.EvaluateTime, nil)

	logger.Info("evaluated batch",
		"panels", result.Stats.PanelCount,
		"composed", result.Stats.ComposedCount,
		"strict_failures", len(result.Evaluation.StrictFailures),
		"duration", result.Stats.EvaluateTime)

	// Stage 3: Compare
	compareStart := time.Now()
	pairs, pairChecks := r.comparePairs(ctx, subs, items, opts, &result.CacheInfo)
	result.Pairs = pairs
	result.Stats.CompareTime = time.Since(compareStart)

	logger.Info("compared cross views",
		"pairs", len(pairs),
		"cache_hits", result.CacheInfo.PairHits,
		"duration", result.Stats.CompareTime)

	// Stage 4: Decide
	checks := pairChecks
	checks = append(checks, r.vectorChecks(subs, result.Layout, opts)...)
	result.Checks = checks
	result.Decision = qa.Decide(result.Evaluation, checks)
	observability.Gate().OnDecision(ctx, result.Decision.CanExport, len(result.Decision.BlockReasons))

	if result.Decision.CanExport {
		logger.Info("export approved")
	} else {
		logger.Warn("export blocked", "reasons", len(result.Decision.BlockReasons))
	}

	return result, nil
}

// =============================================================================
// Compare Stage
// =============================================================================

// panelImage is one comparable panel: its decoded raster plus the content
// hash of the submitted bytes, which keys cached metric results.
type panelImage struct {
	img  image.Image
	hash string
}

// comparePairs computes pairwise metrics for the profile's designated pairs
// using a bounded worker pool. Results keep the pair-list order regardless
// of completion order.
func (r *Runner) comparePairs(ctx context.Context, subs []qa.Submission, items []Item, opts Options, info *CacheInfo) ([]report.PairResult, []qa.Check) {
	images := comparableImages(subs, items)
	pairs := opts.Profile.CrossViewPairs()

	results := make([]report.PairResult, len(pairs))
	checks := make([]qa.Check, len(pairs))

	var hits, misses atomic.Int64
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i], checks[i] = r.comparePair(ctx, pairs[i], images, opts, &hits, &misses)
			}
		}()
	}
	for i := range pairs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	info.PairHits = int(hits.Load())
	info.PairMisses = int(misses.Load())
	return results, checks
}

// comparePair computes (or fetches) the metric bundle for one pair.
func (r *Runner) comparePair(ctx context.Context, pair qa.CrossViewPair, images map[sheet.PanelType]panelImage, opts Options, hits, misses *atomic.Int64) (report.PairResult, qa.Check) {
	result := report.PairResult{A: pair.A, B: pair.B}

	a, okA := images[pair.A]
	b, okB := images[pair.B]
	if !okA || !okB {
		missing := pair.A
		if okA {
			missing = pair.B
		}
		err := errors.New(errors.ErrCodeInvalidImage, "%s has no comparable image", missing)
		result.Error = err.Error()
		return result, opts.Profile.CrossViewCheck(pair, metrics.Pairwise{}, err)
	}

	observability.Metric().OnCompareStart(ctx, string(pair.A), string(pair.B))
	start := time.Now()

	m, hit, err := r.cachedCompare(ctx, a, b, opts)
	observability.Metric().OnCompareComplete(ctx, string(pair.A), string(pair.B), time.Since(start), err)
	if err != nil {
		result.Error = err.Error()
		return result, opts.Profile.CrossViewCheck(pair, metrics.Pairwise{}, err)
	}
	if hit {
		hits.Add(1)
	} else {
		misses.Add(1)
	}

	result.Metrics = &m
	return result, opts.Profile.CrossViewCheck(pair, m, nil)
}

// cachedCompare wraps metrics.Compare with content-hash caching. Pairs
// without content hashes (images handed over pre-decoded) are computed
// directly.
func (r *Runner) cachedCompare(ctx context.Context, a, b panelImage, opts Options) (metrics.Pairwise, bool, error) {
	cacheable := a.hash != "" && b.hash != ""
	var key string
	if cacheable {
		key = r.Keyer.PairKey(a.hash, b.hash, opts.PairKeyOpts())
	}

	if cacheable && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var m metrics.Pairwise
			if err := json.Unmarshal(data, &m); err == nil {
				observability.Cache().OnCacheHit(ctx, "pair")
				return m, true, nil
			}
			// Corrupt entry, fall through to recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "pair")
	}

	m, err := metrics.Compare(a.img, b.img)
	if err != nil {
		return metrics.Pairwise{}, false, err
	}

	if cacheable {
		if data, err := json.Marshal(m); err == nil {
			_ = r.Cache.Set(ctx, key, data, cache.TTLPair)
			observability.Cache().OnCacheSet(ctx, "pair", len(data))
		}
	}
	return m, false, nil
}

// comparableImages collects the panels that can take part in cross-view
// comparison: decoded image present, no load error. Later submissions for
// the same panel win, matching the gate's overwrite rule.
func comparableImages(subs []qa.Submission, items []Item) map[sheet.PanelType]panelImage {
	images := make(map[sheet.PanelType]panelImage)
	for i, sub := range subs {
		if sub.Image == nil || sub.Err != nil {
			continue
		}
		p := panelImage{img: sub.Image}
		if i < len(items) && len(items[i].Data) > 0 {
			p.hash = cache.ContentHash(items[i].Data)
		}
		images[sub.PanelID()] = p
	}
	return images
}

// =============================================================================
// Vector Checks
// =============================================================================

// vectorChecks builds vector content checks for technical panels that
// submitted SVG alongside their raster. Panels outside the resolved layout
// are not checked.
func (r *Runner) vectorChecks(subs []qa.Submission, l layout.Layout, opts Options) []qa.Check {
	var checks []qa.Check
	for _, sub := range subs {
		panel := sub.PanelID()
		if len(sub.Vector) == 0 || !sheet.IsTechnical(panel) {
			continue
		}
		if _, placed := l.Slots[panel]; !placed {
			continue
		}
		checks = append(checks, opts.Profile.VectorCheck(panel, sub.Vector))
	}
	return checks
}

// =============================================================================
// Hash Utility
// =============================================================================

// HashImage computes the perceptual hash of raw image bytes, with caching
// keyed by content hash.
func (r *Runner) HashImage(ctx context.Context, data []byte) (metrics.Hash, error) {
	contentHash := cache.ContentHash(data)
	key := r.Keyer.HashKey(contentHash)

	if cached, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var h metrics.Hash
		if err := json.Unmarshal(cached, &h); err == nil {
			observability.Cache().OnCacheHit(ctx, "phash")
			return h, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "phash")

	sub := decodeItem(Item{Key: "image", Data: data})
	if sub.Err != nil {
		return 0, sub.Err
	}
	if sub.Image == nil {
		return 0, errors.New(errors.ErrCodeInvalidImage, "empty image data")
	}

	h, err := metrics.PHash(sub.Image)
	if err != nil {
		return 0, err
	}
	if encoded, err := json.Marshal(h); err == nil {
		_ = r.Cache.Set(ctx, key, encoded, cache.TTLHash)
		observability.Cache().OnCacheSet(ctx, "phash", len(encoded))
	}
	return h, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// logger returns the per-run logger, falling back to the runner's.
func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
