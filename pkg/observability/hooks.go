// Package observability provides hooks for metrics, tracing, and logging.
//
// The gate library stays free of hard dependencies on observability
// backends. Consumers register hook implementations at startup and receive
// events about gate runs, metric computations, and cache operations; the
// defaults are no-ops.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetGateHooks(&myGateHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Gate().OnEvaluateStart(ctx, template, panelCount)
//	// ... evaluate ...
//	observability.Gate().OnEvaluateComplete(ctx, template, composed, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Gate Hooks
// =============================================================================

// GateHooks receives events from gate runs.
type GateHooks interface {
	// Evaluate events
	OnEvaluateStart(ctx context.Context, template string, panelCount int)
	OnEvaluateComplete(ctx context.Context, template string, composed int, duration time.Duration, err error)

	// Export decision events
	OnDecision(ctx context.Context, canExport bool, blockCount int)
}

// =============================================================================
// Metric Hooks
// =============================================================================

// MetricHooks receives events from pairwise metric computations.
type MetricHooks interface {
	// OnCompareStart records the start of one panel-pair comparison.
	OnCompareStart(ctx context.Context, panelA, panelB string)

	// OnCompareComplete records the comparison outcome.
	OnCompareComplete(ctx context.Context, panelA, panelB string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopGateHooks is a no-op implementation of GateHooks.
type NoopGateHooks struct{}

func (NoopGateHooks) OnEvaluateStart(context.Context, string, int)                          {}
func (NoopGateHooks) OnEvaluateComplete(context.Context, string, int, time.Duration, error) {}
func (NoopGateHooks) OnDecision(context.Context, bool, int)                                 {}

// NoopMetricHooks is a no-op implementation of MetricHooks.
type NoopMetricHooks struct{}

func (NoopMetricHooks) OnCompareStart(context.Context, string, string)                          {}
func (NoopMetricHooks) OnCompareComplete(context.Context, string, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	gateHooks   GateHooks   = NoopGateHooks{}
	metricHooks MetricHooks = NoopMetricHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetGateHooks registers custom gate hooks.
// This should be called once at application startup before any gate runs.
func SetGateHooks(h GateHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		gateHooks = h
	}
}

// SetMetricHooks registers custom metric hooks.
// This should be called once at application startup before any comparisons.
func SetMetricHooks(h MetricHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		metricHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Gate returns the registered gate hooks.
func Gate() GateHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return gateHooks
}

// Metric returns the registered metric hooks.
func Metric() MetricHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return metricHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	gateHooks = NoopGateHooks{}
	metricHooks = NoopMetricHooks{}
	cacheHooks = NoopCacheHooks{}
}
