package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Gate hooks
	g := NoopGateHooks{}
	g.OnEvaluateStart(ctx, "modern12", 17)
	g.OnEvaluateComplete(ctx, "modern12", 17, time.Second, nil)
	g.OnDecision(ctx, true, 0)

	// Metric hooks
	m := NoopMetricHooks{}
	m.OnCompareStart(ctx, "elevation_north", "elevation_south")
	m.OnCompareComplete(ctx, "elevation_north", "elevation_south", time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "phash")
	c.OnCacheMiss(ctx, "pair")
	c.OnCacheSet(ctx, "pair", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Gate().(NoopGateHooks); !ok {
		t.Error("Gate() should return NoopGateHooks by default")
	}
	if _, ok := Metric().(NoopMetricHooks); !ok {
		t.Error("Metric() should return NoopMetricHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	// Set custom hooks
	customGate := &testGateHooks{}
	SetGateHooks(customGate)
	if Gate() != customGate {
		t.Error("SetGateHooks should set custom hooks")
	}

	customMetric := &testMetricHooks{}
	SetMetricHooks(customMetric)
	if Metric() != customMetric {
		t.Error("SetMetricHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Gate().(NoopGateHooks); !ok {
		t.Error("Reset() should restore NoopGateHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testGateHooks{}
	SetGateHooks(custom)

	// Setting nil should be ignored
	SetGateHooks(nil)

	if Gate() != custom {
		t.Error("SetGateHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testGateHooks struct{ NoopGateHooks }
type testMetricHooks struct{ NoopMetricHooks }
type testCacheHooks struct{ NoopCacheHooks }
