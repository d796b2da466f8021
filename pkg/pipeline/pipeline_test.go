package pipeline

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/draughtworks/sheetgate/pkg/cache"
	"github.com/draughtworks/sheetgate/pkg/errors"
	"github.com/draughtworks/sheetgate/pkg/qa"
	"github.com/draughtworks/sheetgate/pkg/sheet"
	"github.com/draughtworks/sheetgate/pkg/sheet/layout"
)

// stepPNG encodes a half-dark, half-light image. The vertical boundary gives
// the edge detector something to find, so self-comparisons pass every
// metric threshold.
func stepPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(40)
			if x >= w/2 {
				v = 220
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// fullBatch builds one slot-sized item per panel in the layout.
func fullBatch(t *testing.T, l layout.Layout) []Item {
	t.Helper()
	var items []Item
	for _, p := range l.Placements() {
		rect := p.Slot.PixelRect(l.CanvasWidth, l.CanvasHeight)
		items = append(items, Item{
			Key:         string(p.Panel),
			Data:        stepPNG(t, rect.Width, rect.Height),
			GeneratorID: "test",
		})
	}
	return items
}

func testOptions() Options {
	return Options{Template: "modern12", FloorCount: 3}
}

func TestExecuteFullBatchExports(t *testing.T) {
	l := layout.Resolve(layout.Options{Template: "modern12", FloorCount: 3})
	runner := NewRunner(nil, nil, nil)

	result, err := runner.Execute(context.Background(), fullBatch(t, l), testOptions())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.ComposedCount != 17 {
		t.Errorf("composed = %d, want 17", result.Stats.ComposedCount)
	}
	if len(result.Pairs) != 3 {
		t.Fatalf("pairs = %d, want 3", len(result.Pairs))
	}
	for _, pair := range result.Pairs {
		if pair.Error != "" {
			t.Errorf("pair %s/%s: %s", pair.A, pair.B, pair.Error)
		}
		// Opposite views carry identical fixtures here, so every metric
		// sits at its maximum.
		if pair.Metrics == nil || pair.Metrics.SSIM < 0.99 || pair.Metrics.EdgeOverlap < 0.99 {
			t.Errorf("pair %s/%s metrics = %+v", pair.A, pair.B, pair.Metrics)
		}
	}
	if !result.Decision.CanExport {
		t.Errorf("export blocked: %v", result.Decision.BlockReasons)
	}
}

func TestExecuteMissingStrictPanelBlocks(t *testing.T) {
	l := layout.Resolve(layout.Options{Template: "modern12", FloorCount: 3})

	var items []Item
	for _, item := range fullBatch(t, l) {
		if item.Key == string(sheet.PanelHero3D) {
			item.Data = nil
		}
		items = append(items, item)
	}

	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), items, testOptions())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Decision.CanExport {
		t.Fatal("export approved despite missing hero")
	}
	found := false
	for _, reason := range result.Decision.BlockReasons {
		if strings.Contains(reason, "hero_3d") {
			found = true
		}
	}
	if !found {
		t.Errorf("block reasons %v do not name hero_3d", result.Decision.BlockReasons)
	}
}

func TestExecuteMissingPairMemberFailsClosed(t *testing.T) {
	l := layout.Resolve(layout.Options{Template: "modern12", FloorCount: 3})

	var items []Item
	for _, item := range fullBatch(t, l) {
		if item.Key == string(sheet.PanelElevationSouth) {
			item.Data = nil
		}
		items = append(items, item)
	}

	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), items, testOptions())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	// The north/south comparison cannot run; its check must block export
	// in addition to the strict-panel failure itself.
	var pairBlocked bool
	for _, reason := range result.Decision.BlockReasons {
		if strings.Contains(reason, "could not run") && strings.Contains(reason, "elevation_south") {
			pairBlocked = true
		}
	}
	if !pairBlocked {
		t.Errorf("no fail-closed pair reason in %v", result.Decision.BlockReasons)
	}

	for _, pair := range result.Pairs {
		if pair.A == sheet.PanelElevationNorth && pair.Error == "" {
			t.Error("north/south pair should record an error")
		}
	}
}

func TestExecuteCorruptImageFails(t *testing.T) {
	items := []Item{{Key: "north_elevation", Data: []byte("not a png")}}

	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), items, testOptions())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	verdict := result.Evaluation.PanelQA[sheet.PanelElevationNorth]
	if verdict.Status != qa.StatusFailed {
		t.Errorf("status = %s, want FAILED", verdict.Status)
	}
	if result.Decision.CanExport {
		t.Error("export approved despite corrupt strict panel")
	}
}

func TestExecutePairCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	l := layout.Resolve(layout.Options{Template: "modern12", FloorCount: 3})
	items := fullBatch(t, l)
	ctx := context.Background()

	first, err := runner.Execute(ctx, items, testOptions())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.CacheInfo.PairHits != 0 || first.CacheInfo.PairMisses != 3 {
		t.Errorf("first run cache info = %+v", first.CacheInfo)
	}

	second, err := runner.Execute(ctx, items, testOptions())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.CacheInfo.PairHits != 3 {
		t.Errorf("second run cache info = %+v", second.CacheInfo)
	}

	// Cached and computed runs must agree.
	for i := range first.Pairs {
		if *first.Pairs[i].Metrics != *second.Pairs[i].Metrics {
			t.Errorf("pair %d: cached metrics diverge", i)
		}
	}

	// Refresh bypasses the cache read.
	opts := testOptions()
	opts.Refresh = true
	third, err := runner.Execute(ctx, items, opts)
	if err != nil {
		t.Fatalf("refresh run: %v", err)
	}
	if third.CacheInfo.PairHits != 0 {
		t.Errorf("refresh run cache info = %+v", third.CacheInfo)
	}
}

func TestExecuteVectorChecks(t *testing.T) {
	l := layout.Resolve(layout.Options{Template: "modern12", FloorCount: 3})
	rect, _ := l.PixelRectFor(sheet.PanelFloorPlanGround)

	run := func(t *testing.T, vector []byte) *Result {
		t.Helper()
		items := []Item{{
			Key:    "floor_plan",
			Data:   stepPNG(t, rect.Width, rect.Height),
			Vector: vector,
		}}
		runner := NewRunner(nil, nil, nil)
		result, err := runner.Execute(context.Background(), items, testOptions())
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		return result
	}

	t.Run("valid vector", func(t *testing.T) {
		result := run(t, []byte(`<svg xmlns="http://www.w3.org/2000/svg"><path d="M0 0L10 10"/></svg>`))
		var seen bool
		for _, check := range result.Checks {
			if strings.HasPrefix(check.Name, "vector ") {
				seen = true
				if !check.Passed {
					t.Errorf("vector check failed: %s", check.Detail)
				}
			}
		}
		if !seen {
			t.Error("no vector check recorded")
		}
	})

	t.Run("malformed vector blocks", func(t *testing.T) {
		result := run(t, []byte(`<svg><g>`))
		var blocked bool
		for _, reason := range result.Decision.BlockReasons {
			if strings.Contains(reason, "vector floor_plan_ground") {
				blocked = true
			}
		}
		if !blocked {
			t.Errorf("malformed vector not blocking: %v", result.Decision.BlockReasons)
		}
	})
}

func TestHashImage(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	ctx := context.Background()
	data := stepPNG(t, 400, 300)

	h1, err := runner.HashImage(ctx, data)
	if err != nil {
		t.Fatalf("HashImage: %v", err)
	}
	h2, err := runner.HashImage(ctx, data) // cached path
	if err != nil {
		t.Fatalf("HashImage (cached): %v", err)
	}
	if h1 != h2 {
		t.Errorf("hash changed between runs: %s vs %s", h1, h2)
	}

	if _, err := runner.HashImage(ctx, []byte("not an image")); !errors.HasCode(err, errors.ErrCodeInvalidImage) {
		t.Errorf("err = %v, want INVALID_IMAGE_DATA", err)
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var opts Options
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatalf("ValidateAndSetDefaults: %v", err)
		}
		if opts.Template != string(sheet.TemplateModern12) {
			t.Errorf("template = %s", opts.Template)
		}
		if opts.Workers != DefaultWorkers || opts.FloorCount != DefaultFloorCount {
			t.Errorf("workers/floors = %d/%d", opts.Workers, opts.FloorCount)
		}
		if opts.Profile.Name != "rendered" {
			t.Errorf("profile = %s", opts.Profile.Name)
		}
		if opts.Logger == nil {
			t.Error("logger not defaulted")
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		opts := Options{Template: "classic", Workers: 2}
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatal(err)
		}
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatal(err)
		}
		if opts.Template != string(sheet.TemplateLegacy) || opts.Workers != 2 {
			t.Errorf("opts mutated on re-validation: %+v", opts)
		}
	})

	t.Run("invalid profile", func(t *testing.T) {
		opts := Options{Profile: qa.Profile{Name: "bad", MinSSIM: 5}}
		if err := opts.ValidateAndSetDefaults(); err == nil {
			t.Error("expected error for out-of-range threshold")
		}
	})
}

func TestDecodeItem(t *testing.T) {
	data := stepPNG(t, 120, 80)

	sub := decodeItem(Item{Key: "hero", Data: data, GeneratorID: "g1"})
	if sub.Err != nil {
		t.Fatalf("decode: %v", sub.Err)
	}
	if sub.PanelID() != sheet.PanelHero3D {
		t.Errorf("panel = %s", sub.PanelID())
	}
	if sub.IntrinsicWidth != 120 || sub.IntrinsicHeight != 80 {
		t.Errorf("intrinsic = %dx%d", sub.IntrinsicWidth, sub.IntrinsicHeight)
	}

	if sub := decodeItem(Item{Key: "hero"}); sub.Err != nil || sub.Image != nil {
		t.Errorf("empty item should decode to a missing submission: %+v", sub)
	}

	if sub := decodeItem(Item{Key: "hero", Data: []byte("junk")}); !errors.HasCode(sub.Err, errors.ErrCodeInvalidImage) {
		t.Errorf("corrupt data err = %v", sub.Err)
	}
}
