package sheet

import (
	"math"
	"testing"
)

func TestStrictLenientPartition(t *testing.T) {
	strict, lenient := 0, 0
	for _, p := range CanonicalPanels {
		if p == PanelTitleBlock {
			if IsStrict(p) || IsLenient(p) {
				t.Errorf("title block must belong to neither tier")
			}
			continue
		}

		s, l := IsStrict(p), IsLenient(p)
		if s == l {
			t.Errorf("panel %q: strict=%v lenient=%v, want exactly one tier", p, s, l)
		}
		if s {
			strict++
		}
		if l {
			lenient++
		}
	}

	if strict+lenient != 16 {
		t.Errorf("tiers cover %d panels, want 16", strict+lenient)
	}
}

func TestTechnicalSubset(t *testing.T) {
	// Every technical drawing type is strict; the converse does not hold
	// (the hero render is strict but photographic).
	for _, p := range CanonicalPanels {
		if IsTechnical(p) && !IsStrict(p) {
			t.Errorf("technical panel %q must be strict", p)
		}
	}
	if !IsTechnical(PanelFloorPlanGround) || !IsTechnical(PanelSectionCross) {
		t.Error("floor plans and sections are technical")
	}
	if IsTechnical(PanelHero3D) {
		t.Error("hero render is not a technical drawing")
	}
}

func TestFitModeFor(t *testing.T) {
	tests := []struct {
		panel PanelType
		want  FitMode
	}{
		{PanelHero3D, FitFill},
		{PanelInterior3D, FitFill},
		{PanelAxonometric, FitFill},
		{PanelSiteDiagram, FitFill},
		{PanelMaterialPalette, FitFill},
		{PanelFloorPlanGround, FitScale},
		{PanelElevationNorth, FitScale},
		{PanelSectionLong, FitScale},
		{PanelClimateSummary, FitScale},
		{PanelScheduleNotes, FitScale},
		{PanelTitleBlock, FitScale},
	}

	for _, tt := range tests {
		t.Run(string(tt.panel), func(t *testing.T) {
			if got := FitModeFor(tt.panel); got != tt.want {
				t.Errorf("FitModeFor(%q) = %q, want %q", tt.panel, got, tt.want)
			}
		})
	}
}

func TestOccupancy(t *testing.T) {
	tests := []struct {
		name                       string
		slotW, slotH, imgW, imgH   int
		want                       float64
	}{
		{"exact fit", 400, 300, 400, 300, 1.0},
		{"same aspect scaled", 400, 300, 800, 600, 1.0},
		{"half height", 400, 300, 400, 150, 0.5},
		{"half width", 400, 300, 200, 300, 0.5},
		{"degenerate slot", 0, 300, 400, 300, 0},
		{"degenerate image", 400, 300, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Occupancy(tt.slotW, tt.slotH, tt.imgW, tt.imgH)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Occupancy(%d,%d,%d,%d) = %f, want %f",
					tt.slotW, tt.slotH, tt.imgW, tt.imgH, got, tt.want)
			}
		})
	}
}

func TestOccupancyReferenceCase(t *testing.T) {
	// A 538x508 pixel slot receiving a 1500x1200 submission.
	got := Occupancy(538, 508, 1500, 1200)

	scale := math.Min(538.0/1500.0, 508.0/1200.0)
	want := (1500 * scale * 1200 * scale) / (538.0 * 508.0)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Occupancy = %.12f, want %.12f", got, want)
	}
	if math.Abs(got-0.8472) > 5e-4 {
		t.Errorf("Occupancy = %.4f, want ~0.8472", got)
	}
}

func TestOccupancyClamped(t *testing.T) {
	for slotW := 50; slotW <= 800; slotW += 150 {
		for imgW := 10; imgW <= 3000; imgW += 490 {
			occ := Occupancy(slotW, 300, imgW, 777)
			if occ < 0 || occ > 1 {
				t.Fatalf("Occupancy(%d,300,%d,777) = %f out of [0,1]", slotW, imgW, occ)
			}
		}
	}
}
