package qa

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/draughtworks/sheetgate/pkg/errors"
	"github.com/draughtworks/sheetgate/pkg/metrics"
	"github.com/draughtworks/sheetgate/pkg/sheet"
)

func TestBuiltinProfiles(t *testing.T) {
	rendered, err := BuiltinProfile("rendered")
	if err != nil {
		t.Fatalf("rendered: %v", err)
	}
	placeholder, err := BuiltinProfile("placeholder")
	if err != nil {
		t.Fatalf("placeholder: %v", err)
	}

	if rendered.MinSSIM <= placeholder.MinSSIM {
		t.Error("rendered profile must gate harder than placeholder")
	}
	if !rendered.VectorEnabled || placeholder.VectorEnabled {
		t.Error("vector check: want enabled for rendered, disabled for placeholder")
	}
	if DefaultProfile().Name != "rendered" {
		t.Errorf("default profile = %s", DefaultProfile().Name)
	}

	_, err = BuiltinProfile("lithograph")
	if !errors.HasCode(err, errors.ErrCodeInvalidProfile) {
		t.Errorf("unknown profile error = %v", err)
	}
}

func TestProfileValidate(t *testing.T) {
	valid := DefaultProfile()

	tests := []struct {
		name    string
		mutate  func(*Profile)
		wantErr bool
	}{
		{"builtin is valid", func(p *Profile) {}, false},
		{"ssim above one", func(p *Profile) { p.MinSSIM = 1.2 }, true},
		{"negative edge overlap", func(p *Profile) { p.MinEdgeOverlap = -0.1 }, true},
		{"unknown pair member", func(p *Profile) {
			p.CrossView = []CrossViewPair{{A: "west_facade", B: sheet.PanelElevationEast}}
		}, true},
		{"self pair", func(p *Profile) {
			p.CrossView = []CrossViewPair{{A: sheet.PanelSectionLong, B: sheet.PanelSectionLong}}
		}, true},
		{"custom pair", func(p *Profile) {
			p.CrossView = []CrossViewPair{{A: sheet.PanelFloorPlanGround, B: sheet.PanelFloorPlanFirst}}
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr && !errors.HasCode(err, errors.ErrCodeInvalidProfile) {
				t.Errorf("err = %v, want INVALID_PROFILE", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCrossViewPairsDefault(t *testing.T) {
	p := Profile{}
	pairs := p.CrossViewPairs()
	if len(pairs) != 3 {
		t.Fatalf("default pairs = %v", pairs)
	}
	if pairs[0].A != sheet.PanelElevationNorth || pairs[0].B != sheet.PanelElevationSouth {
		t.Errorf("first default pair = %+v", pairs[0])
	}

	p.CrossView = []CrossViewPair{{A: sheet.PanelSectionLong, B: sheet.PanelSectionCross}}
	if got := p.CrossViewPairs(); len(got) != 1 {
		t.Errorf("configured pairs = %v", got)
	}
}

func TestCrossViewCheck(t *testing.T) {
	p := DefaultProfile()
	pair := CrossViewPair{A: sheet.PanelElevationNorth, B: sheet.PanelElevationSouth}

	t.Run("passing metrics", func(t *testing.T) {
		check := p.CrossViewCheck(pair, metrics.Pairwise{
			SSIM:            0.80,
			PHashSimilarity: 0.90,
			EdgeOverlap:     0.40,
		}, nil)
		if !check.Enabled || !check.Ran || !check.Passed {
			t.Errorf("check = %+v", check)
		}
		if !strings.Contains(check.Detail, "ssim=0.80") {
			t.Errorf("detail = %q", check.Detail)
		}
	})

	t.Run("one metric under threshold", func(t *testing.T) {
		check := p.CrossViewCheck(pair, metrics.Pairwise{
			SSIM:            0.80,
			PHashSimilarity: 0.90,
			EdgeOverlap:     0.01, // under rendered's 0.08
		}, nil)
		if !check.Ran || check.Passed {
			t.Errorf("check = %+v", check)
		}
	})

	t.Run("compute failure marks not run", func(t *testing.T) {
		err := errors.New(errors.ErrCodeInvalidImage, "elevation_south missing")
		check := p.CrossViewCheck(pair, metrics.Pairwise{}, err)
		if check.Ran {
			t.Error("check ran despite compute failure")
		}
		if !strings.Contains(check.Detail, "elevation_south") {
			t.Errorf("detail = %q", check.Detail)
		}
		// A not-run enabled check must block.
		if d := Decide(Evaluation{}, []Check{check}); d.CanExport {
			t.Error("not-run cross-view check did not block export")
		}
	})

	t.Run("disabled toggle", func(t *testing.T) {
		disabled := p
		disabled.CrossViewEnabled = false
		check := disabled.CrossViewCheck(pair, metrics.Pairwise{}, nil)
		if check.Enabled {
			t.Error("check enabled despite profile toggle")
		}
	})
}

func TestLoadProfiles(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("valid file", func(t *testing.T) {
		path := write("profiles.toml", `
[profiles.rendered]
min_ssim = 0.35
min_phash_similarity = 0.60
min_edge_overlap = 0.10
cross_view_enabled = true
vector_enabled = true

[[profiles.rendered.cross_view]]
a = "elevation_north"
b = "elevation_south"

[profiles.draft]
min_ssim = 0.05
min_phash_similarity = 0.30
min_edge_overlap = 0.01
cross_view_enabled = false
vector_enabled = false
`)
		profiles, err := LoadProfiles(path)
		if err != nil {
			t.Fatalf("LoadProfiles: %v", err)
		}
		if len(profiles) != 2 {
			t.Fatalf("profiles = %v", profiles)
		}

		rendered := profiles["rendered"]
		if rendered.Name != "rendered" || rendered.MinSSIM != 0.35 {
			t.Errorf("rendered = %+v", rendered)
		}
		if len(rendered.CrossView) != 1 || rendered.CrossView[0].B != sheet.PanelElevationSouth {
			t.Errorf("cross view = %+v", rendered.CrossView)
		}
		if profiles["draft"].CrossViewEnabled {
			t.Error("draft cross view should be disabled")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadProfiles(filepath.Join(dir, "nope.toml"))
		if !errors.HasCode(err, errors.ErrCodeFileNotFound) {
			t.Errorf("err = %v, want FILE_NOT_FOUND", err)
		}
	})

	t.Run("malformed toml", func(t *testing.T) {
		path := write("broken.toml", "[profiles.rendered\nmin_ssim = ")
		_, err := LoadProfiles(path)
		if !errors.HasCode(err, errors.ErrCodeInvalidProfile) {
			t.Errorf("err = %v, want INVALID_PROFILE", err)
		}
	})

	t.Run("empty document", func(t *testing.T) {
		path := write("empty.toml", "# nothing here\n")
		_, err := LoadProfiles(path)
		if !errors.HasCode(err, errors.ErrCodeInvalidProfile) {
			t.Errorf("err = %v, want INVALID_PROFILE", err)
		}
	})

	t.Run("out of range threshold", func(t *testing.T) {
		path := write("range.toml", "[profiles.bad]\nmin_ssim = 3.0\n")
		_, err := LoadProfiles(path)
		if !errors.HasCode(err, errors.ErrCodeInvalidProfile) {
			t.Errorf("err = %v, want INVALID_PROFILE", err)
		}
	})
}

func TestValidateVector(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{"minimal svg", `<svg xmlns="http://www.w3.org/2000/svg"></svg>`, false},
		{"svg with children", `<svg><g><path d="M0 0L10 10"/></g></svg>`, false},
		{"uppercase root", `<SVG></SVG>`, false},
		{"empty", "", true},
		{"wrong root", `<html><body/></html>`, true},
		{"unclosed tag", `<svg><path d="M0 0"`, true},
		{"not xml", "PNG\x89 raster bytes", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVector([]byte(tt.data))
			if tt.wantErr && !errors.HasCode(err, errors.ErrCodeInvalidVector) {
				t.Errorf("err = %v, want INVALID_VECTOR", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestVectorCheck(t *testing.T) {
	p := DefaultProfile()

	t.Run("valid content passes", func(t *testing.T) {
		check := p.VectorCheck(sheet.PanelFloorPlanGround, []byte(`<svg/>`))
		if !check.Enabled || !check.Ran || !check.Passed {
			t.Errorf("check = %+v", check)
		}
	})

	t.Run("absent content is a passing no-op", func(t *testing.T) {
		check := p.VectorCheck(sheet.PanelFloorPlanGround, nil)
		if !check.Ran || !check.Passed {
			t.Errorf("check = %+v", check)
		}
	})

	t.Run("malformed content fails", func(t *testing.T) {
		check := p.VectorCheck(sheet.PanelFloorPlanGround, []byte(`<svg><g>`))
		if !check.Ran || check.Passed {
			t.Errorf("check = %+v", check)
		}
		if d := Decide(Evaluation{}, []Check{check}); d.CanExport {
			t.Error("failing vector check did not block export")
		}
	})
}
