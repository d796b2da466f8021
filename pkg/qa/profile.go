package qa

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/draughtworks/sheetgate/pkg/errors"
	"github.com/draughtworks/sheetgate/pkg/metrics"
	"github.com/draughtworks/sheetgate/pkg/sheet"
)

// CrossViewPair names two panels whose renderings must agree.
type CrossViewPair struct {
	A sheet.PanelType `toml:"a" json:"a"`
	B sheet.PanelType `toml:"b" json:"b"`
}

// Profile is a deployment profile: the metric acceptance thresholds and
// check toggles for one class of content. The gate thresholds in this
// package (thin strip, occupancy) are fixed; only the similarity
// thresholds vary per deployment, e.g. stricter bars for fully rendered
// content than for placeholder output.
type Profile struct {
	Name string `toml:"-" json:"name"`

	// Minimum acceptable pairwise scores for cross-view checks.
	MinSSIM            float64 `toml:"min_ssim" json:"min_ssim"`
	MinPHashSimilarity float64 `toml:"min_phash_similarity" json:"min_phash_similarity"`
	MinEdgeOverlap     float64 `toml:"min_edge_overlap" json:"min_edge_overlap"`

	// Check toggles, both default-enabled.
	CrossViewEnabled bool `toml:"cross_view_enabled" json:"cross_view_enabled"`
	VectorEnabled    bool `toml:"vector_enabled" json:"vector_enabled"`

	// CrossView lists the panel pairs to compare. Empty means
	// DefaultCrossViewPairs.
	CrossView []CrossViewPair `toml:"cross_view" json:"cross_view,omitempty"`
}

// DefaultCrossViewPairs are the designated comparisons: opposite
// elevations and the two sections.
var DefaultCrossViewPairs = []CrossViewPair{
	{A: sheet.PanelElevationNorth, B: sheet.PanelElevationSouth},
	{A: sheet.PanelElevationEast, B: sheet.PanelElevationWest},
	{A: sheet.PanelSectionLong, B: sheet.PanelSectionCross},
}

// Built-in profiles. "rendered" gates finished generator output;
// "placeholder" tolerates the loose geometry of draft placeholders.
var builtinProfiles = map[string]Profile{
	"rendered": {
		Name:               "rendered",
		MinSSIM:            0.30,
		MinPHashSimilarity: 0.55,
		MinEdgeOverlap:     0.08,
		CrossViewEnabled:   true,
		VectorEnabled:      true,
	},
	"placeholder": {
		Name:               "placeholder",
		MinSSIM:            0.10,
		MinPHashSimilarity: 0.40,
		MinEdgeOverlap:     0.02,
		CrossViewEnabled:   true,
		VectorEnabled:      false,
	},
}

// DefaultProfile returns the built-in "rendered" profile.
func DefaultProfile() Profile {
	return builtinProfiles["rendered"]
}

// BuiltinProfile returns a built-in profile by name.
func BuiltinProfile(name string) (Profile, error) {
	p, ok := builtinProfiles[name]
	if !ok {
		return Profile{}, errors.New(errors.ErrCodeInvalidProfile, "unknown profile %q", name)
	}
	return p, nil
}

// profileFile is the TOML document shape: named profiles under [profiles.*].
type profileFile struct {
	Profiles map[string]Profile `toml:"profiles"`
}

// LoadProfiles reads deployment profiles from a TOML file.
//
//	[profiles.rendered]
//	min_ssim = 0.35
//	min_phash_similarity = 0.60
//	min_edge_overlap = 0.10
//	cross_view_enabled = true
//	vector_enabled = true
//
//	[[profiles.rendered.cross_view]]
//	a = "elevation_north"
//	b = "elevation_south"
func LoadProfiles(path string) (map[string]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "profile file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidProfile, err, "reading %s", path)
	}

	var file profileFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidProfile, err, "parsing %s", path)
	}
	if len(file.Profiles) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidProfile, "%s defines no profiles", path)
	}

	for name, p := range file.Profiles {
		p.Name = name
		if err := p.Validate(); err != nil {
			return nil, err
		}
		file.Profiles[name] = p
	}
	return file.Profiles, nil
}

// Validate checks threshold ranges and cross-view pair sanity.
func (p Profile) Validate() error {
	for _, t := range []struct {
		name  string
		value float64
	}{
		{"min_ssim", p.MinSSIM},
		{"min_phash_similarity", p.MinPHashSimilarity},
		{"min_edge_overlap", p.MinEdgeOverlap},
	} {
		if t.value < 0 || t.value > 1 {
			return errors.New(errors.ErrCodeInvalidProfile,
				"profile %s: %s = %v out of [0,1]", p.Name, t.name, t.value)
		}
	}
	for _, pair := range p.CrossView {
		if !sheet.IsCanonical(pair.A) || !sheet.IsCanonical(pair.B) {
			return errors.New(errors.ErrCodeInvalidProfile,
				"profile %s: cross-view pair %s/%s references unknown panel", p.Name, pair.A, pair.B)
		}
		if pair.A == pair.B {
			return errors.New(errors.ErrCodeInvalidProfile,
				"profile %s: cross-view pair compares %s with itself", p.Name, pair.A)
		}
	}
	return nil
}

// CrossViewPairs returns the profile's configured pairs, or the defaults.
func (p Profile) CrossViewPairs() []CrossViewPair {
	if len(p.CrossView) > 0 {
		return p.CrossView
	}
	return DefaultCrossViewPairs
}

// CrossViewCheck builds the check outcome for one panel pair.
//
// Pass err when the pairwise metrics could not be computed (missing panel,
// decode failure): the resulting check is marked not-run, which blocks
// export while the cross-view toggle is enabled.
func (p Profile) CrossViewCheck(pair CrossViewPair, m metrics.Pairwise, err error) Check {
	check := Check{
		Name:    "cross-view " + string(pair.A) + "/" + string(pair.B),
		Enabled: p.CrossViewEnabled,
	}
	if err != nil {
		check.Detail = err.Error()
		return check
	}

	check.Ran = true
	check.Passed = m.SSIM >= p.MinSSIM &&
		m.PHashSimilarity >= p.MinPHashSimilarity &&
		m.EdgeOverlap >= p.MinEdgeOverlap
	check.Detail = formatPairwise(m)
	return check
}

func formatPairwise(m metrics.Pairwise) string {
	return fmt.Sprintf("ssim=%.2f phash=%.2f edges=%.2f",
		m.SSIM, m.PHashSimilarity, m.EdgeOverlap)
}
