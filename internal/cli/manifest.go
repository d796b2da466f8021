package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/draughtworks/sheetgate/pkg/errors"
	"github.com/draughtworks/sheetgate/pkg/pipeline"
)

// =============================================================================
// Sheet Manifest
// =============================================================================

// Manifest describes one sheet batch on disk: the layout parameters plus the
// panel image files to gate. Paths are resolved relative to the manifest's
// directory.
type Manifest struct {
	Template       string `toml:"template"`
	Floors         int    `toml:"floors"`
	HighResolution bool   `toml:"high_resolution"`
	Profile        string `toml:"profile"`

	Panels []ManifestPanel `toml:"panels"`
}

// ManifestPanel is one panel entry: the submitted key and the raster file,
// with an optional vector companion.
type ManifestPanel struct {
	Key       string `toml:"key"`
	Path      string `toml:"path"`
	Vector    string `toml:"vector"`
	Generator string `toml:"generator"`
}

// LoadManifest reads and validates a sheet manifest from a TOML file.
func LoadManifest(path string) (Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		if os.IsNotExist(err) {
			return Manifest{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest %s", path)
		}
		return Manifest{}, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse manifest %s", path)
	}

	if len(m.Panels) == 0 {
		return Manifest{}, errors.New(errors.ErrCodeInvalidManifest, "manifest %s lists no panels", path)
	}
	for i, p := range m.Panels {
		if err := errors.ValidatePanelKey(p.Key); err != nil {
			return Manifest{}, errors.Wrap(errors.ErrCodeInvalidManifest, err, "panel %d", i)
		}
		if err := errors.ValidateManifestPath(p.Path); err != nil {
			return Manifest{}, errors.Wrap(errors.ErrCodeInvalidManifest, err, "panel %s", p.Key)
		}
		if p.Vector != "" {
			if err := errors.ValidateManifestPath(p.Vector); err != nil {
				return Manifest{}, errors.Wrap(errors.ErrCodeInvalidManifest, err, "panel %s vector", p.Key)
			}
		}
	}

	return m, nil
}

// Items loads the manifest's panel files into pipeline items. Unreadable
// files do not abort the batch: the read error is recorded on the item and
// becomes that panel's verdict.
func (m Manifest) Items(baseDir string) []pipeline.Item {
	items := make([]pipeline.Item, 0, len(m.Panels))
	for _, p := range m.Panels {
		item := pipeline.Item{Key: p.Key, GeneratorID: p.Generator}

		data, err := os.ReadFile(filepath.Join(baseDir, p.Path))
		if err != nil {
			item.Err = errors.Wrap(errors.ErrCodeFileNotFound, err, "panel %s", p.Key)
			items = append(items, item)
			continue
		}
		item.Data = data

		if p.Vector != "" {
			vec, err := os.ReadFile(filepath.Join(baseDir, p.Vector))
			if err != nil {
				item.Err = errors.Wrap(errors.ErrCodeFileNotFound, err, "panel %s vector", p.Key)
			} else {
				item.Vector = vec
			}
		}

		items = append(items, item)
	}
	return items
}

// Options maps the manifest's layout parameters onto pipeline options.
// The profile is resolved separately so a --profile flag can override it.
func (m Manifest) Options() pipeline.Options {
	return pipeline.Options{
		Template:       m.Template,
		FloorCount:     m.Floors,
		HighResolution: m.HighResolution,
	}
}
