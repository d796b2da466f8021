// Package cli implements the sheetgate command-line interface.
//
// This package provides commands for resolving sheet layouts, running the
// gate over a manifest of panel images, comparing image pairs, and managing
// the local result cache. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - layout: Resolve a template into slot geometry
//   - run: Evaluate a sheet manifest and decide export
//   - compare: Compute pairwise similarity metrics for two images
//   - hash: Compute perceptual hashes of images
//   - cache: Manage the local result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/draughtworks/sheetgate/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/draughtworks/sheetgate/pkg/buildinfo"
	"github.com/draughtworks/sheetgate/pkg/cache"
	"github.com/draughtworks/sheetgate/pkg/pipeline"
	"github.com/draughtworks/sheetgate/pkg/qa"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "sheetgate"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "sheetgate",
		Short:        "Sheetgate composes panel batches into A1 sheets and gates their export",
		Long:         `Sheetgate resolves deterministic sheet layouts for architectural panel batches, judges every panel against its slot, measures cross-view consistency, and decides whether the composed sheet may be exported.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.runCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.hashCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/sheetgate/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Profile Resolution
// =============================================================================

// resolveProfile loads the named profile, from a profiles file if one is
// given, otherwise from the built-ins.
func resolveProfile(name, profilesFile string) (qa.Profile, error) {
	if name == "" {
		name = qa.DefaultProfile().Name
	}
	if profilesFile != "" {
		profiles, err := qa.LoadProfiles(profilesFile)
		if err != nil {
			return qa.Profile{}, err
		}
		if p, ok := profiles[name]; ok {
			return p, nil
		}
		// Fall back to built-ins for names the file does not define.
	}
	return qa.BuiltinProfile(name)
}
