package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/draughtworks/sheetgate/pkg/errors"
)

func TestNew(t *testing.T) {
	c := New(io.Discard, LogInfo)
	if c == nil {
		t.Fatal("New() returned nil")
	}
	if c.Logger == nil {
		t.Fatal("New() should set a logger")
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.SetLogLevel(LogDebug)
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("GetLevel() = %v, want debug", c.Logger.GetLevel())
	}
}

func TestRootCommand(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if root.Use != "sheetgate" {
		t.Errorf("Use = %q, want sheetgate", root.Use)
	}

	want := []string{"layout", "run", "compare", "hash", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}

func TestResolveProfileBuiltin(t *testing.T) {
	p, err := resolveProfile("placeholder", "")
	if err != nil {
		t.Fatalf("resolveProfile() error: %v", err)
	}
	if p.Name != "placeholder" {
		t.Errorf("Name = %q, want placeholder", p.Name)
	}
}

func TestResolveProfileDefault(t *testing.T) {
	p, err := resolveProfile("", "")
	if err != nil {
		t.Fatalf("resolveProfile() error: %v", err)
	}
	if p.Name != "rendered" {
		t.Errorf("Name = %q, want rendered (default)", p.Name)
	}
}

func TestResolveProfileUnknown(t *testing.T) {
	_, err := resolveProfile("nonexistent", "")
	if err == nil {
		t.Fatal("resolveProfile() should fail for unknown names")
	}
	if !errors.HasCode(err, errors.ErrCodeInvalidProfile) {
		t.Errorf("error code = %s, want INVALID_PROFILE", errors.CodeOf(err))
	}
}

func TestResolveProfileFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.toml")
	content := `
[profiles.sketchy]
min_ssim = 0.15
min_phash_similarity = 0.45
min_edge_overlap = 0.03
cross_view_enabled = true
vector_enabled = false
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := resolveProfile("sketchy", path)
	if err != nil {
		t.Fatalf("resolveProfile() error: %v", err)
	}
	if p.Name != "sketchy" {
		t.Errorf("Name = %q, want sketchy", p.Name)
	}
	if p.MinSSIM != 0.15 {
		t.Errorf("MinSSIM = %v, want 0.15", p.MinSSIM)
	}

	// Built-in names still resolve when the file does not define them.
	p, err = resolveProfile("rendered", path)
	if err != nil {
		t.Fatalf("resolveProfile() fallback error: %v", err)
	}
	if p.Name != "rendered" {
		t.Errorf("fallback Name = %q, want rendered", p.Name)
	}
}
