package errors

import (
	"strings"
	"unicode"
)

// MaxImageBytes is the largest encoded image the pipeline will attempt to
// decode. Pathological inputs past this size are rejected before any pixel
// allocation happens.
const MaxImageBytes = 32 << 20 // 32 MiB

// ValidateCanvas validates a canvas dimension pair.
// Non-positive dimensions are a caller-level contract violation: the layout
// algebra has no meaningful output for them, so this is one of the few
// conditions that raises instead of being folded into a verdict.
func ValidateCanvas(width, height int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidCanvas, "canvas dimensions must be positive, got %dx%d", width, height)
	}
	return nil
}

// ValidateImageSize checks an encoded image payload against MaxImageBytes.
func ValidateImageSize(n int) error {
	if n > MaxImageBytes {
		return New(ErrCodeInvalidImage, "encoded image is %d bytes (limit %d)", n, MaxImageBytes)
	}
	return nil
}

// ValidatePanelKey validates a raw panel key for safety before it reaches
// the normalization tables or any report output.
//
// The rules are intentionally conservative:
//   - No empty keys
//   - No control characters
//   - Maximum length of 128 characters
//
// Unknown-but-wellformed keys are allowed: normalization is permissive and
// passes them through unchanged.
func ValidatePanelKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidManifest, "panel key cannot be empty")
	}
	if len(key) > 128 {
		return New(ErrCodeInvalidManifest, "panel key too long (max 128 characters)")
	}
	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidManifest, "panel key contains control characters")
		}
	}
	return nil
}

// ValidateManifestPath validates a path referenced from a sheet manifest.
// It prevents path traversal out of the manifest's directory.
func ValidateManifestPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidManifest, "path cannot be empty")
	}
	if len(path) > 500 {
		return New(ErrCodeInvalidManifest, "path too long (max 500 characters)")
	}
	if strings.Contains(path, "\x00") {
		return New(ErrCodeInvalidManifest, "path contains null byte")
	}
	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return New(ErrCodeInvalidManifest, "path cannot traverse outside the manifest directory: %q", path)
		}
	}
	return nil
}
