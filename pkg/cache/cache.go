// Package cache provides byte-level caching for the expensive parts of a
// gate run: perceptual hashes and pairwise metric bundles, both keyed by
// image content so a re-run over unchanged panels costs nothing.
//
// Backends: FileCache for CLI usage, RedisCache for shared deployments,
// NullCache to disable caching entirely.
package cache

import (
	"context"
	"time"
)

// Entry lifetimes. Keys are content-addressed, so entries never go stale;
// the TTLs only bound backend growth.
const (
	// TTLHash is the lifetime of cached perceptual hashes.
	TTLHash = 30 * 24 * time.Hour

	// TTLPair is the lifetime of cached pairwise metric bundles.
	TTLPair = 7 * 24 * time.Hour
)

// Cache is the storage backend contract. Implementations must treat a
// missing key as (nil, false, nil), not as an error.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// =============================================================================
// Key Generation
// =============================================================================

// PairKeyOpts carries the parameters that change a pairwise metric result.
// Two runs with different working resolutions must not share cache entries.
type PairKeyOpts struct {
	MetricSize int
	HashSize   int
}

// Keyer generates cache keys for the cacheable computations.
type Keyer interface {
	// HashKey keys a perceptual hash by the image's content hash.
	HashKey(contentHash string) string

	// PairKey keys a pairwise metric bundle by the two images' content
	// hashes. It is symmetric: PairKey(a, b, o) == PairKey(b, a, o).
	PairKey(hashA, hashB string, opts PairKeyOpts) string
}

// DefaultKeyer is the standard key scheme: a short namespace prefix plus a
// SHA-256 over the key components.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HashKey generates a key for perceptual hash caching.
func (k *DefaultKeyer) HashKey(contentHash string) string {
	return hashKey("phash", contentHash)
}

// PairKey generates a symmetric key for pairwise metric caching.
func (k *DefaultKeyer) PairKey(hashA, hashB string, opts PairKeyOpts) string {
	if hashB < hashA {
		hashA, hashB = hashB, hashA
	}
	return hashKey("pair", hashA, hashB, opts)
}
