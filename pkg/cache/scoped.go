package cache

// ScopedKeyer wraps a Keyer with a prefix so separate deployments sharing
// one backend get isolated namespaces, e.g. one prefix per deployment
// profile or per generator fleet.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "profile:rendered:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// HashKey generates a prefixed key for perceptual hash caching.
func (k *ScopedKeyer) HashKey(contentHash string) string {
	return k.prefix + k.inner.HashKey(contentHash)
}

// PairKey generates a prefixed key for pairwise metric caching.
func (k *ScopedKeyer) PairKey(hashA, hashB string, opts PairKeyOpts) string {
	return k.prefix + k.inner.PairKey(hashA, hashB, opts)
}
