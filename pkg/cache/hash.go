package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Full SHA-256 (64 hex chars) to prevent collisions between panels.
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// ContentHash computes the SHA-256 hex digest of raw image bytes. It is the
// identity under which hashes and metric results are cached: same bytes,
// same key, regardless of filename or submission order.
func ContentHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
