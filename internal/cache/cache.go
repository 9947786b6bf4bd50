package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for report caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ReportKey generates a cache key from a draft/transcript pair. Verification
// is a pure function of its two inputs, so identical content always maps to
// the same key. The version segment invalidates old entries when the
// matching algorithm changes.
func ReportKey(draft, transcript string) string {
	h := sha256.New()
	h.Write([]byte(draft))
	h.Write([]byte{0})
	h.Write([]byte(transcript))
	return "quotecheck:v1:" + hex.EncodeToString(h.Sum(nil))
}
