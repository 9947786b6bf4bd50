package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache keeps serialized reports in process memory. It is the hot
// layer of the report cache; entries expire on their own and a janitor
// sweeps them out periodically.
type MemoryCache struct {
	entries *gocache.Cache
}

// NewMemoryCache creates a memory cache with the given default TTL and
// janitor sweep interval
func NewMemoryCache(defaultTTL, sweepInterval time.Duration) *MemoryCache {
	return &MemoryCache{entries: gocache.New(defaultTTL, sweepInterval)}
}

// Get returns the cached bytes for key, if present and unexpired
func (m *MemoryCache) Get(key string) ([]byte, bool) {
	v, found := m.entries.Get(key)
	if !found {
		return nil, false
	}
	return v.([]byte), true
}

// Set stores value under key for the given TTL; a zero TTL uses the default
func (m *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	m.entries.Set(key, value, ttl)
	return nil
}

// Delete removes key from the cache
func (m *MemoryCache) Delete(key string) error {
	m.entries.Delete(key)
	return nil
}

// Clear drops every entry
func (m *MemoryCache) Clear() error {
	m.entries.Flush()
	return nil
}
