package cache

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"time"
)

// DiskCache persists serialized reports under a directory so repeat runs
// across process restarts stay cheap. Each entry is one JSON file named by
// a hash of its key, carrying the payload and its expiry.
type DiskCache struct {
	dir        string
	defaultTTL time.Duration
}

// NewDiskCache creates a disk cache rooted at dir
func NewDiskCache(dir string, defaultTTL time.Duration) *DiskCache {
	return &DiskCache{dir: dir, defaultTTL: defaultTTL}
}

type diskEntry struct {
	Payload []byte    `json:"payload"`
	Expires time.Time `json:"expires"`
}

// Get returns the cached bytes for key. Expired entries are deleted on read.
func (d *DiskCache) Get(key string) ([]byte, bool) {
	path := d.entryPath(key)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry diskEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		// A corrupt entry is treated as a miss and cleaned up
		_ = os.Remove(path)
		return nil, false
	}

	if time.Now().After(entry.Expires) {
		_ = os.Remove(path)
		return nil, false
	}
	return entry.Payload, true
}

// Set stores value under key; a zero TTL uses the cache-wide default
func (d *DiskCache) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = d.defaultTTL
	}

	raw, err := json.Marshal(diskEntry{
		Payload: value,
		Expires: time.Now().Add(ttl),
	})
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(d.entryPath(key), raw, 0644); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Delete removes the entry for key
func (d *DiskCache) Delete(key string) error {
	return os.Remove(d.entryPath(key))
}

// Clear removes the whole cache directory
func (d *DiskCache) Clear() error {
	return os.RemoveAll(d.dir)
}

// entryPath hashes the key into a filesystem-safe file name
func (d *DiskCache) entryPath(key string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return filepath.Join(d.dir, fmt.Sprintf("%016x.json", h.Sum64()))
}
