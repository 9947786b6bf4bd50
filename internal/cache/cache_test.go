package cache

import (
	"strings"
	"testing"
	"time"
)

func TestReportKey_Deterministic(t *testing.T) {
	k1 := ReportKey("draft text", "transcript text")
	k2 := ReportKey("draft text", "transcript text")
	if k1 != k2 {
		t.Error("Expected identical inputs to produce identical keys")
	}
	if !strings.HasPrefix(k1, "quotecheck:v1:") {
		t.Errorf("Expected versioned key prefix, got %s", k1)
	}
}

func TestReportKey_DistinguishesInputs(t *testing.T) {
	base := ReportKey("draft", "transcript")

	if ReportKey("draft2", "transcript") == base {
		t.Error("Different drafts must produce different keys")
	}
	if ReportKey("draft", "transcript2") == base {
		t.Error("Different transcripts must produce different keys")
	}
}

func TestReportKey_SeparatorPreventsBoundaryShift(t *testing.T) {
	// "ab"+"c" and "a"+"bc" concatenate identically; the key must still differ
	if ReportKey("ab", "c") == ReportKey("a", "bc") {
		t.Error("Keys must not collide when the draft/transcript boundary shifts")
	}
}

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("key", []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := c.Get("key")
	if !found {
		t.Fatal("Expected to find the key")
	}
	if string(val) != "value" {
		t.Errorf("Expected 'value', got '%s'", val)
	}
}

func TestMemoryCache_Miss(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("absent"); found {
		t.Error("Expected a miss for an absent key")
	}
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	_ = c.Set("a", []byte("1"), time.Minute)
	_ = c.Set("b", []byte("2"), time.Minute)

	if err := c.Delete("a"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get("a"); found {
		t.Error("Expected 'a' to be deleted")
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, found := c.Get("b"); found {
		t.Error("Expected 'b' to be cleared")
	}
}

func TestDiskCache_SetGet(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("key", []byte("persisted"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := c.Get("key")
	if !found {
		t.Fatal("Expected to find the key on disk")
	}
	if string(val) != "persisted" {
		t.Errorf("Expected 'persisted', got '%s'", val)
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("key", []byte("short-lived"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	time.Sleep(30 * time.Millisecond)

	if _, found := c.Get("key"); found {
		t.Error("Expected the expired entry to be dropped")
	}
}

func TestDiskCache_DefaultTTL(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	// A zero TTL falls back to the cache-wide default
	if err := c.Set("key", []byte("value"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, found := c.Get("key"); !found {
		t.Error("Expected the entry to survive with the default TTL")
	}
}

func TestDiskCache_Miss(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if _, found := c.Get("absent"); found {
		t.Error("Expected a miss for an absent key")
	}
}

func TestLayeredCache_SetGet(t *testing.T) {
	c := NewLayeredCache(time.Minute, t.TempDir(), time.Minute)

	if err := c.Set("key", []byte("both layers"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := c.Get("key")
	if !found {
		t.Fatal("Expected to find the key")
	}
	if string(val) != "both layers" {
		t.Errorf("Expected 'both layers', got '%s'", val)
	}
}

func TestLayeredCache_DiskSurvivesRestart(t *testing.T) {
	dir := t.TempDir()

	first := NewLayeredCache(time.Minute, dir, time.Minute)
	if err := first.Set("key", []byte("durable"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// A fresh layered cache with an empty memory layer must still find the
	// entry via the shared disk layer
	second := NewLayeredCache(time.Minute, dir, time.Minute)
	val, found := second.Get("key")
	if !found {
		t.Fatal("Expected the disk layer to serve the entry")
	}
	if string(val) != "durable" {
		t.Errorf("Expected 'durable', got '%s'", val)
	}

	// And the hit must have been promoted into memory
	if _, found := second.memory.Get("key"); !found {
		t.Error("Expected the disk hit to be promoted into the memory layer")
	}
}

func TestLayeredCache_Delete(t *testing.T) {
	c := NewLayeredCache(time.Minute, t.TempDir(), time.Minute)

	_ = c.Set("key", []byte("value"), time.Minute)
	if err := c.Delete("key"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get("key"); found {
		t.Error("Expected the key to be gone from both layers")
	}
}
