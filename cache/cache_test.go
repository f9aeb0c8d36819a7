// ABOUTME: Tests for the TTL cache
// ABOUTME: Hit, miss, expiry, and live entry counting

package cache

import (
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := New(time.Minute)
	c.Set("k", "value")

	v, ok := c.Get("k")
	if !ok {
		t.Fatal("Expected cache hit")
	}
	if v.(string) != "value" {
		t.Errorf("Expected 'value', got %v", v)
	}

	if _, ok := c.Get("absent"); ok {
		t.Error("Expected miss for absent key")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := New(time.Minute)
	c.SetWithTTL("k", "value", -time.Second) // already expired

	if _, ok := c.Get("k"); ok {
		t.Error("Expected expired entry to miss")
	}
}

func TestCacheClear(t *testing.T) {
	c := New(time.Minute)
	c.Set("k", 1)
	c.Clear("k")

	if _, ok := c.Get("k"); ok {
		t.Error("Expected cleared entry to miss")
	}
}

func TestCacheLen(t *testing.T) {
	c := New(time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.SetWithTTL("stale", 3, -time.Second)

	if n := c.Len(); n != 2 {
		t.Errorf("Expected 2 live entries, got %d", n)
	}
}
