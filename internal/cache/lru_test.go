// Cinerec - Content-Based Movie Recommendation Service
// Copyright 2026 Cinerec contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestLRUAddGet(t *testing.T) {
	c := NewLRU(10, time.Minute)

	c.Add("a", 1)
	c.Add("b", 2)

	if v, ok := c.Get("a"); !ok || v.(int) != 1 {
		t.Errorf("Get(a) = %v, %v; want 1, true", v, ok)
	}
	if v, ok := c.Get("b"); !ok || v.(int) != 2 {
		t.Errorf("Get(b) = %v, %v; want 2, true", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) = true, want false")
	}
}

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRU(3, time.Minute)

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)

	// Touch "a" so "b" becomes the eviction candidate.
	if _, ok := c.Get("a"); !ok {
		t.Fatal("Get(a) failed before eviction")
	}

	c.Add("d", 4)

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("%s should still be cached", key)
		}
	}
}

func TestLRUUpdateExistingKey(t *testing.T) {
	c := NewLRU(2, time.Minute)

	c.Add("a", 1)
	c.Add("a", 42)

	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if v, _ := c.Get("a"); v.(int) != 42 {
		t.Errorf("Get(a) = %v, want 42", v)
	}
}

func TestLRUTTLExpiry(t *testing.T) {
	c := NewLRU(10, 10*time.Millisecond)

	c.Add("a", 1)
	if _, ok := c.Get("a"); !ok {
		t.Fatal("entry expired immediately")
	}

	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Error("entry should have expired")
	}
}

func TestLRUStats(t *testing.T) {
	c := NewLRU(10, time.Minute)

	c.Add("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("nope")

	s := c.Stats()
	if s.Hits != 2 {
		t.Errorf("Hits = %d, want 2", s.Hits)
	}
	if s.Misses != 1 {
		t.Errorf("Misses = %d, want 1", s.Misses)
	}
	if s.Size != 1 {
		t.Errorf("Size = %d, want 1", s.Size)
	}
}

func TestLRUPurge(t *testing.T) {
	c := NewLRU(10, time.Minute)

	c.Add("a", 1)
	c.Add("b", 2)
	c.Purge()

	if c.Len() != 0 {
		t.Errorf("Len() after Purge = %d, want 0", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Error("Get(a) after Purge = true, want false")
	}
}

func TestLRUDefaultsForBadArguments(t *testing.T) {
	c := NewLRU(0, 0)
	c.Add("a", 1)
	if _, ok := c.Get("a"); !ok {
		t.Error("cache with defaulted capacity/TTL should still work")
	}
}

func TestLRUConcurrentAccess(t *testing.T) {
	c := NewLRU(100, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := fmt.Sprintf("key-%d", j%50)
				c.Add(key, n)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if c.Len() > 100 {
		t.Errorf("Len() = %d exceeds capacity 100", c.Len())
	}
}
