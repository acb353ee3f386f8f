package cache

import (
	"fmt"
	"sync"
	"testing"
)

func TestLRUGetPut(t *testing.T) {
	c := NewLRU[string, int](10)

	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss for missing key")
	}

	c.Put("a", 1)
	c.Put("b", 2)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v; want 1, true", v, ok)
	}

	c.Put("a", 3)
	if v, _ := c.Get("a"); v != 3 {
		t.Errorf("Get(a) after update = %d, want 3", v)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestLRUEviction(t *testing.T) {
	c := NewLRU[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a") // a is now most recent
	c.Put("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a should still be cached")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("c should be cached")
	}

	stats := c.Stats()
	if stats.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", stats.Evictions)
	}
	if stats.Size != 2 || stats.MaxSize != 2 {
		t.Errorf("Size/MaxSize = %d/%d, want 2/2", stats.Size, stats.MaxSize)
	}
}

func TestLRUUnbounded(t *testing.T) {
	c := NewLRU[int, int](-1)
	for i := 0; i < 500; i++ {
		c.Put(i, i)
	}
	if c.Len() != 500 {
		t.Errorf("Len() = %d, want 500", c.Len())
	}
	if c.Stats().Evictions != 0 {
		t.Error("unbounded cache should not evict")
	}
}

func TestLRUStatsHitsMisses(t *testing.T) {
	c := NewLRU[string, string](4)
	c.Put("k", "v")
	c.Get("k")
	c.Get("k")
	c.Get("nope")

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 {
		t.Errorf("Hits/Misses = %d/%d, want 2/1", s.Hits, s.Misses)
	}
}

func TestLRUConcurrentAccess(t *testing.T) {
	c := NewLRU[string, int](64)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("%d-%d", g, i%16)
				c.Put(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 64 {
		t.Errorf("Len() = %d exceeds max size", c.Len())
	}
}
