package cache

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sumry-app/SUMRY-sub001/internal/search"
)

func fixedResult(total int) search.Result {
	return search.Result{Total: total, QueryID: fmt.Sprintf("query-%d", total)}
}

func TestGetOrComputeCachesWithinTTL(t *testing.T) {
	c := New(time.Minute, 10)

	computations := 0
	compute := func() (search.Result, error) {
		computations++
		return fixedResult(7), nil
	}

	first, hit, err := c.GetOrCompute("k", compute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hit {
		t.Error("first call reported a cache hit")
	}

	second, hit, err := c.GetOrCompute("k", compute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !hit {
		t.Error("second call within TTL should be a cache hit")
	}
	if computations != 1 {
		t.Errorf("compute ran %d times, want 1", computations)
	}
	if first.Total != second.Total || first.QueryID != second.QueryID {
		t.Errorf("cached result differs: first=%+v second=%+v", first, second)
	}
}

func TestGetOrComputeExpiresAfterTTL(t *testing.T) {
	c := New(time.Minute, 10)

	current := time.Now()
	c.now = func() time.Time { return current }

	computations := 0
	compute := func() (search.Result, error) {
		computations++
		return fixedResult(computations), nil
	}

	if _, _, err := c.GetOrCompute("k", compute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Exactly at the TTL the entry is already stale.
	current = current.Add(time.Minute)

	result, hit, err := c.GetOrCompute("k", compute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hit {
		t.Error("call after TTL expiry should not be a cache hit")
	}
	if computations != 2 {
		t.Errorf("compute ran %d times, want 2 after expiry", computations)
	}
	if result.Total != 2 {
		t.Errorf("expired entry served stale result %+v", result)
	}
}

func TestGetOrComputeError(t *testing.T) {
	c := New(time.Minute, 10)

	wantErr := errors.New("boom")
	_, hit, err := c.GetOrCompute("k", func() (search.Result, error) {
		return search.Result{}, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("error = %v, want %v", err, wantErr)
	}
	if hit {
		t.Error("failed computation reported a cache hit")
	}
	if c.Len() != 0 {
		t.Error("failed computation should not be cached")
	}
}

func TestStoreEvictsOldestAtCapacity(t *testing.T) {
	c := New(time.Minute, 3)

	current := time.Now()
	c.now = func() time.Time { return current }

	for i := 0; i < 3; i++ {
		key := fmt.Sprintf("key-%d", i)
		// Distinct insertion times make the eviction order deterministic.
		current = current.Add(time.Second)
		if _, _, err := c.GetOrCompute(key, func() (search.Result, error) {
			return fixedResult(i), nil
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	current = current.Add(time.Second)
	if _, _, err := c.GetOrCompute("key-3", func() (search.Result, error) {
		return fixedResult(3), nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Len() != 3 {
		t.Errorf("cache holds %d entries, want capacity 3", c.Len())
	}

	// key-0 was inserted first, so it paid for the new entry.
	if _, ok := c.lookup("key-0"); ok {
		t.Error("oldest entry survived the capacity eviction")
	}
	for _, key := range []string{"key-1", "key-2", "key-3"} {
		if _, ok := c.lookup(key); !ok {
			t.Errorf("entry %q missing after eviction", key)
		}
	}
}

func TestInvalidate(t *testing.T) {
	c := New(time.Minute, 10)

	for _, key := range []string{"students|math", "students|reading", "goals|math"} {
		key := key
		if _, _, err := c.GetOrCompute(key, func() (search.Result, error) {
			return fixedResult(1), nil
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if removed := c.Invalidate("students"); removed != 2 {
		t.Errorf("Invalidate(\"students\") removed %d entries, want 2", removed)
	}
	if c.Len() != 1 {
		t.Errorf("cache holds %d entries after pattern invalidation, want 1", c.Len())
	}

	if removed := c.Invalidate(""); removed != 1 {
		t.Errorf("Invalidate(\"\") removed %d entries, want 1", removed)
	}
	if c.Len() != 0 {
		t.Errorf("cache holds %d entries after full invalidation, want 0", c.Len())
	}
}

func TestStats(t *testing.T) {
	c := New(time.Minute, 10)

	compute := func() (search.Result, error) { return fixedResult(1), nil }
	_, _, _ = c.GetOrCompute("k", compute)
	_, _, _ = c.GetOrCompute("k", compute)
	_, _, _ = c.GetOrCompute("k", compute)

	hits, misses := c.Stats()
	if hits != 2 || misses != 1 {
		t.Errorf("Stats() = (%d hits, %d misses), want (2, 1)", hits, misses)
	}
}

func TestKeyIsCanonicalAndCarriesQueryText(t *testing.T) {
	opts := search.DefaultOptions()

	k1 := Key("students", 1, "math", opts)
	k2 := Key("students", 1, "math", opts)
	if k1 != k2 {
		t.Errorf("identical inputs produced different keys:\n%s\n%s", k1, k2)
	}

	k3 := Key("students", 1, "reading", opts)
	if k1 == k3 {
		t.Error("different queries produced the same key")
	}

	k4 := Key("students", 2, "math", opts)
	if k1 == k4 {
		t.Error("different index generations produced the same key")
	}

	if want := "math"; !strings.Contains(k1, want) {
		t.Errorf("key %q does not carry the query text %q", k1, want)
	}
	if want := "students"; !strings.Contains(k1, want) {
		t.Errorf("key %q does not carry the collection name %q", k1, want)
	}
}
