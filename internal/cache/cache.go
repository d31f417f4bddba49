// Package cache provides a time-expiring result cache for search calls,
// keyed by a canonical serialization of (collection, query, options).
package cache

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/sumry-app/SUMRY-sub001/internal/search"
)

const (
	// DefaultTTL is the entry lifetime used when callers pass ttl <= 0.
	DefaultTTL = 60 * time.Second
	// DefaultCapacity is the entry cap used when callers pass capacity <= 0.
	DefaultCapacity = 50
)

// entry is one cached result with its insertion timestamp.
type entry struct {
	result     search.Result
	insertedAt time.Time
}

// ResultCache caches search results with time-based expiry and
// oldest-inserted-first capacity eviction. A single mutex guards lookup,
// insertion, and eviction; concurrent identical searches are collapsed into
// one computation via singleflight. The zero value is not usable; create
// instances with New.
type ResultCache struct {
	mu       sync.Mutex
	entries  map[string]entry
	ttl      time.Duration
	capacity int

	group  singleflight.Group
	hits   atomic.Int64
	misses atomic.Int64

	now func() time.Time // swappable for tests
}

// New creates a ResultCache. Non-positive ttl or capacity fall back to the
// defaults.
func New(ttl time.Duration, capacity int) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &ResultCache{
		entries:  make(map[string]entry),
		ttl:      ttl,
		capacity: capacity,
		now:      time.Now,
	}
}

// Key builds the canonical cache key for one search call. Filters serialize
// with sorted field names, so equivalent option values always map to the
// same key, and the raw query text stays visible in the key for
// pattern-based invalidation. The generation is the collection's index
// generation: replacing a collection bumps it, which orphans every key built
// from the old index even when a compute for one is still in flight.
func Key(collection string, generation uint64, query string, opts search.Options) string {
	payload := struct {
		Collection string         `json:"collection"`
		Generation uint64         `json:"generation"`
		Query      string         `json:"query"`
		Options    search.Options `json:"options"`
	}{collection, generation, query, opts}

	data, err := json.Marshal(payload)
	if err != nil {
		// Options are plain data; marshaling only fails on NaN scores and
		// the like. Degrade to a non-canonical key instead of failing the
		// search.
		return fmt.Sprintf("%s|%d|%s|%+v", collection, generation, query, opts)
	}
	return string(data)
}

// GetOrCompute returns the cached result for key when it is younger than the
// TTL, otherwise runs compute, stores the fresh result, and returns it. The
// boolean reports whether the result was served from cache. Expired entries
// are evicted lazily; when the cache is full the oldest-inserted entry is
// evicted first.
func (c *ResultCache) GetOrCompute(key string, compute func() (search.Result, error)) (search.Result, bool, error) {
	if result, ok := c.lookup(key); ok {
		c.hits.Add(1)
		return result, true, nil
	}
	c.misses.Add(1)

	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		// A concurrent caller may have stored the result while this one
		// waited on the flight group.
		if result, ok := c.lookup(key); ok {
			return result, nil
		}
		result, err := compute()
		if err != nil {
			return search.Result{}, err
		}
		c.store(key, result)
		return result, nil
	})
	if err != nil {
		return search.Result{}, false, err
	}
	return val.(search.Result), false, nil
}

// lookup returns a fresh entry, evicting it instead when it has expired.
func (c *ResultCache) lookup(key string) (search.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return search.Result{}, false
	}
	if c.now().Sub(e.insertedAt) >= c.ttl {
		delete(c.entries, key)
		return search.Result{}, false
	}
	return e.result, true
}

// store inserts a result, evicting the oldest-inserted entry first when the
// cache is at capacity.
func (c *ResultCache) store(key string, result search.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		var oldestKey string
		var oldestAt time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertedAt.Before(oldestAt) {
				oldestKey = k
				oldestAt = e.insertedAt
			}
		}
		delete(c.entries, oldestKey)
	}

	c.entries[key] = entry{result: result, insertedAt: c.now()}
}

// Invalidate removes all entries whose key contains pattern, or every entry
// when pattern is empty. It returns the number of entries removed.
func (c *ResultCache) Invalidate(pattern string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if pattern == "" {
		removed := len(c.entries)
		c.entries = make(map[string]entry)
		return removed
	}

	removed := 0
	for key := range c.entries {
		if strings.Contains(key, pattern) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the current number of cached entries.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns the cumulative hit and miss counts.
func (c *ResultCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
