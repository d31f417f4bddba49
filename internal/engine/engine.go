// Package engine manages named record collections and fronts the search
// pipeline: indexes are rebuilt wholesale when a collection is replaced, and
// search results are served through a TTL cache owned by the engine.
package engine

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sumry-app/SUMRY-sub001/config"
	"github.com/sumry-app/SUMRY-sub001/internal/cache"
	"github.com/sumry-app/SUMRY-sub001/internal/errors"
	"github.com/sumry-app/SUMRY-sub001/internal/indexing"
	"github.com/sumry-app/SUMRY-sub001/internal/search"
	"github.com/sumry-app/SUMRY-sub001/internal/suggest"
	"github.com/sumry-app/SUMRY-sub001/model"
	"github.com/sumry-app/SUMRY-sub001/services"
)

// collection is one named record set with its rebuilt index. gen identifies
// the index build; cache keys carry it so results computed from a replaced
// index can never surface after the replace.
type collection struct {
	fields  []string
	records []model.Record
	indexed []model.IndexedRecord
	gen     uint64
}

// Engine is the orchestrating service. All collection state is guarded by a
// single RWMutex; the result cache carries its own lock.
type Engine struct {
	mu          sync.RWMutex
	collections map[string]*collection
	gen         uint64 // monotonically increasing index generation

	settings config.EngineSettings
	indexer  *indexing.Service
	searcher *search.Service
	cache    *cache.ResultCache
	logger   *zap.Logger
}

// NewEngine creates an Engine with the given settings. A nil logger
// disables logging.
func NewEngine(settings config.EngineSettings, logger *zap.Logger) (*Engine, error) {
	settings.ApplyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	indexer, err := indexing.NewService(settings.IndexWorkers)
	if err != nil {
		return nil, err
	}

	return &Engine{
		collections: make(map[string]*collection),
		settings:    settings,
		indexer:     indexer,
		searcher:    search.NewService(settings.Boosts),
		cache:       cache.New(settings.CacheTTL, settings.CacheCapacity),
		logger:      logger,
	}, nil
}

// Close releases the engine's worker pool.
func (e *Engine) Close() {
	e.indexer.Close()
}

// Settings returns the engine's effective settings.
func (e *Engine) Settings() config.EngineSettings {
	return e.settings
}

// SetCollection registers or replaces a named collection, rebuilding its
// index from scratch and invalidating any cached results for it. It returns
// the number of records indexed.
func (e *Engine) SetCollection(name string, records []model.Record, fields []string) (int, error) {
	if name == "" {
		return 0, errors.NewValidationError("name", "collection name is required")
	}

	startTime := time.Now()
	indexed := e.indexer.BuildIndex(records, fields)

	e.mu.Lock()
	e.gen++
	e.collections[name] = &collection{
		fields:  fields,
		records: records,
		indexed: indexed,
		gen:     e.gen,
	}
	e.mu.Unlock()

	e.cache.Invalidate(name)
	e.logger.Info("collection indexed",
		zap.String("collection", name),
		zap.Int("records", len(records)),
		zap.Duration("took", time.Since(startTime)),
	)
	return len(indexed), nil
}

// DeleteCollection removes a collection and its cached results.
func (e *Engine) DeleteCollection(name string) error {
	e.mu.Lock()
	_, ok := e.collections[name]
	delete(e.collections, name)
	e.mu.Unlock()

	if !ok {
		return errors.NewCollectionNotFoundError(name)
	}

	e.cache.Invalidate(name)
	e.logger.Info("collection deleted", zap.String("collection", name))
	return nil
}

// ListCollections returns stats for every registered collection, sorted by
// name.
func (e *Engine) ListCollections() []services.CollectionStats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	stats := make([]services.CollectionStats, 0, len(e.collections))
	for name, coll := range e.collections {
		stats = append(stats, services.CollectionStats{
			Name:        name,
			Fields:      coll.fields,
			RecordCount: len(coll.records),
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name })
	return stats
}

// GetCollection returns stats for one collection.
func (e *Engine) GetCollection(name string) (services.CollectionStats, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	coll, ok := e.collections[name]
	if !ok {
		return services.CollectionStats{}, errors.NewCollectionNotFoundError(name)
	}
	return services.CollectionStats{
		Name:        name,
		Fields:      coll.fields,
		RecordCount: len(coll.records),
	}, nil
}

// Records returns the raw records of a collection, for reporting.
func (e *Engine) Records(name string) ([]model.Record, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	coll, ok := e.collections[name]
	if !ok {
		return nil, errors.NewCollectionNotFoundError(name)
	}
	return coll.records, nil
}

// indexedRecords snapshots a collection's index and its generation under the
// read lock.
func (e *Engine) indexedRecords(name string) ([]model.IndexedRecord, uint64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	coll, ok := e.collections[name]
	if !ok {
		return nil, 0, errors.NewCollectionNotFoundError(name)
	}
	return coll.indexed, coll.gen, nil
}

// Search runs an uncached search against a collection.
func (e *Engine) Search(name, query string, opts search.Options) (search.Result, error) {
	indexed, _, err := e.indexedRecords(name)
	if err != nil {
		return search.Result{}, err
	}
	return e.searcher.Search(indexed, query, opts)
}

// CachedSearch runs a search through the result cache. The boolean reports
// whether the result was served from cache. Keys carry the index generation
// of the snapshot being searched: a concurrent collection replace can finish
// (and invalidate) while a compute is in flight, and the late store must not
// resurrect results from the replaced index under a fresh timestamp.
func (e *Engine) CachedSearch(name, query string, opts search.Options) (search.Result, bool, error) {
	indexed, gen, err := e.indexedRecords(name)
	if err != nil {
		return search.Result{}, false, err
	}

	key := cache.Key(name, gen, query, opts)
	return e.cache.GetOrCompute(key, func() (search.Result, error) {
		return e.searcher.Search(indexed, query, opts)
	})
}

// Suggest returns autocomplete suggestions for a partial query against a
// collection.
func (e *Engine) Suggest(name, partial string, limit int) ([]string, error) {
	indexed, _, err := e.indexedRecords(name)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = e.settings.SuggestionLimit
	}
	return suggest.Suggest(indexed, partial, limit), nil
}

// InvalidateCache removes cached results whose key contains pattern, or all
// of them when pattern is empty. It returns the number of entries removed.
func (e *Engine) InvalidateCache(pattern string) int {
	removed := e.cache.Invalidate(pattern)
	e.logger.Info("cache invalidated",
		zap.String("pattern", pattern),
		zap.Int("removed", removed),
	)
	return removed
}

// CacheStats returns the cumulative cache hit and miss counts.
func (e *Engine) CacheStats() (hits, misses int64) {
	return e.cache.Stats()
}
