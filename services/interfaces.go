// Package services defines the interfaces between the HTTP layer and the
// search engine.
package services

import (
	"github.com/sumry-app/SUMRY-sub001/config"
	"github.com/sumry-app/SUMRY-sub001/internal/search"
	"github.com/sumry-app/SUMRY-sub001/model"
)

// CollectionStats describes a registered record collection.
type CollectionStats struct {
	Name        string   `json:"name"`
	Fields      []string `json:"fields"`
	RecordCount int      `json:"record_count"`
}

// CollectionManager manages the lifecycle of record collections. Replacing a
// collection rebuilds its index wholesale; there is no incremental update.
type CollectionManager interface {
	SetCollection(name string, records []model.Record, fields []string) (int, error)
	DeleteCollection(name string) error
	ListCollections() []CollectionStats
	GetCollection(name string) (CollectionStats, error)
	Records(name string) ([]model.Record, error)
}

// Searcher runs queries against a registered collection.
type Searcher interface {
	Search(collection, query string, opts search.Options) (search.Result, error)
}

// CachedSearcher runs queries through the result cache; the boolean reports
// a cache hit.
type CachedSearcher interface {
	CachedSearch(collection, query string, opts search.Options) (search.Result, bool, error)
}

// Suggester provides autocomplete for partial queries.
type Suggester interface {
	Suggest(collection, partial string, limit int) ([]string, error)
}

// CacheInvalidator removes cached results by key pattern.
type CacheInvalidator interface {
	InvalidateCache(pattern string) int
	CacheStats() (hits, misses int64)
}

// SearchEngine combines everything the HTTP layer needs.
type SearchEngine interface {
	CollectionManager
	Searcher
	CachedSearcher
	Suggester
	CacheInvalidator

	// Settings exposes the effective engine settings, for request defaults.
	Settings() config.EngineSettings
}
