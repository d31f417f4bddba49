package search

import (
	"github.com/sumry-app/SUMRY-sub001/internal/filter"
	"github.com/sumry-app/SUMRY-sub001/internal/scoring"
	"github.com/sumry-app/SUMRY-sub001/model"
)

// Sort targets and orders.
const (
	SortByRelevance = "relevance"
	SortOrderAsc    = "asc"
	SortOrderDesc   = "desc"
)

// Options controls one search call. Start from DefaultOptions: a zero-valued
// Options fails validation because Limit must be positive.
type Options struct {
	Filters      filter.Map       `json:"filters,omitempty"`
	FilterLogic  filter.Logic     `json:"filter_logic,omitempty"`
	MinScore     float64          `json:"min_score,omitempty"`
	Limit        int              `json:"limit"`
	Offset       int              `json:"offset"`
	SortBy       string           `json:"sort_by,omitempty"`    // "relevance" or a field name
	SortOrder    string           `json:"sort_order,omitempty"` // "asc" or "desc"
	UseOperators bool             `json:"use_operators"`
	Boosts       *scoring.Weights `json:"boosts,omitempty"` // overrides the engine's boost weights
}

// DefaultOptions returns the standard search options: no filters, AND logic,
// minScore 0, limit 50, offset 0, sorted by relevance descending, query
// operators enabled.
func DefaultOptions() Options {
	return Options{
		FilterLogic:  filter.LogicAnd,
		Limit:        50,
		SortBy:       SortByRelevance,
		SortOrder:    SortOrderDesc,
		UseOperators: true,
	}
}

// ScoredRecord pairs a record with the relevance score attached for one
// search call. Scores are ephemeral: they are never persisted on the record.
type ScoredRecord struct {
	Record model.Record `json:"record"`
	Score  float64      `json:"relevance_score"`
}

// Result is one ranked, paginated result set. Total counts all matches
// before pagination; Page and TotalPages derive from Offset and Limit.
type Result struct {
	Results    []ScoredRecord `json:"results"`
	Total      int            `json:"total"`
	HasMore    bool           `json:"has_more"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
	Took       int64          `json:"took"`     // milliseconds
	QueryID    string         `json:"query_id"` // unique UUID for this search computation
}
