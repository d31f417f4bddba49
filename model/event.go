package model

import "time"

// SearchEvent records a single search request for analytics purposes.
type SearchEvent struct {
	ID         string        `json:"id"`
	Collection string        `json:"collection"`
	Query      string        `json:"query"`
	Hits       int           `json:"hits"`
	CacheHit   bool          `json:"cache_hit"`
	Duration   time.Duration `json:"duration"`
	Timestamp  time.Time     `json:"timestamp"`
}
