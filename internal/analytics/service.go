// Package analytics tracks search activity and computes progress reports
// over record collections.
package analytics

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sumry-app/SUMRY-sub001/model"
)

// maxEventsToKeep bounds the in-memory event buffer.
const maxEventsToKeep = 10000

// Service records search events and reports on them.
type Service struct {
	mu     sync.RWMutex
	events []model.SearchEvent
}

// NewService creates an analytics Service.
func NewService() *Service {
	return &Service{events: make([]model.SearchEvent, 0)}
}

// TrackSearch records a search event, assigning it an ID and timestamp.
// Only the latest events are kept to prevent unbounded growth.
func (s *Service) TrackSearch(event model.SearchEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event.ID = uuid.New().String()
	event.Timestamp = time.Now()
	s.events = append(s.events, event)

	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
	}
}

// PopularSearch is a query string with its request count.
type PopularSearch struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

// PopularSearches returns the most frequent non-empty queries tracked since
// the given time, most frequent first, ties broken lexicographically.
func (s *Service) PopularSearches(since time.Time, limit int) []PopularSearch {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, event := range s.events {
		if event.Query != "" && event.Timestamp.After(since) {
			counts[event.Query]++
		}
	}

	popular := make([]PopularSearch, 0, len(counts))
	for query, count := range counts {
		popular = append(popular, PopularSearch{Query: query, Count: count})
	}

	sort.Slice(popular, func(i, j int) bool {
		if popular[i].Count != popular[j].Count {
			return popular[i].Count > popular[j].Count
		}
		return popular[i].Query < popular[j].Query
	})

	if limit > 0 && len(popular) > limit {
		popular = popular[:limit]
	}
	return popular
}

// EventCount returns the number of tracked events.
func (s *Service) EventCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// AvgDuration returns the average duration of events tracked since the
// given time, in milliseconds.
func (s *Service) AvgDuration(since time.Time) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total time.Duration
	count := 0
	for _, event := range s.events {
		if event.Timestamp.After(since) {
			total += event.Duration
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return (total / time.Duration(count)).Milliseconds()
}
