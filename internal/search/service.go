// Package search composes filtering, query parsing, scoring, sorting, and
// pagination into one call over an indexed record collection.
package search

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sumry-app/SUMRY-sub001/internal/errors"
	"github.com/sumry-app/SUMRY-sub001/internal/filter"
	"github.com/sumry-app/SUMRY-sub001/internal/query"
	"github.com/sumry-app/SUMRY-sub001/internal/scoring"
	"github.com/sumry-app/SUMRY-sub001/model"
)

// Service implements the search pipeline. It is stateless per call and safe
// for concurrent use.
type Service struct {
	weights scoring.Weights
}

// NewService creates a search Service with the given default boost weights.
func NewService(weights scoring.Weights) *Service {
	zero := scoring.Weights{}
	if weights == zero {
		weights = scoring.DefaultWeights()
	}
	return &Service{weights: weights}
}

// Search runs the full pipeline: apply filters, narrow by query operators,
// score and drop below MinScore, sort, paginate. A search with no query and
// no filters returns every record with score 0 in input order.
//
// Limit must be positive and Offset non-negative; anything else is a
// programming error rejected with a validation error rather than producing
// nonsensical pagination.
func (s *Service) Search(records []model.IndexedRecord, rawQuery string, opts Options) (Result, error) {
	startTime := time.Now()

	if opts.Limit <= 0 {
		return Result{}, errors.NewValidationError("limit", "must be a positive integer")
	}
	if opts.Offset < 0 {
		return Result{}, errors.NewValidationError("offset", "cannot be negative")
	}

	// (a) structured filters
	survivors := make([]model.IndexedRecord, 0, len(records))
	for _, rec := range records {
		if filter.Matches(rec.Record, opts.Filters, opts.FilterLogic) {
			survivors = append(survivors, rec)
		}
	}

	trimmedQuery := strings.TrimSpace(rawQuery)

	// (b) query-operator narrowing
	if trimmedQuery != "" && opts.UseOperators {
		parsed := query.Parse(trimmedQuery)
		narrowed := survivors[:0]
		for _, rec := range survivors {
			if matchesParsedQuery(rec, parsed) {
				narrowed = append(narrowed, rec)
			}
		}
		survivors = narrowed
	}

	// (c, d) scoring; without a query every survivor scores 0
	weights := s.weights
	if opts.Boosts != nil {
		weights = *opts.Boosts
	}

	scored := make([]ScoredRecord, 0, len(survivors))
	for _, rec := range survivors {
		score := 0.0
		if trimmedQuery != "" {
			score = scoring.Score(rec, trimmedQuery, weights)
		}
		if score < opts.MinScore {
			continue
		}
		scored = append(scored, ScoredRecord{Record: rec.Record, Score: score})
	}

	// (e) sorting; ties preserve relative input order
	sortScored(scored, opts)

	// (f) pagination; totals come from the pre-slice count
	total := len(scored)
	start := opts.Offset
	end := opts.Offset + opts.Limit

	var page []ScoredRecord
	if start < total {
		if end > total {
			end = total
		}
		page = scored[start:end]
	} else {
		page = []ScoredRecord{}
	}

	return Result{
		Results:    page,
		Total:      total,
		HasMore:    opts.Offset+opts.Limit < total,
		Page:       opts.Offset/opts.Limit + 1,
		TotalPages: (total + opts.Limit - 1) / opts.Limit,
		Took:       time.Since(startTime).Milliseconds(),
		QueryID:    uuid.New().String(),
	}, nil
}

// matchesParsedQuery applies operator semantics to one record: every exact
// phrase must appear in the text, no exclusion may appear, the field clause
// (if any) must match its field case-insensitively, and at least one free
// term must appear. A query with no free terms constrains only through its
// other parts.
func matchesParsedQuery(rec model.IndexedRecord, parsed query.ParsedQuery) bool {
	for _, phrase := range parsed.ExactPhrases {
		if !strings.Contains(rec.Text, strings.ToLower(phrase)) {
			return false
		}
	}

	for _, excl := range parsed.Exclusions {
		if strings.Contains(rec.Text, strings.ToLower(excl)) {
			return false
		}
	}

	if clause := parsed.FieldClause; clause != nil {
		val, ok := rec.Record.Get(clause.Name)
		if !ok || !strings.EqualFold(val.Text(), clause.Value) {
			return false
		}
	}

	if len(parsed.Terms) > 0 {
		anyTerm := false
		for _, term := range parsed.Terms {
			if strings.Contains(rec.Text, strings.ToLower(term)) {
				anyTerm = true
				break
			}
		}
		if !anyTerm {
			return false
		}
	}

	return true
}

// sortScored orders results by relevance score or by a named record field,
// stably so that ties keep their input order. Records missing the sort field
// compare as smallest.
func sortScored(scored []ScoredRecord, opts Options) {
	ascending := opts.SortOrder == SortOrderAsc

	if opts.SortBy == "" || opts.SortBy == SortByRelevance {
		sort.SliceStable(scored, func(i, j int) bool {
			if ascending {
				return scored[i].Score < scored[j].Score
			}
			return scored[i].Score > scored[j].Score
		})
		return
	}

	field := opts.SortBy
	sort.SliceStable(scored, func(i, j int) bool {
		valI, okI := scored[i].Record.Get(field)
		valJ, okJ := scored[j].Record.Get(field)

		if !okI && !okJ {
			return false
		}
		if okI != okJ {
			// Missing values are smallest.
			if ascending {
				return !okI
			}
			return !okJ
		}

		cmp := valI.Compare(valJ)
		if ascending {
			return cmp < 0
		}
		return cmp > 0
	})
}
