// Package scoring computes a relevance score for an indexed record against a
// free-text query by combining exact, prefix, token, and fuzzy signals.
package scoring

import (
	"strings"

	"github.com/sumry-app/SUMRY-sub001/internal/fuzzy"
	"github.com/sumry-app/SUMRY-sub001/model"
)

// Weights are the boost magnitudes added per matched signal.
type Weights struct {
	Exact  float64 `json:"exact" yaml:"exact"`
	Prefix float64 `json:"prefix" yaml:"prefix"`
	Fuzzy  float64 `json:"fuzzy" yaml:"fuzzy"`
	Token  float64 `json:"token" yaml:"token"`
}

// DefaultWeights returns the standard boost magnitudes.
func DefaultWeights() Weights {
	return Weights{Exact: 10, Prefix: 5, Fuzzy: 2, Token: 1}
}

const (
	// tokenFuzzyThreshold is the similarity cutoff for query-term vs token matches.
	tokenFuzzyThreshold = 0.7
	// wordFuzzyThreshold is the similarity cutoff for query-term vs text-word matches.
	wordFuzzyThreshold = 0.75
)

// Score rates how well a record matches rawQuery. The score is monotonically
// non-decreasing as more signals match; a record with no textual overlap
// scores 0, and an empty query scores 0 for every record.
//
// Signals, in order: an exact-match boost when the record text contains the
// whole query, plus a prefix boost when it starts with it; per query term, a
// doubled token boost on exact token equality, a plain token boost on a
// prefix match, or a fuzzy boost on a near match; finally a fuzzy boost for
// every word of the record text that nearly matches a query term.
func Score(rec model.IndexedRecord, rawQuery string, w Weights) float64 {
	q := strings.ToLower(strings.TrimSpace(rawQuery))
	if q == "" {
		return 0
	}

	score := 0.0

	if strings.Contains(rec.Text, q) {
		score += w.Exact
		if strings.HasPrefix(rec.Text, q) {
			score += w.Prefix
		}
	}

	queryTerms := strings.Fields(q)
	textWords := strings.Fields(rec.Text)

	for _, term := range queryTerms {
		for token := range rec.Tokens {
			switch {
			case token == term:
				score += w.Token * 2
			case strings.HasPrefix(token, term):
				score += w.Token
			case fuzzy.Match(term, token, tokenFuzzyThreshold):
				score += w.Fuzzy
			}
		}

		for _, word := range textWords {
			if fuzzy.Match(term, word, wordFuzzyThreshold) {
				score += w.Fuzzy
			}
		}
	}

	return score
}
