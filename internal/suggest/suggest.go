// Package suggest provides autocomplete over the prefix tokens of an
// indexed collection.
package suggest

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sumry-app/SUMRY-sub001/model"
)

// DefaultLimit is the suggestion count used when callers pass limit <= 0.
const DefaultLimit = 5

// minPartialLength is the shortest partial input worth completing.
const minPartialLength = 2

// Suggest returns completions for a partial query: every token across all
// records that starts with the (lowercased) partial and is strictly longer
// than it, de-duplicated, sorted by ascending length then lexicographically,
// truncated to limit. Short, precise completions beat long incidental
// matches. Partials shorter than two characters yield no suggestions.
func Suggest(records []model.IndexedRecord, partial string, limit int) []string {
	suggestions := make([]string, 0)

	partial = strings.ToLower(strings.TrimSpace(partial))
	partialLen := utf8.RuneCountInString(partial)
	if partialLen < minPartialLength {
		return suggestions
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	// Lengths are counted in runes, as the tokenizer does, so multi-byte
	// tokens sort by character count rather than encoding size.
	seen := make(map[string]struct{})
	for _, rec := range records {
		for token := range rec.Tokens {
			if utf8.RuneCountInString(token) <= partialLen || !strings.HasPrefix(token, partial) {
				continue
			}
			if _, dup := seen[token]; dup {
				continue
			}
			seen[token] = struct{}{}
			suggestions = append(suggestions, token)
		}
	}

	sort.Slice(suggestions, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(suggestions[i]), utf8.RuneCountInString(suggestions[j])
		if li != lj {
			return li < lj
		}
		return suggestions[i] < suggestions[j]
	})

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}
