// Package query parses free-text query strings into their structured parts:
// exact phrases, exclusions, an optional field-scoped clause, and the
// remaining free terms.
package query

import (
	"regexp"
	"strings"
)

// phraseRegex matches double-quoted phrases. An unmatched trailing quote is
// left in place and degrades to literal text.
var phraseRegex = regexp.MustCompile(`"([^"]*)"`)

// exclusionRegex matches tokens prefixed with '-', anchored at a token
// boundary so hyphens inside words are not treated as operators.
var exclusionRegex = regexp.MustCompile(`(^|\s)-(\S+)`)

// fieldClauseRegex matches a field:value pattern, word characters only on
// both sides.
var fieldClauseRegex = regexp.MustCompile(`(\w+):(\w+)`)

// FieldClause scopes part of a query to a single named field.
type FieldClause struct {
	Name  string
	Value string
}

// ParsedQuery is the immutable structured form of a raw query string.
type ParsedQuery struct {
	Terms        []string
	ExactPhrases []string
	Exclusions   []string
	FieldClause  *FieldClause
}

// IsEmpty reports whether the query carries no constraints at all.
func (p ParsedQuery) IsEmpty() bool {
	return len(p.Terms) == 0 && len(p.ExactPhrases) == 0 &&
		len(p.Exclusions) == 0 && p.FieldClause == nil
}

// Parse extracts the structured parts of a raw query string. Each step
// removes its matched substrings from the working string before the next
// step runs:
//
//  1. double-quoted phrases -> ExactPhrases
//  2. '-'-prefixed tokens   -> Exclusions
//  3. the first field:value -> FieldClause (at most one per query)
//  4. whatever remains, split on whitespace -> Terms
//
// Malformed input never fails: dangling operators and unmatched quotes
// degrade to literal text.
func Parse(raw string) ParsedQuery {
	parsed := ParsedQuery{
		Terms:        make([]string, 0),
		ExactPhrases: make([]string, 0),
		Exclusions:   make([]string, 0),
	}

	working := strings.TrimSpace(raw)
	if working == "" {
		return parsed
	}

	// 1. Quoted phrases.
	for _, m := range phraseRegex.FindAllStringSubmatch(working, -1) {
		if phrase := strings.TrimSpace(m[1]); phrase != "" {
			parsed.ExactPhrases = append(parsed.ExactPhrases, phrase)
		}
	}
	working = phraseRegex.ReplaceAllString(working, " ")

	// 2. Exclusions.
	for _, m := range exclusionRegex.FindAllStringSubmatch(working, -1) {
		parsed.Exclusions = append(parsed.Exclusions, m[2])
	}
	working = exclusionRegex.ReplaceAllString(working, " ")

	// 3. First field:value clause only; later clauses stay literal text.
	if m := fieldClauseRegex.FindStringSubmatch(working); m != nil {
		parsed.FieldClause = &FieldClause{Name: m[1], Value: m[2]}
		working = strings.Replace(working, m[0], " ", 1)
	}

	// 4. Free terms.
	for _, term := range strings.Fields(working) {
		parsed.Terms = append(parsed.Terms, term)
	}

	return parsed
}
