// Package tokenizer turns field text into the normalized token sets the
// engine indexes and searches over.
package tokenizer

import (
	"regexp"
	"strings"
)

// whitespaceRegex matches runs of whitespace characters.
var whitespaceRegex = regexp.MustCompile(`\s+`)

const (
	// MinPrefixLength is the shortest prefix stored per token.
	MinPrefixLength = 2
	// MaxPrefixLength caps stored prefixes; longer tokens contribute
	// prefixes only up to this length.
	MaxPrefixLength = 8
)

// Tokenize lowercases text and splits it on whitespace into word tokens.
// Empty strings are filtered out; the result is never nil.
func Tokenize(text string) []string {
	split := whitespaceRegex.Split(strings.ToLower(text), -1)

	tokens := make([]string, 0, len(split))
	for _, s := range split {
		if s != "" {
			tokens = append(tokens, s)
		}
	}
	return tokens
}

// PrefixNGrams creates the stored prefixes of a token: every prefix of
// length MinPrefixLength up to min(len(token), MaxPrefixLength).
// For "reading" it produces: "re", "rea", "read", "readi", "readin", "reading".
// Prefix lengths are counted in runes so multi-byte text stays well formed.
func PrefixNGrams(token string) []string {
	runes := []rune(token)
	maxLen := len(runes)
	if maxLen > MaxPrefixLength {
		maxLen = MaxPrefixLength
	}
	if maxLen < MinPrefixLength {
		return make([]string, 0)
	}

	ngrams := make([]string, 0, maxLen-MinPrefixLength+1)
	for i := MinPrefixLength; i <= maxLen; i++ {
		ngrams = append(ngrams, string(runes[:i]))
	}
	return ngrams
}

// TokenSet tokenizes text and collects each token plus all of its stored
// prefixes into a set. The returned map is never nil.
func TokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range Tokenize(text) {
		set[token] = struct{}{}
		for _, ngram := range PrefixNGrams(token) {
			set[ngram] = struct{}{}
		}
	}
	return set
}
