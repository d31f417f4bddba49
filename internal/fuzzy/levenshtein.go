// Package fuzzy implements edit-distance based string similarity, used for
// typo-tolerant matching of query terms against indexed tokens.
package fuzzy

// EditDistance computes the Levenshtein distance between two strings.
// It represents the minimum number of single-character edits (insertions,
// deletions, or substitutions) required to change one word into the other.
// Comparison is case-sensitive as given; callers lowercase beforehand.
// Unicode is handled correctly by working with runes.
func EditDistance(a, b string) int {
	runesA := []rune(a)
	runesB := []rune(b)

	lenA := len(runesA)
	lenB := len(runesB)

	if lenA == 0 {
		return lenB
	}
	if lenB == 0 {
		return lenA
	}

	// matrix[i][j] is the distance between the first j characters of a
	// and the first i characters of b.
	matrix := make([][]int, lenB+1)
	for i := range matrix {
		matrix[i] = make([]int, lenA+1)
	}

	for i := 0; i <= lenB; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= lenA; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= lenB; i++ {
		for j := 1; j <= lenA; j++ {
			cost := 0
			if runesB[i-1] != runesA[j-1] {
				cost = 1
			}

			deletion := matrix[i-1][j] + 1
			insertion := matrix[i][j-1] + 1
			substitution := matrix[i-1][j-1] + cost

			matrix[i][j] = min3(deletion, insertion, substitution)
		}
	}

	return matrix[lenB][lenA]
}

// Similarity returns a normalized similarity score in [0, 1]:
// 1 - EditDistance(a,b)/max(len(a),len(b)). Identical non-empty strings
// score 1; if either string is empty the score is 0 (never a division by
// zero).
func Similarity(a, b string) float64 {
	lenA := len([]rune(a))
	lenB := len([]rune(b))
	if lenA == 0 || lenB == 0 {
		return 0
	}

	maxLen := lenA
	if lenB > maxLen {
		maxLen = lenB
	}

	return 1 - float64(EditDistance(a, b))/float64(maxLen)
}

// DefaultThreshold is the similarity cutoff used when callers have no
// stronger opinion.
const DefaultThreshold = 0.6

// Match reports whether query and target are similar enough:
// Similarity(query, target) >= threshold, exactly.
func Match(query, target string, threshold float64) bool {
	return Similarity(query, target) >= threshold
}

// min3 is a helper function to find the minimum of three integers
func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
