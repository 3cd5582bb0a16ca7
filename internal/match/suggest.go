package match

import (
	"strings"
)

// MinSimilarity is the score a candidate needs to be suggested.
const MinSimilarity = 0.6

// NormalizeKey folds case and strips the separators '_', '-', '.' and spaces.
func NormalizeKey(s string) string {
	return strings.Map(func(r rune) rune {
		if isSeparator(r) {
			return -1
		}
		return r
	}, strings.ToLower(s))
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || r == ' '
}

// Levenshtein computes the edit distance between two strings: the minimum
// number of single byte insertions, deletions or substitutions turning one
// into the other.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) > len(b) {
		a, b = b, a
	}
	if len(a) == 0 {
		return len(b)
	}

	// two rows over the shorter string
	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j
		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// Similarity returns 1 - distance/maxLen of the normalized keys: 1 for
// equivalent keys, 0 for unrelated ones.
func Similarity(a, b string) float64 {
	a, b = NormalizeKey(a), NormalizeKey(b)
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	return 1 - float64(Levenshtein(a, b))/float64(max(len(a), len(b)))
}

// Closest returns the candidate most similar to key, if any reaches
// MinSimilarity. Ties keep the earliest candidate.
func Closest(key string, candidates []string) (string, bool) {
	var (
		best      string
		bestScore float64
	)
	for _, c := range candidates {
		if score := Similarity(key, c); score > bestScore {
			best, bestScore = c, score
		}
	}

	if bestScore < MinSimilarity {
		return "", false
	}
	return best, true
}
