package usecase

import (
	"regexp"
	"strings"
)

// Package-level compiled regex pattern for performance
var nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)

// TitleSimilarity computes the Jaccard similarity of the unique token sets of
// two titles: |intersection| / |union|, always in [0,1]. An empty union
// returns 0 rather than NaN. Pure and deterministic.
func TitleSimilarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	union := make(map[string]bool, len(setA)+len(setB))
	for t := range setA {
		union[t] = true
	}
	for t := range setB {
		union[t] = true
	}

	if len(union) == 0 {
		return 0
	}

	intersection := 0
	for t := range setA {
		if setB[t] {
			intersection++
		}
	}

	return float64(intersection) / float64(len(union))
}

// tokenSet normalizes a title into its set of unique tokens: lowercase,
// non-alphanumerics stripped, whitespace split. Order and duplicates are
// discarded.
func tokenSet(s string) map[string]bool {
	cleaned := nonAlphanumericRegex.ReplaceAllString(strings.ToLower(s), "")
	set := make(map[string]bool)
	for _, word := range strings.Fields(cleaned) {
		set[word] = true
	}
	return set
}
