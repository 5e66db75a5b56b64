// Package similarity computes the fixed-shape similarity vector the pair
// classifier decides on. The string metric is pluggable; any symmetric
// ratio in [0,100] honoring the empty-string conventions is conformant.
package similarity

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Metric computes a symmetric character-level similarity ratio between two
// normalized strings. 100 means identical, 0 means maximally dissimilar.
// Implementations must be deterministic and must never fail: a string that
// cannot be compared scores 0, not an error.
type Metric interface {
	Ratio(a, b string) float64
}

// LevenshteinMetric scores strings by edit distance relative to the longer
// string's length.
type LevenshteinMetric struct{}

// NewLevenshteinMetric creates the default edit-distance metric.
func NewLevenshteinMetric() *LevenshteinMetric {
	return &LevenshteinMetric{}
}

// Ratio returns 100 * (1 - distance/maxLen). Two empty strings are
// identical (100); an empty string against a non-empty one is maximally
// dissimilar (0), which falls out of the distance formula.
func (m *LevenshteinMetric) Ratio(a, b string) float64 {
	if a == b {
		return 100
	}

	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 100
	}

	dist := levenshtein.ComputeDistance(a, b)
	ratio := (1 - float64(dist)/float64(maxLen)) * 100
	if ratio < 0 {
		return 0
	}
	return ratio
}
