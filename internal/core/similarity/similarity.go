// Package similarity provides fuzzy string ratios used to spot near-duplicate
// search queries.
package similarity

import (
	"fmt"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// Algorithm selects the edit model behind a ratio.
type Algorithm string

const (
	// AlgorithmIndel counts insertions and deletions only (LCS based).
	AlgorithmIndel Algorithm = "indel"
	// AlgorithmLevenshtein counts insertions, deletions and substitutions.
	AlgorithmLevenshtein Algorithm = "levenshtein"
)

// ParseAlgorithm maps a config value to an Algorithm. Empty selects indel.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(s))) {
	case "", AlgorithmIndel:
		return AlgorithmIndel, nil
	case AlgorithmLevenshtein:
		return AlgorithmLevenshtein, nil
	default:
		return "", fmt.Errorf("unknown similarity algorithm %q", s)
	}
}

// IndelRatio returns 100 * (1 - indel/(len(a)+len(b))) over runes, where
// indel is the insert/delete distance. Two empty strings are identical.
func IndelRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}
	lcs := lcsLength(ra, rb)
	return 100 * float64(2*lcs) / float64(total)
}

// Levenshtein returns the edit distance between a and b over runes.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// LevenshteinRatio scales the edit distance to 0..100 by the longer string.
func LevenshteinRatio(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	longest := max(la, lb)
	if longest == 0 {
		return 100
	}
	return 100 * (1 - float64(Levenshtein(a, b))/float64(longest))
}

func lcsLength(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else {
				curr[j] = max(prev[j], curr[j-1])
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// Matcher is a configured similarity measure. The zero value is not usable;
// build one with NewMatcher.
type Matcher struct {
	algorithm Algorithm
	fold      bool
}

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher)

// WithAlgorithm selects the ratio algorithm.
func WithAlgorithm(a Algorithm) MatcherOption {
	return func(m *Matcher) {
		if a != "" {
			m.algorithm = a
		}
	}
}

// WithFold compares transliterated, lower-cased forms when enabled.
func WithFold(fold bool) MatcherOption {
	return func(m *Matcher) { m.fold = fold }
}

// NewMatcher returns a case-sensitive indel matcher unless configured otherwise.
func NewMatcher(opts ...MatcherOption) *Matcher {
	m := &Matcher{algorithm: AlgorithmIndel}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Algorithm returns the configured algorithm.
func (m *Matcher) Algorithm() Algorithm {
	return m.algorithm
}

// Ratio returns the similarity of a and b on a 0..100 scale.
func (m *Matcher) Ratio(a, b string) float64 {
	if m.fold {
		a, b = Fold(a), Fold(b)
	}
	if m.algorithm == AlgorithmLevenshtein {
		return LevenshteinRatio(a, b)
	}
	return IndelRatio(a, b)
}

// Available always reports true.
func (m *Matcher) Available() bool {
	return true
}

// Fold transliterates s to ASCII and lower-cases it.
func Fold(s string) string {
	return strings.ToLower(unidecode.Unidecode(s))
}
