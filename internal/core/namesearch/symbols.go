package namesearch

import (
	"strings"
	"unicode"
)

const safePunctuation = "&'.-,()"

// isSearchSafe reports whether r may appear in a literal search string.
func isSearchSafe(r rune) bool {
	return isWordRune(r) || unicode.IsSpace(r) || strings.ContainsRune(safePunctuation, r)
}

// HasUnsafeSymbols reports whether s contains characters outside the search-safe set.
func HasUnsafeSymbols(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !isSearchSafe(r) }) >= 0
}

// RemoveSymbols produces a search-safe variant: unsafe characters become spaces,
// runs of the same symbol collapse to one, whitespace is collapsed and the edges
// are stripped again.
func RemoveSymbols(s string) string {
	if s == "" {
		return ""
	}

	s = strings.Map(func(r rune) rune {
		if !isSearchSafe(r) {
			return ' '
		}
		return r
	}, s)

	return stripEdges(collapseSpaces(collapseRepeatedSymbols(s)))
}

func collapseRepeatedSymbols(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prev := rune(-1)
	for _, r := range s {
		if r == prev && !isWordRune(r) && !unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}
