package namesearch

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// quoteRunes holds every quote-like character replaced during normalization.
var quoteRunes = buildRuneSet(
	"\"'" +
		"‘’‚‛" + // single curly, low-9
		"“”„‟" + // double curly, low-9
		"′″‴‵‶‷" + // primes
		"«»‹›" + // guillemets
		"〝〞〟" + // CJK double primes
		"ʼ" + // modifier apostrophe, classed as a letter
		"❛❜❝❞❟", // heavy ornament quotes
)

func buildRuneSet(chars string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(chars))
	for _, r := range chars {
		set[r] = struct{}{}
	}
	return set
}

// IsQuote reports whether r is an ASCII or Unicode quote mark.
func IsQuote(r rune) bool {
	_, ok := quoteRunes[r]
	return ok
}

// Canonical returns the trimmed input. It is never modified further.
func Canonical(name string) string {
	return strings.TrimSpace(name)
}

// Normalize removes control characters, applies NFKC, replaces quotes with
// spaces, collapses whitespace and strips leading/trailing punctuation.
// An empty result means the name carried no usable content.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)

	s = norm.NFKC.String(s)

	s = strings.Map(func(r rune) rune {
		if IsQuote(r) {
			return ' '
		}
		return r
	}, s)

	return stripEdges(collapseSpaces(s))
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// stripEdges trims whitespace, punctuation, symbols and underscores from both
// ends. Trimming by rune class is already a fixed point: nested runs such as
// "!!!Name???" disappear in one pass.
func stripEdges(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return !isWordRune(r)
	})
}

// isWordRune reports letters (any script), combining marks and digits.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r)
}
