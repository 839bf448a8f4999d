package namesearch

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const upperRatioThreshold = 0.8

// UpperRatio returns the fraction of letters in s that are uppercase.
func UpperRatio(s string) float64 {
	var letters, upper int
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.IsUpper(r) {
			upper++
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(upper) / float64(letters)
}

// Humanize title-cases shouting names and leaves mixed-case names alone.
func Humanize(s string) string {
	if s == "" {
		return ""
	}
	if UpperRatio(s) > upperRatioThreshold {
		return titleCase(s)
	}
	return s
}

// titleCase builds a new Caser per call; Casers are stateful and must not be
// shared between goroutines.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

// isTitleCased reports whether s is unchanged by title-casing.
func isTitleCased(s string) bool {
	return len([]rune(s)) > 1 && s == titleCase(s)
}

// startsUpperNotShouting reports an uppercase first letter in a string that is
// not entirely uppercase.
func startsUpperNotShouting(s string) bool {
	for _, r := range s {
		if !unicode.IsUpper(r) {
			return false
		}
		break
	}
	return s != "" && !isAllUpper(s)
}

// isAllUpper reports whether every cased letter is uppercase and at least one exists.
func isAllUpper(s string) bool {
	cased := false
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			return false
		case unicode.IsUpper(r):
			cased = true
		}
	}
	return cased
}
