package namesearch

import (
	"regexp"
	"strings"
)

// legalSuffixPattern matches a UK legal-entity suffix at the end of a name.
var legalSuffixPattern = regexp.MustCompile(
	`(?i)\s+(?:LTD\.?|LIMITED|PLC\.?|LLP\.?|LP\.?|CIC|INCORPORATED|CORPORATION|CORP\.?)$`,
)

// suffixTokens are the bare suffixes that must never be emitted on their own.
var suffixTokens = map[string]struct{}{
	"LTD":     {},
	"LIMITED": {},
	"PLC":     {},
	"LLP":     {},
	"LP":      {},
	"CIC":     {},
}

// IsSuffixToken reports whether s is, case-insensitively, a bare legal suffix.
func IsSuffixToken(s string) bool {
	_, ok := suffixTokens[strings.ToUpper(strings.TrimSpace(s))]
	return ok
}

// HasLegalSuffix reports whether s ends with a legal suffix.
func HasLegalSuffix(s string) bool {
	return legalSuffixPattern.MatchString(s)
}

// StripLegalSuffix removes a trailing legal suffix. It returns the remaining
// name and the removed suffix (empty when nothing matched).
func StripLegalSuffix(s string) (string, string) {
	if s == "" {
		return "", ""
	}
	loc := legalSuffixPattern.FindStringIndex(s)
	if loc == nil {
		return s, ""
	}
	return strings.TrimSpace(s[:loc[0]]), strings.TrimSpace(s[loc[0]:])
}

// LegalVariants returns the name as given plus, when it carries a suffix, the
// bare trading name. A variant that is itself only a suffix is never emitted.
func LegalVariants(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	out := []string{s}
	stripped, suffix := StripLegalSuffix(s)
	if suffix != "" && stripped != "" && !IsSuffixToken(stripped) {
		out = append(out, stripped)
	}
	return uniqueStrings(out)
}

// uniqueStrings removes exact duplicates, keeping the first occurrence.
func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
