package namesearch

import "strings"

// homeNations are country values dropped from location enrichment; searches are
// implicitly UK-scoped.
var homeNations = map[string]struct{}{
	"UK":               {},
	"U.K.":             {},
	"GB":               {},
	"GREAT BRITAIN":    {},
	"UNITED KINGDOM":   {},
	"ENGLAND":          {},
	"WALES":            {},
	"SCOTLAND":         {},
	"NORTHERN IRELAND": {},
}

// IsHomeNation reports whether country names the UK or one of its nations.
func IsHomeNation(country string) bool {
	_, ok := homeNations[strings.ToUpper(strings.TrimSpace(country))]
	return ok
}

// locationHint is a cleaned location value: search-safe, quote-free.
type locationHint struct {
	raw     string
	display string
	tokens  []string
}

func newLocationHint(value string) locationHint {
	cleaned := RemoveSymbols(Normalize(value))
	if cleaned == "" {
		return locationHint{}
	}
	return locationHint{
		raw:     cleaned,
		display: Humanize(cleaned),
		tokens:  lowerTokens(cleaned),
	}
}

func (h locationHint) empty() bool {
	return h.raw == ""
}

// foundIn reports whether the hint appears as a contiguous token run in q.
func (h locationHint) foundIn(q string) bool {
	if len(h.tokens) == 0 {
		return false
	}
	hay := lowerTokens(q)
	for i := 0; i+len(h.tokens) <= len(hay); i++ {
		match := true
		for j, t := range h.tokens {
			if hay[i+j] != t {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func lowerTokens(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return !isWordRune(r) })
	for i, f := range fields {
		fields[i] = strings.ToLower(f)
	}
	return fields
}

// EnrichWithLocation appends the post town and, unless it is a UK home nation,
// the country. It returns name unchanged when there is nothing to add.
func EnrichWithLocation(name, postTown, country string) string {
	return enrich(name, newLocationHint(postTown), newLocationHint(country))
}

func enrich(name string, town, country locationHint) string {
	if name == "" {
		return ""
	}
	parts := []string{name}
	if !town.empty() {
		parts = append(parts, town.display)
	}
	if !country.empty() && !IsHomeNation(country.raw) {
		parts = append(parts, country.display)
	}
	if len(parts) == 1 {
		return name
	}
	return strings.Join(parts, " ")
}
