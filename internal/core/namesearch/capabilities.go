package namesearch

// WordCommonness scores how common a token is in general language, on a zipf-like
// scale (roughly 0 for unknown words up to ~8 for the most frequent ones).
type WordCommonness interface {
	Zipf(token string) float64
	Available() bool
}

// StringSimilarity returns a similarity ratio between 0 and 100.
type StringSimilarity interface {
	Ratio(a, b string) float64
	Available() bool
}

// NoCommonness is used when no frequency source is configured. The commonness
// gate is skipped and the commonness score bonus is never granted.
type NoCommonness struct{}

func (NoCommonness) Zipf(string) float64 { return 0 }
func (NoCommonness) Available() bool     { return false }

// NoSimilarity is used when no similarity measure is configured. Deduplication
// falls back to exact matches.
type NoSimilarity struct{}

func (NoSimilarity) Ratio(a, b string) float64 {
	if a == b {
		return 100
	}
	return 0
}
func (NoSimilarity) Available() bool { return false }
