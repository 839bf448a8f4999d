package namesearch

import "sort"

// Score weights. The scale runs 0–11 with the current weights.
const (
	weightNoSuffix   = 2
	weightNoSymbols  = 3
	weightCasing     = 1
	weightTokenRange = 2
	weightCommonWord = 2
	weightLocation   = 1

	minRankTokens = 2
	maxRankTokens = 6
)

// ScoredCandidate pairs a candidate query with its score.
type ScoredCandidate struct {
	Query string `json:"query" yaml:"query"`
	Score int    `json:"score" yaml:"score"`
}

// Score scores q for search friendliness given optional location context.
func (p *Pipeline) Score(q, postTown, country string) int {
	return p.score(q, newLocationHint(postTown), newLocationHint(country))
}

func (p *Pipeline) score(q string, town, country locationHint) int {
	score := 0
	tokens := Tokenize(q)

	if !HasLegalSuffix(q) {
		score += weightNoSuffix
	}
	if !HasUnsafeSymbols(q) {
		score += weightNoSymbols
	}
	if isTitleCased(q) || startsUpperNotShouting(q) {
		score += weightCasing
	}
	if len(tokens) >= minRankTokens && len(tokens) <= maxRankTokens {
		score += weightTokenRange
	}
	if p.commonness.Available() && p.hasCommonToken(tokens, p.scoringZipf) {
		score += weightCommonWord
	}
	if town.foundIn(q) || country.foundIn(q) {
		score += weightLocation
	}
	return score
}

// rank scores every candidate and sorts by descending score. Ties keep their
// insertion order.
func (p *Pipeline) rank(candidates []string, town, country locationHint) []ScoredCandidate {
	scored := make([]ScoredCandidate, 0, len(candidates))
	for _, q := range candidates {
		scored = append(scored, ScoredCandidate{Query: q, Score: p.score(q, town, country)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}
