package namesearch

import "strings"

// DefaultDedupThreshold is the similarity ratio at or above which two
// candidates count as near-duplicates.
const DefaultDedupThreshold = 90.0

// Dedupe walks candidates in rank order and drops any candidate whose similarity
// to an already kept one reaches the threshold. Without a similarity measure only
// exact duplicates are removed.
func (p *Pipeline) Dedupe(candidates []string) []string {
	if !p.similarity.Available() || len(candidates) <= 1 {
		return uniqueStrings(candidates)
	}

	kept := make([]string, 0, len(candidates))
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if p.nearDuplicate(c, kept) {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

func (p *Pipeline) nearDuplicate(c string, kept []string) bool {
	for _, k := range kept {
		if c == k || p.similarity.Ratio(c, k) >= p.dedupThreshold {
			return true
		}
	}
	return false
}
