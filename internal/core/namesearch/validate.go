package namesearch

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// InvalidReason explains why a candidate failed the validation gate.
type InvalidReason string

const (
	InvalidEmpty           InvalidReason = "empty"
	InvalidSingleLetter    InvalidReason = "single_letter"
	InvalidNumericOnly     InvalidReason = "numeric_only"
	InvalidLooksLikeNumber InvalidReason = "looks_like_number"
	InvalidTooFewTokens    InvalidReason = "too_few_tokens"
	InvalidNoCommonWord    InvalidReason = "no_common_word"
)

const (
	minAlphaTokens        = 2
	registrationNumberLen = 5
)

// Tokenize splits s on anything that is not a letter, mark or digit and keeps
// the tokens that contain at least one letter.
func Tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return !isWordRune(r) })
	tokens := fields[:0]
	for _, f := range fields {
		if strings.IndexFunc(f, unicode.IsLetter) >= 0 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Validate decides whether s is plausible as a human-readable company name.
func (p *Pipeline) Validate(s string) (bool, InvalidReason) {
	s = strings.TrimSpace(s)
	if s == "" {
		return false, InvalidEmpty
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		if unicode.IsLetter(r) {
			return false, InvalidSingleLetter
		}
	}
	if isNumericOnly(s) {
		return false, InvalidNumericOnly
	}
	if looksLikeRegistrationNumber(s) {
		return false, InvalidLooksLikeNumber
	}

	tokens := Tokenize(s)
	if len(tokens) < minAlphaTokens {
		return false, InvalidTooFewTokens
	}
	// Without a frequency source this check is skipped, which admits two-token
	// gibberish. Known gap; see DESIGN.md.
	if p.commonness.Available() && !p.hasCommonToken(tokens, p.minCommonZipf) {
		return false, InvalidNoCommonWord
	}
	return true, ""
}

func (p *Pipeline) hasCommonToken(tokens []string, threshold float64) bool {
	for _, t := range tokens {
		if t == "" {
			continue
		}
		if p.commonness.Zipf(strings.ToLower(t)) >= threshold {
			return true
		}
	}
	return false
}

// isNumericOnly reports strings made only of digits, spaces and punctuation.
func isNumericOnly(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) || unicode.IsSpace(r) || unicode.IsPunct(r) {
			continue
		}
		return false
	}
	return true
}

// looksLikeRegistrationNumber reports a bare digit run of five or more once
// spaces and periods are removed.
func looksLikeRegistrationNumber(s string) bool {
	compact := strings.NewReplacer(" ", "", ".", "").Replace(s)
	if utf8.RuneCountInString(compact) < registrationNumberLen {
		return false
	}
	for _, r := range compact {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
