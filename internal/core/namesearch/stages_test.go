package namesearch

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tadeyemo32/career26-vanguard/internal/core/similarity"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"nbsp collapsed", "  Foo  Bar  ", "Foo Bar"},
		{"fullwidth folded", "ＡＣＭＥ ＨＯＬＤＩＮＧＳ", "ACME HOLDINGS"},
		{"curly quotes", "“Quoted” Name", "Quoted Name"},
		{"ascii quotes", `"Alpha" 'Beta'`, "Alpha Beta"},
		{"control removed", "Tab\tName", "TabName"},
		{"edge punctuation", "!!!Acme Trading???", "Acme Trading"},
		{"underscore edges", "__Acme__", "Acme"},
		{"symbols only", "!!!???", ""},
		{"quotes only", `""''`, ""},
		{"non latin kept", "  Société Générale ", "Société Générale"},
		{"modifier apostrophe", "O\u02bcNeill \u2039Builders\u203a", "O Neill Builders"},
		{"cjk double primes", "\u301dAcme\u301e Trading\u301f", "Acme Trading"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestCanonicalOnlyTrims(t *testing.T) {
	require.Equal(t, "“Acme”  LTD", Canonical("  “Acme”  LTD \n"))
}

func TestIsQuote(t *testing.T) {
	for _, r := range `"'‘’‚‛“”„‟′″‴‵‶‷«»‹›〝〞〟ʼ❛❜❝❞❟` {
		require.True(t, IsQuote(r), "%q", r)
	}
	require.False(t, IsQuote('a'))
	require.False(t, IsQuote('&'))
}

func TestLegalSuffix(t *testing.T) {
	stripped, suffix := StripLegalSuffix("Acme Holdings Ltd.")
	require.Equal(t, "Acme Holdings", stripped)
	require.Equal(t, "Ltd.", suffix)

	stripped, suffix = StripLegalSuffix("Acme Holdings")
	require.Equal(t, "Acme Holdings", stripped)
	require.Empty(t, suffix)

	require.True(t, HasLegalSuffix("Acme limited"))
	require.True(t, HasLegalSuffix("North Star Corporation"))
	require.False(t, HasLegalSuffix("Limited Edition Prints"))
	require.False(t, HasLegalSuffix("LTD"))
}

func TestLegalVariants(t *testing.T) {
	require.Equal(t, []string{"XYZ MANAGEMENT LIMITED", "XYZ MANAGEMENT"}, LegalVariants("XYZ MANAGEMENT LIMITED"))
	require.Equal(t, []string{"Acme"}, LegalVariants("Acme"))
	require.Equal(t, []string{"LTD LTD"}, LegalVariants("LTD LTD"))
	require.Nil(t, LegalVariants("   "))
}

func TestIsSuffixToken(t *testing.T) {
	for _, s := range []string{"ltd", "LIMITED", " Plc ", "LLP", "lp", "CIC"} {
		require.True(t, IsSuffixToken(s), s)
	}
	require.False(t, IsSuffixToken("Ltd Co"))
}

func TestRemoveSymbols(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Alpha @ Beta!!", "Alpha Beta"},
		{"A&B (UK) Ltd.", "A&B (UK) Ltd"},
		{"(Alpha) Beta,", "Alpha) Beta"},
		{"Foo___Bar", "Foo Bar"},
		{"Alpha--Beta", "Alpha-Beta"},
		{"Alpha..Beta", "Alpha.Beta"},
		{"#1 Best*Cars", "1 Best Cars"},
		{"", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, RemoveSymbols(tc.in), tc.in)
	}
}

func TestHasUnsafeSymbols(t *testing.T) {
	require.False(t, HasUnsafeSymbols("A&B (Holdings), Co."))
	require.True(t, HasUnsafeSymbols("A@B"))
	require.True(t, HasUnsafeSymbols("Acme_Trading"))
}

func TestTokenize(t *testing.T) {
	require.Equal(t, []string{"Alpha", "Beta", "Trading"}, Tokenize("Alpha-Beta 42 Trading"))
	require.Empty(t, Tokenize("123 456"))
}

func TestValidateWithoutCommonness(t *testing.T) {
	p := New()
	cases := []struct {
		in     string
		ok     bool
		reason InvalidReason
	}{
		{"", false, InvalidEmpty},
		{"B", false, InvalidSingleLetter},
		{"123 456", false, InvalidNumericOnly},
		{"12.345.678", false, InvalidNumericOnly},
		{"ACME", false, InvalidTooFewTokens},
		{"Acme 123", false, InvalidTooFewTokens},
		{"Xqzv Blorft", true, ""},
		{"Acme Trading", true, ""},
	}
	for _, tc := range cases {
		ok, reason := p.Validate(tc.in)
		require.Equal(t, tc.ok, ok, tc.in)
		require.Equal(t, tc.reason, reason, tc.in)
	}
}

func TestValidateWithCommonness(t *testing.T) {
	p := withFrequencies()

	ok, reason := p.Validate("Xqzv Blorft")
	require.False(t, ok)
	require.Equal(t, InvalidNoCommonWord, reason)

	ok, _ = p.Validate("XQZV MANAGEMENT")
	require.True(t, ok)

	for _, name := range []string{"John Smith", "Tesco Plc", "Deloitte Llp", "Smith Sons"} {
		ok, reason = p.Validate(name)
		require.True(t, ok, "%s: %s", name, reason)
	}

	ok, _ = Default().Validate("Xqzv Blorft")
	require.True(t, ok)
}

func TestLooksLikeRegistrationNumber(t *testing.T) {
	require.True(t, looksLikeRegistrationNumber("0123 4567"))
	require.True(t, looksLikeRegistrationNumber("12.345"))
	require.False(t, looksLikeRegistrationNumber("1234"))
	require.False(t, looksLikeRegistrationNumber("SC123456"))
}

func TestHumanize(t *testing.T) {
	require.Equal(t, "Xyz Management", Humanize("XYZ MANAGEMENT"))
	require.Equal(t, "McLaren Group", Humanize("McLaren Group"))
	require.Equal(t, "Acme Holdings Ltd", Humanize("ACME HOLDINGS LTD"))
	require.Empty(t, Humanize(""))
	require.InDelta(t, 2.0/3.0, UpperRatio("ABc"), 0.0001)
	require.Zero(t, UpperRatio("123"))
}

func TestEnrichWithLocation(t *testing.T) {
	require.Equal(t, "Acme Trading London", EnrichWithLocation("Acme Trading", "LONDON", "UK"))
	require.Equal(t, "Acme Trading London France", EnrichWithLocation("Acme Trading", "LONDON", "FRANCE"))
	require.Equal(t, "Acme Trading France", EnrichWithLocation("Acme Trading", "", "FRANCE"))
	require.Equal(t, "Acme Trading", EnrichWithLocation("Acme Trading", "  ", "England"))
	require.Equal(t, "Acme Trading St Albans", EnrichWithLocation("Acme Trading", "“St Albans”", ""))
	require.Empty(t, EnrichWithLocation("", "London", ""))
}

func TestIsHomeNation(t *testing.T) {
	for _, c := range []string{"UK", " united kingdom ", "Great Britain", "Northern Ireland", "wales"} {
		require.True(t, IsHomeNation(c), c)
	}
	require.False(t, IsHomeNation("France"))
	require.False(t, IsHomeNation("Jersey"))
}

func TestScore(t *testing.T) {
	p := New()
	require.Equal(t, 8, p.Score("Alpha Beta", "", ""))
	require.Equal(t, 5, p.Score("ALPHA BETA LTD", "", ""))
	require.Equal(t, 9, p.Score("Alpha Beta London", "LONDON", ""))
	require.Equal(t, 9, p.Score("Alpha Beta Scotland", "", "SCOTLAND"))

	withFreq := withFrequencies()
	require.Equal(t, 10, withFreq.Score("Alpha Beta", "", ""))
}

func TestRankKeepsInsertionOrderOnTies(t *testing.T) {
	p := New()
	ranked := p.rank([]string{"Beta Gamma", "ALPHA LTD", "Alpha Beta"}, locationHint{}, locationHint{})
	require.Len(t, ranked, 3)
	require.Equal(t, "Beta Gamma", ranked[0].Query)
	require.Equal(t, "Alpha Beta", ranked[1].Query)
	require.Equal(t, "ALPHA LTD", ranked[2].Query)
}

func TestDedupe(t *testing.T) {
	fuzzy := New(WithSimilarity(similarity.NewMatcher()))
	require.Equal(t,
		[]string{"Alpha Beta Trading", "Other Name"},
		fuzzy.Dedupe([]string{"Alpha Beta Trading", "Alpha Beta Tradings", "Other Name"}),
	)
	require.Equal(t, []string{"Solo"}, fuzzy.Dedupe([]string{"Solo"}))

	exact := New()
	require.Equal(t,
		[]string{"Alpha Beta Trading", "Alpha Beta Tradings"},
		exact.Dedupe([]string{"Alpha Beta Trading", "Alpha Beta Tradings", "Alpha Beta Trading"}),
	)
}

func TestDedupeThreshold(t *testing.T) {
	strict := New(WithSimilarity(similarity.NewMatcher()), WithDedupThreshold(99))
	require.Len(t, strict.Dedupe([]string{"Alpha Beta Trading", "Alpha Beta Tradings"}), 2)

	ignored := New(WithDedupThreshold(150))
	require.Equal(t, DefaultDedupThreshold, ignored.dedupThreshold)
}

func TestNoSimilarity(t *testing.T) {
	var s NoSimilarity
	require.False(t, s.Available())
	require.Equal(t, 100.0, s.Ratio("a", "a"))
	require.Zero(t, s.Ratio("a", "b"))
}
