package mukhtar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stripLexicon(t *testing.T, affixes []AffixRule) *Lexicon {
	t.Helper()
	lex, err := NewLexicon(
		[]Pattern{{Canonical: "فاعل", Class: Noun}},
		affixes, nil, nil,
	)
	require.NoError(t, err)
	return lex
}

func TestStripNoApplicableRules(t *testing.T) {
	// With zero applicable affix rules the candidate set is exactly the
	// unstripped word.
	lex := stripLexicon(t, nil)

	got := lex.strip("كاتب", Noun)
	require.Len(t, got, 1)
	assert.Equal(t, "كاتب", got[0].Stem)
	assert.Empty(t, got[0].Prefixes)
	assert.Empty(t, got[0].Suffixes)
	assert.Equal(t, 0, got[0].StripLen())
	assert.Equal(t, "", got[0].AffixSignature())
}

func TestStripAllStoppingPoints(t *testing.T) {
	lex := stripLexicon(t, []AffixRule{
		{Literal: "ال", Position: Prefix},
		{Literal: "و", Position: Prefix},
		{Literal: "ون", Position: Suffix},
	})

	got := lex.strip("والكاتبون", Noun)
	stems := make([]string, len(got))
	for i, sc := range got {
		stems[i] = sc.Stem
	}
	// Least-stripped first; every intermediate stem is a candidate.
	assert.Equal(t, []string{"والكاتبون", "الكاتبون", "الكاتب", "كاتب"}, stems)
}

func TestStripLengthConservation(t *testing.T) {
	lex := stripLexicon(t, []AffixRule{
		{Literal: "ال", Position: Prefix},
		{Literal: "و", Position: Prefix},
		{Literal: "ون", Position: Suffix},
		{Literal: "ات", Position: Suffix},
	})

	for _, word := range []string{"والكاتبون", "الكاتبات", "كاتب", "والكاتب"} {
		total := len([]rune(word))
		for _, sc := range lex.strip(word, Noun) {
			assert.Equal(t, total, sc.StripLen()+len([]rune(sc.Stem)),
				"word %q stem %q: no characters may be lost or duplicated", word, sc.Stem)
		}
	}
}

func TestStripLongestMatchFirst(t *testing.T) {
	// Both ا and ال match at the front of الكاتب; the longer rule must
	// win even though the shorter one is declared first.
	lex := stripLexicon(t, []AffixRule{
		{Literal: "ا", Position: Prefix},
		{Literal: "ال", Position: Prefix},
	})

	got := lex.strip("الكاتب", Noun)
	require.Len(t, got, 2)
	assert.Equal(t, "كاتب", got[1].Stem)
	assert.Equal(t, "ال", got[1].Prefixes[0].Literal)
}

func TestStripDeclarationOrderTieBreak(t *testing.T) {
	// Two rules with the same literal: the first-declared one is used.
	// Observable through MinStem: the first rule permits the strip.
	lex := stripLexicon(t, []AffixRule{
		{Literal: "ال", Position: Prefix, MinStem: 3},
		{Literal: "ال", Position: Prefix, MinStem: 6},
	})

	got := lex.strip("الكاتب", Noun)
	require.Len(t, got, 2)
	assert.Equal(t, "كاتب", got[1].Stem)
	assert.Equal(t, 3, got[1].Prefixes[0].MinStem)
}

func TestStripRespectsMinStemFloor(t *testing.T) {
	lex := stripLexicon(t, []AffixRule{
		{Literal: "ب", Position: Prefix},
		{Literal: "ال", Position: Prefix},
	})

	// بال → ال is allowed (2 ≥ default floor), but stripping ال from the
	// remaining 2-letter stem would leave nothing, so it stops there.
	got := lex.strip("بال", Noun)
	stems := make([]string, len(got))
	for i, sc := range got {
		stems[i] = sc.Stem
	}
	assert.Equal(t, []string{"بال", "ال"}, stems)
}

func TestStripClassFilter(t *testing.T) {
	lex := stripLexicon(t, []AffixRule{
		{Literal: "ال", Position: Prefix, Classes: Noun},
	})

	asNoun := lex.strip("الكاتب", Noun)
	asVerb := lex.strip("الكاتب", Verb)

	assert.Len(t, asNoun, 2)
	assert.Len(t, asVerb, 1, "a noun-only rule must not strip in verb analysis")
}

func TestAffixSignature(t *testing.T) {
	tests := []struct {
		name string
		sc   StemCandidate
		want string
	}{
		{"no affixes", StemCandidate{Stem: "كاتب"}, ""},
		{
			"prefix only",
			StemCandidate{Stem: "كاتب", Prefixes: []AffixRule{{Literal: "ال"}}},
			"ال|",
		},
		{
			"suffix only",
			StemCandidate{Stem: "كاتب", Suffixes: []AffixRule{{Literal: "ون"}}},
			"|ون",
		},
		{
			"both sides",
			StemCandidate{
				Stem:     "كاتب",
				Prefixes: []AffixRule{{Literal: "و"}, {Literal: "ال"}},
				Suffixes: []AffixRule{{Literal: "ون"}},
			},
			"و+ال|ون",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sc.AffixSignature())
		})
	}
}
