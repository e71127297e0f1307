package mukhtar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLexicon builds a small noun/verb lexicon used across the engine tests:
// the agent pattern فاعل with a one-way conversion to مفعول, plus a handful
// of common affixes.
func testLexicon(t *testing.T) *Lexicon {
	t.Helper()
	lex, err := NewLexicon(
		[]Pattern{
			{Canonical: "فاعل", Class: Noun},
			{Canonical: "مفعول", Class: Noun},
			{Canonical: "فعل", Class: Verb},
			{Canonical: "استفعل", Class: Verb},
		},
		[]AffixRule{
			{Literal: "ال", Position: Prefix, Classes: Noun},
			{Literal: "و", Position: Prefix},
			{Literal: "ون", Position: Suffix, Classes: Noun},
			{Literal: "ات", Position: Suffix, Classes: Noun},
		},
		[]TagEntry{
			{Pattern: "فاعل", Tag: "اسم فاعل"},
			{Pattern: "فاعل", AffixSignature: "ال|", Tag: "اسم فاعل معرف"},
			{Pattern: "مفعول", Tag: "اسم مفعول"},
		},
		[]ConversionRule{
			{From: "فاعل", To: "مفعول"},
		},
	)
	require.NoError(t, err)
	return lex
}

func TestAnalyzeKatib(t *testing.T) {
	// كاتب with no applicable affixes must match فاعل with zero affixes
	// stripped, rank it first, and carry the pattern-only tag.
	eng := NewEngine(testLexicon(t))

	res, err := eng.Analyze("كاتب", Noun)
	require.NoError(t, err)
	require.True(t, res.Matched)
	require.NotEmpty(t, res.Candidates)

	best := res.Best()
	require.NotNil(t, best)
	assert.Equal(t, "فاعل", best.Pattern)
	assert.Equal(t, "كتب", best.Root)
	assert.Equal(t, "ا", best.Intermediate)
	assert.Empty(t, best.Prefixes)
	assert.Empty(t, best.Suffixes)
	assert.Equal(t, 0, best.StripLen)
	assert.Equal(t, "اسم فاعل", best.Tag)
	assert.Equal(t, "كاتب", best.Reconstructed)
	assert.Equal(t, 1.0, best.Similarity)
	assert.True(t, best.Valid)
}

func TestAnalyzeStripsAffixes(t *testing.T) {
	eng := NewEngine(testLexicon(t))

	res, err := eng.Analyze("والكاتبون", Noun)
	require.NoError(t, err)
	require.True(t, res.Matched)

	best := res.Best()
	require.NotNil(t, best)
	assert.Equal(t, "كاتب", best.Stem)
	assert.Equal(t, "فاعل", best.Pattern)
	assert.Equal(t, []string{"و", "ال"}, best.Prefixes)
	assert.Equal(t, []string{"ون"}, best.Suffixes)
	assert.Equal(t, 5, best.StripLen)
}

func TestAnalyzeAffixSpecificTagOverrides(t *testing.T) {
	eng := NewEngine(testLexicon(t))

	res, err := eng.Analyze("الكاتب", Noun)
	require.NoError(t, err)
	best := res.Best()
	require.NotNil(t, best)
	assert.Equal(t, []string{"ال"}, best.Prefixes)
	assert.Equal(t, "اسم فاعل معرف", best.Tag,
		"the (pattern, affix) entry must override the pattern-only tag")
}

func TestAnalyzeNoMatchIsNotAnError(t *testing.T) {
	eng := NewEngine(testLexicon(t))

	res, err := eng.Analyze("بحر", Noun) // 3 letters, no 3-letter noun pattern
	require.NoError(t, err)
	assert.False(t, res.Matched)
	assert.Empty(t, res.Candidates)
	assert.Nil(t, res.Best())
}

func TestAnalyzeInvalidInput(t *testing.T) {
	eng := NewEngine(testLexicon(t))

	for _, word := range []string{"", "   ", "\t\n"} {
		_, err := eng.Analyze(word, Noun)
		assert.ErrorIs(t, err, ErrInvalidInput, "word %q", word)
	}

	_, err := eng.Analyze("كاتب", WordClass(0))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAnalyzeUnknownTag(t *testing.T) {
	// استفعل has no tag entry at all.
	eng := NewEngine(testLexicon(t))

	res, err := eng.Analyze("استكتب", Verb)
	require.NoError(t, err)
	require.True(t, res.Matched)
	assert.Equal(t, "استفعل", res.Best().Pattern)
	assert.Equal(t, TagUnknown, res.Best().Tag)
}

func TestAnalyzeNormalizesInput(t *testing.T) {
	eng := NewEngine(testLexicon(t))

	// Diacritized input must analyze like its bare form.
	res, err := eng.Analyze("كَاتِب", Noun)
	require.NoError(t, err)
	require.True(t, res.Matched)
	assert.Equal(t, "كاتب", res.Normalized)
	assert.Equal(t, "فاعل", res.Best().Pattern)
}

func TestConvertPatternDirectional(t *testing.T) {
	eng := NewEngine(testLexicon(t))

	assert.Equal(t, []string{"مفعول"}, eng.ConvertPattern("فاعل", "مفعول"))
	assert.Equal(t, []string{"مفعول"}, eng.ConvertPattern("فاعل", ""))
	// No reverse rule was declared: not convertible, not an error.
	assert.Empty(t, eng.ConvertPattern("مفعول", "فاعل"))
	assert.Empty(t, eng.ConvertPattern("مفعول", ""))
}

func TestCacheIdempotence(t *testing.T) {
	eng := NewEngine(testLexicon(t))

	first, err := eng.Analyze("كاتب", Noun)
	require.NoError(t, err)
	second, err := eng.Analyze("كاتب", Noun)
	require.NoError(t, err)

	assert.Same(t, first, second, "a cache hit returns the stored result unchanged")

	stats := eng.CacheStats()
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
}

func TestCacheKeyIncludesClass(t *testing.T) {
	eng := NewEngine(testLexicon(t))

	_, err := eng.Analyze("كاتب", Noun)
	require.NoError(t, err)
	_, err = eng.Analyze("كاتب", Verb)
	require.NoError(t, err)

	assert.Equal(t, 2, eng.CacheStats().Size)
}

func TestReloadClearsCache(t *testing.T) {
	eng := NewEngine(testLexicon(t))

	_, err := eng.Analyze("كاتب", Noun)
	require.NoError(t, err)
	before := eng.CacheStats()

	eng.Reload(testLexicon(t))

	_, err = eng.Analyze("كاتب", Noun)
	require.NoError(t, err)
	after := eng.CacheStats()

	assert.Equal(t, before.Misses+1, after.Misses,
		"a previously cached word must recompute after reload")
}

func TestClearCache(t *testing.T) {
	eng := NewEngine(testLexicon(t))

	_, err := eng.Analyze("كاتب", Noun)
	require.NoError(t, err)
	assert.Equal(t, 1, eng.CacheStats().Size)

	eng.ClearCache()
	assert.Equal(t, 0, eng.CacheStats().Size)
}

func TestAnalyzeAll(t *testing.T) {
	eng := NewEngine(testLexicon(t))

	words := []string{"كاتب", "", "مكتوب", "الكاتب"}
	results := eng.AnalyzeAll(words, Noun)
	require.Len(t, results, len(words))

	assert.Equal(t, "فاعل", results[0].Best().Pattern)
	assert.Nil(t, results[1], "invalid input yields a nil slot")
	assert.Equal(t, "مفعول", results[2].Best().Pattern)
	assert.Equal(t, "فاعل", results[3].Best().Pattern)
}

func TestAnalyzeRankingIsStable(t *testing.T) {
	eng := NewEngine(testLexicon(t))

	first, err := eng.Analyze("والكاتبون", Noun)
	require.NoError(t, err)

	eng.ClearCache()
	second, err := eng.Analyze("والكاتبون", Noun)
	require.NoError(t, err)

	assert.Equal(t, first.Candidates, second.Candidates,
		"repeated analyses must rank candidates identically")
}
