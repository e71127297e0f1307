package mukhtar

import "strings"

// validThreshold is the similarity ratio above which a reconstruction is
// considered to confirm its analysis.
const validThreshold = 0.8

// reconstruct rebuilds a surface word from a pattern match and its stripped
// affixes: root letters fill the root slots, fixed letters come from the
// pattern, and the affix literals are glued back on the outside.
func reconstruct(m PatternMatch, prefixes, suffixes []AffixRule) string {
	rootRunes := []rune(m.Root)
	next := 0

	var b strings.Builder
	for _, a := range prefixes {
		b.WriteString(a.Literal)
	}
	for _, s := range m.Pattern.skeleton {
		if s.root {
			if next < len(rootRunes) {
				b.WriteRune(rootRunes[next])
				next++
			}
			continue
		}
		b.WriteRune(s.letter)
	}
	for i := len(suffixes) - 1; i >= 0; i-- {
		b.WriteString(suffixes[i].Literal)
	}
	return b.String()
}

// similarity is the Levenshtein ratio between two diacritic-stripped words:
// 1 for identical strings, 0 for completely disjoint ones.
func similarity(a, b string) float64 {
	a = RemoveDiacritics(a)
	b = RemoveDiacritics(b)
	if a == b {
		return 1
	}
	ra, rb := []rune(a), []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 0
	}
	return 1 - float64(levenshtein(ra, rb))/float64(maxLen)
}

// levenshtein computes the edit distance between two rune slices with the
// usual two-row dynamic program.
func levenshtein(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i, ca := range a {
		curr[0] = i + 1
		for j, cb := range b {
			cost := 0
			if ca != cb {
				cost = 1
			}
			curr[j+1] = min3(prev[j+1]+1, curr[j]+1, prev[j]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
