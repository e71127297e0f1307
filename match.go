package mukhtar

import "sort"

// match compares a stem against every pattern of the class and returns the
// fitting ones ranked by specificity (more fixed letters first). An empty
// result is a normal outcome, not an error.
//
// A pattern fits when the stem has exactly one letter per skeleton slot,
// every fixed slot equals the stem's base letter at that position, and every
// root slot is filled by an Arabic letter. The stem's harakat ride along on
// their base letters and do not affect alignment.
func (l *Lexicon) match(stem string, class WordClass) []PatternMatch {
	letters := GroupLetters(stem)

	var matches []PatternMatch
	for _, p := range l.ordered[class] {
		if m, ok := alignPattern(p, letters); ok {
			matches = append(matches, m)
		}
	}

	// Stable sort keeps declaration order between equally specific
	// patterns, so repeated calls return identical orderings.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Pattern.fixedCount > matches[j].Pattern.fixedCount
	})
	return matches
}

// alignPattern maps stem letters onto the pattern's slots and segments them
// into prefix-morph, root, intermediate and suffix-morph parts.
func alignPattern(p *Pattern, letters []string) (PatternMatch, bool) {
	if len(letters) != len(p.skeleton) {
		return PatternMatch{}, false
	}

	firstRoot, lastRoot := -1, -1
	for i, s := range p.skeleton {
		if s.root {
			if firstRoot < 0 {
				firstRoot = i
			}
			lastRoot = i
		}
	}

	var root, prefixMorph, intermediate, suffixMorph string
	for i, s := range p.skeleton {
		base := baseLetter(letters[i])
		if s.root {
			if !isArabicLetter(base) {
				return PatternMatch{}, false
			}
			root += letters[i]
			continue
		}
		if base != s.letter {
			return PatternMatch{}, false
		}
		switch {
		case i < firstRoot:
			prefixMorph += letters[i]
		case i > lastRoot:
			suffixMorph += letters[i]
		default:
			intermediate += letters[i]
		}
	}

	return PatternMatch{
		Pattern:      p,
		Root:         RemoveDiacritics(root),
		PrefixMorph:  prefixMorph,
		Intermediate: intermediate,
		SuffixMorph:  suffixMorph,
	}, true
}
