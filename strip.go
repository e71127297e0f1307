package mukhtar

import "strings"

// strip removes recognized affixes from word and returns every viable
// stopping point as a StemCandidate, least-stripped first. The unstripped
// word is always the first candidate. At each step the longest applicable
// prefix is removed, then the longest applicable suffix; equal-length rules
// are broken by declaration order. Stripping stops when no rule applies or
// the stem would fall below the minimum-length floor.
func (l *Lexicon) strip(word string, class WordClass) []StemCandidate {
	current := StemCandidate{Stem: word}
	candidates := []StemCandidate{current}

	for {
		progressed := false

		if rule, ok := l.longestAffix(l.prefixes, current, class); ok {
			current = removeAffix(current, rule)
			candidates = append(candidates, current)
			progressed = true
		}
		if rule, ok := l.longestAffix(l.suffixes, current, class); ok {
			current = removeAffix(current, rule)
			candidates = append(candidates, current)
			progressed = true
		}

		if !progressed {
			return candidates
		}
	}
}

// longestAffix scans rules in declaration order and returns the longest one
// that matches the candidate's stem boundary, applies to the class, and
// leaves at least the minimum stem behind. Declaration order wins ties
// because the scan only replaces the best match on a strictly longer literal.
func (l *Lexicon) longestAffix(rules []AffixRule, sc StemCandidate, class WordClass) (AffixRule, bool) {
	var (
		best    AffixRule
		bestLen int
		found   bool
	)
	stemLen := len([]rune(sc.Stem))
	for _, rule := range rules {
		if !rule.appliesTo(class) {
			continue
		}
		litLen := len([]rune(rule.Literal))
		if litLen <= bestLen && found {
			continue
		}
		if rule.Position == Prefix && !strings.HasPrefix(sc.Stem, rule.Literal) {
			continue
		}
		if rule.Position == Suffix && !strings.HasSuffix(sc.Stem, rule.Literal) {
			continue
		}
		floor := rule.MinStem
		if floor == 0 {
			floor = l.minStem
		}
		if stemLen-litLen < floor {
			continue
		}
		best, bestLen, found = rule, litLen, true
	}
	return best, found
}

// removeAffix returns a new candidate with rule's literal cut from the stem
// and the rule recorded on the matching affix list. Earlier removals are
// outer affixes, so append keeps outermost-first order.
func removeAffix(sc StemCandidate, rule AffixRule) StemCandidate {
	next := StemCandidate{
		Prefixes: append([]AffixRule(nil), sc.Prefixes...),
		Suffixes: append([]AffixRule(nil), sc.Suffixes...),
	}
	if rule.Position == Prefix {
		next.Stem = strings.TrimPrefix(sc.Stem, rule.Literal)
		next.Prefixes = append(next.Prefixes, rule)
	} else {
		next.Stem = strings.TrimSuffix(sc.Stem, rule.Literal)
		next.Suffixes = append(next.Suffixes, rule)
	}
	return next
}
