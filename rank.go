package mukhtar

import "strings"

// extraLetters are the letters of increase (أحرف الزيادة) that distinguish
// derived patterns from the bare root; the set matches the original tool's
// heuristic list.
const extraLetters = "سأؤئءآإتمونيهىّا"

// countExtraLetters returns how many letters of increase the pattern carries.
func countExtraLetters(pattern string) int {
	n := 0
	for _, r := range pattern {
		if strings.ContainsRune(extraLetters, r) {
			n++
		}
	}
	return n
}

// scoreCandidate computes the heuristic score used as a secondary ranking
// key. The weights follow the original ranker: 20 points per letter of
// increase, 5 per present affix side, 10 when the pattern/word length ratio
// sits in the plausible window, and up to 20 for siblings matching the same
// pattern.
func scoreCandidate(pattern string, word string, hasPrefix, hasSuffix bool, samePattern int) float64 {
	score := float64(countExtraLetters(pattern)) * 20

	if hasPrefix {
		score += 5
	}
	if hasSuffix {
		score += 5
	}

	wordLen := len([]rune(word))
	if wordLen > 0 {
		ratio := float64(len([]rune(pattern))) / float64(wordLen)
		if ratio >= 0.7 && ratio <= 1.3 {
			score += 10
		}
	}

	bonus := float64(samePattern) * 2
	if bonus > 20 {
		bonus = 20
	}
	return score + bonus
}
