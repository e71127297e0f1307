package mukhtar

import "strings"

// StemCandidate is one stopping point of the affix stripper: the remaining
// stem plus the affixes removed to reach it.
type StemCandidate struct {
	// Stem is the remaining text after stripping.
	Stem string
	// Prefixes lists removed prefix rules, outermost first.
	Prefixes []AffixRule
	// Suffixes lists removed suffix rules, outermost first.
	Suffixes []AffixRule
}

// StripLen is the total number of runes removed from the original word.
func (sc StemCandidate) StripLen() int {
	n := 0
	for _, a := range sc.Prefixes {
		n += len([]rune(a.Literal))
	}
	for _, a := range sc.Suffixes {
		n += len([]rune(a.Literal))
	}
	return n
}

// AffixSignature is the key used for affix-specific tag entries: prefix
// literals joined by "+", a "|" separator, then suffix literals joined by
// "+". A candidate with no affixes has the empty signature, which is also
// the pattern-only tag key.
func (sc StemCandidate) AffixSignature() string {
	if len(sc.Prefixes) == 0 && len(sc.Suffixes) == 0 {
		return ""
	}
	pre := make([]string, len(sc.Prefixes))
	for i, a := range sc.Prefixes {
		pre[i] = a.Literal
	}
	suf := make([]string, len(sc.Suffixes))
	for i, a := range sc.Suffixes {
		suf[i] = a.Literal
	}
	return strings.Join(pre, "+") + "|" + strings.Join(suf, "+")
}

// PatternMatch is one pattern that fits a stem, with the stem segmented
// against the pattern's slots.
type PatternMatch struct {
	// Pattern is the matched template.
	Pattern *Pattern
	// Root holds the stem letters occupying root slots.
	Root string
	// PrefixMorph holds fixed-slot letters before the first root slot
	// (e.g. the م of مفعول).
	PrefixMorph string
	// Intermediate holds fixed-slot letters between the first and last
	// root slots (e.g. the ا of فاعل).
	Intermediate string
	// SuffixMorph holds fixed-slot letters after the last root slot.
	SuffixMorph string
}

// TagUnknown is the classification outcome when no tag entry covers a
// (pattern, affix signature) combination. It is a result state, not an error.
const TagUnknown = "unknown"

// Candidate is one ranked decomposition of the analyzed word.
type Candidate struct {
	// Stem is the stripped stem the pattern matched against.
	Stem string `json:"stem"`
	// Prefixes and Suffixes are the removed affix literals, outermost first.
	Prefixes []string `json:"prefixes,omitempty"`
	Suffixes []string `json:"suffixes,omitempty"`
	// Pattern is the canonical form of the matched pattern.
	Pattern string `json:"pattern"`
	// Root is the extracted root-letter sequence.
	Root string `json:"root"`
	// Intermediate holds the pattern's extra letters inside the root span.
	Intermediate string `json:"intermediate,omitempty"`
	// Tag is the grammatical tag, or TagUnknown.
	Tag string `json:"tag"`
	// Specificity is the matched pattern's fixed-letter count.
	Specificity int `json:"specificity"`
	// StripLen is the number of runes the stripper removed.
	StripLen int `json:"strip_len"`
	// Score is the secondary ranking score (see rank.go).
	Score float64 `json:"score"`
	// Reconstructed is the word rebuilt from root, pattern and affixes.
	Reconstructed string `json:"reconstructed"`
	// Similarity is the Levenshtein ratio between the normalized word and
	// Reconstructed, in [0,1].
	Similarity float64 `json:"similarity"`
	// Valid reports whether Similarity clears the validation threshold.
	Valid bool `json:"valid"`
}

// AnalysisResult is the full outcome of analyzing one word. Matched is the
// explicit no-match marker: when it is false, Candidates is empty.
type AnalysisResult struct {
	// Word is the original input.
	Word string `json:"word"`
	// Normalized is the input after Normalize.
	Normalized string `json:"normalized"`
	// Class is the word class the analysis ran against.
	Class WordClass `json:"-"`
	// Matched reports whether at least one (stem, pattern) pair matched.
	Matched bool `json:"matched"`
	// Candidates is ordered best-first (see sortCandidates).
	Candidates []Candidate `json:"candidates,omitempty"`
}

// Best returns the top-ranked candidate, or nil when nothing matched.
func (r *AnalysisResult) Best() *Candidate {
	if !r.Matched || len(r.Candidates) == 0 {
		return nil
	}
	return &r.Candidates[0]
}
