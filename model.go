package mukhtar

import (
	"fmt"
	"sort"
	"strings"
)

// WordClass identifies the grammatical class a pattern or affix applies to.
// Values are bit flags so an AffixRule can apply to several classes at once.
type WordClass uint8

const (
	// Noun covers the nominal patterns (أوزان الأسماء).
	Noun WordClass = 1 << iota
	// Verb covers the verbal patterns (أوزان الأفعال).
	Verb
)

// String returns the lowercase class name used in loader files and the API.
func (c WordClass) String() string {
	switch c {
	case Noun:
		return "noun"
	case Verb:
		return "verb"
	case Noun | Verb:
		return "noun|verb"
	default:
		return "unknown"
	}
}

// contains reports whether c includes class k.
func (c WordClass) contains(k WordClass) bool {
	return c&k != 0
}

// AffixPosition distinguishes prefixes from suffixes.
type AffixPosition uint8

const (
	Prefix AffixPosition = iota + 1
	Suffix
)

// String returns "prefix" or "suffix".
func (p AffixPosition) String() string {
	if p == Prefix {
		return "prefix"
	}
	return "suffix"
}

// rootIndicators are the template letters that mark root slots in a pattern.
// ف marks the first root consonant, ع the second, ل the third (and fourth,
// repeated, for quadriliteral patterns such as فعلل).
const rootIndicators = "فعل"

// slot is one position of a pattern skeleton: either a fixed letter or a
// root-letter slot.
type slot struct {
	letter rune // fixed letter; undefined when root is true
	root   bool
}

// Pattern is an immutable templatic skeleton (وزن) for one word class.
// Canonical is its unique key within the class, e.g. "فاعل" or "مفعول".
type Pattern struct {
	// Canonical is the pattern string as declared in the pattern database.
	Canonical string
	// Class is the part-of-speech class this pattern belongs to.
	Class WordClass

	// skeleton is derived from Canonical by newLexicon: one slot per
	// base letter, diacritics removed.
	skeleton []slot
	// fixedCount is the number of non-root slots; higher means a more
	// specific pattern.
	fixedCount int
	// order is the declaration index within the class, used as the
	// deterministic tie-break for equally specific patterns.
	order int
}

// Specificity returns the number of fixed (non-root) letters in the pattern.
func (p *Pattern) Specificity() int { return p.fixedCount }

// Len returns the number of skeleton slots (base letters) in the pattern.
func (p *Pattern) Len() int { return len(p.skeleton) }

// buildSkeleton derives the slot sequence from the canonical form.
// Diacritics on the canonical form are ignored: the skeleton aligns base
// letters only, mirroring how the original tool compared template letters
// against diacritic-grouped target letters.
func buildSkeleton(canonical string) ([]slot, int) {
	var (
		slots []slot
		fixed int
	)
	for _, r := range canonical {
		if strings.ContainsRune(rootIndicators, r) {
			slots = append(slots, slot{root: true})
			continue
		}
		slots = append(slots, slot{letter: r})
		fixed++
	}
	return slots, fixed
}

// AffixRule is a prefix or suffix literal with the classes it applies to and
// an optional minimum remaining-stem length.
type AffixRule struct {
	// Literal is the affix text, e.g. "ال" or "ون".
	Literal string
	// Position tells whether Literal attaches at the front or the back.
	Position AffixPosition
	// Classes is the set of word classes the rule applies to.
	// Zero means both classes (loader default).
	Classes WordClass
	// MinStem is the minimum number of base letters that must remain in
	// the stem after this affix is removed. Zero means the lexicon-wide
	// floor applies.
	MinStem int

	// order is the declaration index, the documented tie-break between
	// equal-length affixes.
	order int
}

// appliesTo reports whether the rule may strip from a word of class c.
func (a AffixRule) appliesTo(c WordClass) bool {
	return a.Classes == 0 || a.Classes.contains(c)
}

// TagEntry maps a pattern (optionally qualified by an affix signature) to a
// grammatical tag. An empty AffixSignature makes this the pattern-only
// fallback entry.
type TagEntry struct {
	Pattern        string
	AffixSignature string
	Tag            string
}

// ConversionRule rewrites one pattern representation into an alternate form
// (قلب). Rules are directional: From→To does not imply To→From.
type ConversionRule struct {
	From string
	To   string
}

// tagKey is the lookup key for the two-level tag classification.
type tagKey struct {
	pattern   string
	signature string
}

// defaultMinStem is the lexicon-wide floor on remaining stem length during
// affix stripping. Arabic stems below two base letters carry no usable
// skeleton.
const defaultMinStem = 2

// Lexicon is the immutable, loaded-once store of patterns, affix rules, tag
// entries and conversion rules. It is never mutated after NewLexicon returns;
// the engine swaps whole Lexicon values on reload.
type Lexicon struct {
	// patterns maps class → canonical form → pattern.
	patterns map[WordClass]map[string]*Pattern
	// ordered holds each class's patterns in declaration order.
	ordered map[WordClass][]*Pattern

	// prefixes and suffixes keep their declaration order; longest-match
	// scanning walks these slices directly.
	prefixes []AffixRule
	suffixes []AffixRule

	tags        map[tagKey]string
	conversions map[string][]string

	minStem int
}

// LoadError reports a referential-integrity violation or a malformed record
// handed to NewLexicon.
type LoadError struct {
	// Record describes the offending record (pattern form, affix literal,
	// tag key or conversion source).
	Record string
	// Reason is a short description of the violation.
	Reason string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("lexicon load: %s: %s", e.Record, e.Reason)
}

// LexiconOption adjusts lexicon construction.
type LexiconOption func(*Lexicon)

// WithMinStem overrides the default minimum-stem floor used by the affix
// stripper.
func WithMinStem(n int) LexiconOption {
	return func(l *Lexicon) {
		if n > 0 {
			l.minStem = n
		}
	}
}

// NewLexicon builds an immutable Lexicon from pre-parsed records and
// validates referential integrity. It returns a *LoadError when a pattern is
// duplicated within its class, an affix literal is empty, a tag entry or a
// conversion rule references a pattern that was not declared, or a pattern
// has no root slot.
func NewLexicon(patterns []Pattern, affixes []AffixRule, tags []TagEntry, conversions []ConversionRule, opts ...LexiconOption) (*Lexicon, error) {
	lex := &Lexicon{
		patterns:    make(map[WordClass]map[string]*Pattern),
		ordered:     make(map[WordClass][]*Pattern),
		tags:        make(map[tagKey]string),
		conversions: make(map[string][]string),
		minStem:     defaultMinStem,
	}
	for _, opt := range opts {
		opt(lex)
	}

	// All record text is normalized on load (the original tool ran its
	// Quranic normalization over every weight before use), so the engine
	// always compares normalized forms against normalized input.
	for i := range patterns {
		p := patterns[i] // copy; the caller's slice stays untouched
		p.Canonical = Normalize(p.Canonical)
		if strings.TrimSpace(p.Canonical) == "" {
			return nil, &LoadError{Record: "pattern", Reason: "empty canonical form"}
		}
		if p.Class != Noun && p.Class != Verb {
			return nil, &LoadError{Record: p.Canonical, Reason: "pattern class must be noun or verb"}
		}
		p.skeleton, p.fixedCount = buildSkeleton(p.Canonical)
		if p.fixedCount == len(p.skeleton) {
			return nil, &LoadError{Record: p.Canonical, Reason: "pattern has no root-letter slot"}
		}
		byForm := lex.patterns[p.Class]
		if byForm == nil {
			byForm = make(map[string]*Pattern)
			lex.patterns[p.Class] = byForm
		}
		if _, dup := byForm[p.Canonical]; dup {
			return nil, &LoadError{Record: p.Canonical, Reason: "duplicate pattern within class " + p.Class.String()}
		}
		p.order = len(lex.ordered[p.Class])
		byForm[p.Canonical] = &p
		lex.ordered[p.Class] = append(lex.ordered[p.Class], &p)
	}

	for i, a := range affixes {
		a.Literal = Normalize(a.Literal)
		if a.Literal == "" {
			return nil, &LoadError{Record: a.Position.String(), Reason: "empty affix literal"}
		}
		if a.Position != Prefix && a.Position != Suffix {
			return nil, &LoadError{Record: a.Literal, Reason: "affix position must be prefix or suffix"}
		}
		a.order = i
		if a.Position == Prefix {
			lex.prefixes = append(lex.prefixes, a)
		} else {
			lex.suffixes = append(lex.suffixes, a)
		}
	}

	for _, t := range tags {
		t.Pattern = Normalize(t.Pattern)
		t.AffixSignature = Normalize(t.AffixSignature)
		if t.Pattern == "" || t.Tag == "" {
			return nil, &LoadError{Record: t.Pattern, Reason: "tag entry needs a pattern and a tag"}
		}
		if !lex.hasPattern(t.Pattern) {
			return nil, &LoadError{Record: t.Pattern, Reason: "tag entry references unknown pattern"}
		}
		lex.tags[tagKey{pattern: t.Pattern, signature: t.AffixSignature}] = t.Tag
	}

	for _, c := range conversions {
		c.From = Normalize(c.From)
		c.To = Normalize(c.To)
		if c.From == "" || c.To == "" {
			return nil, &LoadError{Record: c.From, Reason: "conversion rule needs source and target forms"}
		}
		// The source must be a declared pattern; the target may be an
		// alias written form that is not itself analyzable.
		if !lex.hasPattern(c.From) {
			return nil, &LoadError{Record: c.From, Reason: "conversion rule references unknown source pattern"}
		}
		lex.conversions[c.From] = append(lex.conversions[c.From], c.To)
	}

	return lex, nil
}

// hasPattern reports whether canonical is declared in any class.
func (l *Lexicon) hasPattern(canonical string) bool {
	for _, byForm := range l.patterns {
		if _, ok := byForm[canonical]; ok {
			return true
		}
	}
	return false
}

// PatternsOf returns the class's patterns in declaration order.
func (l *Lexicon) PatternsOf(c WordClass) []*Pattern {
	return l.ordered[c]
}

// Pattern looks up a pattern by class and canonical form.
func (l *Lexicon) Pattern(c WordClass, canonical string) *Pattern {
	return l.patterns[c][canonical]
}

// Conversions returns a copy of the ordered target forms declared for the
// given source pattern.
func (l *Lexicon) Conversions(from string) []string {
	out := make([]string, len(l.conversions[from]))
	copy(out, l.conversions[from])
	return out
}

// Stats summarizes the lexicon contents, mostly for logging by callers.
func (l *Lexicon) Stats() string {
	var classes []string
	for c, byForm := range l.patterns {
		classes = append(classes, fmt.Sprintf("%s=%d", c, len(byForm)))
	}
	sort.Strings(classes)
	return fmt.Sprintf("patterns[%s] prefixes=%d suffixes=%d tags=%d conversions=%d",
		strings.Join(classes, " "), len(l.prefixes), len(l.suffixes), len(l.tags), len(l.conversions))
}
