// Package loader parses the المختار الصرفي text-file databases (pattern
// lists with derived forms, affix lists and tag maps) into the
// record types consumed by mukhtar.NewLexicon. It is the file-reading
// collaborator the core deliberately does not contain.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/mukhtar-sarfi/mukhtar"
)

// Default file names inside a lexicon data directory.
const (
	NounPatternsFile = "nouns.txt"
	VerbPatternsFile = "verbs.txt"
	AffixesFile      = "affixes.txt"
	TagsFile         = "tags.txt"
)

// arabicComma separates derived forms in the weights files.
const arabicComma = "،"

// tagLineRe matches one tag-map line: "key" = "tag".
// Mirrors the original load_tags regex.
var tagLineRe = regexp.MustCompile(`^"([^"]+)"\s*=\s*"([^"]+)"$`)

// LoadDir reads the four database files from dir, builds the lexicon, and
// returns it. Missing affix or tag files are tolerated (empty rule sets);
// missing pattern files are not.
func LoadDir(dir string) (*mukhtar.Lexicon, error) {
	var (
		patterns    []mukhtar.Pattern
		conversions []mukhtar.ConversionRule
	)

	for _, pf := range []struct {
		name  string
		class mukhtar.WordClass
	}{
		{NounPatternsFile, mukhtar.Noun},
		{VerbPatternsFile, mukhtar.Verb},
	} {
		f, err := os.Open(filepath.Join(dir, pf.name))
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", pf.name, err)
		}
		ps, cs, err := ReadPatterns(f, pf.class)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", pf.name, err)
		}
		patterns = append(patterns, ps...)
		conversions = append(conversions, cs...)
	}

	affixes, err := readOptional(filepath.Join(dir, AffixesFile), ReadAffixes)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", AffixesFile, err)
	}
	tags, err := readOptional(filepath.Join(dir, TagsFile), ReadTags)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", TagsFile, err)
	}

	return mukhtar.NewLexicon(patterns, affixes, tags, conversions)
}

// readOptional parses path with parse, treating a missing file as empty.
func readOptional[T any](path string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parse(f)
}

// ReadPatterns parses a weights file for one class. Each line declares a
// pattern, optionally followed by derived (محوّلة) forms:
//
//	فاعل : مفعول، فواعل
//	مفعول
//	# comment
//
// Derived forms become directional conversion rules from the base pattern.
func ReadPatterns(r io.Reader, class mukhtar.WordClass) ([]mukhtar.Pattern, []mukhtar.ConversionRule, error) {
	var (
		patterns    []mukhtar.Pattern
		conversions []mukhtar.ConversionRule
	)

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		base, derived, hasDerived := strings.Cut(line, ":")
		base = strings.TrimSpace(base)
		if base == "" {
			return nil, nil, fmt.Errorf("line %d: missing pattern before ':'", lineNo)
		}
		patterns = append(patterns, mukhtar.Pattern{Canonical: base, Class: class})

		if !hasDerived {
			continue
		}
		for _, d := range strings.Split(derived, arabicComma) {
			d = strings.TrimSpace(d)
			if d == "" {
				continue
			}
			conversions = append(conversions, mukhtar.ConversionRule{From: base, To: d})
		}
	}
	return patterns, conversions, sc.Err()
}

// ReadAffixes parses an affix list. Each line is
//
//	prefix:ال
//	suffix:ون class=noun minstem=3
//
// with optional class= (comma-separated noun/verb, default both) and
// minstem= options. Declaration order is preserved; it is the documented
// tie-break between equal-length affixes.
func ReadAffixes(r io.Reader) ([]mukhtar.AffixRule, error) {
	var rules []mukhtar.AffixRule

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		kind, literal, ok := strings.Cut(fields[0], ":")
		if !ok || literal == "" {
			return nil, fmt.Errorf("line %d: want prefix:<literal> or suffix:<literal>", lineNo)
		}

		rule := mukhtar.AffixRule{Literal: literal}
		switch kind {
		case "prefix":
			rule.Position = mukhtar.Prefix
		case "suffix":
			rule.Position = mukhtar.Suffix
		default:
			return nil, fmt.Errorf("line %d: unknown affix kind %q", lineNo, kind)
		}

		for _, opt := range fields[1:] {
			key, val, ok := strings.Cut(opt, "=")
			if !ok {
				return nil, fmt.Errorf("line %d: malformed option %q", lineNo, opt)
			}
			switch key {
			case "class":
				classes, err := parseClasses(val)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				rule.Classes = classes
			case "minstem":
				n, err := strconv.Atoi(val)
				if err != nil || n < 1 {
					return nil, fmt.Errorf("line %d: bad minstem %q", lineNo, val)
				}
				rule.MinStem = n
			default:
				return nil, fmt.Errorf("line %d: unknown option %q", lineNo, key)
			}
		}
		rules = append(rules, rule)
	}
	return rules, sc.Err()
}

func parseClasses(val string) (mukhtar.WordClass, error) {
	var classes mukhtar.WordClass
	for _, name := range strings.Split(val, ",") {
		switch strings.TrimSpace(name) {
		case "noun":
			classes |= mukhtar.Noun
		case "verb":
			classes |= mukhtar.Verb
		default:
			return 0, fmt.Errorf("unknown word class %q", name)
		}
	}
	return classes, nil
}

// ReadTags parses the tag map. Each line is
//
//	"فاعل" = "اسم فاعل"
//	"فاعل@ال|" = "اسم فاعل معرف"
//
// where the key is a pattern, optionally qualified by an affix signature
// after '@' (the signature format produced by StemCandidate.AffixSignature).
func ReadTags(r io.Reader) ([]mukhtar.TagEntry, error) {
	var entries []mukhtar.TagEntry

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		m := tagLineRe.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf(`line %d: want "<pattern>" = "<tag>"`, lineNo)
		}
		pattern, signature, _ := strings.Cut(m[1], "@")
		entries = append(entries, mukhtar.TagEntry{
			Pattern:        pattern,
			AffixSignature: signature,
			Tag:            m[2],
		})
	}
	return entries, sc.Err()
}
