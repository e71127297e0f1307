// Package mukhtar provides Arabic templatic-pattern morphological analysis:
// given a surface word it strips recognized affixes, matches the remaining
// stem against the pattern (وزن) database, extracts the root, assigns a
// grammatical tag, and converts patterns between alternate written forms.
// It reimplements the core of the المختار الصرفي desktop application as a
// plain library: the lexicon arrives pre-parsed (see the loader package),
// and the engine never touches files or UI.
package mukhtar

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// ErrInvalidInput is returned by Analyze for empty or whitespace-only words
// and for an unrecognized word class. "No match" is never an error.
var ErrInvalidInput = errors.New("invalid input")

// Engine orchestrates stripping, matching, classification, conversion and
// caching over an immutable lexicon snapshot. All methods are safe for
// concurrent use: readers work against the snapshot they loaded, and Reload
// swaps the snapshot atomically.
type Engine struct {
	lex   atomic.Pointer[Lexicon]
	cache *analysisCache
}

// Option adjusts engine construction.
type Option func(*engineConfig)

type engineConfig struct {
	cacheSize int
}

// WithCacheSize bounds the analysis cache at n entries.
func WithCacheSize(n int) Option {
	return func(c *engineConfig) { c.cacheSize = n }
}

// NewEngine returns an engine serving the given lexicon.
func NewEngine(lex *Lexicon, opts ...Option) *Engine {
	cfg := engineConfig{cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	e := &Engine{cache: newAnalysisCache(cfg.cacheSize)}
	e.lex.Store(lex)
	return e
}

// Lexicon returns the currently active lexicon snapshot.
func (e *Engine) Lexicon() *Lexicon {
	return e.lex.Load()
}

// Reload atomically swaps in a new lexicon and clears the analysis cache.
// Analyses already in flight finish against the snapshot they started with.
func (e *Engine) Reload(lex *Lexicon) {
	if lex == nil {
		return
	}
	e.lex.Store(lex)
	e.cache.purge()
}

// ClearCache drops every cached analysis result.
func (e *Engine) ClearCache() {
	e.cache.purge()
}

// CacheStats reports the cache size and cumulative hit/miss counts.
func (e *Engine) CacheStats() CacheStats {
	return e.cache.stats()
}

// ConvertPattern returns the alternate written forms reachable from pattern
// through the loaded conversion rules. An empty target returns all declared
// alternates; a non-empty target filters to that form. An empty result means
// the pattern is not convertible, which is an expected outcome.
func (e *Engine) ConvertPattern(pattern, target string) []string {
	return e.lex.Load().convert(Normalize(pattern), Normalize(target))
}

// Analyze decomposes word against the patterns of the given class and
// returns the ranked candidate decompositions. Results are memoized per
// (word, class); a cache hit returns the stored result unchanged. The only
// failure is ErrInvalidInput; an empty candidate list with Matched == false
// is the normal "no match" outcome.
func (e *Engine) Analyze(word string, class WordClass) (*AnalysisResult, error) {
	if strings.TrimSpace(word) == "" {
		return nil, fmt.Errorf("%w: empty word", ErrInvalidInput)
	}
	if class != Noun && class != Verb {
		return nil, fmt.Errorf("%w: word class %d", ErrInvalidInput, class)
	}

	// The snapshot is loaded inside the compute callback, after the cache
	// records the generation it will validate against, so a reload always
	// either reaches this analysis or invalidates its cache entry.
	result := e.cache.getOrCompute(cacheKey(word, class), func() *AnalysisResult {
		return analyzeWord(e.lex.Load(), word, class)
	})
	return result, nil
}

// AnalyzeAll analyzes a batch of words on a worker pool and returns results
// aligned with the input slice. Words that fail input validation yield a nil
// entry.
func (e *Engine) AnalyzeAll(words []string, class WordClass) []*AnalysisResult {
	results := make([]*AnalysisResult, len(words))
	if len(words) == 0 {
		return results
	}

	workers := runtime.NumCPU()
	if workers > len(words) {
		workers = len(words)
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indexes {
				res, err := e.Analyze(words[i], class)
				if err != nil {
					continue
				}
				results[i] = res
			}
		}()
	}
	for i := range words {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return results
}

// analyzeWord runs the strip → match → classify → validate pipeline against
// one lexicon snapshot and assembles the ranked result. It is a pure
// function of (word, class, lexicon), which is what makes cached results
// safe to share.
func analyzeWord(lex *Lexicon, word string, class WordClass) *AnalysisResult {
	norm := Normalize(word)
	result := &AnalysisResult{
		Word:       word,
		Normalized: norm,
		Class:      class,
	}

	type rawCandidate struct {
		stem  StemCandidate
		match PatternMatch
	}
	var raw []rawCandidate
	samePattern := make(map[string]int)

	for _, sc := range lex.strip(norm, class) {
		for _, m := range lex.match(sc.Stem, class) {
			raw = append(raw, rawCandidate{stem: sc, match: m})
			samePattern[m.Pattern.Canonical]++
		}
	}
	if len(raw) == 0 {
		return result
	}

	result.Matched = true
	result.Candidates = make([]Candidate, 0, len(raw))
	for _, rc := range raw {
		sc, m := rc.stem, rc.match
		rebuilt := reconstruct(m, sc.Prefixes, sc.Suffixes)
		sim := similarity(norm, rebuilt)
		score := scoreCandidate(m.Pattern.Canonical, norm,
			len(sc.Prefixes) > 0, len(sc.Suffixes) > 0,
			samePattern[m.Pattern.Canonical])

		result.Candidates = append(result.Candidates, Candidate{
			Stem:          sc.Stem,
			Prefixes:      affixLiterals(sc.Prefixes),
			Suffixes:      affixLiterals(sc.Suffixes),
			Pattern:       m.Pattern.Canonical,
			Root:          m.Root,
			Intermediate:  m.Intermediate,
			Tag:           lex.classify(m.Pattern.Canonical, sc.AffixSignature()),
			Specificity:   m.Pattern.fixedCount,
			StripLen:      sc.StripLen(),
			Score:         score,
			Reconstructed: rebuilt,
			Similarity:    sim,
			Valid:         sim > validThreshold,
		})
	}

	sortCandidates(result.Candidates)
	return result
}

// sortCandidates orders candidates best-first: higher pattern specificity,
// then shorter strip (keeping more of the original word), then higher
// heuristic score, then canonical form and stem as total tie-breaks so the
// order is deterministic.
func sortCandidates(cands []Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.Specificity != b.Specificity {
			return a.Specificity > b.Specificity
		}
		if a.StripLen != b.StripLen {
			return a.StripLen < b.StripLen
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Pattern != b.Pattern {
			return a.Pattern < b.Pattern
		}
		return a.Stem < b.Stem
	})
}

func affixLiterals(rules []AffixRule) []string {
	if len(rules) == 0 {
		return nil
	}
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.Literal
	}
	return out
}
