package mukhtar

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheSize bounds the analysis cache. Results are small, so this is
// a per-process memory cap in the low megabytes.
const DefaultCacheSize = 16_384

// CacheStats is a point-in-time snapshot of the analysis cache.
type CacheStats struct {
	Size   int    `json:"size"`
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
}

// analysisCache memoizes full analysis results per (class, word). Entries go
// away only through explicit clearing or LRU capacity eviction; the engine
// clears the whole cache on lexicon reload. Concurrent lookups of the same
// key share one computation through singleflight.
type analysisCache struct {
	entries *lru.Cache[string, *AnalysisResult]
	group   singleflight.Group
	// gen is bumped by purge so a computation that was in flight across a
	// purge can tell its result belongs to a retired lexicon snapshot.
	gen    atomic.Uint64
	hits   atomic.Uint64
	misses atomic.Uint64
}

func newAnalysisCache(size int) *analysisCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, _ := lru.New[string, *AnalysisResult](size)
	return &analysisCache{entries: entries}
}

// cacheKey builds the lookup key for a (word, class) pair. The class name
// never contains Arabic text, so the separator cannot collide with words.
func cacheKey(word string, class WordClass) string {
	return class.String() + "\x00" + word
}

// getOrCompute returns the cached result for key, or runs compute once and
// stores its result. A hit returns the stored value unchanged. The miss
// counter tracks actual computations, so concurrent callers sharing one
// flight count as a single miss.
func (c *analysisCache) getOrCompute(key string, compute func() *AnalysisResult) *AnalysisResult {
	if res, ok := c.entries.Get(key); ok {
		c.hits.Add(1)
		return res
	}

	v, _, _ := c.group.Do(key, func() (any, error) {
		// Recheck under the flight lock: another caller may have stored
		// the result between our miss and this callback.
		if res, ok := c.entries.Get(key); ok {
			c.hits.Add(1)
			return res, nil
		}
		c.misses.Add(1)
		gen := c.gen.Load()
		res := compute()
		// A purge during compute retired the snapshot this result came
		// from. The waiting callers still get it, but it must not be
		// stored, or the next lookup would hit a stale analysis.
		if c.gen.Load() == gen {
			c.entries.Add(key, res)
			if c.gen.Load() != gen {
				c.entries.Remove(key)
			}
		}
		return res, nil
	})
	return v.(*AnalysisResult)
}

// purge drops all entries and invalidates in-flight computations. Hit/miss
// counters survive so callers can observe recomputation after a reload.
func (c *analysisCache) purge() {
	c.gen.Add(1)
	c.entries.Purge()
}

func (c *analysisCache) stats() CacheStats {
	return CacheStats{
		Size:   c.entries.Len(),
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}
