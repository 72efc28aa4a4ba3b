package lint

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/platinummonkey/httplint/pkg/diag"
)

// CachedRun is a memoized lint outcome for one source set
type CachedRun struct {
	Results []Result     `json:"results"`
	Summary diag.Summary `json:"summary"`
}

// ResultCache memoizes lint runs by content hash. Entries expire after
// the TTL and the least recently used entry is evicted on overflow.
type ResultCache struct {
	cache  *lru.LRU[string, *CachedRun]
	hits   atomic.Int64
	misses atomic.Int64
}

// CacheStats reports hit and miss counts
type CacheStats struct {
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	ItemCount int     `json:"item_count"`
	HitRate   float64 `json:"hit_rate"`
}

// NewResultCache creates a cache holding up to maxEntries runs for up to
// ttl each
func NewResultCache(maxEntries int, ttl time.Duration) *ResultCache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &ResultCache{
		cache: lru.NewLRU[string, *CachedRun](maxEntries, nil, ttl),
	}
}

// Get retrieves a cached run by key
func (c *ResultCache) Get(key string) (*CachedRun, bool) {
	run, ok := c.cache.Get(key)
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return run, true
}

// Put stores a run under the key
func (c *ResultCache) Put(key string, run *CachedRun) {
	c.cache.Add(key, run)
}

// Stats returns cache statistics
func (c *ResultCache) Stats() CacheStats {
	stats := CacheStats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		ItemCount: c.cache.Len(),
	}
	total := stats.Hits + stats.Misses
	if total > 0 {
		stats.HitRate = float64(stats.Hits) / float64(total)
	}
	return stats
}

// CacheKey computes a stable content hash for a source set. The hash
// covers file names and contents in sorted name order, so map iteration
// order cannot produce distinct keys for identical inputs.
func CacheKey(sources map[string]string) string {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	hash := sha256.New()
	for _, name := range names {
		hash.Write([]byte(name))
		hash.Write([]byte{0})
		hash.Write([]byte(sources[name]))
		hash.Write([]byte{0})
	}
	return hex.EncodeToString(hash.Sum(nil))
}
