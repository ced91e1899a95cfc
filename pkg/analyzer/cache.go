package analyzer

import (
	"math"
	"sync"

	"github.com/bastiangx/pgalyzer/pkg/freq"
)

// DefaultCachedSizes is how many n-gram sizes an Analyzer keeps ranked.
const DefaultCachedSizes = 4

// rankCache keeps the full ranking of the most recently used n-gram
// sizes, evicting the least recently used size when full.
type rankCache struct {
	rankings    map[int][]freq.Entry
	accessTime  map[int]int64
	accessCount int64
	hits        int
	misses      int
	maxSizes    int
	mu          sync.Mutex
}

func newRankCache(maxSizes int) *rankCache {
	return &rankCache{
		rankings:   make(map[int][]freq.Entry, maxSizes),
		accessTime: make(map[int]int64, maxSizes),
		maxSizes:   maxSizes,
	}
}

// get returns a copy of at most limit entries of the ranking for n.
func (c *rankCache) get(n, limit int) ([]freq.Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ranking, ok := c.rankings[n]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	c.accessTime[n] = c.nextAccessTime()
	return head(ranking, limit), true
}

func (c *rankCache) put(n int, ranking []freq.Entry) {
	if c.maxSizes < 1 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.rankings[n]; !ok && len(c.rankings) >= c.maxSizes {
		c.evictLRU()
	}
	c.rankings[n] = ranking
	c.accessTime[n] = c.nextAccessTime()
}

func (c *rankCache) nextAccessTime() int64 {
	c.accessCount++
	return c.accessCount
}

func (c *rankCache) evictLRU() {
	oldest := 0
	var oldestTime int64 = math.MaxInt64
	for n, t := range c.accessTime {
		if t < oldestTime {
			oldestTime = t
			oldest = n
		}
	}
	delete(c.rankings, oldest)
	delete(c.accessTime, oldest)
}

func (c *rankCache) stats() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return map[string]int{
		"cachedSizes": len(c.rankings),
		"maxSizes":    c.maxSizes,
		"hits":        c.hits,
		"misses":      c.misses,
	}
}

// head copies the first limit entries, or all of them when limit < 1.
func head(ranking []freq.Entry, limit int) []freq.Entry {
	if limit < 1 || limit > len(ranking) {
		limit = len(ranking)
	}
	out := make([]freq.Entry, limit)
	copy(out, ranking[:limit])
	return out
}
