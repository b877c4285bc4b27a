package jellyfin

import (
	"sync"
	"time"

	"github.com/vmunix/vidio/pkg/stats"
)

type cacheEntry struct {
	series  []stats.SeriesSummary
	expires time.Time
}

// seriesCache holds per-user series lists. Callers get copies.
type seriesCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

func newSeriesCache(ttl time.Duration) *seriesCache {
	return &seriesCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *seriesCache) get(userID string) ([]stats.SeriesSummary, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[userID]
	if !ok || c.now().After(entry.expires) {
		return nil, false
	}
	out := make([]stats.SeriesSummary, len(entry.series))
	copy(out, entry.series)
	return out, true
}

func (c *seriesCache) set(userID string, series []stats.SeriesSummary) {
	if c.ttl <= 0 {
		return
	}
	stored := make([]stats.SeriesSummary, len(series))
	copy(stored, series)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[userID] = cacheEntry{
		series:  stored,
		expires: c.now().Add(c.ttl),
	}
}

// invalidate drops the cached list of one user.
func (c *seriesCache) invalidate(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
}

// Invalidate drops any cached series list for the user, so the next
// AllSeries call refetches.
func (c *Client) Invalidate(userID string) {
	c.cache.invalidate(userID)
}
