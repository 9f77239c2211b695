package server

import (
	"sync"
	"time"

	"github.com/phanxgames/folio/feeds"
)

// sectionCache keeps successful feed sections for a fixed TTL.
type sectionCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	section feeds.Section
	expires time.Time
}

func newSectionCache(ttl time.Duration) *sectionCache {
	return &sectionCache{ttl: ttl, now: time.Now, entries: make(map[string]cacheEntry)}
}

func (c *sectionCache) get(key string) (feeds.Section, bool) {
	if c.ttl <= 0 {
		return feeds.Section{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return feeds.Section{}, false
	}
	if !c.now().Before(e.expires) {
		delete(c.entries, key)
		return feeds.Section{}, false
	}
	return e.section, true
}

// put stores s unless it is the error placeholder.
func (c *sectionCache) put(key string, s feeds.Section) {
	if c.ttl <= 0 || s.Failed() {
		return
	}
	c.mu.Lock()
	c.entries[key] = cacheEntry{section: s, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
}
