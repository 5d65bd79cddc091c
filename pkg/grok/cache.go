package grok

import (
	"container/list"
	"sync"
)

// DefaultCacheSize is the default maximum number of cached patterns.
const DefaultCacheSize = 100

// Cache is an LRU cache of compiled patterns over one Grok. It is safe for
// concurrent use: compilations are serialized, so the store's inline
// definition side effects cannot race, while cache hits only take a short lock.
//
// Patterns are keyed by text and alias mode. Definitions added to the store
// afterwards do not invalidate entries; call Purge after changing definitions.
// While a Cache is in use, the Grok must not be modified or compiled against
// directly.
type Cache struct {
	g         *Grok
	compileMu sync.Mutex

	mu      sync.Mutex
	entries map[cacheKey]*list.Element
	lruList *list.List
	maxSize int
}

type cacheKey struct {
	pattern   string
	aliasOnly bool
}

type cacheEntry struct {
	key     cacheKey
	pattern *Pattern
}

// NewCache creates a cache holding up to maxSize patterns compiled by g.
// A non-positive maxSize uses DefaultCacheSize.
func NewCache(g *Grok, maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	return &Cache{
		g:       g,
		entries: make(map[cacheKey]*list.Element),
		lruList: list.New(),
		maxSize: maxSize,
	}
}

// Get returns the compiled pattern, compiling it on a miss. Failed
// compilations are not cached.
func (c *Cache) Get(pattern string, aliasOnly bool) (*Pattern, error) {
	key := cacheKey{pattern: pattern, aliasOnly: aliasOnly}
	if p, ok := c.lookup(key); ok {
		return p, nil
	}

	c.compileMu.Lock()
	defer c.compileMu.Unlock()

	// Another goroutine may have compiled it while we waited.
	if p, ok := c.lookup(key); ok {
		return p, nil
	}

	p, err := c.g.Compile(pattern, aliasOnly)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lruList.Len() >= c.maxSize {
		if oldest := c.lruList.Back(); oldest != nil {
			c.lruList.Remove(oldest)
			delete(c.entries, oldest.Value.(*cacheEntry).key)
		}
	}
	c.entries[key] = c.lruList.PushFront(&cacheEntry{key: key, pattern: p})
	return p, nil
}

func (c *Cache) lookup(key cacheKey) (*Pattern, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.lruList.MoveToFront(elem)
	return elem.Value.(*cacheEntry).pattern, true
}

// Len returns the current number of cached patterns.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lruList.Len()
}

// Purge drops every cached pattern.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]*list.Element)
	c.lruList.Init()
}
