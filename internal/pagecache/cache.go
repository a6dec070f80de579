package pagecache

import (
	"html/template"
	"sync"
)

// Cache holds rendered page HTML stamped with the version that produced
// it. A hit requires the stamp to match the page's current version, so
// readers refetch exactly when the version advances instead of on a blind
// timer.
type Cache struct {
	mu      sync.Mutex
	entries map[int]entry
}

type entry struct {
	version int
	html    template.HTML
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[int]entry)}
}

// Get returns the cached HTML for a page if it was rendered at
// currentVersion.
func (c *Cache) Get(pageID, currentVersion int) (template.HTML, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[pageID]
	if !ok || e.version != currentVersion {
		return "", false
	}
	return e.html, true
}

// Put stores the HTML rendered from the given version of a page. A stale
// writer never clobbers a newer entry.
func (c *Cache) Put(pageID, version int, html template.HTML) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[pageID]; ok && e.version > version {
		return
	}
	c.entries[pageID] = entry{version: version, html: html}
}

// Invalidate drops a page's entry, for deletions.
func (c *Cache) Invalidate(pageID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, pageID)
}
