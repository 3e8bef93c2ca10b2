package prefixes

import (
	"sync"
)

// Cache holds the per-guild command prefixes. Guilds without an entry use the default prefix.
type Cache struct {
	mu            sync.RWMutex
	defaultPrefix string
	entries       map[string]string
}

func NewCache(defaultPrefix string) *Cache {
	return &Cache{defaultPrefix: defaultPrefix, entries: make(map[string]string)}
}

func (c *Cache) Default() string {
	return c.defaultPrefix
}

// Update sets the prefix of a guild, whatever its previous value.
func (c *Cache) Update(guildID, prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[guildID] = prefix
}

func (c *Cache) Lookup(guildID string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	prefix, found := c.entries[guildID]
	return prefix, found
}

// Resolve returns the prefix of the guild, or the default one.
func (c *Cache) Resolve(guildID string) string {
	if prefix, found := c.Lookup(guildID); found {
		return prefix
	}
	return c.defaultPrefix
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
