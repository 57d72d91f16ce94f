// Package modelcache keeps elaborated models of notebook documents up to date
// as the documents change.
package modelcache

import (
	"slices"
	"sync"

	"go.trai.ch/elab/internal/core/domain"
)

type observer struct {
	id uint64
	fn func(domain.ModelEntry)
}

// Cache is an observable store of model entries keyed by ModelKey.
// Generations are tracked per key for the lifetime of the cache and survive
// Clear, so they never repeat for a key.
type Cache struct {
	mu          sync.RWMutex
	entries     map[domain.ModelKey]domain.ModelEntry
	generations map[domain.ModelKey]uint64
	observers   map[domain.ModelKey][]observer
	nextID      uint64
}

// NewCache creates a new empty Cache.
func NewCache() *Cache {
	return &Cache{
		entries:     make(map[domain.ModelKey]domain.ModelEntry),
		generations: make(map[domain.ModelKey]uint64),
		observers:   make(map[domain.ModelKey][]observer),
	}
}

// Has reports whether an entry exists for key.
func (c *Cache) Has(key domain.ModelKey) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[key]
	return ok
}

// Get returns the entry stored for key.
func (c *Cache) Get(key domain.ModelKey) (domain.ModelEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	return entry, ok
}

// Set stores entry under key, stamping it with the next generation, and
// notifies the observers of key before returning. The Generation field of
// entry is ignored.
func (c *Cache) Set(key domain.ModelKey, entry domain.ModelEntry) domain.ModelEntry {
	c.mu.Lock()
	c.generations[key]++
	entry.Generation = c.generations[key]
	c.entries[key] = entry
	observers := slices.Clone(c.observers[key])
	c.mu.Unlock()

	for _, o := range observers {
		o.fn(entry)
	}
	return entry
}

// Clear removes every entry and observer.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
	clear(c.observers)
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Keys returns the keys of all entries in canonical order.
func (c *Cache) Keys() []domain.ModelKey {
	c.mu.RLock()
	keys := make([]domain.ModelKey, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	c.mu.RUnlock()

	slices.SortFunc(keys, domain.ModelKey.Compare)
	return keys
}

// Subscribe registers fn to be called with every new entry stored for key.
// Observers run synchronously inside Set and must not block.
func (c *Cache) Subscribe(key domain.ModelKey, fn func(domain.ModelEntry)) (unsubscribe func()) {
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.observers[key] = append(c.observers[key], observer{id: id, fn: fn})
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.observers[key] = slices.DeleteFunc(c.observers[key], func(o observer) bool {
				return o.id == id
			})
			if len(c.observers[key]) == 0 {
				delete(c.observers, key)
			}
		})
	}
}

// Accessor returns a reactive view of the entry stored for key.
func (c *Cache) Accessor(key domain.ModelKey) *Accessor {
	return &Accessor{key: key, cache: c}
}
