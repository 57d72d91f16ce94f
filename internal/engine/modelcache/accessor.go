package modelcache

import "go.trai.ch/elab/internal/core/domain"

// Accessor is a read-only, observable view of one cache entry.
type Accessor struct {
	key   domain.ModelKey
	cache *Cache
}

// Key returns the key the accessor is bound to.
func (a *Accessor) Key() domain.ModelKey {
	return a.key
}

// Get returns the current entry. It reflects every Set that has returned.
func (a *Accessor) Get() (domain.ModelEntry, bool) {
	return a.cache.Get(a.key)
}

// Subscribe calls fn with each new entry until the returned function is
// called or the cache is cleared.
func (a *Accessor) Subscribe(fn func(domain.ModelEntry)) (unsubscribe func()) {
	return a.cache.Subscribe(a.key, fn)
}
