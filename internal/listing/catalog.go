package listing

import "sync"

// Catalog is a read-only reference collection, such as tags or languages,
// that is only ever replaced as a whole.
type Catalog[T any] struct {
	mu      sync.RWMutex
	items   []T
	loading bool
	loaded  bool
}

// Items returns a copy of the collection.
func (c *Catalog[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clone(c.items)
}

// Set replaces the collection and marks it loaded.
func (c *Catalog[T]) Set(items []T) {
	c.mu.Lock()
	c.items = clone(items)
	c.loaded = true
	c.loading = false
	c.mu.Unlock()
}

// SetLoading toggles the catalog's own loading flag.
func (c *Catalog[T]) SetLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}

// Loading reports whether a fetch for the catalog is in flight.
func (c *Catalog[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Loaded reports whether Set has been called at least once.
func (c *Catalog[T]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Find returns the first item matching pred.
func (c *Catalog[T]) Find(pred func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if pred(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}
