// Package catalog is a compile-time registry of named values. Handler packages
// publish their functions from init() and definition files refer to them by
// id, which keeps the set of runnable code statically linked into the binary.
package catalog

import (
	"fmt"
	"sort"
	"sync"
)

// Catalog maps string ids to values of type T. It is safe for concurrent use.
type Catalog[T any] struct {
	mu      sync.RWMutex
	entries map[string]T
}

// New returns an empty catalog.
func New[T any]() *Catalog[T] {
	return &Catalog[T]{entries: make(map[string]T)}
}

// Provide publishes v under id. Publishing the same id twice is a programming
// error and panics, since it can only happen from two init() functions.
func (c *Catalog[T]) Provide(id string, v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[id]; exists {
		panic(fmt.Sprintf("catalog: id %q provided twice", id))
	}
	c.entries[id] = v
}

// Lookup returns the value published under id.
func (c *Catalog[T]) Lookup(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[id]
	return v, ok
}

// IDs returns all published ids, sorted.
func (c *Catalog[T]) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0, len(c.entries))
	for id := range c.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
