// Package memory implements the entity store: four independently mutable
// ordered in-memory collections behind the domain repository contracts, plus
// the one-time seed loader. Nothing is ever written back to disk.
package memory

import (
	"fmt"
	"sync"

	"github.com/gatherline/server/internal/domain/ids"
)

// Collection is one ordered entity collection. Items keep insertion order;
// ids are minted on insert and never reassigned. Every operation completes
// under the collection lock, so a write is never partially visible.
type Collection[T any] struct {
	mu    sync.RWMutex
	items []T
	idOf  func(T) string
	setID func(*T, string)
}

func NewCollection[T any](idOf func(T) string, setID func(*T, string)) *Collection[T] {
	return &Collection[T]{idOf: idOf, setID: setID}
}

// List returns a snapshot copy in insertion order.
func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Get returns the item with the given id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if c.idOf(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Insert mints a fresh id, assigns it, and appends the item.
func (c *Collection[T]) Insert(item T) (T, error) {
	id, err := ids.NewULID()
	if err != nil {
		var zero T
		return zero, fmt.Errorf("mint id: %w", err)
	}
	c.setID(&item, id)

	c.mu.Lock()
	c.items = append(c.items, item)
	c.mu.Unlock()
	return item, nil
}

// Patch applies the partial update to the item with the given id and returns
// the merged value. Fields the apply function does not touch keep their prior
// values.
func (c *Collection[T]) Patch(id string, apply func(*T)) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.idOf(c.items[i]) == id {
			apply(&c.items[i])
			return c.items[i], true
		}
	}
	var zero T
	return zero, false
}

// Remove deletes the item with the given id and returns the removed value.
func (c *Collection[T]) Remove(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.idOf(c.items[i]) == id {
			removed := c.items[i]
			c.items = append(c.items[:i], c.items[i+1:]...)
			return removed, true
		}
	}
	var zero T
	return zero, false
}

// Clear empties the collection and returns a snapshot equal to its full
// contents immediately before the call.
func (c *Collection[T]) Clear() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot := c.items
	c.items = nil
	return snapshot
}

// Restore bulk-loads seed items, keeping their ids verbatim. Boot-time only;
// duplicate or empty ids are an error.
func (c *Collection[T]) Restore(items []T) error {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		id := c.idOf(item)
		if id == "" {
			return fmt.Errorf("seed item missing id")
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("duplicate seed id %q", id)
		}
		seen[id] = struct{}{}
	}

	c.mu.Lock()
	c.items = append([]T(nil), items...)
	c.mu.Unlock()
	return nil
}

// Len reports the current number of items.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
