// Package cache holds the entity snapshots a client knows about.
package cache

import (
	"iter"

	"github.com/disgoorg/snowflake/v2"
	"github.com/puzpuzpuz/xsync"
)

// Map is a concurrent map of snapshots keyed by snowflake. Values are replaced, never mutated.
type Map[V any] struct {
	m *xsync.MapOf[string, V]
}

func NewMap[V any]() *Map[V] {
	return &Map[V]{m: xsync.NewMapOf[V]()}
}

func (c *Map[V]) Get(id snowflake.ID) (V, bool) {
	return c.m.Load(id.String())
}

// Put stores v under id, replacing any previous snapshot.
func (c *Map[V]) Put(id snowflake.ID, v V) {
	c.m.Store(id.String(), v)
}

// LoadOrPut returns the snapshot under id, storing v first when there is none.
func (c *Map[V]) LoadOrPut(id snowflake.ID, v V) (actual V, loaded bool) {
	return c.m.LoadOrStore(id.String(), v)
}

// Remove deletes id and returns the snapshot it held.
func (c *Map[V]) Remove(id snowflake.ID) (V, bool) {
	return c.m.LoadAndDelete(id.String())
}

func (c *Map[V]) Len() int {
	return c.m.Size()
}

// All yields every snapshot. Concurrent writes may or may not be observed.
func (c *Map[V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		c.m.Range(func(_ string, v V) bool {
			return yield(v)
		})
	}
}

// Find returns some snapshot matching pred.
func (c *Map[V]) Find(pred func(V) bool) (V, bool) {
	for v := range c.All() {
		if pred(v) {
			return v, true
		}
	}
	var zero V
	return zero, false
}

// RemoveIf deletes every snapshot matching pred and returns how many were removed.
func (c *Map[V]) RemoveIf(pred func(V) bool) int {
	n := 0
	c.m.Range(func(k string, v V) bool {
		if pred(v) {
			if _, ok := c.m.LoadAndDelete(k); ok {
				n++
			}
		}
		return true
	})
	return n
}
