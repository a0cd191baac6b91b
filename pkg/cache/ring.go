package cache

import (
	"sync"

	"github.com/disgoorg/snowflake/v2"
)

// Ring is a bounded cache that evicts the oldest inserted entry once full. Replacing an
// existing entry keeps its place.
type Ring[V any] struct {
	mu    sync.Mutex
	items *Map[V]
	order []snowflake.ID
	head  int
	count int
}

// NewRing returns a ring holding up to size entries. A size below 1 disables caching.
func NewRing[V any](size int) *Ring[V] {
	if size < 0 {
		size = 0
	}
	return &Ring[V]{items: NewMap[V](), order: make([]snowflake.ID, size)}
}

func (r *Ring[V]) Get(id snowflake.ID) (V, bool) {
	return r.items.Get(id)
}

// Put stores v and returns the ID it evicted, if any.
func (r *Ring[V]) Put(id snowflake.ID, v V) (evicted snowflake.ID, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.order) == 0 {
		return 0, false
	}
	if _, exists := r.items.Get(id); exists {
		r.items.Put(id, v)
		return 0, false
	}
	if r.count == len(r.order) {
		evicted, ok = r.order[r.head], true
		r.items.Remove(evicted)
		r.head = (r.head + 1) % len(r.order)
		r.count--
	}
	r.order[(r.head+r.count)%len(r.order)] = id
	r.count++
	r.items.Put(id, v)
	return evicted, ok
}

// Remove deletes id. Its slot is compacted away so capacity is not lost.
func (r *Ring[V]) Remove(id snowflake.ID) (V, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.items.Remove(id)
	if !ok {
		return v, false
	}
	n := len(r.order)
	for i := 0; i < r.count; i++ {
		if r.order[(r.head+i)%n] != id {
			continue
		}
		for j := i; j < r.count-1; j++ {
			r.order[(r.head+j)%n] = r.order[(r.head+j+1)%n]
		}
		r.count--
		break
	}
	return v, true
}

func (r *Ring[V]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Cap is the maximum number of entries.
func (r *Ring[V]) Cap() int { return len(r.order) }

// Values returns the entries from oldest to newest.
func (r *Ring[V]) Values() []V {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]V, 0, r.count)
	for i := 0; i < r.count; i++ {
		if v, ok := r.items.Get(r.order[(r.head+i)%len(r.order)]); ok {
			out = append(out, v)
		}
	}
	return out
}

// RemoveIf deletes every entry matching pred.
func (r *Ring[V]) RemoveIf(pred func(V) bool) int {
	var ids []snowflake.ID
	r.mu.Lock()
	for i := 0; i < r.count; i++ {
		id := r.order[(r.head+i)%len(r.order)]
		if v, ok := r.items.Get(id); ok && pred(v) {
			ids = append(ids, id)
		}
	}
	r.mu.Unlock()
	for _, id := range ids {
		r.Remove(id)
	}
	return len(ids)
}
