package cache

import (
	"slices"
	"sync"
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"gotest.tools/v3/assert"
)

type entry struct {
	ID   snowflake.ID
	Name string
}

func TestMap(t *testing.T) {
	m := NewMap[entry]()
	m.Put(1, entry{1, "a"})
	m.Put(2, entry{2, "b"})
	m.Put(1, entry{1, "c"})
	assert.Equal(t, m.Len(), 2)

	v, ok := m.Get(1)
	assert.Assert(t, ok)
	assert.Equal(t, v.Name, "c")

	found, ok := m.Find(func(e entry) bool { return e.Name == "b" })
	assert.Assert(t, ok)
	assert.Equal(t, found.ID, snowflake.ID(2))
	_, ok = m.Find(func(e entry) bool { return e.Name == "z" })
	assert.Assert(t, !ok)

	names := slices.Sorted(func(yield func(string) bool) {
		for e := range m.All() {
			if !yield(e.Name) {
				return
			}
		}
	})
	assert.DeepEqual(t, names, []string{"b", "c"})

	removed, ok := m.Remove(2)
	assert.Assert(t, ok)
	assert.Equal(t, removed.Name, "b")
	_, ok = m.Remove(2)
	assert.Assert(t, !ok)

	m.Put(3, entry{3, "x"})
	m.Put(4, entry{4, "x"})
	assert.Equal(t, m.RemoveIf(func(e entry) bool { return e.Name == "x" }), 2)
	assert.Equal(t, m.Len(), 1)
}

func TestMapConcurrent(t *testing.T) {
	m := NewMap[int]()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				m.Put(snowflake.ID(i*100+j), j)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, m.Len(), 800)
}

func TestRing(t *testing.T) {
	r := NewRing[string](3)
	for i, s := range []string{"a", "b", "c"} {
		_, evicted := r.Put(snowflake.ID(i+1), s)
		assert.Assert(t, !evicted)
	}
	id, evicted := r.Put(4, "d")
	assert.Assert(t, evicted)
	assert.Equal(t, id, snowflake.ID(1))
	_, ok := r.Get(1)
	assert.Assert(t, !ok)
	assert.DeepEqual(t, r.Values(), []string{"b", "c", "d"})

	_, evicted = r.Put(3, "C")
	assert.Assert(t, !evicted)
	assert.DeepEqual(t, r.Values(), []string{"b", "C", "d"})

	v, ok := r.Remove(3)
	assert.Assert(t, ok)
	assert.Equal(t, v, "C")
	assert.Equal(t, r.Len(), 2)
	_, evicted = r.Put(5, "e")
	assert.Assert(t, !evicted)
	assert.DeepEqual(t, r.Values(), []string{"b", "d", "e"})

	assert.Equal(t, r.RemoveIf(func(s string) bool { return s != "d" }), 2)
	assert.DeepEqual(t, r.Values(), []string{"d"})
}

func TestRingDisabled(t *testing.T) {
	r := NewRing[string](0)
	_, evicted := r.Put(1, "a")
	assert.Assert(t, !evicted)
	_, ok := r.Get(1)
	assert.Assert(t, !ok)
	assert.Equal(t, r.Cap(), 0)
}

func TestMapLoadOrPut(t *testing.T) {
	m := NewMap[string]()
	v, loaded := m.LoadOrPut(1, "a")
	assert.Assert(t, !loaded)
	assert.Equal(t, v, "a")
	v, loaded = m.LoadOrPut(1, "b")
	assert.Assert(t, loaded)
	assert.Equal(t, v, "a")
}
