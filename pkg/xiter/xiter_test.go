package xiter

import (
	"iter"
	"slices"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func values[T any](vs ...T) iter.Seq[T] { return slices.Values(vs) }

func TestFilterFind(t *testing.T) {
	isEven := func(n int) bool { return n%2 == 0 }
	assert.DeepEqual(t, slices.Collect(Filter(values(1, 2, 3, 4, 5, 6), isEven)), []int{2, 4, 6})

	v, ok := Find(values(1, 3, 4, 6), isEven)
	assert.Assert(t, ok)
	assert.Equal(t, v, 4)

	_, ok = Find(values(1, 3), isEven)
	assert.Assert(t, !ok)
}

func TestFilter_StopsEarly(t *testing.T) {
	got := make([]int, 0)
	for v := range Filter(values(2, 4, 6, 8), func(int) bool { return true }) {
		if v > 4 {
			break
		}
		got = append(got, v)
	}
	assert.DeepEqual(t, got, []int{2, 4})
}

func TestMap(t *testing.T) {
	got := slices.Collect(Map(values("a", "b"), strings.ToUpper))
	assert.DeepEqual(t, got, []string{"A", "B"})
}

func TestDedupe(t *testing.T) {
	assert.DeepEqual(t, slices.Collect(Dedupe(values(1, 1, 2, 3, 1, 4))), []int{1, 2, 3, 4})

	type role struct {
		ID   int
		Name string
	}
	roles := values(role{1, "a"}, role{2, "b"}, role{1, "c"})
	got := slices.Collect(DedupeFunc(roles, func(r role) int { return r.ID }))
	assert.DeepEqual(t, got, []role{{1, "a"}, {2, "b"}})
}

func TestSortedBy(t *testing.T) {
	got := SortedBy(values("ccc", "a", "bb", "d"), func(s string) int { return len(s) })
	assert.DeepEqual(t, got, []string{"a", "d", "bb", "ccc"})
}
