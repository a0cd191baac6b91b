// Package xiter provides the iter.Seq adapters used to walk cached entity collections.
package xiter

import (
	"cmp"
	"iter"
	"slices"
)

// SortedBy collects seq and sorts it by key, keeping the original order of equal keys.
func SortedBy[T any, K cmp.Ordered](seq iter.Seq[T], key func(T) K) []T {
	s := slices.Collect(seq)
	slices.SortStableFunc(s, func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	})
	return s
}
