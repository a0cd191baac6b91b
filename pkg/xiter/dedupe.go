package xiter

import "iter"

// Dedupe yields only the first occurrence of each value in seq.
func Dedupe[T comparable](seq iter.Seq[T]) iter.Seq[T] {
	return DedupeFunc(seq, func(v T) T { return v })
}

// DedupeFunc yields only the first element of seq for each distinct key.
func DedupeFunc[T any, K comparable](seq iter.Seq[T], key func(T) K) iter.Seq[T] {
	return func(yield func(T) bool) {
		seen := make(map[K]struct{})
		for v := range seq {
			k := key(v)
			if _, exists := seen[k]; exists {
				continue
			}
			seen[k] = struct{}{}
			if !yield(v) {
				return
			}
		}
	}
}
