package advancedtypes

import (
	"cmp"
	"maps"
	"slices"
)

// Map transforms every element of s using f.
func Map[T, U any](s []T, f func(T) U) []U {
	out := make([]U, len(s))
	for i, v := range s {
		out[i] = f(v)
	}
	return out
}

// Filter returns the elements of s for which keep returns true, in order.
// It never returns nil.
func Filter[T any](s []T, keep func(T) bool) []T {
	out := make([]T, 0, len(s))
	for _, v := range s {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// Reduce folds s left to right into an accumulator starting at init.
func Reduce[T, U any](s []T, init U, f func(U, T) U) U {
	acc := init
	for _, v := range s {
		acc = f(acc, v)
	}
	return acc
}

// MergeMaps returns a new map with every entry of ms. On duplicate keys the
// later map wins. The inputs are not modified.
func MergeMaps[K comparable, V any](ms ...map[K]V) map[K]V {
	out := make(map[K]V)
	for _, m := range ms {
		maps.Copy(out, m)
	}
	return out
}

// ── Set[T] ───────────────────────────────────────────────────────────────────

// Set is an unordered collection of unique values backed by a map. The
// zero value is not usable; call NewSet.
type Set[T cmp.Ordered] struct {
	m map[T]struct{}
}

// NewSet returns a set holding vals.
func NewSet[T cmp.Ordered](vals ...T) *Set[T] {
	s := &Set[T]{m: make(map[T]struct{}, len(vals))}
	for _, v := range vals {
		s.Add(v)
	}
	return s
}

// Add inserts v; adding an existing element is a no-op.
func (s *Set[T]) Add(v T) { s.m[v] = struct{}{} }

// Remove deletes v if present.
func (s *Set[T]) Remove(v T) { delete(s.m, v) }

// Has reports whether v is in the set.
func (s *Set[T]) Has(v T) bool { _, ok := s.m[v]; return ok }

// Len returns the number of elements.
func (s *Set[T]) Len() int { return len(s.m) }

// Union returns the values in s or other.
func (s *Set[T]) Union(other *Set[T]) *Set[T] {
	out := NewSet[T]()
	maps.Copy(out.m, s.m)
	maps.Copy(out.m, other.m)
	return out
}

// Intersection returns the values in both s and other.
func (s *Set[T]) Intersection(other *Set[T]) *Set[T] {
	out := NewSet[T]()
	for v := range s.m {
		if other.Has(v) {
			out.Add(v)
		}
	}
	return out
}

// Difference returns the values in s that are not in other.
func (s *Set[T]) Difference(other *Set[T]) *Set[T] {
	out := NewSet[T]()
	for v := range s.m {
		if !other.Has(v) {
			out.Add(v)
		}
	}
	return out
}

// SymmetricDifference returns the values in exactly one of s and other.
func (s *Set[T]) SymmetricDifference(other *Set[T]) *Set[T] {
	return s.Difference(other).Union(other.Difference(s))
}

// Sorted returns the values in ascending order.
func (s *Set[T]) Sorted() []T {
	return slices.Sorted(maps.Keys(s.m))
}
