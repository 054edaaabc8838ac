package utils

import (
	"cmp"
	"encoding/json"
	"maps"
	"slices"
)

// Set is an unordered collection of distinct values.
// The zero value is not usable; create sets with NewSet.
type Set[T cmp.Ordered] map[T]struct{}

// NewSet returns a set holding the given values.
func NewSet[T cmp.Ordered](values ...T) Set[T] {
	s := make(Set[T], len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts v and reports whether it was not already present.
func (s Set[T]) Add(v T) bool {
	if _, ok := s[v]; ok {
		return false
	}
	s[v] = struct{}{}
	return true
}

// Contains reports whether v is in the set.
func (s Set[T]) Contains(v T) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of elements.
func (s Set[T]) Len() int {
	return len(s)
}

// Equal reports whether both sets hold the same elements.
func (s Set[T]) Equal(other Set[T]) bool {
	if len(s) != len(other) {
		return false
	}
	for v := range s {
		if !other.Contains(v) {
			return false
		}
	}
	return true
}

// Sorted returns the elements in ascending order. Never nil.
func (s Set[T]) Sorted() []T {
	out := slices.AppendSeq(make([]T, 0, len(s)), maps.Keys(s))
	slices.Sort(out)
	return out
}

// MarshalJSON encodes the set as a sorted array so output is stable across runs.
func (s Set[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an array, dropping duplicates.
func (s *Set[T]) UnmarshalJSON(data []byte) error {
	var values []T
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewSet(values...)
	return nil
}
