// Package immutable provides some immutable types for slices, maps and sets. It exists in this
// package to only expose the UnsafeMap and UnsafeSlice functions via the unsafe package.
// The top level immutable package uses type aliases to gain acccess to the types.
package immutable

import (
	"iter"
	"maps"
	"slices"

	"github.com/tidwall/btree"
)

// Map provides a read-only map as long as the values are not pointers or references.
type Map[K comparable, V any] struct {
	m map[K]V
}

// NewMap returns a new immutable map. The map is not copied, the caller must not
// hold onto it.
func NewMap[K comparable, V any](m map[K]V) Map[K, V] {
	return Map[K, V]{m: m}
}

// Copy returns a copy of the underlying map.
func (m Map[K, V]) Copy() map[K]V {
	return CopyMap(m.m)
}

// Get returns the value for the given key.
func (m Map[K, V]) Get(k K) (value V, ok bool) {
	v, ok := m.m[k]
	return v, ok
}

// Len returns the length of the map.
func (m Map[K, V]) Len() int {
	return len(m.m)
}

// All returns an iterator over the map.
func (m Map[K, V]) All() iter.Seq2[K, V] {
	return maps.All(m.m)
}

// Keys returns an iterator over the keys of the map. Order is not defined.
func (m Map[K, V]) Keys() iter.Seq[K] {
	return maps.Keys(m.m)
}

// UnsafeMap returns the underlying map. This is unsafe because it allows the caller to modify the map.
func UnsafeMap[K comparable, V any](m Map[K, V]) map[K]V {
	return m.m
}

// Slice provides a read-only slice as long as the values are not pointers or references.
type Slice[T any] struct {
	s []T
}

// NewSlice returns a new immutable slice. The slice is not copied, the caller must not
// hold onto it.
func NewSlice[T any](s []T) Slice[T] {
	return Slice[T]{s: s}
}

// Copy returns a copy of the underlying slice.
func (s Slice[T]) Copy() []T {
	return CopySlice(s.s)
}

// Get returns the value at the given index. This will panic if the index is out of range.
func (s Slice[T]) Get(i int) T {
	return s.s[i]
}

// Len returns the length of the slice.
func (s Slice[T]) Len() int {
	return len(s.s)
}

// All returns an iterator over the slice.
func (s Slice[T]) All() iter.Seq2[int, T] {
	return slices.All(s.s)
}

// Values returns an iterator over the values of the slice in order.
func (s Slice[T]) Values() iter.Seq[T] {
	return slices.Values(s.s)
}

// UnsafeSlice returns the underlying slice. This is unsafe because it allows the caller to modify the slice.
func UnsafeSlice[T any](s Slice[T]) []T {
	return s.s
}

// Set is a read-only set that remembers the order members were first added in.
type Set[E comparable] struct {
	order []E
	idx   map[E]struct{}
}

// NewSet returns a new immutable set holding vals. Duplicates are dropped, keeping the
// first occurrence. vals is copied.
func NewSet[E comparable](vals ...E) Set[E] {
	s := Set[E]{
		order: make([]E, 0, len(vals)),
		idx:   make(map[E]struct{}, len(vals)),
	}
	for _, v := range vals {
		if _, ok := s.idx[v]; ok {
			continue
		}
		s.idx[v] = struct{}{}
		s.order = append(s.order, v)
	}
	return s
}

// Contains returns true if v is a member of the Set.
func (s Set[E]) Contains(v E) bool {
	_, ok := s.idx[v]
	return ok
}

// Len returns the number of members in the Set.
func (s Set[E]) Len() int {
	return len(s.order)
}

// All returns an iterator over the members in insertion order.
func (s Set[E]) All() iter.Seq[E] {
	return slices.Values(s.order)
}

// Members returns a copy of the members in insertion order.
func (s Set[E]) Members() []E {
	return CopySlice(s.order)
}

// UnsafeSetMembers returns the slice backing the Set order. This is unsafe because changing
// it corrupts the Set.
func UnsafeSetMembers[E comparable](s Set[E]) []E {
	return s.order
}

// SortedSet is a read-only set kept in the order defined by a less function.
type SortedSet[E any] struct {
	tr *btree.BTreeG[E]
}

// NewSortedSet returns a new immutable sorted set. Two values are the same member when neither
// is less than the other, and the first one seen is kept.
func NewSortedSet[E any](less func(a, b E) bool, vals ...E) SortedSet[E] {
	tr := btree.NewBTreeGOptions(less, btree.Options{NoLocks: true})
	for _, v := range vals {
		if _, ok := tr.Get(v); ok {
			continue
		}
		tr.Set(v)
	}
	return SortedSet[E]{tr: tr}
}

// Contains returns true if v is a member of the SortedSet.
func (s SortedSet[E]) Contains(v E) bool {
	if s.tr == nil {
		return false
	}
	_, ok := s.tr.Get(v)
	return ok
}

// Len returns the number of members in the SortedSet.
func (s SortedSet[E]) Len() int {
	if s.tr == nil {
		return 0
	}
	return s.tr.Len()
}

// All returns an iterator over the members in ascending order.
func (s SortedSet[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		if s.tr == nil {
			return
		}
		s.tr.Scan(yield)
	}
}

// Min returns the smallest member. ok is false if the SortedSet is empty.
func (s SortedSet[E]) Min() (v E, ok bool) {
	if s.tr == nil {
		return v, false
	}
	return s.tr.Min()
}

// Max returns the largest member. ok is false if the SortedSet is empty.
func (s SortedSet[E]) Max() (v E, ok bool) {
	if s.tr == nil {
		return v, false
	}
	return s.tr.Max()
}

// Members returns a copy of the members in ascending order.
func (s SortedSet[E]) Members() []E {
	if s.tr == nil || s.tr.Len() == 0 {
		return nil
	}
	return s.tr.Items()
}

// Copier is an interface that allows a type to be copied. This is useful when the value stored
// in the immutable type is a pointer or reference. This allows a deep copy to be made if the
// type implements this interface.
type Copier[T any] interface {
	// Copy returns a copy of the value.
	Copy() T
}

// CopySlice returns a copy of the given slice. This is useful for creating an immutable slice.
// If the type stored in the slice implements the Copier interface, it will use that to copy the
// values. Otherwise, it will use the standard copy function.
func CopySlice[T any](s []T) []T {
	n := make([]T, len(s))

	var z T
	if _, ok := any(z).(Copier[T]); ok {
		for i, v := range s {
			n[i] = any(v).(Copier[T]).Copy()
		}
		return n
	}
	copy(n, s)
	return n
}

// CopyMap returns a copy of the given map. This is useful for creating an immutable map.
// If the type stored in the map implements the Copier interface, it will use that to copy the
// values. Otherwise, it will use the standard copy function.
func CopyMap[K comparable, V any](m map[K]V) map[K]V {
	var z V
	_, canCopy := any(z).(Copier[V])

	n := make(map[K]V, len(m))
	for k, v := range m {
		if canCopy {
			n[k] = any(v).(Copier[V]).Copy()
			continue
		}
		n[k] = v
	}
	return n
}
