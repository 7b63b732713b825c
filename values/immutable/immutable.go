/*
Package immutable holds types that provide immutability for standard Go containers. The types
here are the output of the fluent package's terminal operations, but can be used directly.

A Slice or Map wraps the storage it is given, so the caller must not keep a reference to it:

	s := immutable.NewSlice([]int{1, 2, 3})
	m := immutable.NewMap(map[string]int{"a": 1})

A Set keeps the order its members were first added in, while a SortedSet keeps its members
ordered by a less function:

	set := immutable.NewSet("b", "a", "b") // [b a]
	sorted := immutable.NewSortedSet(func(a, b int) bool { return a < b }, 3, 1, 2) // [1 2 3]

These are only read-only as long as the values stored are not pointers or references. Types
that implement Copier are deep copied by Copy() and Members().

If you need the backing storage without a copy, see the unsafe package.
*/
package immutable

import (
	"github.com/gostdlib/fluent/values/immutable/internal/immutable"
)

// Map provides a read-only map as long as the values are not pointers or references.
type Map[K comparable, V any] = immutable.Map[K, V]

// NewMap returns a new immutable map.
func NewMap[K comparable, V any](m map[K]V) Map[K, V] {
	return immutable.NewMap(m)
}

// Slice provides a read-only slice as long as the values are not pointers or references.
type Slice[T any] = immutable.Slice[T]

// NewSlice returns a new immutable slice.
func NewSlice[T any](s []T) Slice[T] {
	return immutable.NewSlice(s)
}

// Set provides a read-only set that iterates in insertion order.
type Set[E comparable] = immutable.Set[E]

// NewSet returns a new immutable set. Duplicates in vals are dropped, keeping the first.
func NewSet[E comparable](vals ...E) Set[E] {
	return immutable.NewSet(vals...)
}

// SortedSet provides a read-only set that iterates in the order defined by a less function.
type SortedSet[E any] = immutable.SortedSet[E]

// NewSortedSet returns a new immutable sorted set.
func NewSortedSet[E any](less func(a, b E) bool, vals ...E) SortedSet[E] {
	return immutable.NewSortedSet(less, vals...)
}

// Copier is an interface that allows a type to be copied. This is useful when the value stored
// in the immutable type is a pointer or reference. This allows a deep copy to be made if the
// type implements this interface.
type Copier[T any] = immutable.Copier[T]

// CopySlice returns a copy of the given slice. This is useful for creating an immutable slice.
// If the type stored in the slice implements the Copier interface, it will use that to copy the
// values. Otherwise, it will use the standard copy function.
func CopySlice[T any](s []T) []T {
	return immutable.CopySlice(s)
}

// CopyMap returns a copy of the given map. This is useful for creating an immutable map.
// If the type stored in the map implements the Copier interface, it will use that to copy the
// values. Otherwise, it will use the standard copy function.
func CopyMap[K comparable, V any](m map[K]V) map[K]V {
	return immutable.CopyMap(m)
}
