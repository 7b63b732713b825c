package fluent

import (
	"github.com/gostdlib/fluent/values/immutable"
)

// The functions here turn fully applied sequences into immutable containers.

func unbox[T any](vals []any) []T {
	out := make([]T, len(vals))
	for i, v := range vals {
		out[i] = as[T](v)
	}
	return out
}

func listFrom[T any](vals []T) immutable.Slice[T] {
	return immutable.NewSlice(vals)
}

func setFrom[T comparable](vals []T) immutable.Set[T] {
	return immutable.NewSet(vals...)
}

func sortedSetFrom[T any](less func(a, b T) bool, vals []T) immutable.SortedSet[T] {
	return immutable.NewSortedSet(less, vals...)
}

// mapFrom builds a Map from entries that already had their conflicts resolved. A duplicate
// key here is a bug in the caller and returns a DuplicateKeyError.
func mapFrom[K comparable, V any](entries []Entry[K, V]) (immutable.Map[K, V], error) {
	m := make(map[K]V, len(entries))
	for _, e := range entries {
		if _, ok := m[e.Key]; ok {
			return immutable.Map[K, V]{}, DuplicateKeyError{Key: e.Key}
		}
		m[e.Key] = e.Value
	}
	return immutable.NewMap(m), nil
}

// resolve merges entries with equal keys in encounter order. Without merge, the first
// duplicate key is returned as a DuplicateKeyError. The position of the first occurrence
// of a key is kept.
func resolve[K comparable, V any](entries []Entry[K, V], merge func(existing, incoming V) V) ([]Entry[K, V], error) {
	idx := make(map[K]int, len(entries))
	out := make([]Entry[K, V], 0, len(entries))
	for _, e := range entries {
		i, ok := idx[e.Key]
		if !ok {
			idx[e.Key] = len(out)
			out = append(out, e)
			continue
		}
		if merge == nil {
			return nil, DuplicateKeyError{Key: e.Key}
		}
		out[i].Value = merge(out[i].Value, e.Value)
	}
	return out, nil
}
