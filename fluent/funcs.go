package fluent

import (
	"cmp"

	"github.com/gostdlib/fluent/values/generics/sets"
)

// Go methods cannot add type parameters, so steps that change the element type or need
// a comparable element are functions.

// Map replaces each element with f(element). Steps added to the returned Chain see the new values.
func Map[T, U any](c Chain[T], f func(T) U) Chain[U] {
	return retype[T, U](c.stateless(StepMap, func(_ int, v any) (any, bool, error) {
		return f(as[T](v)), true, nil
	}))
}

// TryMap is like Map, but an error returned by f fails materialization.
func TryMap[T, U any](c Chain[T], f func(T) (U, error)) Chain[U] {
	return retype[T, U](c.stateless(StepMap, func(_ int, v any) (any, bool, error) {
		u, err := f(as[T](v))
		if err != nil {
			return nil, false, callbackError{err}
		}
		return u, true, nil
	}))
}

// FlatMap replaces each element with the elements of f(element), in order.
func FlatMap[T, U any](c Chain[T], f func(T) []U) Chain[U] {
	return retype[T, U](c.stateful(StepFlatMap, func(in []any) ([]any, error) {
		out := make([]any, 0, len(in))
		for _, v := range in {
			for _, u := range f(as[T](v)) {
				out = append(out, u)
			}
		}
		return out, nil
	}))
}

// Distinct removes duplicate elements, keeping the first occurrence of each.
func Distinct[T comparable](c Chain[T]) Chain[T] {
	return DistinctBy(c, func(v T) T { return v })
}

// DistinctBy removes elements whose key was already seen, keeping the first occurrence of each key.
func DistinctBy[T any, K comparable](c Chain[T], key func(T) K) Chain[T] {
	return c.stateful(StepDistinct, func(in []any) ([]any, error) {
		seen := sets.Set[K]{}
		out := in[:0]
		for _, v := range in {
			if seen.Insert(key(as[T](v))) {
				out = append(out, v)
			}
		}
		return out, nil
	})
}

// SortedAsc reorders elements in ascending natural order. Equal elements keep their relative order.
func SortedAsc[T cmp.Ordered](c Chain[T]) Chain[T] {
	return c.Sorted(cmp.Compare[T])
}

// Without removes every element equal to one of vals.
func Without[T comparable](c Chain[T], vals ...T) Chain[T] {
	remove := sets.New(vals...)
	return c.Filter(func(v T) bool {
		return !remove.Contains(v)
	})
}

// retype changes the element type of a Chain without adding a stage. The stages themselves
// are type erased, so this is safe as long as the last stage produces U values.
func retype[T, U any](c Chain[T]) Chain[U] {
	return Chain[U]{ctx: c.ctx, src: c.src, last: c.last}
}
