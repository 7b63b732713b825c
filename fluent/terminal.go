package fluent

import (
	"github.com/gostdlib/fluent/values/immutable"
)

// Terminal operations apply every queued step in the order it was added and never modify the
// Chain. They either return a complete result or an error, never a partial result. Errors match
// one of ErrNullElement, ErrDuplicateKey or ErrTransformStepFailed with errors.Is().

// ToList materializes the Chain into an immutable.Slice.
func (c Chain[T]) ToList() (immutable.Slice[T], error) {
	vals, err := c.build()
	if err != nil {
		return immutable.Slice[T]{}, err
	}
	return listFrom(unbox[T](vals)), nil
}

// Count materializes the Chain and returns the number of elements.
func (c Chain[T]) Count() (int, error) {
	vals, err := c.build()
	if err != nil {
		return 0, err
	}
	return len(vals), nil
}

// First materializes the Chain and returns the first element. ok is false if there are none.
func (c Chain[T]) First() (v T, ok bool, err error) {
	vals, err := c.build()
	if err != nil {
		return v, false, err
	}
	if len(vals) == 0 {
		return v, false, nil
	}
	return as[T](vals[0]), true, nil
}

// ForEach materializes the Chain and calls fn with each element in order.
func (c Chain[T]) ForEach(fn func(T)) error {
	vals, err := c.build()
	if err != nil {
		return err
	}
	err = collect(c, func() error {
		for _, v := range vals {
			fn(as[T](v))
		}
		return nil
	})
	if err != nil {
		return c.fail(err)
	}
	return nil
}

// AnyMatch materializes the Chain and reports if pred is true for any element.
func (c Chain[T]) AnyMatch(pred func(T) bool) (bool, error) {
	return c.match(pred)
}

// AllMatch materializes the Chain and reports if pred is true for every element.
// This is true for an empty Chain.
func (c Chain[T]) AllMatch(pred func(T) bool) (bool, error) {
	found, err := c.match(func(v T) bool { return !pred(v) })
	return !found && err == nil, err
}

// NoneMatch materializes the Chain and reports if pred is false for every element.
// This is true for an empty Chain.
func (c Chain[T]) NoneMatch(pred func(T) bool) (bool, error) {
	found, err := c.match(pred)
	return !found && err == nil, err
}

// match reports if pred is true for any element.
func (c Chain[T]) match(pred func(T) bool) (bool, error) {
	vals, err := c.build()
	if err != nil {
		return false, err
	}
	found := false
	err = collect(c, func() error {
		for _, v := range vals {
			if pred(as[T](v)) {
				found = true
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return false, c.fail(err)
	}
	return found, nil
}

// ToSet materializes the Chain into an immutable.Set. Duplicates are removed even if Distinct()
// was not used, keeping the first occurrence.
func ToSet[T comparable](c Chain[T]) (immutable.Set[T], error) {
	vals, err := c.build()
	if err != nil {
		return immutable.Set[T]{}, err
	}
	var s immutable.Set[T]
	err = collect(c, func() error {
		s = setFrom(unbox[T](vals))
		return nil
	})
	if err != nil {
		return immutable.Set[T]{}, c.fail(err)
	}
	return s, nil
}

// ToSortedSet materializes the Chain into an immutable.SortedSet ordered by less. Elements that
// are neither less than the other are duplicates and the first occurrence is kept.
func ToSortedSet[T any](c Chain[T], less func(a, b T) bool) (immutable.SortedSet[T], error) {
	vals, err := c.build()
	if err != nil {
		return immutable.SortedSet[T]{}, err
	}
	var s immutable.SortedSet[T]
	err = collect(c, func() error {
		s = sortedSetFrom(less, unbox[T](vals))
		return nil
	})
	if err != nil {
		return immutable.SortedSet[T]{}, c.fail(err)
	}
	return s, nil
}

type mapOpts[V any] struct {
	merge func(existing, incoming V) V
}

// MapOption is an optional argument for ToMap() and EntriesToMap().
type MapOption[V any] func(mapOpts[V]) mapOpts[V]

// WithMerge resolves elements that map to the same key. merge is called with the value stored so
// far and the value of the later element, in encounter order, and returns the value to keep.
func WithMerge[V any](merge func(existing, incoming V) V) MapOption[V] {
	return func(o mapOpts[V]) mapOpts[V] {
		o.merge = merge
		return o
	}
}

// ToMap materializes the Chain into an immutable.Map using keyFn and valueFn on each element.
// If two elements have the same key and WithMerge() was not provided, an ErrDuplicateKey error
// is returned.
func ToMap[T any, K comparable, V any](c Chain[T], keyFn func(T) K, valueFn func(T) V, options ...MapOption[V]) (immutable.Map[K, V], error) {
	opts := mapOpts[V]{}
	for _, o := range options {
		opts = o(opts)
	}

	vals, err := c.build()
	if err != nil {
		return immutable.Map[K, V]{}, err
	}

	var m immutable.Map[K, V]
	err = collect(c, func() error {
		entries := make([]Entry[K, V], len(vals))
		for i, v := range vals {
			t := as[T](v)
			entries[i] = Entry[K, V]{Key: keyFn(t), Value: valueFn(t)}
		}
		entries, err := resolve(entries, opts.merge)
		if err != nil {
			return err
		}
		m, err = mapFrom(entries)
		return err
	})
	if err != nil {
		return immutable.Map[K, V]{}, c.fail(err)
	}
	return m, nil
}

// EntriesToMap materializes a Chain of Entry into an immutable.Map. See ToMap().
func EntriesToMap[K comparable, V any](c Chain[Entry[K, V]], options ...MapOption[V]) (immutable.Map[K, V], error) {
	return ToMap(
		c,
		func(e Entry[K, V]) K { return e.Key },
		func(e Entry[K, V]) V { return e.Value },
		options...,
	)
}

// Reduce materializes the Chain and folds the elements into identity with fn, in order.
func Reduce[T, A any](c Chain[T], identity A, fn func(acc A, v T) A) (A, error) {
	var zero A
	vals, err := c.build()
	if err != nil {
		return zero, err
	}
	acc := identity
	err = collect(c, func() error {
		for _, v := range vals {
			acc = fn(acc, as[T](v))
		}
		return nil
	})
	if err != nil {
		return zero, c.fail(err)
	}
	return acc, nil
}

// Min materializes the Chain and returns the smallest element by cmp. When several are equal,
// the first is returned. ok is false if there are no elements.
func Min[T any](c Chain[T], cmp func(a, b T) int) (v T, ok bool, err error) {
	return extreme(c, func(a, b T) bool { return cmp(a, b) < 0 })
}

// Max materializes the Chain and returns the largest element by cmp. When several are equal,
// the first is returned. ok is false if there are no elements.
func Max[T any](c Chain[T], cmp func(a, b T) int) (v T, ok bool, err error) {
	return extreme(c, func(a, b T) bool { return cmp(a, b) > 0 })
}

// extreme returns the first element that no later element beats.
func extreme[T any](c Chain[T], beats func(a, b T) bool) (v T, ok bool, err error) {
	vals, err := c.build()
	if err != nil {
		return v, false, err
	}
	if len(vals) == 0 {
		return v, false, nil
	}
	best := as[T](vals[0])
	err = collect(c, func() error {
		for _, x := range vals[1:] {
			t := as[T](x)
			if beats(t, best) {
				best = t
			}
		}
		return nil
	})
	if err != nil {
		return v, false, c.fail(err)
	}
	return best, true, nil
}

// collect runs fn on behalf of a terminal operation. A panic is returned as a StepError
// with Kind StepCollect.
func collect[T any](c Chain[T], fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = StepError{Step: c.Len(), Kind: StepCollect, Err: PanicError{Value: r}}
		}
	}()
	return fn()
}
