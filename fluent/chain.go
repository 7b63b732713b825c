package fluent

import (
	"context"
	"iter"
	"log/slog"
	"slices"

	"github.com/gostdlib/fluent/errors"
	"github.com/gostdlib/fluent/telemetry/log"
	"github.com/gostdlib/fluent/values/immutable"
	"github.com/gostdlib/fluent/values/immutable/unsafe"
)

// Chain is a deferred pipeline of steps over a sequence of elements. Every method that adds a step
// returns a new Chain and leaves the receiver as it was, so a Chain can be branched and reused.
// Nothing runs until a terminal operation such as ToList() is called.
//
// The zero value is an empty Chain. A Chain is safe to use concurrently as long as the functions
// passed to it are.
type Chain[T any] struct {
	ctx  context.Context
	src  source
	last *stage
}

// From starts a Chain over the elements of an immutable.Slice. The Slice storage is shared, not copied.
func From[T any](s immutable.Slice[T]) Chain[T] {
	return fromFrozen(unsafe.Slice(s))
}

// FromSet starts a Chain over the members of an immutable.Set in insertion order.
func FromSet[E comparable](s immutable.Set[E]) Chain[E] {
	return fromFrozen(unsafe.SetMembers(s))
}

// FromSortedSet starts a Chain over the members of an immutable.SortedSet in ascending order.
func FromSortedSet[E any](s immutable.SortedSet[E]) Chain[E] {
	return fromFrozen(s.Members())
}

// FromMap starts a Chain over the entries of an immutable.Map. The entries are read when
// FromMap is called, so while the order is not defined, it is the same every time the
// returned Chain is materialized.
func FromMap[K comparable, V any](m immutable.Map[K, V]) Chain[Entry[K, V]] {
	return FromSeq2(m.All())
}

// FromSeq starts a Chain over the values yielded by seq. seq is consumed before FromSeq returns.
func FromSeq[T any](seq iter.Seq[T]) Chain[T] {
	if seq == nil {
		return Chain[T]{}
	}
	return fromFrozen(slices.Collect(seq))
}

// FromSeq2 starts a Chain of Entry over the pairs yielded by seq. seq is consumed before FromSeq2 returns.
func FromSeq2[K comparable, V any](seq iter.Seq2[K, V]) Chain[Entry[K, V]] {
	var entries []Entry[K, V]
	if seq != nil {
		for k, v := range seq {
			entries = append(entries, Entry[K, V]{Key: k, Value: v})
		}
	}
	return fromFrozen(entries)
}

// Of starts a Chain over vals. vals is copied.
func Of[T any](vals ...T) Chain[T] {
	return fromFrozen(slices.Clone(vals))
}

// Empty returns a Chain with no elements.
func Empty[T any]() Chain[T] {
	return Chain[T]{}
}

// fromFrozen starts a Chain over s. s must never be modified afterwards.
func fromFrozen[T any](s []T) Chain[T] {
	return Chain[T]{
		src: source{
			seq: func(yield func(any) bool) {
				for _, v := range s {
					if !yield(v) {
						return
					}
				}
			},
			size: len(s),
		},
	}
}

// WithContext returns a Chain that records errors against ctx. Errors returned by terminal
// operations are added to the span in ctx and logged with its attributes. ctx is never checked
// for cancellation.
func (c Chain[T]) WithContext(ctx context.Context) Chain[T] {
	c.ctx = ctx
	return c
}

// Context returns the Context set with WithContext() or context.Background().
func (c Chain[T]) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// Steps returns the kinds of the queued steps in the order they were added.
func (c Chain[T]) Steps() []StepKind {
	l := c.last.list()
	kinds := make([]StepKind, len(l))
	for i, s := range l {
		kinds[i] = s.kind
	}
	return kinds
}

// Len returns the number of queued steps.
func (c Chain[T]) Len() int {
	if c.last == nil {
		return 0
	}
	return c.last.index + 1
}

// Filter keeps elements for which pred returns true.
func (c Chain[T]) Filter(pred func(T) bool) Chain[T] {
	return c.stateless(StepFilter, func(_ int, v any) (any, bool, error) {
		return v, pred(as[T](v)), nil
	})
}

// TryFilter is like Filter, but an error returned by pred fails materialization.
func (c Chain[T]) TryFilter(pred func(T) (bool, error)) Chain[T] {
	return c.stateless(StepFilter, func(_ int, v any) (any, bool, error) {
		keep, err := pred(as[T](v))
		if err != nil {
			return nil, false, callbackError{err}
		}
		return v, keep, nil
	})
}

// Sorted reorders elements by cmp, which returns a negative number when a < b, a positive
// number when a > b and zero when they are equal. Equal elements keep their relative order.
func (c Chain[T]) Sorted(cmp func(a, b T) int) Chain[T] {
	return c.stateful(StepSort, func(in []any) ([]any, error) {
		slices.SortStableFunc(in, func(a, b any) int {
			return cmp(as[T](a), as[T](b))
		})
		return in, nil
	})
}

// RejectingNulls fails materialization with an ErrNullElement error if a nil element reaches this step.
func (c Chain[T]) RejectingNulls() Chain[T] {
	return c.nulls(nullFail)
}

// DroppingNulls removes nil elements.
func (c Chain[T]) DroppingNulls() Chain[T] {
	return c.nulls(nullDrop)
}

// Peek calls fn with each element that reaches this step, without changing it.
func (c Chain[T]) Peek(fn func(T)) Chain[T] {
	return c.stateless(StepPeek, func(_ int, v any) (any, bool, error) {
		fn(as[T](v))
		return v, true, nil
	})
}

// Limit keeps at most the first n elements. A negative n is treated as 0.
func (c Chain[T]) Limit(n int) Chain[T] {
	n = max(n, 0)
	return c.stateful(StepLimit, func(in []any) ([]any, error) {
		if len(in) > n {
			return in[:n], nil
		}
		return in, nil
	})
}

// Skip drops the first n elements. A negative n is treated as 0.
func (c Chain[T]) Skip(n int) Chain[T] {
	n = max(n, 0)
	return c.stateful(StepSkip, func(in []any) ([]any, error) {
		if len(in) > n {
			return in[n:], nil
		}
		return nil, nil
	})
}

// With appends vals after the elements that reach this step. vals is copied.
func (c Chain[T]) With(vals ...T) Chain[T] {
	boxed := make([]any, len(vals))
	for i, v := range vals {
		boxed[i] = v
	}
	return c.stateful(StepAppend, func(in []any) ([]any, error) {
		return append(in, boxed...), nil
	})
}

// Concat appends the elements other materializes to. An error materializing other is
// returned as is.
func (c Chain[T]) Concat(other Chain[T]) Chain[T] {
	return c.stateful(StepAppend, func(in []any) ([]any, error) {
		vals, err := other.build()
		if err != nil {
			return nil, err
		}
		return append(in, vals...), nil
	})
}

// stateless returns a new Chain with a stage that handles one element at a time.
func (c Chain[T]) stateless(kind StepKind, fn eachFunc) Chain[T] {
	return c.push(&stage{kind: kind, each: fn})
}

// stateful returns a new Chain with a stage that needs all elements at once.
func (c Chain[T]) stateful(kind StepKind, fn allFunc) Chain[T] {
	return c.push(&stage{kind: kind, all: fn})
}

// push links s after the last stage of c. c is a copy, so the caller's Chain is untouched.
func (c Chain[T]) push(s *stage) Chain[T] {
	s.prev = c.last
	s.index = c.Len()
	c.last = s
	return c
}

// build applies every queued step. Returned errors are always an errors.Error.
func (c Chain[T]) build() ([]any, error) {
	out, err := run(c.src, c.last.list())
	if err != nil {
		return nil, c.fail(err)
	}
	return out, nil
}

// fail converts a detail error into an errors.Error and logs it at the Debug level.
func (c Chain[T]) fail(err error) error {
	ctx := c.Context()

	var e errors.Error
	switch d := err.(type) {
	case errors.Error:
		e = d
	case NullElementError:
		e = errors.E(ctx, CatInput, TypeNullElement, d, errors.WithCallNum(2))
	case DuplicateKeyError:
		e = errors.E(ctx, CatInput, TypeDuplicateKey, d, errors.WithCallNum(2))
	case StepError:
		e = errors.E(ctx, CatCallback, TypeTransformStepFailed, d, errors.WithCallNum(2))
	default:
		e = errors.E(ctx, CatUnknown, TypeUnknown, d, errors.WithCallNum(2))
	}

	l := log.Default()
	if l.Enabled(ctx, slog.LevelDebug) {
		attrs := append(e.LogAttrs(ctx), slog.Int("Steps", c.Len()))
		attrs = append(attrs, errors.MsgAttrs(ctx, e.Msg)...)
		l.LogAttrs(ctx, slog.LevelDebug, "fluent: materialization failed: "+e.Error(), attrs...)
	}
	return e
}
