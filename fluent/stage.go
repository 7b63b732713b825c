package fluent

import (
	"slices"

	"github.com/gostdlib/fluent/errors"
)

// eachFunc handles a single element. pos is the position of the element in the sequence the
// stage receives. Returning keep == false drops the element.
type eachFunc func(pos int, v any) (out any, keep bool, err error)

// allFunc handles the full sequence. It owns in and may reorder or reslice it.
type allFunc func(in []any) ([]any, error)

// stage is a queued step. Stages form a persistent list linked from the newest to the oldest,
// so chains that branch from a common parent share the parent's stages. A stage is never
// modified after it is linked. Exactly one of each or all is set.
type stage struct {
	prev  *stage
	index int
	kind  StepKind

	each eachFunc
	all  allFunc
}

// source yields the pending elements. It must yield the same elements every time it is called.
type source struct {
	seq  func(yield func(any) bool)
	size int
}

func (s source) each(yield func(any) bool) {
	if s.seq == nil {
		return
	}
	s.seq(yield)
}

// list returns the stages ending at s in declaration order.
func (s *stage) list() []*stage {
	if s == nil {
		return nil
	}
	l := make([]*stage, s.index+1)
	for n := s; n != nil; n = n.prev {
		l[n.index] = n
	}
	return l
}

// run applies stages to src. Runs of stateless stages are fused into a single pass and
// buffering only happens at stateful stages. Errors returned are detail errors
// (NullElementError, StepError) or an errors.Error from a nested chain.
func run(src source, stages []*stage) ([]any, error) {
	var (
		buf   []any
		first = true
	)

	for i := 0; ; {
		j := i
		for j < len(stages) && stages[j].each != nil {
			j++
		}

		if first || j > i {
			seq := src.each
			size := src.size
			if !first {
				seq = slices.Values(buf)
				size = len(buf)
			}
			var err error
			buf, err = fuse(seq, size, stages[i:j])
			if err != nil {
				return nil, err
			}
			first = false
		}

		if j == len(stages) {
			return buf, nil
		}

		var err error
		buf, err = runAll(stages[j], buf)
		if err != nil {
			return nil, err
		}
		i = j + 1
	}
}

// fuse runs every element of seq through the stateless stages in order.
func fuse(seq func(yield func(any) bool), size int, stages []*stage) (out []any, err error) {
	out = make([]any, 0, size)
	counts := make([]int, len(stages))
	cur := 0

	defer func() {
		if r := recover(); r != nil {
			if cur >= len(stages) {
				panic(r)
			}
			st := stages[cur]
			out, err = nil, StepError{Step: st.index, Kind: st.kind, Err: PanicError{Value: r}}
		}
	}()

	seq(func(v any) bool {
		for cur = 0; cur < len(stages); cur++ {
			st := stages[cur]
			pos := counts[cur]
			counts[cur]++

			var keep bool
			v, keep, err = st.each(pos, v)
			if err != nil {
				err = stageFailure(st, pos, err)
				return false
			}
			if !keep {
				return true
			}
		}
		out = append(out, v)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func runAll(st *stage, in []any) (out []any, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, StepError{Step: st.index, Kind: st.kind, Err: PanicError{Value: r}}
		}
	}()

	out, err = st.all(in)
	if err != nil {
		return nil, stageFailure(st, 0, err)
	}
	return out, nil
}

// stageFailure converts an error returned by a stage into the detail error for that stage.
func stageFailure(st *stage, pos int, err error) error {
	switch e := err.(type) {
	case callbackError:
		return StepError{Step: st.index, Kind: st.kind, Err: e.err}
	case errors.Error:
		return e
	}
	if err == errNull {
		return NullElementError{Step: st.index, Position: pos}
	}
	return StepError{Step: st.index, Kind: st.kind, Err: err}
}

// as converts a boxed element back to T. A nil interface becomes the zero value of T, which
// is nil for the types that can hold nil.
func as[T any](v any) T {
	t, _ := v.(T)
	return t
}
