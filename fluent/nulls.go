package fluent

import "reflect"

type nullPolicy uint8

const (
	nullFail nullPolicy = iota
	nullDrop
)

func (c Chain[T]) nulls(p nullPolicy) Chain[T] {
	return c.stateless(StepRejectNull, func(_ int, v any) (any, bool, error) {
		if !isNil(v) {
			return v, true, nil
		}
		if p == nullDrop {
			return nil, false, nil
		}
		return nil, false, errNull
	})
}

// isNil reports if v is a nil interface or holds a nil pointer, map, slice, func or channel.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
