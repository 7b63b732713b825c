package fluent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gostdlib/fluent/errors"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate stringer -type=Category -linecomment

// Category represents the category of the error.
type Category uint32

func (c Category) Category() string {
	return c.String()
}

const (
	// CatUnknown represents an unknown category. This should not be used.
	CatUnknown Category = 0 // Unknown
	// CatInput represents an error caused by the elements being materialized.
	CatInput Category = 1 // Input
	// CatCallback represents an error raised by a caller supplied function.
	CatCallback Category = 2 // Callback
)

//go:generate stringer -type=Type -linecomment

// Type represents the type of the error.
type Type uint16

func (t Type) Type() string {
	return t.String()
}

const (
	// TypeUnknown represents an unknown type.
	TypeUnknown Type = 0 // Unknown
	// TypeNullElement is a nil element found by a RejectingNulls() step.
	TypeNullElement Type = 1 // NullElement
	// TypeDuplicateKey is two elements mapping to the same key without a merge function.
	TypeDuplicateKey Type = 2 // DuplicateKey
	// TypeTransformStepFailed is a callback that returned an error or panicked.
	TypeTransformStepFailed Type = 3 // TransformStepFailed
)

// Sentinels for use with errors.Is(). Any error returned by a terminal operation matches
// exactly one of these.
var (
	ErrNullElement         = errors.Error{Category: CatInput, Type: TypeNullElement}
	ErrDuplicateKey        = errors.Error{Category: CatInput, Type: TypeDuplicateKey}
	ErrTransformStepFailed = errors.Error{Category: CatCallback, Type: TypeTransformStepFailed}
)

// NullElementError is wrapped by ErrNullElement errors.
type NullElementError struct {
	// Step is the index of the RejectingNulls() step that saw the element.
	Step int
	// Position is the index of the element in the sequence the step received.
	Position int
}

func (n NullElementError) Error() string {
	return fmt.Sprintf("step %d(RejectNull): nil element at position %d", n.Step, n.Position)
}

// LogAttrs implements errors.LogAttrer.
func (n NullElementError) LogAttrs(context.Context) []slog.Attr {
	return []slog.Attr{slog.Group("fluent.NullElementError", "Step", n.Step, "Position", n.Position)}
}

// TraceAttrs implements errors.TraceAttrer.
func (n NullElementError) TraceAttrs(ctx context.Context, prepend string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(prepend+"Step", n.Step),
		attribute.Int(prepend+"Position", n.Position),
	}
}

// DuplicateKeyError is wrapped by ErrDuplicateKey errors.
type DuplicateKeyError struct {
	// Key is the key two elements collided on.
	Key any
}

func (d DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %v and no merge function provided", d.Key)
}

// LogAttrs implements errors.LogAttrer.
func (d DuplicateKeyError) LogAttrs(context.Context) []slog.Attr {
	return []slog.Attr{slog.Group("fluent.DuplicateKeyError", "Key", fmt.Sprint(d.Key))}
}

// TraceAttrs implements errors.TraceAttrer.
func (d DuplicateKeyError) TraceAttrs(ctx context.Context, prepend string) []attribute.KeyValue {
	return []attribute.KeyValue{attribute.String(prepend+"Key", fmt.Sprint(d.Key))}
}

// StepError is wrapped by ErrTransformStepFailed errors. It wraps the error returned by
// the callback, or a PanicError if the callback panicked.
type StepError struct {
	// Step is the index of the step that was running. Callbacks passed to a terminal
	// operation report the number of queued steps.
	Step int
	// Kind is the kind of the step.
	Kind StepKind
	// Err is the failure.
	Err error
}

func (s StepError) Error() string {
	return fmt.Sprintf("step %d(%s): %s", s.Step, s.Kind, s.Err)
}

// Unwrap unwraps the error.
func (s StepError) Unwrap() error {
	return s.Err
}

// LogAttrs implements errors.LogAttrer.
func (s StepError) LogAttrs(context.Context) []slog.Attr {
	return []slog.Attr{slog.Group("fluent.StepError", "Step", s.Step, "Kind", s.Kind.String())}
}

// TraceAttrs implements errors.TraceAttrer.
func (s StepError) TraceAttrs(ctx context.Context, prepend string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(prepend+"Step", s.Step),
		attribute.String(prepend+"Kind", s.Kind.String()),
	}
}

// PanicError holds the value a callback panicked with.
type PanicError struct {
	Value any
}

func (p PanicError) Error() string {
	return fmt.Sprintf("panic: %v", p.Value)
}

// Unwrap returns Value if it is an error.
func (p PanicError) Unwrap() error {
	if err, ok := p.Value.(error); ok {
		return err
	}
	return nil
}

// callbackError marks an error returned by a caller supplied function. The executor
// converts it to a StepError for the running stage.
type callbackError struct {
	err error
}

func (c callbackError) Error() string {
	return c.err.Error()
}

// errNull is returned by a stage that found a nil element under the fail policy.
var errNull = errors.New("nil element")
