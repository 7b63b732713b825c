/*
Package errors provides the error type returned by the packages in this module. Every Error carries
a Category and a Type, the location it was created at and the time it was created. Creating one with
E() records it on the OpenTelemetry span found in the Context and increments a counter named
<Category>.<Type>.

Packages using this define their own Category and Type values:

	//go:generate stringer -type=Category -linecomment

	// Category represents the category of the error.
	type Category uint32

	func (c Category) Category() string {
		return c.String()
	}

	const (
		// CatUnknown represents an unknown category. This should not be used.
		CatUnknown Category = 0 // Unknown
		// CatInput represents an error caused by the elements being processed.
		CatInput Category = 1 // Input
	)

Extra detail is provided by wrapping a custom error type that implements LogAttrer and/or
TraceAttrer:

	// DuplicateKeyError is returned when two entries share a key.
	type DuplicateKeyError struct {
		Key any
	}

	func (d DuplicateKeyError) Error() string {
		return fmt.Sprintf("duplicate key %v", d.Key)
	}

	// LogAttrs implements LogAttrer.LogAttrs().
	func (d DuplicateKeyError) LogAttrs(context.Context) []slog.Attr {
		return []slog.Attr{slog.Group("fluent.DuplicateKeyError", "Key", d.Key)}
	}

	err := errors.E(ctx, CatInput, TypeDuplicateKey, DuplicateKeyError{Key: "a"})

Note: functions or methods returning an Error should always return the error interface and never the
concrete Error type.
*/
package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"runtime"
	"runtime/debug"
	"time"
	"unsafe"

	ictx "github.com/gostdlib/fluent/internal/context"
	ierr "github.com/gostdlib/fluent/internal/errors"
	"github.com/gostdlib/fluent/telemetry/log"

	"github.com/go-json-experiment/json"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	otelTrace "go.opentelemetry.io/otel/trace"
)

// LogAttrer is an interface that can be implemented by an error to return a list of attributes
// used in logging.
type LogAttrer interface {
	// LogAttrs returns a []slog.Attr that will be used in logging.
	LogAttrs(ctx context.Context) []slog.Attr
}

// TraceAttrer is an interface that can be implemented by an error to return a list of attributes
// used in tracing. Keys should be prepended by the given string. This is used by Error to
// add the package name of the error type attribute key to prevent collisions.
type TraceAttrer interface {
	TraceAttrs(ctx context.Context, prepend string) []attribute.KeyValue
}

// Category is the category of the error.
type Category interface {
	Category() string
}

// Type is the type of the error.
type Type interface {
	Type() string
}

type errImplements interface {
	error
	LogAttrer
	TraceAttrer

	Is(target error) bool
	Unwrap() error
}

// Validate we implement the correct interfaces.
var _ errImplements = Error{}

// Error represents an error that has a category and a type. Created with E().
type Error struct {
	// Category is the category of the error. Should always be provided.
	Category Category
	// Type is the type of the error. This is a subcategory of the Category.
	// It is not always provided.
	Type Type
	// Msg is the message of the error.
	Msg error
	// MsgOverride is the message that should be used in place of the error message. This can happen
	// if the error message is sensitive or contains PII.
	MsgOverride string

	// File is the file that the error was created in. This is automatically
	// filled in by the E().
	File string
	// Line is the line that the error was created on. This is automatically
	// filled in by the E().
	Line int
	// ErrTime is the time that the error was created. This is automatically filled
	// in by E(). This is in UTC.
	ErrTime time.Time
	// StackTrace is the stack trace of the error. This is automatically filled
	// in by E() if WithStackTrace() is used.
	StackTrace string
}

// EOption is an optional argument for E().
type EOption = ierr.EOption

// WithSuppressTraceErr will prevent the trace as being recorded with an error status.
// The trace will still receive the error message.
func WithSuppressTraceErr() EOption {
	return func(e ierr.EOpts) ierr.EOpts {
		e.SuppressTraceErr = true
		return e
	}
}

// WithCallNum is used if you need to set the runtime.CallNum() in order to get the correct filename and line.
// This can happen if you create a call wrapper around E(), because you would then need to look up one more stack frame
// for every wrapper. This defaults to 1 which sets to the frame of the caller of E().
func WithCallNum(i int) EOption {
	return func(e ierr.EOpts) ierr.EOpts {
		e.CallNum = i
		return e
	}
}

// WithStackTrace will add a stack trace to the error. This is not recommended for general use as
// it can cause performance issues when errors are created frequently.
func WithStackTrace() EOption {
	return func(e ierr.EOpts) ierr.EOpts {
		e.StackTrace = true
		return e
	}
}

// WithOptions returns a Context that applies options to every E() call made with it. These are
// applied after the options passed to E().
func WithOptions(ctx context.Context, options ...EOption) context.Context {
	return ictx.WithEOptions(ctx, options...)
}

var now = time.Now

// E creates a new Error with the given parameters. If the message is already an Error, it will be returned instead.
func E(ctx context.Context, c Category, t Type, msg error, options ...EOption) Error {
	if e, ok := msg.(Error); ok {
		return e
	}

	opts := ierr.EOpts{CallNum: 1}

	for _, o := range options {
		opts = o(opts)
	}
	for _, o := range ictx.EOptions(ctx) {
		opts = o(opts)
	}

	_, filename, line, ok := runtime.Caller(opts.CallNum)
	if !ok {
		filename = "unknown"
	}

	if msg == nil {
		msg = errors.New("bug: nil error")
	}

	var st string
	if opts.StackTrace {
		st = bytesToStr(debug.Stack())
	}

	e := Error{
		Category:   c,
		Type:       t,
		File:       filename,
		Line:       line,
		Msg:        msg,
		ErrTime:    now().UTC(),
		StackTrace: st,
	}

	e.trace(ctx, opts.SuppressTraceErr)
	e.metrics(ctx)
	return e
}

// Error implements the error interface.
func (e Error) Error() string {
	if e.MsgOverride != "" {
		return e.MsgOverride
	}
	if e.Msg == nil {
		return ""
	}
	return e.Msg.Error()
}

// Is implements the errors.Is() interface. An Error is equal to another Error if the category and type are the same.
func (e Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if targetE, ok := target.(Error); ok {
		return e.Category == targetE.Category && e.Type == targetE.Type
	}

	we := e.Msg
	for {
		if we == nil {
			return false
		}
		if errors.Is(we, target) {
			return true
		}
		we = errors.Unwrap(we)
	}
}

// Unwrap unwraps the error.
func (e Error) Unwrap() error {
	return e.Msg
}

func (e Error) names() (cat, typ string) {
	cat, typ = "Unknown", "Unknown"
	if e.Category != nil {
		cat = e.Category.Category()
	}
	if e.Type != nil {
		typ = e.Type.Type()
	}
	return cat, typ
}

// LogAttrs implements the LogAttrer.LogAttrs() interface.
func (e Error) LogAttrs(ctx context.Context) []slog.Attr {
	cat, typ := e.names()

	traceID := ""
	if ctx != nil {
		sc := otelTrace.SpanContextFromContext(ctx)
		if sc.HasTraceID() {
			traceID = sc.TraceID().String()
		}
	}

	attrs := []slog.Attr{
		slog.String("Category", cat),
		slog.String("Type", typ),
		slog.String("ErrSrc", e.File),
		slog.Int("ErrLine", e.Line),
		slog.Time("ErrTime", e.ErrTime.UTC()),
		slog.String("TraceID", traceID),
	}
	if e.StackTrace != "" {
		attrs = append(attrs, slog.String("StackTrace", e.StackTrace))
	}

	return attrs
}

// TraceAttrs converts the error to a list of trace attributes consumable
// by the OpenTelemetry trace package. This does not include attributes on the .Msg field.
func (e Error) TraceAttrs(ctx context.Context, prepend string) []attribute.KeyValue {
	cat, typ := e.names()

	// Unlike logging, we don't add time, as that gets recorded on the span.
	// No need for TraceID as it's already on the span.
	return []attribute.KeyValue{
		attribute.String(prepend+"Category", cat),
		attribute.String(prepend+"Type", typ),
		attribute.String(prepend+"ErrSrc", e.File),
		attribute.Int(prepend+"ErrLine", e.Line),
	}
}

// trace adds the error to the trace span. This is automatically done when the error is created.
func (e Error) trace(ctx context.Context, suppressTraceErr bool) {
	if ctx == nil {
		return
	}

	s := otelTrace.SpanFromContext(ctx)
	if !s.IsRecording() {
		return
	}

	attrs := e.TraceAttrs(ctx, "")
	for err := e.Msg; err != nil; err = errors.Unwrap(err) {
		if t, ok := err.(TraceAttrer); ok {
			ty := reflect.TypeOf(t)
			attrs = append(attrs, t.TraceAttrs(ctx, ty.PkgPath()+"."+ty.Name()+".")...)
		}
	}

	s.RecordError(
		e,
		otelTrace.WithAttributes(attrs...),
		otelTrace.WithTimestamp(e.ErrTime),
	)
	if !suppressTraceErr {
		s.SetStatus(codes.Error, e.Error())
	}
}

const meterName = "github.com/gostdlib/fluent/errors"

// metrics records the error in the metrics system using the Category() and Type() as the metric name
// in the format: <Category>.<Type>.
func (e Error) metrics(ctx context.Context) {
	mp := ictx.MeterProvider(ctx)
	if mp == nil {
		return
	}
	m := mp.Meter(meterName)
	if m == nil {
		return
	}

	cat, typ := e.names()
	c, err := m.Int64Counter(fmt.Sprintf("%s.%s", cat, typ))
	if err != nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	c.Add(ctx, 1)
}

// Log logs the error with the given callID and customerID for easy lookup. Also
// logs the request that caused the error. The request is expected to be JSON serializable.
func (e Error) Log(ctx context.Context, callID, customerID string, req any) {
	if ctx == nil {
		ctx = context.Background()
	}

	var reqBytes []byte
	if req != nil {
		// Ignore serialization errors, it just means we log less information.
		var err error
		reqBytes, err = json.Marshal(req)
		if err != nil {
			reqBytes = fmt.Appendf(nil, "unable to marshal request %T object due to error: %s", req, err.Error())
		}
	}

	logAttrs := e.LogAttrs(ctx)
	var attrs = make([]slog.Attr, 0, 3+len(logAttrs))
	if customerID != "" {
		attrs = append(attrs, slog.Any("CustomerID", customerID))
	}
	if callID != "" {
		attrs = append(attrs, slog.Any("CallID", callID))
	}
	if len(reqBytes) > 0 {
		attrs = append(attrs, slog.Any("Request", bytesToStr(reqBytes)))
	}
	attrs = append(attrs, logAttrs...)
	attrs = append(attrs, MsgAttrs(ctx, e.Msg)...)

	log.Default().LogAttrs(ctx, slog.LevelError, e.Error(), attrs...)
}

// MsgAttrs returns the LogAttrs() of err and every error it wraps that implements LogAttrer.
func MsgAttrs(ctx context.Context, err error) []slog.Attr {
	var attrs []slog.Attr
	for ; err != nil; err = errors.Unwrap(err) {
		if f, ok := err.(LogAttrer); ok {
			attrs = append(attrs, f.LogAttrs(ctx)...)
		}
	}
	return attrs
}

// bytesToStr converts a byte slice to a string without copying the data.
func bytesToStr(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}
