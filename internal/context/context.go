// Package context exists to avoid some import cycles.
package context

import (
	"context"

	ierr "github.com/gostdlib/fluent/internal/errors"
	"github.com/gostdlib/fluent/telemetry/otel/metrics"

	"go.opentelemetry.io/otel/metric"
	metricsnoop "go.opentelemetry.io/otel/metric/noop"
)

// MetricsKey is a key for the context that stores a metrics.MeterProvider.
type MetricsKey struct{}

// EOptionsKey is a key for the context that stores []ierr.EOption.
type EOptionsKey struct{}

// MeterProvider returns a metric.MeterProvider attached to the context. If no meter provider is attached,
// it returns metrics.Default(). This may be a noop provider.
func MeterProvider(ctx context.Context) metric.MeterProvider {
	if ctx == nil {
		return metrics.Default()
	}
	a := ctx.Value(MetricsKey{})
	if a == nil {
		return metrics.Default()
	}
	l, ok := a.(metric.MeterProvider)
	if !ok {
		return metricsnoop.NewMeterProvider()
	}
	return l
}

// WithMeterProvider attaches a metric.MeterProvider to the context.
func WithMeterProvider(ctx context.Context, mp metric.MeterProvider) context.Context {
	return context.WithValue(ctx, MetricsKey{}, mp)
}

// EOptions returns the error options attached to the context, if any.
func EOptions(ctx context.Context) []ierr.EOption {
	if ctx == nil {
		return nil
	}
	opts, _ := ctx.Value(EOptionsKey{}).([]ierr.EOption)
	return opts
}

// WithEOptions attaches error options to the context. These are appended to any already attached.
func WithEOptions(ctx context.Context, opts ...ierr.EOption) context.Context {
	existing := EOptions(ctx)
	n := make([]ierr.EOption, 0, len(existing)+len(opts))
	n = append(n, existing...)
	n = append(n, opts...)
	return context.WithValue(ctx, EOptionsKey{}, n)
}
