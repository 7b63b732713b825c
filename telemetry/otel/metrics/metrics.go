// Package metrics holds the default OpenTelemetry meter provider used by the packages in this module.
// It also provides a Prometheus backed provider for programs that want to export what this
// module records.
package metrics

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	otelprometheus "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

var (
	mu              sync.RWMutex
	defaultProvider metric.MeterProvider
)

// Default returns the default meter provider. If no provider was set, this returns a noop
// provider. Use Set() with noop.NewMeterProvider() to disable metrics after enabling them.
func Default() metric.MeterProvider {
	mu.RLock()
	defer mu.RUnlock()

	if defaultProvider == nil {
		return noop.NewMeterProvider()
	}
	return defaultProvider
}

// Set sets the default meter provider and the otel global meter provider. Setting nil
// returns Default() to the noop provider and leaves the otel global alone.
func Set(p metric.MeterProvider) {
	mu.Lock()
	defaultProvider = p
	mu.Unlock()

	if p != nil {
		otel.SetMeterProvider(p)
	}
}

// MeterName returns the import path of the package containing the function calling MeterName().
// If this can't be determined "unknown" will be returned. This is used to create meters with a name
// that is unique to the package. stackFrame is the number of stack frames to go back, generally 1.
//
// The returned name will be:
//
// [package path]/[package name]
//
// For example:
// "github.com/user/project/pkgName"
func MeterName(stackFrame int) string {
	pc, _, _, ok := runtime.Caller(stackFrame)
	if !ok {
		return "unknown"
	}

	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown"
	}

	fullName := fn.Name() // e.g., "github.com/user/project/pkg.subpkg.(*MyStruct).MyMethod"
	lastSlash := strings.LastIndex(fullName, "/")

	// This only happens when I'm running in the playground where we don't really have a path.
	if lastSlash == -1 {
		sp := strings.Split(fullName, ".")
		if len(sp) > 1 {
			return sp[0]
		}
		return fullName
	}

	return fullName[:strings.Index(fullName[lastSlash:], ".")+lastSlash]
}

// NewPrometheus returns a MeterProvider that exports to reg through the OpenTelemetry Prometheus
// exporter. If reg is nil, prometheus.DefaultRegisterer is used. meta may be nil. The caller is
// responsible for calling Shutdown() on the returned provider.
func NewPrometheus(reg prometheus.Registerer, meta *resource.Resource) (*sdkmetric.MeterProvider, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	exp, err := otelprometheus.New(otelprometheus.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("could not create prometheus exporter: %w", err)
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(exp)}
	if meta != nil {
		opts = append(opts, sdkmetric.WithResource(meta))
	}
	return sdkmetric.NewMeterProvider(opts...), nil
}
