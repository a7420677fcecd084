// internal/common/observability/metrics.go
package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability records pipeline runs through an OpenTelemetry meter whose
// readings are exported on the default prometheus registry.
type Observability struct {
	meterProvider *metric.MeterProvider
	runCounter    otelmetric.Int64Counter
	runDuration   otelmetric.Float64Histogram
}

// New installs a global meter provider for serviceName.
func New(serviceName string) (*Observability, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}
	return newWithReader(serviceName, exporter)
}

func newWithReader(serviceName string, reader metric.Reader) (*Observability, error) {
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	runCounter, err := meter.Int64Counter(
		"promptcraft.runs",
		otelmetric.WithDescription("Number of enhancement runs"),
	)
	if err != nil {
		return nil, fmt.Errorf("create run counter: %w", err)
	}

	runDuration, err := meter.Float64Histogram(
		"promptcraft.run.duration",
		otelmetric.WithDescription("Enhancement run duration"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create run histogram: %w", err)
	}

	return &Observability{
		meterProvider: provider,
		runCounter:    runCounter,
		runDuration:   runDuration,
	}, nil
}

// RecordRun counts one run. A nil receiver is a no-op.
func (o *Observability) RecordRun(ctx context.Context, mode, outcome string) {
	if o == nil || o.runCounter == nil {
		return
	}
	o.runCounter.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("mode", mode),
		attribute.String("outcome", outcome),
	))
}

// RecordRunDuration records how long one run took. A nil receiver is a no-op.
func (o *Observability) RecordRunDuration(ctx context.Context, mode string, d time.Duration) {
	if o == nil || o.runDuration == nil {
		return
	}
	o.runDuration.Record(ctx, float64(d.Milliseconds()), otelmetric.WithAttributes(
		attribute.String("mode", mode),
	))
}

// Shutdown flushes and stops the meter provider.
func (o *Observability) Shutdown(ctx context.Context) error {
	if o == nil || o.meterProvider == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return o.meterProvider.Shutdown(ctx)
}
