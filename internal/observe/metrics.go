// Package observe holds the OpenTelemetry instruments used to watch calls to
// PokeAPI. Metrics default to a noop meter provider; tests pass a provider
// backed by a manual reader.
package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const meterName = "github.com/JadedPigeon/typechecker"

type Metrics struct {
	// ProviderRequests counts PokeAPI calls by resource kind and status.
	ProviderRequests metric.Int64Counter

	// ProviderDuration tracks PokeAPI call latency in seconds.
	ProviderDuration metric.Float64Histogram
}

var latencyBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.ProviderRequests, err = m.Int64Counter("typechecker.provider.requests",
		metric.WithDescription("PokeAPI requests by resource kind and status."),
	); err != nil {
		return nil, err
	}
	if met.ProviderDuration, err = m.Float64Histogram("typechecker.provider.duration",
		metric.WithDescription("Latency of PokeAPI requests."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	return met, nil
}

// Noop returns metrics that record nothing.
func Noop() *Metrics {
	met, _ := NewMetrics(noop.NewMeterProvider())
	return met
}

// RecordRequest records one finished request. kind is the resource
// ("pokemon", "type", "index") and status one of "ok", "not_found",
// "upstream", "timeout" or "canceled".
func (m *Metrics) RecordRequest(ctx context.Context, kind, status string, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("status", status),
	)
	m.ProviderRequests.Add(ctx, 1, attrs)
	m.ProviderDuration.Record(ctx, elapsed.Seconds(), attrs)
}
