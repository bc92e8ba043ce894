package telemetry

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	meterName = "github.com/wolfeidau/gwctl"
)

// Metrics holds all the OpenTelemetry metric instruments
type Metrics struct {
	InvocationsTotal     metric.Int64Counter
	FailuresTotal        metric.Int64Counter
	TransportErrorsTotal metric.Int64Counter
	DeclinedTotal        metric.Int64Counter

	// Duration of an invocation from context construction to normalization
	DispatchDuration metric.Float64Histogram
}

var (
	once    sync.Once
	metrics *Metrics
)

// GetMetrics returns the singleton Metrics instance, initializing it if necessary.
// Call it after Init so the instruments bind to the configured provider.
func GetMetrics() *Metrics {
	once.Do(func() {
		metrics = initMetrics()
	})
	return metrics
}

// initMetrics creates and registers all metric instruments
func initMetrics() *Metrics {
	meter := otel.GetMeterProvider().Meter(meterName)

	m := &Metrics{}

	m.InvocationsTotal, _ = meter.Int64Counter(
		"gwctl.invocations.total",
		metric.WithDescription("Total number of command invocations that reached dispatch"),
		metric.WithUnit("{invocation}"),
	)

	m.FailuresTotal, _ = meter.Int64Counter(
		"gwctl.invocations.failed.total",
		metric.WithDescription("Total number of invocations that produced a failure outcome"),
		metric.WithUnit("{invocation}"),
	)

	m.TransportErrorsTotal, _ = meter.Int64Counter(
		"gwctl.invocations.transport_errors.total",
		metric.WithDescription("Total number of failures caused by name resolution or connectivity"),
		metric.WithUnit("{error}"),
	)

	m.DeclinedTotal, _ = meter.Int64Counter(
		"gwctl.invocations.declined.total",
		metric.WithDescription("Total number of destructive invocations declined at confirmation"),
		metric.WithUnit("{invocation}"),
	)

	m.DispatchDuration, _ = meter.Float64Histogram(
		"gwctl.dispatch.duration",
		metric.WithDescription("Duration of an invocation after confirmation"),
		metric.WithUnit("ms"),
	)

	return m
}
