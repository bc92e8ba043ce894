package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestGetMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))

	m := GetMetrics()
	require.Same(t, m, GetMetrics())

	ctx := context.Background()
	attrs := metric.WithAttributes(attribute.String("operation", "DeleteApiKey"))
	m.InvocationsTotal.Add(ctx, 2, attrs)
	m.DeclinedTotal.Add(ctx, 1, attrs)
	m.DispatchDuration.Record(ctx, 12, attrs)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Equal(t, meterName, rm.ScopeMetrics[0].Scope.Name)

	sums := map[string]int64{}
	for _, md := range rm.ScopeMetrics[0].Metrics {
		if sum, ok := md.Data.(metricdata.Sum[int64]); ok {
			for _, dp := range sum.DataPoints {
				sums[md.Name] += dp.Value
			}
		}
	}

	require.Equal(t, int64(2), sums["gwctl.invocations.total"])
	require.Equal(t, int64(1), sums["gwctl.invocations.declined.total"])
}
