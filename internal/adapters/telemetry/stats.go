package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// Stats summarizes the elaboration metrics collected by a reader.
type Stats struct {
	// Elaborations counts passes by outcome kind.
	Elaborations map[string]int64
	// Skipped counts changes ignored by the change filter.
	Skipped int64
}

// Total returns the number of elaboration passes.
func (s Stats) Total() int64 {
	var n int64
	for _, c := range s.Elaborations {
		n += c
	}
	return n
}

// NewMeterProvider returns a meter provider backed by a manual reader, so
// metrics can be read back with ReadStats.
func NewMeterProvider() (*sdkmetric.MeterProvider, *sdkmetric.ManualReader) {
	reader := sdkmetric.NewManualReader()
	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)), reader
}

// ReadStats collects the current elaboration metrics from reader.
func ReadStats(ctx context.Context, reader sdkmetric.Reader) (Stats, error) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return Stats{}, err
	}

	stats := Stats{Elaborations: make(map[string]int64)}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			switch m.Name {
			case ElaborationsMetric:
				for _, dp := range sum.DataPoints {
					outcome, _ := dp.Attributes.Value(attribute.Key(OutcomeAttribute))
					stats.Elaborations[outcome.AsString()] += dp.Value
				}
			case SkippedChangesMetric:
				for _, dp := range sum.DataPoints {
					stats.Skipped += dp.Value
				}
			}
		}
	}
	return stats, nil
}
