package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.trai.ch/elab/internal/core/ports"
)

// Metric names.
const (
	ElaborationsMetric        = "elab.elaborations"
	ElaborationDurationMetric = "elab.elaboration.duration"
	SkippedChangesMetric      = "elab.changes.skipped"
)

// OutcomeAttribute is the attribute holding the outcome kind of an elaboration.
const OutcomeAttribute = "outcome"

// Metrics implements ports.Metrics using the OpenTelemetry metrics API.
//   - RecordElaboration -> Int64Counter and Float64Histogram (seconds)
//   - RecordSkippedChange -> Int64Counter
type Metrics struct {
	elaborations metric.Int64Counter
	duration     metric.Float64Histogram
	skipped      metric.Int64Counter
}

var _ ports.Metrics = (*Metrics)(nil)

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	elaborations, err := meter.Int64Counter(
		ElaborationsMetric,
		metric.WithDescription("Elaboration passes by outcome"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		ElaborationDurationMetric,
		metric.WithDescription("Elaboration pass duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	skipped, err := meter.Int64Counter(
		SkippedChangesMetric,
		metric.WithDescription("Document changes that could not affect the model"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{elaborations: elaborations, duration: duration, skipped: skipped}, nil
}

// RecordElaboration implements ports.Metrics.
func (m *Metrics) RecordElaboration(ctx context.Context, outcome string, d time.Duration) {
	attrs := metric.WithAttributes(attribute.String(OutcomeAttribute, outcome))
	m.elaborations.Add(ctx, 1, attrs)
	m.duration.Record(ctx, d.Seconds(), attrs)
}

// RecordSkippedChange implements ports.Metrics.
func (m *Metrics) RecordSkippedChange(ctx context.Context) {
	m.skipped.Add(ctx, 1)
}
