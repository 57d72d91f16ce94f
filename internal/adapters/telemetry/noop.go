package telemetry

import (
	"context"
	"time"

	"go.trai.ch/elab/internal/core/ports"
)

// NoOpTracer is a no-op implementation of ports.Tracer.
type NoOpTracer struct{}

// NewNoOpTracer creates a new NoOpTracer.
func NewNoOpTracer() *NoOpTracer {
	return &NoOpTracer{}
}

// Start creates a new no-op span.
func (t *NoOpTracer) Start(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
	return ctx, &NoOpSpan{}
}

// NoOpSpan is a no-op implementation of ports.Span.
type NoOpSpan struct{}

// End does nothing.
func (s *NoOpSpan) End() {}

// RecordError does nothing.
func (s *NoOpSpan) RecordError(_ error) {}

// SetAttribute does nothing.
func (s *NoOpSpan) SetAttribute(_ string, _ any) {}

// NoOpMetrics is a no-op implementation of ports.Metrics.
type NoOpMetrics struct{}

// NewNoOpMetrics creates a new NoOpMetrics.
func NewNoOpMetrics() *NoOpMetrics {
	return &NoOpMetrics{}
}

// RecordElaboration does nothing.
func (m *NoOpMetrics) RecordElaboration(_ context.Context, _ string, _ time.Duration) {}

// RecordSkippedChange does nothing.
func (m *NoOpMetrics) RecordSkippedChange(_ context.Context) {}
