package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/elab/internal/core/domain"
	"go.trai.ch/elab/internal/core/ports"
)

// ElaborateSpanName is the name of the span wrapping one elaboration pass.
const ElaborateSpanName = "modelcache.elaborate"

// Bridge implements sdktrace.SpanProcessor to report failed elaboration
// passes to a Renderer. Those failures happen on document changes, where
// there is no caller to return them to.
type Bridge struct {
	renderer ports.Renderer
}

// NewBridge returns a new Bridge.
func NewBridge(renderer ports.Renderer) *Bridge {
	return &Bridge{
		renderer: renderer,
	}
}

// OnStart does nothing.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.renderer == nil || s.Name() != ElaborateSpanName {
		return
	}
	if s.Status().Code != codes.Error {
		return
	}

	var key domain.ModelKey
	for _, kv := range s.Attributes() {
		if kv.Key == attribute.Key("model.key") {
			key = domain.NewModelKey(kv.Value.AsString())
		}
	}

	desc := s.Status().Description
	if desc == "" {
		desc = "elaboration failed"
	}
	b.renderer.OnError(key, errors.New(desc))
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
