package telemetry

import (
	"context"

	"go.trai.ch/veri/internal/core/ports"
)

// NoOpTracer is a no-op implementation of ports.Tracer, for tests and for
// runs with tracing disabled.
type NoOpTracer struct{}

// NewNoOpTracer creates a new NoOpTracer.
func NewNoOpTracer() *NoOpTracer {
	return &NoOpTracer{}
}

// Start creates a new no-op span.
func (t *NoOpTracer) Start(ctx context.Context, _ string) (context.Context, ports.Span) {
	return ctx, &NoOpSpan{}
}

// NoOpSpan is a no-op implementation of ports.Span.
type NoOpSpan struct{}

// End does nothing.
func (s *NoOpSpan) End() {}

// SetAttribute does nothing.
func (s *NoOpSpan) SetAttribute(_ string, _ any) {}

// RecordError does nothing.
func (s *NoOpSpan) RecordError(_ error) {}
