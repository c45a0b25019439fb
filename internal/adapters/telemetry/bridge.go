package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/veri/internal/core/ports"
)

// Bridge implements sdktrace.SpanProcessor to surface finished spans on the
// application logger. It backs the --trace flag; without it the no-op tracer
// is used and the SDK never starts.
type Bridge struct {
	log ports.Logger
}

// NewBridge returns a new Bridge.
func NewBridge(log ports.Logger) *Bridge {
	return &Bridge{log: log}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.log == nil {
		return
	}
	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	dur := s.EndTime().Sub(s.StartTime())
	line := "span " + s.Name() + " took " + dur.String()
	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "failed"
		}
		b.log.Warn(line + ": " + desc)
		return
	}
	b.log.Info(line)
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}

// Setup configures the OpenTelemetry SDK with the logger bridge and registers
// it as the global provider. The returned function shuts the provider down.
func Setup(log ports.Logger) func(context.Context) error {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(NewBridge(log)),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown
}
