package vm_test

import (
	"context"
	"testing"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/veri/internal/core/ports"
	"go.trai.ch/veri/internal/di"
	"go.trai.ch/veri/internal/reactive"
	"go.trai.ch/veri/internal/vm"
)

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

type nopTracer struct{}

func (nopTracer) Start(ctx context.Context, _ string) (context.Context, ports.Span) {
	return ctx, nopSpan{}
}

type nopSpan struct{}

func (nopSpan) End()                     {}
func (nopSpan) SetAttribute(string, any) {}
func (nopSpan) RecordError(error)        {}

func newRuntime(t *testing.T) vm.Runtime {
	t.Helper()
	scope := di.NewScope(context.Background())
	t.Cleanup(func() { _ = scope.Close(context.Background()) })
	return vm.Runtime{
		Registry: reactive.NewRegistry(),
		Scope:    scope,
		Log:      nopLogger{},
		Tracer:   nopTracer{},
		Clock:    clockwork.NewFakeClock(),
	}
}
