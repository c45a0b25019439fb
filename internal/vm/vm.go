// Package vm implements the feature view-models of the consent dashboard and
// the resolver that builds them from the capability graph. Each view-model is
// a tagged-state machine over reactive cells plus fire-and-forget actions;
// callers observe outcomes by reading cells, never from return values.
package vm

import (
	"github.com/jonboulle/clockwork"
	"go.trai.ch/veri/internal/core/ports"
	"go.trai.ch/veri/internal/di"
	"go.trai.ch/veri/internal/reactive"
)

// Runtime bundles what every view-model constructor needs: the cell registry,
// the lifetime scope for background work, and the ambient logger, tracer and
// clock. One Runtime is shared by all view-models in a scope tree.
type Runtime struct {
	Registry *reactive.Registry
	Scope    *di.Scope
	Log      ports.Logger
	Tracer   ports.Tracer
	Clock    clockwork.Clock
}
