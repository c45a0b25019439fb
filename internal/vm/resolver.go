package vm

import (
	"context"
	"fmt"
	"sync"

	"go.trai.ch/veri/internal/di"
	"go.trai.ch/veri/internal/reactive"
)

// Resolver turns capability tags into reactive cells. Resolve hands back a
// cell immediately in the Initial state and builds the requested layer in the
// background; the cell flips to Success or Failure exactly once. The cache is
// keyed by tag identity alone: the first layer a tag is resolved with wins,
// and later calls with a different layer composition get the cached cell.
type Resolver struct {
	rt   Runtime
	memo *di.MemoMap

	mu    sync.Mutex
	cells map[di.Key]any
}

// NewResolver creates a resolver sharing the runtime's scope and one memo map
// for all resolutions, so capabilities common to several layers construct
// once.
func NewResolver(rt Runtime, memo *di.MemoMap) *Resolver {
	return &Resolver{rt: rt, memo: memo, cells: make(map[di.Key]any)}
}

// Resolve returns the result cell for a tag, starting construction on first
// use. Repeated calls for the same tag return the identical cell, so every
// observer of a capability shares one resolution and one instance.
func Resolve[T any](r *Resolver, tag di.Tag[T], layer di.Layer) *reactive.Cell[Result[T]] {
	k := tag.Key()

	r.mu.Lock()
	if c, ok := r.cells[k]; ok {
		r.mu.Unlock()
		return c.(*reactive.Cell[Result[T]])
	}
	cell := reactive.New(fmt.Sprintf("resolve.%s.%x", tag.Name(), k.Hash()), Initial[T]())
	r.cells[k] = cell
	r.mu.Unlock()

	r.rt.Scope.Go(func(ctx context.Context) {
		ctx, span := r.rt.Tracer.Start(ctx, "resolve."+tag.Name())
		defer span.End()

		container, err := di.Build(ctx, layer, r.memo, r.rt.Scope)
		if err != nil {
			span.RecordError(err)
			r.rt.Log.Error(err)
			reactive.Set(r.rt.Registry, cell, Failure[T](err))
			return
		}
		v, err := di.Get(container, tag)
		if err != nil {
			span.RecordError(err)
			r.rt.Log.Error(err)
			reactive.Set(r.rt.Registry, cell, Failure[T](err))
			return
		}
		reactive.Set(r.rt.Registry, cell, Success(v))
	})
	return cell
}

// Peek returns the current result for a tag without starting a resolution.
// It reports false if the tag has never been resolved.
func Peek[T any](r *Resolver, tag di.Tag[T]) (Result[T], bool) {
	r.mu.Lock()
	c, ok := r.cells[tag.Key()]
	r.mu.Unlock()
	if !ok {
		return Initial[T](), false
	}
	return reactive.Get(r.rt.Registry, c.(*reactive.Cell[Result[T]])), true
}
