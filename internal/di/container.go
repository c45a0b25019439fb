package di

import (
	"context"

	"go.trai.ch/zerr"
)

// Container is the resolved view of one layer: Get returns constructed
// capability instances, building them at most once per memo map. Builders
// receive the container to fetch their prerequisites, which keeps
// construction leaves-first without a separate ordering pass.
type Container struct {
	idx      map[Key]provider
	exported map[Key]struct{}
	memo     *MemoMap
	scope    *Scope

	// visiting tracks the in-flight construction chain of this container for
	// cycle detection at resolution time. Build also validates declared edges
	// up front; this catches undeclared Get cycles.
	visiting map[Key]struct{}
}

// Build resolves a layer into a container. It validates the declared
// dependency graph (missing providers, cycles) and eagerly constructs every
// exported tag, so a construction failure surfaces here as a typed error
// rather than escaping from a later Get. Finalizers registered by builders
// accumulate on the scope in construction order; the scope runs them in
// reverse on close.
func Build(ctx context.Context, l Layer, memo *MemoMap, scope *Scope) (*Container, error) {
	if scope.Closed() {
		return nil, ErrScopeClosed
	}

	idx, err := l.index()
	if err != nil {
		return nil, err
	}
	if err := l.validate(idx); err != nil {
		return nil, err
	}

	c := &Container{
		idx:      idx,
		exported: make(map[Key]struct{}, len(l.exported)),
		memo:     memo,
		scope:    scope,
		visiting: make(map[Key]struct{}),
	}
	for _, k := range l.exported {
		c.exported[k] = struct{}{}
	}

	for _, k := range l.exported {
		if _, err := c.resolve(ctx, k); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Scope returns the scope owning this container's instances.
func (c *Container) Scope() *Scope { return c.scope }

// Get returns the instance for an exported tag. Tags a wired-in dependency
// layer provides without re-export are reachable only from builders via Dep.
func Get[T any](c *Container, tag Tag[T]) (T, error) {
	var zero T
	k := tag.Key()
	if _, ok := c.exported[k]; !ok {
		return zero, zerr.With(ErrNotProvided, "tag", k.Name())
	}
	v, err := c.resolve(c.scope.Context(), k)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, zerr.With(ErrWrongType, "tag", k.Name())
	}
	return typed, nil
}

// Dep fetches a prerequisite inside a builder. It is Get without the export
// check: builders may depend on tags the layer does not re-export.
func Dep[T any](ctx context.Context, c *Container, tag Tag[T]) (T, error) {
	var zero T
	v, err := c.resolve(ctx, tag.Key())
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, zerr.With(ErrWrongType, "tag", tag.Name())
	}
	return typed, nil
}

func (c *Container) resolve(ctx context.Context, k Key) (any, error) {
	p, ok := c.idx[k]
	if !ok {
		return nil, zerr.With(ErrNotProvided, "tag", k.Name())
	}

	// The cycle check must precede the memo claim: a re-entrant resolve of an
	// in-flight tag would otherwise wait on its own completion.
	if _, inFlight := c.visiting[k]; inFlight {
		return nil, zerr.With(ErrCycleDetected, "tag", k.Name())
	}

	entry, builder := c.memo.claim(k)
	if !builder {
		select {
		case <-entry.done:
			return entry.value, entry.err
		case <-ctx.Done():
			return nil, zerr.Wrap(ctx.Err(), "waiting for capability construction")
		}
	}

	c.visiting[k] = struct{}{}
	defer delete(c.visiting, k)

	v, err := p.build(ctx, c)
	if err != nil {
		err = zerr.With(zerr.Wrap(err, "capability construction failed"), "tag", k.Name())
		entry.settle(nil, err)
		return nil, err
	}
	entry.settle(v, nil)
	return v, nil
}
