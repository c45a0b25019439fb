package di

import (
	"context"
	"sync/atomic"

	"go.trai.ch/zerr"
)

var providerSeq atomic.Uint64

// Builder constructs one capability instance. It may fetch prerequisites with
// Get and register teardown with c.Scope().Defer.
type Builder func(ctx context.Context, c *Container) (any, error)

type provider struct {
	id    uint64
	key   Key
	deps  []Key
	build Builder
}

// Layer is a declarative, composable recipe for constructing one or more
// tagged capabilities. A layer exports the tags callers may Get; wired-in
// dependency layers contribute providers without necessarily exporting them.
// Layers are immutable values; composition returns new layers.
type Layer struct {
	providers []provider
	exported  []Key
}

// Provide creates a single-provider layer exporting the given tag. The deps
// list declares the provider's prerequisites; it drives cycle detection and
// construction ordering, and the builder should Get exactly those tags.
func Provide[T any](tag Tag[T], build func(ctx context.Context, c *Container) (T, error), deps ...Key) Layer {
	return Layer{
		providers: []provider{{
			id:   providerSeq.Add(1),
			key:  tag.Key(),
			deps: deps,
			build: func(ctx context.Context, c *Container) (any, error) {
				return build(ctx, c)
			},
		}},
		exported: []Key{tag.Key()},
	}
}

// Supply creates a layer exporting an already-constructed value under the tag.
func Supply[T any](tag Tag[T], value T) Layer {
	return Provide(tag, func(context.Context, *Container) (T, error) {
		return value, nil
	})
}

// With wires dependency layers into l: their providers become available to
// l's builders, but only l's own tags stay exported.
func (l Layer) With(deps ...Layer) Layer {
	out := l
	for _, d := range deps {
		out.providers = concat(out.providers, d.providers)
	}
	out.exported = append([]Key(nil), l.exported...)
	return out
}

// WithExposed wires dependency layers into l and re-exports their tags
// alongside l's own.
func (l Layer) WithExposed(deps ...Layer) Layer {
	out := l.With(deps...)
	for _, d := range deps {
		out.exported = append(out.exported, d.exported...)
	}
	return out
}

// Exports returns the keys of the tags this layer exports.
func (l Layer) Exports() []Key {
	return append([]Key(nil), l.exported...)
}

// Merge combines independent layers. The layers must not provide overlapping
// tags; an overlap surfaces as ErrDuplicateProvider at build time.
func Merge(layers ...Layer) Layer {
	var out Layer
	for _, l := range layers {
		out.providers = concat(out.providers, l.providers)
		out.exported = append(out.exported, l.exported...)
	}
	return out
}

func concat(a, b []provider) []provider {
	out := make([]provider, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

// index maps tags to providers, rejecting duplicates. Wiring the same layer
// value in twice is tolerated; two distinct providers for one tag are not.
func (l Layer) index() (map[Key]provider, error) {
	idx := make(map[Key]provider, len(l.providers))
	for _, p := range l.providers {
		if existing, ok := idx[p.key]; ok {
			if sameProvider(existing, p) {
				continue
			}
			return nil, zerr.With(ErrDuplicateProvider, "tag", p.key.Name())
		}
		idx[p.key] = p
	}
	return idx, nil
}

func sameProvider(a, b provider) bool {
	return a.id == b.id
}

// validate walks the declared dependency edges of every exported tag with the
// usual three-color DFS, rejecting missing providers and cycles. The cycle
// error carries the offending path.
func (l Layer) validate(idx map[Key]provider) error {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[Key]int, len(idx))
	var path []Key

	var visit func(k Key) error
	visit = func(k Key) error {
		p, ok := idx[k]
		if !ok {
			return zerr.With(ErrNotProvided, "tag", k.Name())
		}
		state[k] = visiting
		path = append(path, k)

		for _, dep := range p.deps {
			switch state[dep] {
			case visiting:
				return cycleError(path, dep)
			case unvisited:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		state[k] = done
		path = path[:len(path)-1]
		return nil
	}

	for _, k := range l.exported {
		if state[k] == unvisited {
			if err := visit(k); err != nil {
				return err
			}
		}
	}
	return nil
}

func cycleError(path []Key, dep Key) error {
	start := 0
	for i, k := range path {
		if k == dep {
			start = i
			break
		}
	}
	cycle := ""
	for _, k := range path[start:] {
		cycle += k.Name() + " -> "
	}
	cycle += dep.Name()
	return zerr.With(ErrCycleDetected, "cycle", cycle)
}
