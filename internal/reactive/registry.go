package reactive

import (
	"fmt"
	"sync"
)

// Registry is the single mutable store for cell values. All reads, writes and
// recomputation run under one lock, which gives the single-logical-writer
// semantics the view-models rely on: dependents of a write observe a fully
// consistent generation, never a partial update.
type Registry struct {
	mu     sync.Mutex
	subSeq uint64
	states map[uint64]*cellState
}

type cellState struct {
	cell       AnyCell
	value      any
	valid      bool
	dependsOn  map[uint64]struct{}
	dependents map[uint64]struct{}
	subs       map[uint64]func()
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{states: make(map[uint64]*cellState)}
}

// Get returns the current value of a cell, computing it on demand if it has
// not been materialized yet. Repeated gets without an intervening write return
// the identical memoized value.
func Get[T any](r *Registry, c *Cell[T]) T {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, _ := r.ensure(c).value.(T)
	return v
}

// Set writes a new value into a root cell, synchronously recomputes every
// mounted dependent, and notifies subscribers. Setting a derived cell is a
// programming error and panics.
func Set[T any](r *Registry, c *Cell[T], v T) {
	if c.derived() {
		panic(fmt.Sprintf("reactive: set on derived cell %q", c.name()))
	}

	r.mu.Lock()
	st := r.ensure(c)
	st.value = v
	notify := r.propagate(st)
	r.mu.Unlock()

	// Callbacks run outside the lock so they can read cells.
	for _, fn := range notify {
		fn()
	}
}

// Update applies fn to the current value of a root cell and writes the result
// back, all under one lock acquisition. It returns the value written. Actions
// use it for check-and-set transitions (e.g. the submit re-entrancy guard).
func Update[T any](r *Registry, c *Cell[T], fn func(T) (T, bool)) (T, bool) {
	if c.derived() {
		panic(fmt.Sprintf("reactive: set on derived cell %q", c.name()))
	}

	r.mu.Lock()
	st := r.ensure(c)
	cur, _ := st.value.(T)
	next, ok := fn(cur)
	var notify []func()
	if ok {
		st.value = next
		notify = r.propagate(st)
	}
	r.mu.Unlock()

	for _, fn := range notify {
		fn()
	}
	if !ok {
		return cur, false
	}
	return next, true
}

// Subscribe registers a change callback for a cell and returns the
// unsubscribe function. The callback fires after the cell's value changes
// (for derived cells, after it has been recomputed).
func (r *Registry) Subscribe(c AnyCell, fn func()) (cancel func()) {
	r.mu.Lock()
	st := r.ensureAny(c)
	// Materialize derived subscribers immediately so later writes know the
	// dependency edges and recompute them eagerly.
	if c.derived() && !st.valid {
		r.recompute(st)
	}
	r.subSeq++
	token := r.subSeq
	st.subs[token] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(st.subs, token)
	}
}

// ensure materializes the state record for a cell, computing the first value.
func (r *Registry) ensure(c AnyCell) *cellState {
	st := r.ensureAny(c)
	if !st.valid {
		if c.derived() {
			r.recompute(st)
		} else {
			st.value = c.initialValue()
			st.valid = true
		}
	}
	return st
}

func (r *Registry) ensureAny(c AnyCell) *cellState {
	st, ok := r.states[c.id()]
	if !ok {
		st = &cellState{
			cell:       c,
			valid:      !c.derived(),
			value:      c.initialValue(),
			dependsOn:  make(map[uint64]struct{}),
			dependents: make(map[uint64]struct{}),
			subs:       make(map[uint64]func()),
		}
		r.states[c.id()] = st
	}
	return st
}

// trackingGetter records the dependency edges of one recompute pass.
type trackingGetter struct {
	r    *Registry
	deps map[uint64]struct{}
}

func (g *trackingGetter) rawValue(c AnyCell) any {
	st := g.r.ensure(c)
	g.deps[c.id()] = struct{}{}
	return st.value
}

// recompute runs a derived cell's compute function and rewires its edges.
// Caller holds the lock.
func (r *Registry) recompute(st *cellState) {
	g := &trackingGetter{r: r, deps: make(map[uint64]struct{})}
	st.value = st.cell.computeValue(g)
	st.valid = true

	for id := range st.dependsOn {
		if _, still := g.deps[id]; !still {
			delete(r.states[id].dependents, st.cell.id())
		}
	}
	for id := range g.deps {
		r.states[id].dependents[st.cell.id()] = struct{}{}
	}
	st.dependsOn = g.deps
}

// propagate invalidates the transitive dependents of a written cell, eagerly
// recomputes the mounted ones, and collects the subscriber callbacks to fire.
// Caller holds the lock. Unmounted dependents stay invalid and recompute
// lazily on their next read.
func (r *Registry) propagate(origin *cellState) []func() {
	var dirty []*cellState
	var visit func(st *cellState)
	visit = func(st *cellState) {
		for id := range st.dependents {
			dep := r.states[id]
			if dep == nil || !dep.valid {
				continue
			}
			dep.valid = false
			dirty = append(dirty, dep)
			visit(dep)
		}
	}
	visit(origin)

	// Recompute pulls invalid upstream cells through ensure, so the visit
	// order here does not matter for consistency.
	for _, st := range dirty {
		if len(st.subs) > 0 {
			r.recompute(st)
		}
	}

	var notify []func()
	for _, fn := range origin.subs {
		notify = append(notify, fn)
	}
	for _, st := range dirty {
		for _, fn := range st.subs {
			notify = append(notify, fn)
		}
	}
	return notify
}
