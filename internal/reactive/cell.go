// Package reactive implements the cell runtime backing the view-model layer:
// root cells hold settable values, derived cells recompute from other cells,
// and a Registry owns all current values and subscriber notification. Writes
// and recomputation are synchronous; a reader never observes a half-applied
// update across cells.
package reactive

import "sync/atomic"

var cellSeq atomic.Uint64

// AnyCell is the untyped view of a cell, used where the value type does not
// matter (subscriptions, dependency edges). Only Cell implements it.
type AnyCell interface {
	id() uint64
	name() string
	derived() bool
	initialValue() any
	computeValue(g Getter) any
}

// Cell is one unit of reactive state. A cell built with New holds a settable
// root value; one built with Derive recomputes from other cells and is
// read-only. Identity is per creation call: two cells made from equal inputs
// are still distinct.
type Cell[T any] struct {
	cid     uint64
	label   string
	initial T
	compute func(Getter) T
}

// New creates a root cell with the given initial value. The label appears in
// diagnostics only.
func New[T any](label string, initial T) *Cell[T] {
	return &Cell[T]{cid: cellSeq.Add(1), label: label, initial: initial}
}

// Derive creates a derived cell. The compute function must be pure, must read
// dependencies only through the supplied Getter, and must not perform side
// effects; effectful work belongs in view-model actions.
func Derive[T any](label string, compute func(Getter) T) *Cell[T] {
	return &Cell[T]{cid: cellSeq.Add(1), label: label, compute: compute}
}

func (c *Cell[T]) id() uint64    { return c.cid }
func (c *Cell[T]) name() string  { return c.label }
func (c *Cell[T]) derived() bool { return c.compute != nil }

func (c *Cell[T]) initialValue() any { return c.initial }

func (c *Cell[T]) computeValue(g Getter) any { return c.compute(g) }

// Getter is the dependency-tracking accessor passed to derived computes.
type Getter interface {
	rawValue(c AnyCell) any
}

// Value reads a dependency inside a derived compute, registering the edge.
func Value[T any](g Getter, c *Cell[T]) T {
	v, _ := g.rawValue(c).(T)
	return v
}
