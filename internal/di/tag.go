// Package di implements the capability graph used to assemble the view-model
// layer: nominal tags identify capabilities, layers describe how to construct
// them from other capabilities, a memo map guarantees one instance per tag,
// and a scope owns teardown and background work.
package di

import "github.com/cespare/xxhash/v2"

// tagID gives a tag its nominal identity. Two tags are the same capability
// iff they share one *tagID, regardless of how their layers are composed.
type tagID struct {
	name string
}

// Key is the comparable identity of a tag, usable as a map key. Equality is
// by tag identity only; the contents of any layer providing the tag do not
// participate.
type Key struct {
	id *tagID
}

// Name returns the diagnostic name the tag was created with.
func (k Key) Name() string {
	if k.id == nil {
		return "<nil>"
	}
	return k.id.name
}

// Hash returns a stable short hash of the tag name, used in cell labels and
// log fields.
func (k Key) Hash() uint64 {
	return xxhash.Sum64String(k.Name())
}

// Zero reports whether the key is the zero Key.
func (k Key) Zero() bool { return k.id == nil }

// Tag is a typed capability identity. The type parameter fixes what Get
// returns for the tag; the identity itself is nominal (per NewTag call), not
// structural.
type Tag[T any] struct {
	key Key
}

// NewTag creates a fresh capability tag. Call it once per capability, at
// package scope; a tag created per call site would defeat memoization.
func NewTag[T any](name string) Tag[T] {
	return Tag[T]{key: Key{id: &tagID{name: name}}}
}

// Key returns the comparable identity.
func (t Tag[T]) Key() Key { return t.key }

// Name returns the diagnostic name.
func (t Tag[T]) Name() string { return t.key.Name() }
