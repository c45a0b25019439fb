package reactive

import "time"

// Loadable represents an asynchronous fetch as either pending-since or ready.
// There is deliberately no error branch: a fetch that can fail surfaces the
// failure through the owning view-model's own state, not here.
type Loadable[T any] struct {
	ready bool
	since time.Time
	value T
}

// Pending returns the in-flight state, stamped with the time the fetch began.
func Pending[T any](since time.Time) Loadable[T] {
	return Loadable[T]{since: since}
}

// Ready wraps a completed fetch result.
func Ready[T any](v T) Loadable[T] {
	return Loadable[T]{ready: true, value: v}
}

// IsReady reports whether the value is present.
func (l Loadable[T]) IsReady() bool { return l.ready }

// Since returns when the pending fetch began; zero for ready values.
func (l Loadable[T]) Since() time.Time { return l.since }

// Get returns the value and whether it is present.
func (l Loadable[T]) Get() (T, bool) { return l.value, l.ready }

// OrElse returns the value, or def while pending.
func (l Loadable[T]) OrElse(def T) T {
	if l.ready {
		return l.value
	}
	return def
}

// MatchLoadable branches on the state. Exactly one of the two functions runs.
func MatchLoadable[T, R any](l Loadable[T], onPending func(since time.Time) R, onReady func(v T) R) R {
	if l.ready {
		return onReady(l.value)
	}
	return onPending(l.since)
}

// MapLoadable transforms the ready branch; a pending value passes through
// with its timestamp intact and fn is never called.
func MapLoadable[T, U any](l Loadable[T], fn func(T) U) Loadable[U] {
	if !l.ready {
		return Loadable[U]{since: l.since}
	}
	return Ready(fn(l.value))
}
