package vm

// Result is the tri-state outcome of resolving a view-model: nothing yet, a
// usable value, or a construction failure. It is the only place a capability
// build failure surfaces to the rendering layer.
type Result[T any] struct {
	state   resultState
	value   T
	failure error
}

type resultState int

const (
	stateInitial resultState = iota
	stateSuccess
	stateFailure
)

// Initial is the not-yet-resolved state.
func Initial[T any]() Result[T] {
	return Result[T]{state: stateInitial}
}

// Success wraps a resolved value.
func Success[T any](v T) Result[T] {
	return Result[T]{state: stateSuccess, value: v}
}

// Failure wraps a construction failure.
func Failure[T any](cause error) Result[T] {
	return Result[T]{state: stateFailure, failure: cause}
}

// IsInitial reports whether resolution has not finished yet.
func (r Result[T]) IsInitial() bool { return r.state == stateInitial }

// Value returns the resolved value and whether it is present.
func (r Result[T]) Value() (T, bool) {
	return r.value, r.state == stateSuccess
}

// Cause returns the construction failure and whether one occurred.
func (r Result[T]) Cause() (error, bool) {
	return r.failure, r.state == stateFailure
}

// MatchResult branches on the three states. Exactly one function runs.
func MatchResult[T, R any](r Result[T], onInitial func() R, onSuccess func(T) R, onFailure func(error) R) R {
	switch r.state {
	case stateSuccess:
		return onSuccess(r.value)
	case stateFailure:
		return onFailure(r.failure)
	default:
		return onInitial()
	}
}
