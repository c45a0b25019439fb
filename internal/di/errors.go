package di

import "go.trai.ch/zerr"

var (
	// ErrNotProvided is returned when a tag is requested that no provider in
	// the layer supplies.
	ErrNotProvided = zerr.New("capability not provided")

	// ErrCycleDetected is returned when layer composition expresses a
	// dependency cycle. The error carries the cycle path.
	ErrCycleDetected = zerr.New("capability cycle detected")

	// ErrDuplicateProvider is returned when two providers in one layer claim
	// the same tag.
	ErrDuplicateProvider = zerr.New("duplicate provider for capability")

	// ErrWrongType is returned when a memoized instance does not match the
	// requesting tag's type parameter. It indicates two tags sharing one
	// identity with different types, which is a programming error.
	ErrWrongType = zerr.New("capability has unexpected type")

	// ErrScopeClosed is returned when work is requested from a closed scope.
	ErrScopeClosed = zerr.New("scope closed")
)
