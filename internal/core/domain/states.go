package domain

// The feature state machines are closed sums: each state is a small comparable
// struct implementing a sealed marker interface, so a type switch over the
// variants is exhaustive by construction and cells holding states stay
// comparable for change detection.

// WalletState is the connection state machine:
// Disconnected -> Connecting -> {Connected | Disconnected}.
type WalletState interface{ isWalletState() }

// WalletDisconnected is the initial and post-disconnect state. A failed
// connect also lands here; the failure itself is not retained.
type WalletDisconnected struct{}

// WalletConnecting is the in-flight connect state.
type WalletConnecting struct{}

// WalletConnected holds the session address and chain.
type WalletConnected struct {
	Address Address
	ChainID uint64
}

func (WalletDisconnected) isWalletState() {}
func (WalletConnecting) isWalletState()   {}
func (WalletConnected) isWalletState()    {}

// IdentityState is the primary identity machine:
// Loading -> {NotRegistered | Registered | Error}.
type IdentityState interface{ isIdentityState() }

// IdentityLoading is the in-flight initial fetch state.
type IdentityLoading struct{}

// IdentityNotRegistered means the connected account has no identity record.
type IdentityNotRegistered struct{}

// IdentityRegistered holds the current record and its display form.
type IdentityRegistered struct {
	Record  IdentityRecord
	Display string
}

// IdentityError holds a human-readable fetch failure.
type IdentityError struct {
	Message string
}

func (IdentityLoading) isIdentityState()       {}
func (IdentityNotRegistered) isIdentityState() {}
func (IdentityRegistered) isIdentityState()    {}
func (IdentityError) isIdentityState()         {}

// SubmitState is the shared submission sub-machine:
// Idle -> Submitting -> {Succeeded | Failed} -> Idle.
type SubmitState interface{ isSubmitState() }

// SubmitIdle means no submission is in flight.
type SubmitIdle struct{}

// Submitting means a submission is in flight. Re-entrant submit calls are
// ignored while in this state.
type Submitting struct{}

// SubmitSucceeded holds the identifier produced by the submission, when the
// operation yields one (consent grants do; identity writes leave it empty).
type SubmitSucceeded struct {
	Ref Hash32
}

// SubmitFailed holds a human-readable submission failure.
type SubmitFailed struct {
	Message string
}

func (SubmitIdle) isSubmitState()      {}
func (Submitting) isSubmitState()      {}
func (SubmitSucceeded) isSubmitState() {}
func (SubmitFailed) isSubmitState()    {}
