package vm

import (
	"context"
	"errors"

	"go.trai.ch/veri/internal/core/domain"
	"go.trai.ch/veri/internal/core/ports"
	"go.trai.ch/veri/internal/reactive"
)

// IdentityVM owns the primary identity machine and the registration form.
// State reflects the fetched record; Submit is the shared submission
// sub-machine for Register and UpdateAttrs. A successful submission refetches
// the record, so State always mirrors the ledger after a write.
type IdentityVM struct {
	rt       Runtime
	registry ports.IdentityRegistry

	State  *reactive.Cell[domain.IdentityState]
	Submit *reactive.Cell[domain.SubmitState]

	// Form cells. The dashboard binds inputs to these; Register reads them.
	CreditTier       *reactive.Cell[string]
	IncomeBracket    *reactive.Cell[string]
	DebtRatioBracket *reactive.Cell[string]
}

// NewIdentityVM constructs the view-model and starts the initial fetch.
func NewIdentityVM(rt Runtime, registry ports.IdentityRegistry) *IdentityVM {
	vm := &IdentityVM{
		rt:               rt,
		registry:         registry,
		State:            reactive.New[domain.IdentityState]("identity.state", domain.IdentityLoading{}),
		Submit:           reactive.New[domain.SubmitState]("identity.submit", domain.SubmitIdle{}),
		CreditTier:       reactive.New("identity.form.creditTier", ""),
		IncomeBracket:    reactive.New("identity.form.incomeBracket", ""),
		DebtRatioBracket: reactive.New("identity.form.debtRatioBracket", ""),
	}
	rt.Scope.Go(vm.load)
	return vm
}

// load fetches the connected account's record and resolves the Loading state.
func (vm *IdentityVM) load(ctx context.Context) {
	ctx, span := vm.rt.Tracer.Start(ctx, "identity.load")
	defer span.End()

	rec, err := vm.registry.GetOwn(ctx)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		reactive.Set[domain.IdentityState](vm.rt.Registry, vm.State, domain.IdentityNotRegistered{})
	case err != nil:
		span.RecordError(err)
		vm.rt.Log.Error(err)
		reactive.Set[domain.IdentityState](vm.rt.Registry, vm.State, domain.IdentityError{Message: err.Error()})
	default:
		reactive.Set[domain.IdentityState](vm.rt.Registry, vm.State, domain.IdentityRegistered{
			Record:  rec,
			Display: rec.Display(),
		})
	}
}

// Refresh reruns the fetch, putting State back into Loading first.
func (vm *IdentityVM) Refresh() {
	reactive.Set[domain.IdentityState](vm.rt.Registry, vm.State, domain.IdentityLoading{})
	vm.rt.Scope.Go(vm.load)
}

// beginSubmit flips Submit to Submitting unless a submission is already in
// flight. Terminal states (Succeeded, Failed) are re-enterable.
func (vm *IdentityVM) beginSubmit() bool {
	_, started := reactive.Update(vm.rt.Registry, vm.Submit, func(s domain.SubmitState) (domain.SubmitState, bool) {
		if _, busy := s.(domain.Submitting); busy {
			return s, false
		}
		return domain.Submitting{}, true
	})
	return started
}

// Register submits a first-time registration built from the form cells. A
// second call while one is in flight is ignored. On success the record is
// refetched before Submit resolves, so observers of State never see stale
// data next to a Succeeded submit.
func (vm *IdentityVM) Register() {
	if !vm.beginSubmit() {
		return
	}

	fields := domain.IdentityFields{
		CreditTier:       reactive.Get(vm.rt.Registry, vm.CreditTier),
		IncomeBracket:    reactive.Get(vm.rt.Registry, vm.IncomeBracket),
		DebtRatioBracket: reactive.Get(vm.rt.Registry, vm.DebtRatioBracket),
	}

	vm.rt.Scope.Go(func(ctx context.Context) {
		ctx, span := vm.rt.Tracer.Start(ctx, "identity.register")
		defer span.End()

		if err := vm.registry.Register(ctx, fields); err != nil {
			span.RecordError(err)
			vm.rt.Log.Error(err)
			reactive.Set[domain.SubmitState](vm.rt.Registry, vm.Submit, domain.SubmitFailed{Message: err.Error()})
			return
		}
		vm.load(ctx)
		reactive.Set[domain.SubmitState](vm.rt.Registry, vm.Submit, domain.SubmitSucceeded{})
	})
}

// UpdateAttrs submits a partial attribute update. Empty fields keep their
// current value. A zero update succeeds without touching the ledger.
func (vm *IdentityVM) UpdateAttrs(update domain.IdentityUpdate) {
	if !vm.beginSubmit() {
		return
	}
	if update.IsZero() {
		reactive.Set[domain.SubmitState](vm.rt.Registry, vm.Submit, domain.SubmitSucceeded{})
		return
	}

	vm.rt.Scope.Go(func(ctx context.Context) {
		ctx, span := vm.rt.Tracer.Start(ctx, "identity.update")
		defer span.End()

		if err := vm.registry.Update(ctx, update); err != nil {
			span.RecordError(err)
			vm.rt.Log.Error(err)
			reactive.Set[domain.SubmitState](vm.rt.Registry, vm.Submit, domain.SubmitFailed{Message: err.Error()})
			return
		}
		vm.load(ctx)
		reactive.Set[domain.SubmitState](vm.rt.Registry, vm.Submit, domain.SubmitSucceeded{})
	})
}

// ResetSubmit returns the submission machine to Idle from a terminal state.
// It is a no-op while Submitting.
func (vm *IdentityVM) ResetSubmit() {
	reactive.Update(vm.rt.Registry, vm.Submit, func(s domain.SubmitState) (domain.SubmitState, bool) {
		if _, busy := s.(domain.Submitting); busy {
			return s, false
		}
		return domain.SubmitIdle{}, true
	})
}
