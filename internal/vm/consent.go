package vm

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"go.trai.ch/veri/internal/core/domain"
	"go.trai.ch/veri/internal/core/ports"
	"go.trai.ch/veri/internal/reactive"
)

// ConsentVM owns the borrower's consent list and the grant form. The list
// loads as a Loadable; each record maps through a keyed family to a
// ConsentItemVM whose per-item state (an in-flight revoke) survives list
// refreshes as long as the record's content is unchanged.
type ConsentVM struct {
	rt       Runtime
	consents ports.ConsentRegistry
	wallet   ports.Wallet

	// List is the raw fetched records; LoadedAt is the reference time the
	// current load completed at, used to classify every record consistently.
	List     *reactive.Cell[reactive.Loadable[[]domain.ConsentRecord]]
	LoadedAt *reactive.Cell[time.Time]

	// LastError carries load and revoke failures; grant failures go through
	// Submit instead.
	LastError *reactive.Cell[string]

	// Submit is the grant submission machine. Succeeded carries the new
	// consent id.
	Submit *reactive.Cell[domain.SubmitState]

	// Grant form cells.
	LenderInput  *reactive.Cell[string]
	ScopesInput  *reactive.Cell[string]
	DurationDays *reactive.Cell[int]

	// Items derives the item view-models from List via the family.
	Items *reactive.Cell[[]*ConsentItemVM]

	family *reactive.Family[domain.ConsentRecord, *ConsentItemVM]
}

// NewConsentVM constructs the view-model and starts the initial load.
func NewConsentVM(rt Runtime, consents ports.ConsentRegistry, wallet ports.Wallet) *ConsentVM {
	vm := &ConsentVM{
		rt:           rt,
		consents:     consents,
		wallet:       wallet,
		List:         reactive.New("consent.list", reactive.Pending[[]domain.ConsentRecord](rt.Clock.Now())),
		LoadedAt:     reactive.New("consent.loadedAt", rt.Clock.Now()),
		LastError:    reactive.New("consent.lastError", ""),
		Submit:       reactive.New[domain.SubmitState]("consent.submit", domain.SubmitIdle{}),
		LenderInput:  reactive.New("consent.form.lender", ""),
		ScopesInput:  reactive.New("consent.form.scopes", ""),
		DurationDays: reactive.New("consent.form.durationDays", 30),
	}
	vm.family = reactive.NewFamily(func(rec domain.ConsentRecord) *ConsentItemVM {
		return newConsentItemVM(vm, rec)
	})
	vm.Items = reactive.Derive("consent.items", func(g reactive.Getter) []*ConsentItemVM {
		loadable := reactive.Value(g, vm.List)
		recs, ok := loadable.Get()
		if !ok {
			return nil
		}
		items := make([]*ConsentItemVM, len(recs))
		for i, rec := range recs {
			items[i] = vm.family.Get(rec)
		}
		vm.family.Retain(recs)
		return items
	})
	rt.Scope.Go(vm.load)
	return vm
}

// load fetches the id list for the connected borrower, then the records
// concurrently, preserving ledger order.
func (vm *ConsentVM) load(ctx context.Context) {
	ctx, span := vm.rt.Tracer.Start(ctx, "consent.load")
	defer span.End()

	addr, err := vm.wallet.Address(ctx)
	if err != nil {
		vm.failLoad(span, err)
		return
	}
	ids, err := vm.consents.BorrowerConsents(ctx, addr)
	if err != nil {
		vm.failLoad(span, err)
		return
	}

	recs := make([]domain.ConsentRecord, len(ids))
	grp, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		grp.Go(func() error {
			rec, err := vm.consents.Consent(gctx, id)
			if err != nil {
				return err
			}
			recs[i] = rec
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		vm.failLoad(span, err)
		return
	}

	span.SetAttribute("consent.count", len(recs))
	reactive.Set(vm.rt.Registry, vm.LoadedAt, vm.rt.Clock.Now())
	reactive.Set(vm.rt.Registry, vm.LastError, "")
	reactive.Set(vm.rt.Registry, vm.List, reactive.Ready(recs))
}

func (vm *ConsentVM) failLoad(span ports.Span, err error) {
	span.RecordError(err)
	vm.rt.Log.Error(err)
	reactive.Set(vm.rt.Registry, vm.LastError, err.Error())
	reactive.Set(vm.rt.Registry, vm.List, reactive.Ready[[]domain.ConsentRecord](nil))
}

// Refresh reloads the list. The previous items stay visible until the new
// fetch lands; only a fresh view-model starts from Pending.
func (vm *ConsentVM) Refresh() {
	vm.rt.Scope.Go(vm.load)
}

// Grant submits a new consent built from the form cells. Input validation
// failures resolve Submit to Failed without touching the ledger. A second
// call while one is in flight is ignored.
func (vm *ConsentVM) Grant() {
	_, started := reactive.Update(vm.rt.Registry, vm.Submit, func(s domain.SubmitState) (domain.SubmitState, bool) {
		if _, busy := s.(domain.Submitting); busy {
			return s, false
		}
		return domain.Submitting{}, true
	})
	if !started {
		return
	}

	lender, err := domain.ParseAddress(reactive.Get(vm.rt.Registry, vm.LenderInput))
	if err != nil {
		reactive.Set[domain.SubmitState](vm.rt.Registry, vm.Submit, domain.SubmitFailed{Message: err.Error()})
		return
	}
	scopes := domain.NewScopeSet(splitScopes(reactive.Get(vm.rt.Registry, vm.ScopesInput))...)
	days := reactive.Get(vm.rt.Registry, vm.DurationDays)
	if days < 1 {
		reactive.Set[domain.SubmitState](vm.rt.Registry, vm.Submit, domain.SubmitFailed{Message: "duration must be at least one day"})
		return
	}
	req := domain.GrantRequest{
		Lender:   lender,
		Scopes:   scopes,
		Duration: time.Duration(days) * 24 * time.Hour,
	}

	vm.rt.Scope.Go(func(ctx context.Context) {
		ctx, span := vm.rt.Tracer.Start(ctx, "consent.grant")
		defer span.End()
		span.SetAttribute("consent.lender", lender.String())

		id, err := vm.consents.Grant(ctx, req)
		if err != nil {
			span.RecordError(err)
			vm.rt.Log.Error(err)
			reactive.Set[domain.SubmitState](vm.rt.Registry, vm.Submit, domain.SubmitFailed{Message: err.Error()})
			return
		}
		vm.load(ctx)
		reactive.Set[domain.SubmitState](vm.rt.Registry, vm.Submit, domain.SubmitSucceeded{Ref: id})
	})
}

// RevokeAll withdraws every consent granted to one lender, then reloads.
func (vm *ConsentVM) RevokeAll(lender domain.Address) {
	vm.rt.Scope.Go(func(ctx context.Context) {
		ctx, span := vm.rt.Tracer.Start(ctx, "consent.revokeAll")
		defer span.End()

		if err := vm.consents.RevokeAll(ctx, lender); err != nil {
			span.RecordError(err)
			vm.rt.Log.Error(err)
			reactive.Set(vm.rt.Registry, vm.LastError, err.Error())
			return
		}
		vm.load(ctx)
	})
}

// ResetSubmit returns the grant machine to Idle from a terminal state.
func (vm *ConsentVM) ResetSubmit() {
	reactive.Update(vm.rt.Registry, vm.Submit, func(s domain.SubmitState) (domain.SubmitState, bool) {
		if _, busy := s.(domain.Submitting); busy {
			return s, false
		}
		return domain.SubmitIdle{}, true
	})
}

func splitScopes(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ConsentItemVM is the per-record view-model. Its identity is the record's
// content: refreshes that return an unchanged record hand back the same
// instance, so Revoking is not reset by unrelated list churn.
type ConsentItemVM struct {
	parent *ConsentVM

	Record domain.ConsentRecord

	// Revoking flags an in-flight revoke for this record.
	Revoking *reactive.Cell[bool]
}

func newConsentItemVM(parent *ConsentVM, rec domain.ConsentRecord) *ConsentItemVM {
	return &ConsentItemVM{
		parent:   parent,
		Record:   rec,
		Revoking: reactive.New("consent.item.revoking."+rec.ID.Short(), false),
	}
}

// Status classifies the record against the time the current list was loaded,
// so every item in one view renders against the same reference instant.
func (it *ConsentItemVM) Status() domain.ConsentStatus {
	return it.Record.Status(reactive.Get(it.parent.rt.Registry, it.parent.LoadedAt))
}

// CanRevoke reports whether Revoke would do anything.
func (it *ConsentItemVM) CanRevoke() bool {
	return it.Status().CanRevoke() && !reactive.Get(it.parent.rt.Registry, it.Revoking)
}

// Revoke withdraws this consent. It is a no-op while a revoke for the same
// record is already in flight or the record is not active. On success the
// parent list reloads; the revoked record comes back with Revoked set and a
// fresh item identity.
func (it *ConsentItemVM) Revoke() {
	if !it.Status().CanRevoke() {
		return
	}
	_, started := reactive.Update(it.parent.rt.Registry, it.Revoking, func(busy bool) (bool, bool) {
		if busy {
			return busy, false
		}
		return true, true
	})
	if !started {
		return
	}

	vm := it.parent
	vm.rt.Scope.Go(func(ctx context.Context) {
		ctx, span := vm.rt.Tracer.Start(ctx, "consent.revoke")
		defer span.End()
		span.SetAttribute("consent.id", it.Record.ID.String())

		err := vm.consents.RevokeByID(ctx, it.Record.ID)
		reactive.Set(vm.rt.Registry, it.Revoking, false)
		if err != nil {
			span.RecordError(err)
			vm.rt.Log.Error(err)
			reactive.Set(vm.rt.Registry, vm.LastError, err.Error())
			return
		}
		vm.load(ctx)
	})
}
