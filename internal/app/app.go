// Package app implements the application layer: it owns the root scope, cell
// registry and memo map, builds the wiring layers, and drives the dashboard
// and demo flows.
package app

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/veri/internal/adapters/config"
	"go.trai.ch/veri/internal/adapters/tui"
	"go.trai.ch/veri/internal/core/domain"
	"go.trai.ch/veri/internal/core/ports"
	"go.trai.ch/veri/internal/di"
	"go.trai.ch/veri/internal/reactive"
	"go.trai.ch/veri/internal/vm"
	"go.trai.ch/veri/internal/wiring"
	"go.trai.ch/zerr"
)

// App is one configured application instance. Close tears down everything
// constructed through it, in reverse construction order.
type App struct {
	cfg      config.Config
	log      ports.Logger
	registry *reactive.Registry
	scope    *di.Scope
	memo     *di.MemoMap
	resolver *vm.Resolver
	root     di.Layer

	// chainRoot is the graph without the view-models, for flows that drive
	// the ledger directly.
	chainRoot di.Layer
}

// New creates an app rooted in the given context.
func New(ctx context.Context, cfg config.Config, log ports.Logger, tracer ports.Tracer, clock clockwork.Clock) *App {
	registry := reactive.NewRegistry()
	scope := di.NewScope(ctx)
	memo := di.NewMemoMap()
	rt := vm.Runtime{
		Registry: registry,
		Scope:    scope,
		Log:      log,
		Tracer:   tracer,
		Clock:    clock,
	}
	return &App{
		cfg:      cfg,
		log:      log,
		registry: registry,
		scope:    scope,
		memo:     memo,
		resolver: vm.NewResolver(rt, memo),
		root:     wiring.Root(cfg, log, tracer, clock, registry),
		chainRoot: di.Merge(
			wiring.Ambient(cfg, log, tracer, clock),
			wiring.Chain(),
		),
	}
}

// Close shuts the app down: cancels background work, waits for it, and runs
// capability finalizers.
func (a *App) Close(ctx context.Context) error {
	return a.scope.Close(ctx)
}

// RunDashboard resolves the dashboard bundle through the reactive resolver
// and runs the TUI over it until the user quits.
func (a *App) RunDashboard(ctx context.Context) error {
	// Log lines on stderr would corrupt the alternate screen.
	if sw, ok := a.log.(interface{ SetOutput(io.Writer) }); ok {
		sw.SetOutput(io.Discard)
		defer sw.SetOutput(os.Stderr)
	}

	cell := vm.Resolve(a.resolver, wiring.TagDashboard, a.root)
	res, err := awaitResult(ctx, a.registry, cell)
	if err != nil {
		return err
	}
	if cause, failed := res.Cause(); failed {
		return zerr.Wrap(cause, "assembling dashboard")
	}
	vms, _ := res.Value()
	return tui.Run(ctx, vms)
}

// awaitResult blocks until the result cell leaves the Initial state.
func awaitResult[T any](ctx context.Context, registry *reactive.Registry, cell *reactive.Cell[vm.Result[T]]) (vm.Result[T], error) {
	changed := make(chan struct{}, 1)
	cancel := registry.Subscribe(cell, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer cancel()

	for {
		res := reactive.Get(registry, cell)
		if !res.IsInitial() {
			return res, nil
		}
		select {
		case <-changed:
		case <-ctx.Done():
			return res, zerr.Wrap(ctx.Err(), "waiting for dashboard resolution")
		}
	}
}

// RunDemo walks the consent lifecycle end to end against the simulated
// ledger: register an identity and an offchain record, watch a fetch get
// denied, grant consent, fetch, revoke, and watch it get denied again.
func (a *App) RunDemo(ctx context.Context) error {
	container, err := di.Build(ctx, a.chainRoot, a.memo, a.scope)
	if err != nil {
		return zerr.Wrap(err, "building demo graph")
	}

	wallet, err := di.Get(container, wiring.TagWallet)
	if err != nil {
		return err
	}
	identity, err := di.Get(container, wiring.TagIdentity)
	if err != nil {
		return err
	}
	consents, err := di.Get(container, wiring.TagConsents)
	if err != nil {
		return err
	}
	store, err := di.Get(container, wiring.TagStore)
	if err != nil {
		return err
	}

	borrower := a.cfg.BorrowerAddress()
	lender := a.cfg.LenderAddress()
	scope := a.cfg.Demo.Scopes[0]

	if _, err := wallet.Connect(ctx); err != nil {
		return zerr.Wrap(err, "connecting demo wallet")
	}
	a.log.Info("wallet connected as " + borrower.Short())

	if err := identity.Register(ctx, demoFields()); err != nil {
		return zerr.Wrap(err, "registering demo identity")
	}
	a.log.Info("identity registered")

	payload := []byte(`{"bracket":"50-100k","verified":true}`)
	if err := store.RegisterRecord(ctx, borrower, scope, payload); err != nil {
		return err
	}

	if _, err := store.Fetch(ctx, lender, borrower, scope); errors.Is(err, domain.ErrConsentDenied) {
		a.log.Info("fetch before grant: denied")
	} else if err != nil {
		return err
	} else {
		return zerr.New("fetch served without consent")
	}

	id, err := consents.Grant(ctx, domain.GrantRequest{
		Lender:   lender,
		Scopes:   domain.NewScopeSet(a.cfg.Demo.Scopes...),
		Duration: a.cfg.ConsentDuration(),
	})
	if err != nil {
		return zerr.Wrap(err, "granting demo consent")
	}
	a.log.Info("consent granted: " + id.Short())

	got, err := store.Fetch(ctx, lender, borrower, scope)
	if err != nil {
		return zerr.Wrap(err, "fetching under consent")
	}
	a.log.Info("fetch under consent: " + string(got))

	if err := consents.RevokeByID(ctx, id); err != nil {
		return zerr.Wrap(err, "revoking demo consent")
	}
	a.log.Info("consent revoked")

	if _, err := store.Fetch(ctx, lender, borrower, scope); errors.Is(err, domain.ErrConsentDenied) {
		a.log.Info("fetch after revoke: denied")
	} else if err != nil {
		return err
	} else {
		return zerr.New("fetch served after revocation")
	}
	return nil
}

func demoFields() domain.IdentityFields {
	return domain.IdentityFields{
		CreditTier:       "A",
		IncomeBracket:    "50-100k",
		DebtRatioBracket: "low",
	}
}
