package wiring

import (
	"context"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/veri/internal/adapters/chain"
	"go.trai.ch/veri/internal/adapters/config"
	"go.trai.ch/veri/internal/adapters/offchain"
	"go.trai.ch/veri/internal/adapters/tui"
	"go.trai.ch/veri/internal/core/ports"
	"go.trai.ch/veri/internal/di"
	"go.trai.ch/veri/internal/reactive"
	"go.trai.ch/veri/internal/vm"
)

// Ambient supplies the cross-cutting capabilities: configuration, logging,
// tracing and the clock. The instances come from the caller so the same
// logger serves code inside and outside the graph.
func Ambient(cfg config.Config, log ports.Logger, tracer ports.Tracer, clock clockwork.Clock) di.Layer {
	return di.Merge(
		di.Supply(TagConfig, cfg),
		di.Supply(TagLogger, log),
		di.Supply(TagTracer, tracer),
		di.Supply(TagClock, clock),
	)
}

// Chain provides the simulated ledger, the wallet session, and the four
// registry adapters over them, plus the consent-gated offchain store.
func Chain() di.Layer {
	ledger := di.Provide(TagLedger, func(ctx context.Context, c *di.Container) (*chain.Ledger, error) {
		cfg, err := di.Dep(ctx, c, TagConfig)
		if err != nil {
			return nil, err
		}
		clock, err := di.Dep(ctx, c, TagClock)
		if err != nil {
			return nil, err
		}
		return chain.NewLedger(clock, cfg.ChainID), nil
	}, TagConfig.Key(), TagClock.Key())

	wallet := di.Provide(TagWallet, func(ctx context.Context, c *di.Container) (ports.Wallet, error) {
		cfg, err := di.Dep(ctx, c, TagConfig)
		if err != nil {
			return nil, err
		}
		ledger, err := di.Dep(ctx, c, TagLedger)
		if err != nil {
			return nil, err
		}
		return chain.NewWallet(ledger, cfg.BorrowerAddress(), cfg.ChainID), nil
	}, TagConfig.Key(), TagLedger.Key())

	identity := di.Provide(TagIdentity, func(ctx context.Context, c *di.Container) (ports.IdentityRegistry, error) {
		ledger, wallet, err := ledgerAndWallet(ctx, c)
		if err != nil {
			return nil, err
		}
		return chain.NewIdentityRegistry(ledger, wallet), nil
	}, TagLedger.Key(), TagWallet.Key())

	consents := di.Provide(TagConsents, func(ctx context.Context, c *di.Container) (ports.ConsentRegistry, error) {
		ledger, wallet, err := ledgerAndWallet(ctx, c)
		if err != nil {
			return nil, err
		}
		return chain.NewConsentRegistry(ledger, wallet), nil
	}, TagLedger.Key(), TagWallet.Key())

	audit := di.Provide(TagAudit, func(ctx context.Context, c *di.Container) (ports.AuditLog, error) {
		ledger, wallet, err := ledgerAndWallet(ctx, c)
		if err != nil {
			return nil, err
		}
		return chain.NewAuditLog(ledger, wallet), nil
	}, TagLedger.Key(), TagWallet.Key())

	store := di.Provide(TagStore, func(ctx context.Context, c *di.Container) (*offchain.Store, error) {
		cfg, err := di.Dep(ctx, c, TagConfig)
		if err != nil {
			return nil, err
		}
		consents, err := di.Dep(ctx, c, TagConsents)
		if err != nil {
			return nil, err
		}
		log, err := di.Dep(ctx, c, TagLogger)
		if err != nil {
			return nil, err
		}
		var s *offchain.Store
		if cfg.StorePath == "" {
			s, err = offchain.OpenInMemory(consents, log)
		} else {
			s, err = offchain.Open(cfg.StorePath, consents, log)
		}
		if err != nil {
			return nil, err
		}
		c.Scope().Defer("offchain.store", func(context.Context) error {
			return s.Close()
		})
		return s, nil
	}, TagConfig.Key(), TagConsents.Key(), TagLogger.Key())

	return di.Merge(ledger, wallet, identity, consents, audit, store)
}

func ledgerAndWallet(ctx context.Context, c *di.Container) (*chain.Ledger, ports.Wallet, error) {
	ledger, err := di.Dep(ctx, c, TagLedger)
	if err != nil {
		return nil, nil, err
	}
	wallet, err := di.Dep(ctx, c, TagWallet)
	if err != nil {
		return nil, nil, err
	}
	return ledger, wallet, nil
}

// ViewModels provides the runtime and the four feature view-models over the
// given cell registry, plus the assembled dashboard bundle.
func ViewModels(registry *reactive.Registry) di.Layer {
	runtime := di.Provide(TagRuntime, func(ctx context.Context, c *di.Container) (vm.Runtime, error) {
		log, err := di.Dep(ctx, c, TagLogger)
		if err != nil {
			return vm.Runtime{}, err
		}
		tracer, err := di.Dep(ctx, c, TagTracer)
		if err != nil {
			return vm.Runtime{}, err
		}
		clock, err := di.Dep(ctx, c, TagClock)
		if err != nil {
			return vm.Runtime{}, err
		}
		return vm.Runtime{
			Registry: registry,
			Scope:    c.Scope(),
			Log:      log,
			Tracer:   tracer,
			Clock:    clock,
		}, nil
	}, TagLogger.Key(), TagTracer.Key(), TagClock.Key())

	walletVM := di.Provide(TagWalletVM, func(ctx context.Context, c *di.Container) (*vm.WalletVM, error) {
		rt, err := di.Dep(ctx, c, TagRuntime)
		if err != nil {
			return nil, err
		}
		wallet, err := di.Dep(ctx, c, TagWallet)
		if err != nil {
			return nil, err
		}
		return vm.NewWalletVM(rt, wallet), nil
	}, TagRuntime.Key(), TagWallet.Key())

	identityVM := di.Provide(TagIdentityVM, func(ctx context.Context, c *di.Container) (*vm.IdentityVM, error) {
		rt, err := di.Dep(ctx, c, TagRuntime)
		if err != nil {
			return nil, err
		}
		identity, err := di.Dep(ctx, c, TagIdentity)
		if err != nil {
			return nil, err
		}
		return vm.NewIdentityVM(rt, identity), nil
	}, TagRuntime.Key(), TagIdentity.Key())

	consentVM := di.Provide(TagConsentVM, func(ctx context.Context, c *di.Container) (*vm.ConsentVM, error) {
		rt, err := di.Dep(ctx, c, TagRuntime)
		if err != nil {
			return nil, err
		}
		consents, err := di.Dep(ctx, c, TagConsents)
		if err != nil {
			return nil, err
		}
		wallet, err := di.Dep(ctx, c, TagWallet)
		if err != nil {
			return nil, err
		}
		return vm.NewConsentVM(rt, consents, wallet), nil
	}, TagRuntime.Key(), TagConsents.Key(), TagWallet.Key())

	auditVM := di.Provide(TagAuditVM, func(ctx context.Context, c *di.Container) (*vm.AuditVM, error) {
		rt, err := di.Dep(ctx, c, TagRuntime)
		if err != nil {
			return nil, err
		}
		audit, err := di.Dep(ctx, c, TagAudit)
		if err != nil {
			return nil, err
		}
		cfg, err := di.Dep(ctx, c, TagConfig)
		if err != nil {
			return nil, err
		}
		return vm.NewAuditVM(rt, audit, cfg.PageSize), nil
	}, TagRuntime.Key(), TagAudit.Key(), TagConfig.Key())

	dashboard := di.Provide(TagDashboard, func(ctx context.Context, c *di.Container) (tui.VMs, error) {
		w, err := di.Dep(ctx, c, TagWalletVM)
		if err != nil {
			return tui.VMs{}, err
		}
		id, err := di.Dep(ctx, c, TagIdentityVM)
		if err != nil {
			return tui.VMs{}, err
		}
		cons, err := di.Dep(ctx, c, TagConsentVM)
		if err != nil {
			return tui.VMs{}, err
		}
		audit, err := di.Dep(ctx, c, TagAuditVM)
		if err != nil {
			return tui.VMs{}, err
		}
		return tui.VMs{
			Registry: registry,
			Wallet:   w,
			Identity: id,
			Consents: cons,
			Audit:    audit,
		}, nil
	}, TagWalletVM.Key(), TagIdentityVM.Key(), TagConsentVM.Key(), TagAuditVM.Key())

	return di.Merge(runtime, walletVM, identityVM, consentVM, auditVM, dashboard)
}

// Root composes the full application graph.
func Root(cfg config.Config, log ports.Logger, tracer ports.Tracer, clock clockwork.Clock, registry *reactive.Registry) di.Layer {
	return di.Merge(
		Ambient(cfg, log, tracer, clock),
		Chain(),
		ViewModels(registry),
	)
}
