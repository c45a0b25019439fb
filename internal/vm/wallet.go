package vm

import (
	"context"

	"go.trai.ch/veri/internal/core/domain"
	"go.trai.ch/veri/internal/core/ports"
	"go.trai.ch/veri/internal/reactive"
)

// WalletVM drives the connection state machine. The State cell moves
// Disconnected -> Connecting -> {Connected | Disconnected}; a failed connect
// lands back in Disconnected with the cause logged, never surfaced as a
// distinct error state.
type WalletVM struct {
	rt     Runtime
	wallet ports.Wallet

	// State is the single source of truth for the session. Read-only for
	// observers; only the actions below write it.
	State *reactive.Cell[domain.WalletState]
}

// NewWalletVM constructs the view-model and restores an existing session in
// the background: a wallet that is already connected shows up as Connected
// without the user clicking anything.
func NewWalletVM(rt Runtime, wallet ports.Wallet) *WalletVM {
	w := &WalletVM{
		rt:     rt,
		wallet: wallet,
		State:  reactive.New[domain.WalletState]("wallet.state", domain.WalletDisconnected{}),
	}
	rt.Scope.Go(w.restore)
	return w
}

func (w *WalletVM) restore(ctx context.Context) {
	ok, err := w.wallet.Connected(ctx)
	if err != nil || !ok {
		return
	}
	addr, err := w.wallet.Address(ctx)
	if err != nil {
		return
	}
	chain, err := w.wallet.ChainID(ctx)
	if err != nil {
		return
	}
	// Only claim the session if nobody started a transition meanwhile.
	reactive.Update(w.rt.Registry, w.State, func(s domain.WalletState) (domain.WalletState, bool) {
		if _, idle := s.(domain.WalletDisconnected); !idle {
			return s, false
		}
		return domain.WalletConnected{Address: addr, ChainID: chain}, true
	})
}

// Connect starts a connection attempt. It is a no-op unless the current state
// is Disconnected, so double-clicks and races collapse into one attempt. The
// attempt runs in the scope's background; observers see the outcome on State.
func (w *WalletVM) Connect() {
	_, started := reactive.Update(w.rt.Registry, w.State, func(s domain.WalletState) (domain.WalletState, bool) {
		if _, idle := s.(domain.WalletDisconnected); !idle {
			return s, false
		}
		return domain.WalletConnecting{}, true
	})
	if !started {
		return
	}

	w.rt.Scope.Go(func(ctx context.Context) {
		ctx, span := w.rt.Tracer.Start(ctx, "wallet.connect")
		defer span.End()

		addr, err := w.wallet.Connect(ctx)
		if err == nil {
			err = w.wallet.EnsureNetwork(ctx)
		}
		var chain uint64
		if err == nil {
			chain, err = w.wallet.ChainID(ctx)
		}
		if err != nil {
			span.RecordError(err)
			w.rt.Log.Warn("wallet connect failed: " + err.Error())
			reactive.Set[domain.WalletState](w.rt.Registry, w.State, domain.WalletDisconnected{})
			return
		}

		span.SetAttribute("wallet.address", addr.String())
		reactive.Set[domain.WalletState](w.rt.Registry, w.State, domain.WalletConnected{Address: addr, ChainID: chain})
	})
}

// Disconnect tears the session down. The state flips to Disconnected
// immediately; the wallet-side teardown happens in the background and its
// failure is only logged.
func (w *WalletVM) Disconnect() {
	reactive.Set[domain.WalletState](w.rt.Registry, w.State, domain.WalletDisconnected{})
	w.rt.Scope.Go(func(ctx context.Context) {
		if err := w.wallet.Disconnect(ctx); err != nil {
			w.rt.Log.Warn("wallet disconnect: " + err.Error())
		}
	})
}

// Address returns the connected account, if any.
func (w *WalletVM) Address() (domain.Address, bool) {
	if s, ok := reactive.Get(w.rt.Registry, w.State).(domain.WalletConnected); ok {
		return s.Address, true
	}
	return "", false
}
