package chain

import (
	"context"
	"sync"

	"go.trai.ch/veri/internal/core/domain"
)

// Wallet is a simulated signing session for one account. Connect succeeds
// unless the session was primed to reject, which stands in for the user
// declining in a real wallet.
type Wallet struct {
	ledger  *Ledger
	account domain.Address
	chainID uint64

	mu         sync.Mutex
	connected  bool
	rejectNext bool
}

// NewWallet creates a disconnected session for the given account, attached to
// the given chain.
func NewWallet(ledger *Ledger, account domain.Address, chainID uint64) *Wallet {
	return &Wallet{ledger: ledger, account: account, chainID: chainID}
}

// RejectNext makes the next Connect fail with domain.ErrWalletRejected.
func (w *Wallet) RejectNext() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rejectNext = true
}

// Connect establishes the session.
func (w *Wallet) Connect(ctx context.Context) (domain.Address, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.rejectNext {
		w.rejectNext = false
		return "", domain.ErrWalletRejected
	}
	w.connected = true
	return w.account, nil
}

// Disconnect tears the session down.
func (w *Wallet) Disconnect(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.connected = false
	return nil
}

// Address returns the connected account.
func (w *Wallet) Address(ctx context.Context) (domain.Address, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.connected {
		return "", domain.ErrNotConnected
	}
	return w.account, nil
}

// Connected reports whether a session exists.
func (w *Wallet) Connected(ctx context.Context) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.connected, nil
}

// ChainID returns the chain the session is on.
func (w *Wallet) ChainID(ctx context.Context) (uint64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.connected {
		return 0, domain.ErrNotConnected
	}
	return w.chainID, nil
}

// EnsureNetwork verifies the session is on the ledger's chain.
func (w *Wallet) EnsureNetwork(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.connected {
		return domain.ErrNotConnected
	}
	if w.chainID != w.ledger.chainID {
		return domain.ErrWrongNetwork
	}
	return nil
}
