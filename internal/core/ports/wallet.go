// Package ports defines the interfaces between the view-model layer and its
// external collaborators: the wallet session and the three on-chain
// registries. Implementations live under internal/adapters; the view-models
// depend only on these interfaces.
package ports

import (
	"context"

	"go.trai.ch/veri/internal/core/domain"
)

//go:generate mockgen -source=wallet.go -destination=mocks/wallet.go -package=mocks

// Wallet is the user's signing session. All methods may suspend on I/O and
// return typed failures from the domain package.
type Wallet interface {
	// Connect establishes a session and returns the selected account.
	// Fails with domain.ErrWalletRejected when the user declines.
	Connect(ctx context.Context) (domain.Address, error)

	// Disconnect tears the session down. Always safe to call.
	Disconnect(ctx context.Context) error

	// Address returns the connected account, or domain.ErrNotConnected.
	Address(ctx context.Context) (domain.Address, error)

	// Connected reports whether a session exists.
	Connected(ctx context.Context) (bool, error)

	// ChainID returns the connected chain, or domain.ErrNotConnected.
	ChainID(ctx context.Context) (uint64, error)

	// EnsureNetwork verifies the session is on the expected chain. Fails
	// with domain.ErrWrongNetwork or domain.ErrNotConnected.
	EnsureNetwork(ctx context.Context) error
}
