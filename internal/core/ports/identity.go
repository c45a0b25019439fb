package ports

import (
	"context"

	"go.trai.ch/veri/internal/core/domain"
)

//go:generate mockgen -source=identity.go -destination=mocks/identity.go -package=mocks

// IdentityRegistry is the on-chain identity attribute contract.
type IdentityRegistry interface {
	// Register writes a fresh identity record for the connected account.
	Register(ctx context.Context, fields domain.IdentityFields) error

	// Update applies a field-level partial update to the connected
	// account's record; empty fields keep their current value.
	Update(ctx context.Context, update domain.IdentityUpdate) error

	// Get returns the record for an address. Fails with domain.ErrNotFound
	// when absent and the caller assumed existence.
	Get(ctx context.Context, addr domain.Address) (domain.IdentityRecord, error)

	// Lookup is Get for callers that expect absence: the bool reports
	// presence and absence is not an error.
	Lookup(ctx context.Context, addr domain.Address) (domain.IdentityRecord, bool, error)

	// Has reports whether an address holds a record.
	Has(ctx context.Context, addr domain.Address) (bool, error)

	// GetOwn and HasOwn are Get/Has for the connected wallet's address.
	GetOwn(ctx context.Context) (domain.IdentityRecord, error)
	HasOwn(ctx context.Context) (bool, error)
}
