package ports

import (
	"context"

	"go.trai.ch/veri/internal/core/domain"
)

//go:generate mockgen -source=consent.go -destination=mocks/consent.go -package=mocks

// ConsentRegistry is the on-chain consent manager contract.
type ConsentRegistry interface {
	// Grant records a borrower-to-lender consent and returns its id.
	Grant(ctx context.Context, req domain.GrantRequest) (domain.ConsentID, error)

	// RevokeByID revokes one consent owned by the connected account.
	RevokeByID(ctx context.Context, id domain.ConsentID) error

	// RevokeAll revokes every live consent towards the given lender.
	RevokeAll(ctx context.Context, lender domain.Address) error

	// IsValid reports whether a consent exists, is unrevoked and unexpired.
	IsValid(ctx context.Context, id domain.ConsentID) (bool, error)

	// Consent returns one record. Fails with domain.ErrNotFound when absent.
	Consent(ctx context.Context, id domain.ConsentID) (domain.ConsentRecord, error)

	// BorrowerConsents lists the consent ids granted by a borrower.
	BorrowerConsents(ctx context.Context, borrower domain.Address) ([]domain.ConsentID, error)

	// OwnConsents returns the connected account's consent records.
	OwnConsents(ctx context.Context) ([]domain.ConsentRecord, error)

	// CheckConsent reports whether a live consent from borrower to lender
	// covers the scope. The off-chain store gates data fetches on it.
	CheckConsent(ctx context.Context, borrower, lender domain.Address, scope string) (bool, error)
}
