package ports

import (
	"context"

	"go.trai.ch/veri/internal/core/domain"
)

//go:generate mockgen -source=audit.go -destination=mocks/audit.go -package=mocks

// AuditLog is the append-only on-chain audit trail.
type AuditLog interface {
	// Entry returns one entry. Fails with domain.ErrNotFound when absent.
	Entry(ctx context.Context, id domain.Hash32) (domain.AuditEntry, error)

	// Count returns the total number of entries.
	Count(ctx context.Context) (uint64, error)

	// AccessHistory lists entry ids touching the given address.
	AccessHistory(ctx context.Context, addr domain.Address) ([]domain.Hash32, error)

	// RecentEntries returns the newest entries, most recent first.
	RecentEntries(ctx context.Context, count int) ([]domain.AuditEntry, error)

	// OwnAccessHistory returns the connected account's entries, oldest
	// first.
	OwnAccessHistory(ctx context.Context) ([]domain.AuditEntry, error)
}
