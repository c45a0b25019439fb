package chain

import (
	"context"

	"go.trai.ch/veri/internal/core/domain"
	"go.trai.ch/veri/internal/core/ports"
	"go.trai.ch/zerr"
)

// AuditLog implements ports.AuditLog over the ledger's append-only trail.
type AuditLog struct {
	ledger  *Ledger
	session ports.Wallet
}

// NewAuditLog creates the adapter.
func NewAuditLog(ledger *Ledger, session ports.Wallet) *AuditLog {
	return &AuditLog{ledger: ledger, session: session}
}

// Entry returns one trail entry by id.
func (a *AuditLog) Entry(ctx context.Context, id domain.Hash32) (domain.AuditEntry, error) {
	l := a.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.trail {
		if e.ID == id {
			return e, nil
		}
	}
	return domain.AuditEntry{}, zerr.With(domain.ErrNotFound, "entry", id.Short())
}

// Count returns the total number of trail entries.
func (a *AuditLog) Count(ctx context.Context) (uint64, error) {
	l := a.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	return uint64(len(l.trail)), nil
}

// AccessHistory returns the ids of the access-request entries targeting an
// address, oldest first.
func (a *AuditLog) AccessHistory(ctx context.Context, addr domain.Address) ([]domain.Hash32, error) {
	l := a.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []domain.Hash32
	for _, e := range l.trail {
		if e.Kind == domain.AuditAccessRequest && e.Subject == addr {
			out = append(out, e.ID)
		}
	}
	return out, nil
}

// RecentEntries returns the newest count entries, newest first.
func (a *AuditLog) RecentEntries(ctx context.Context, count int) ([]domain.AuditEntry, error) {
	l := a.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	if count < 0 {
		count = 0
	}
	if count > len(l.trail) {
		count = len(l.trail)
	}
	out := make([]domain.AuditEntry, 0, count)
	for i := len(l.trail) - 1; i >= len(l.trail)-count; i-- {
		out = append(out, l.trail[i])
	}
	return out, nil
}

// OwnAccessHistory returns every trail entry concerning the connected
// account, as actor or subject, oldest first.
func (a *AuditLog) OwnAccessHistory(ctx context.Context) ([]domain.AuditEntry, error) {
	addr, err := a.session.Address(ctx)
	if err != nil {
		return nil, err
	}

	l := a.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []domain.AuditEntry
	for _, e := range l.trail {
		if e.Actor == addr || e.Subject == addr {
			out = append(out, e)
		}
	}
	return out, nil
}
