package chain

import (
	"context"

	"go.trai.ch/veri/internal/core/domain"
	"go.trai.ch/veri/internal/core/ports"
	"go.trai.ch/zerr"
)

// IdentityRegistry implements ports.IdentityRegistry against the ledger. The
// "own" operations act as the wallet's connected account and fail with
// domain.ErrNotConnected when there is no session.
type IdentityRegistry struct {
	ledger  *Ledger
	session ports.Wallet
}

// NewIdentityRegistry creates the adapter.
func NewIdentityRegistry(ledger *Ledger, session ports.Wallet) *IdentityRegistry {
	return &IdentityRegistry{ledger: ledger, session: session}
}

// Register writes a first-time identity record for the connected account.
// Registering twice fails; Update is the path for changes.
func (r *IdentityRegistry) Register(ctx context.Context, fields domain.IdentityFields) error {
	addr, err := r.session.Address(ctx)
	if err != nil {
		return err
	}

	l := r.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.identities[addr]; exists {
		return zerr.With(domain.ErrCallFailed, "reason", "identity already registered")
	}
	now := l.clock.Now()
	l.identities[addr] = domain.IdentityRecord{
		Owner:            addr,
		CreditTier:       fields.CreditTier,
		IncomeBracket:    fields.IncomeBracket,
		DebtRatioBracket: fields.DebtRatioBracket,
		RegisteredAt:     now,
		UpdatedAt:        now,
	}
	l.append(domain.AuditIdentityRegistered, addr, addr, domain.ScopeSet{}, now, "")
	return nil
}

// Update applies a partial update to the connected account's record. Fields
// left empty keep their current value.
func (r *IdentityRegistry) Update(ctx context.Context, update domain.IdentityUpdate) error {
	addr, err := r.session.Address(ctx)
	if err != nil {
		return err
	}

	l := r.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, exists := l.identities[addr]
	if !exists {
		return zerr.With(domain.ErrNotFound, "address", addr.String())
	}
	rec = update.Apply(rec)
	rec.UpdatedAt = l.clock.Now()
	l.identities[addr] = rec
	l.append(domain.AuditIdentityUpdated, addr, addr, domain.ScopeSet{}, rec.UpdatedAt, "")
	return nil
}

// Get returns the record for an address, or domain.ErrNotFound.
func (r *IdentityRegistry) Get(ctx context.Context, addr domain.Address) (domain.IdentityRecord, error) {
	l := r.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, exists := l.identities[addr]
	if !exists {
		return domain.IdentityRecord{}, zerr.With(domain.ErrNotFound, "address", addr.String())
	}
	return rec, nil
}

// Lookup returns the record and whether it exists, reserving the error for
// transport failures.
func (r *IdentityRegistry) Lookup(ctx context.Context, addr domain.Address) (domain.IdentityRecord, bool, error) {
	l := r.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, exists := l.identities[addr]
	return rec, exists, nil
}

// Has reports whether an address has a record.
func (r *IdentityRegistry) Has(ctx context.Context, addr domain.Address) (bool, error) {
	l := r.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	_, exists := l.identities[addr]
	return exists, nil
}

// GetOwn returns the connected account's record.
func (r *IdentityRegistry) GetOwn(ctx context.Context) (domain.IdentityRecord, error) {
	addr, err := r.session.Address(ctx)
	if err != nil {
		return domain.IdentityRecord{}, err
	}
	return r.Get(ctx, addr)
}

// HasOwn reports whether the connected account has a record.
func (r *IdentityRegistry) HasOwn(ctx context.Context) (bool, error) {
	addr, err := r.session.Address(ctx)
	if err != nil {
		return false, err
	}
	return r.Has(ctx, addr)
}
