package chain

import (
	"context"

	"go.trai.ch/veri/internal/core/domain"
	"go.trai.ch/veri/internal/core/ports"
	"go.trai.ch/zerr"
)

// ConsentRegistry implements ports.ConsentRegistry against the ledger. Grants
// and revocations act as the wallet's connected account; only the granting
// borrower may revoke.
type ConsentRegistry struct {
	ledger  *Ledger
	session ports.Wallet
}

// NewConsentRegistry creates the adapter.
func NewConsentRegistry(ledger *Ledger, session ports.Wallet) *ConsentRegistry {
	return &ConsentRegistry{ledger: ledger, session: session}
}

// Grant records a new consent from the connected borrower and returns its id.
func (r *ConsentRegistry) Grant(ctx context.Context, req domain.GrantRequest) (domain.Hash32, error) {
	borrower, err := r.session.Address(ctx)
	if err != nil {
		return "", err
	}
	if req.Duration <= 0 {
		return "", zerr.With(domain.ErrCallFailed, "reason", "non-positive consent duration")
	}
	if req.Scopes.Len() == 0 {
		return "", zerr.With(domain.ErrCallFailed, "reason", "empty scope set")
	}

	l := r.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.clock.Now()
	id := l.newID("consent", borrower.String(), req.Lender.String(), req.Scopes.String())
	l.consents[id] = domain.ConsentRecord{
		ID:        id,
		Borrower:  borrower,
		Lender:    req.Lender,
		Scopes:    req.Scopes,
		GrantedAt: now,
		ExpiresAt: now.Add(req.Duration),
	}
	l.byBorrower[borrower] = append(l.byBorrower[borrower], id)
	l.append(domain.AuditConsentGranted, borrower, req.Lender, req.Scopes, now, "")
	return id, nil
}

// RevokeByID withdraws one consent. Only the granting borrower may revoke;
// revoking an already revoked or expired consent fails.
func (r *ConsentRegistry) RevokeByID(ctx context.Context, id domain.Hash32) error {
	caller, err := r.session.Address(ctx)
	if err != nil {
		return err
	}

	l := r.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, exists := l.consents[id]
	if !exists {
		return zerr.With(domain.ErrNotFound, "consent", id.Short())
	}
	if rec.Borrower != caller {
		return zerr.With(domain.ErrConsentDenied, "reason", "not the granting borrower")
	}
	now := l.clock.Now()
	if rec.Status(now) != domain.ConsentActive {
		return zerr.With(domain.ErrCallFailed, "reason", "consent not active")
	}
	rec.Revoked = true
	l.consents[id] = rec
	l.append(domain.AuditConsentRevoked, caller, rec.Lender, rec.Scopes, now, "")
	return nil
}

// RevokeAll withdraws every active consent from the connected borrower to the
// given lender. Consents already revoked or expired are skipped.
func (r *ConsentRegistry) RevokeAll(ctx context.Context, lender domain.Address) error {
	caller, err := r.session.Address(ctx)
	if err != nil {
		return err
	}

	l := r.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.clock.Now()
	for _, id := range l.byBorrower[caller] {
		rec := l.consents[id]
		if rec.Lender != lender || rec.Status(now) != domain.ConsentActive {
			continue
		}
		rec.Revoked = true
		l.consents[id] = rec
		l.append(domain.AuditConsentRevoked, caller, lender, rec.Scopes, now, "")
	}
	return nil
}

// IsValid reports whether a consent is currently active.
func (r *ConsentRegistry) IsValid(ctx context.Context, id domain.Hash32) (bool, error) {
	l := r.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, exists := l.consents[id]
	if !exists {
		return false, zerr.With(domain.ErrNotFound, "consent", id.Short())
	}
	return rec.Status(l.clock.Now()) == domain.ConsentActive, nil
}

// Consent returns one consent record.
func (r *ConsentRegistry) Consent(ctx context.Context, id domain.Hash32) (domain.ConsentRecord, error) {
	l := r.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, exists := l.consents[id]
	if !exists {
		return domain.ConsentRecord{}, zerr.With(domain.ErrNotFound, "consent", id.Short())
	}
	return rec, nil
}

// BorrowerConsents returns the ids of every consent a borrower ever granted,
// in grant order.
func (r *ConsentRegistry) BorrowerConsents(ctx context.Context, borrower domain.Address) ([]domain.Hash32, error) {
	l := r.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.Hash32(nil), l.byBorrower[borrower]...), nil
}

// OwnConsents returns the connected borrower's consent records in grant order.
func (r *ConsentRegistry) OwnConsents(ctx context.Context) ([]domain.ConsentRecord, error) {
	caller, err := r.session.Address(ctx)
	if err != nil {
		return nil, err
	}

	l := r.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	ids := l.byBorrower[caller]
	out := make([]domain.ConsentRecord, 0, len(ids))
	for _, id := range ids {
		out = append(out, l.consents[id])
	}
	return out, nil
}

// CheckConsent reports whether an active consent from borrower to lender
// covers the scope. Every check lands in the audit trail as an access
// request, with the outcome in the detail.
func (r *ConsentRegistry) CheckConsent(ctx context.Context, borrower, lender domain.Address, scope string) (bool, error) {
	l := r.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.clock.Now()

	granted := false
	for _, id := range l.byBorrower[borrower] {
		rec := l.consents[id]
		if rec.Lender == lender && rec.Status(now) == domain.ConsentActive && rec.Scopes.Contains(scope) {
			granted = true
			break
		}
	}

	detail := "denied"
	if granted {
		detail = "granted"
	}
	l.append(domain.AuditAccessRequest, lender, borrower, domain.NewScopeSet(scope), now, detail)
	return granted, nil
}
