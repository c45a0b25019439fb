package domain

import "time"

// ConsentID identifies a consent grant on the ledger.
type ConsentID = Hash32

// ConsentRecord is one borrower-to-lender data-sharing grant.
type ConsentRecord struct {
	ID        ConsentID
	Borrower  Address
	Lender    Address
	Scopes    ScopeSet
	GrantedAt time.Time
	ExpiresAt time.Time
	Revoked   bool
}

// ConsentStatus classifies a consent relative to a reference time.
type ConsentStatus string

const (
	// ConsentActive means the consent is live and enforceable.
	ConsentActive ConsentStatus = "active"
	// ConsentExpired means the expiry time has passed without revocation.
	ConsentExpired ConsentStatus = "expired"
	// ConsentRevoked means the borrower withdrew the consent. Revocation wins
	// over expiry.
	ConsentRevoked ConsentStatus = "revoked"
)

// Status classifies the record against the given reference time.
func (r ConsentRecord) Status(now time.Time) ConsentStatus {
	if r.Revoked {
		return ConsentRevoked
	}
	if !r.ExpiresAt.After(now) {
		return ConsentExpired
	}
	return ConsentActive
}

// CanRevoke reports whether a revoke action is meaningful for this status.
func (s ConsentStatus) CanRevoke() bool {
	return s == ConsentActive
}

// GrantRequest carries the parameters of a consent grant submission.
type GrantRequest struct {
	Lender   Address
	Scopes   ScopeSet
	Duration time.Duration
}
