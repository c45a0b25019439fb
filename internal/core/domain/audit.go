package domain

import "time"

// AuditKind is the category of one audit-log entry.
type AuditKind string

const (
	// AuditConsentGranted records a consent grant.
	AuditConsentGranted AuditKind = "consent_granted"
	// AuditConsentRevoked records a consent revocation.
	AuditConsentRevoked AuditKind = "consent_revoked"
	// AuditIdentityRegistered records a first-time identity registration.
	AuditIdentityRegistered AuditKind = "identity_registered"
	// AuditIdentityUpdated records an identity attribute update.
	AuditIdentityUpdated AuditKind = "identity_updated"
	// AuditAccessRequest records a lender fetching data under a consent.
	AuditAccessRequest AuditKind = "access_request"
)

// AuditEntry is one immutable row of the on-chain audit trail.
type AuditEntry struct {
	ID      Hash32
	Kind    AuditKind
	Actor   Address
	Subject Address
	Scopes  ScopeSet
	At      time.Time
	Detail  string
}

// AuditFilter selects which entry kinds the audit view shows.
type AuditFilter string

const (
	// FilterAll shows every entry.
	FilterAll AuditFilter = "all"
	// FilterConsentEvents shows grants and revocations.
	FilterConsentEvents AuditFilter = "consent"
	// FilterIdentityEvents shows registrations and updates.
	FilterIdentityEvents AuditFilter = "identity"
	// FilterAccessRequests shows lender data fetches.
	FilterAccessRequests AuditFilter = "access"
)

// AuditFilters lists the filters in the order the dashboard cycles through.
var AuditFilters = []AuditFilter{FilterAll, FilterConsentEvents, FilterIdentityEvents, FilterAccessRequests}

// Matches reports whether an entry of the given kind passes the filter.
func (f AuditFilter) Matches(k AuditKind) bool {
	switch f {
	case FilterAll:
		return true
	case FilterConsentEvents:
		return k == AuditConsentGranted || k == AuditConsentRevoked
	case FilterIdentityEvents:
		return k == AuditIdentityRegistered || k == AuditIdentityUpdated
	case FilterAccessRequests:
		return k == AuditAccessRequest
	default:
		return false
	}
}

// Next returns the filter after f in the dashboard cycle order.
func (f AuditFilter) Next() AuditFilter {
	for i, v := range AuditFilters {
		if v == f {
			return AuditFilters[(i+1)%len(AuditFilters)]
		}
	}
	return FilterAll
}
