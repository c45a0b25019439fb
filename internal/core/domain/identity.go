package domain

import "time"

// IdentityRecord is the on-chain identity attribute set for one account.
// Records are immutable values; an update replaces the whole record.
type IdentityRecord struct {
	Owner            Address
	CreditTier       string
	IncomeBracket    string
	DebtRatioBracket string
	RegisteredAt     time.Time
	UpdatedAt        time.Time
}

// Display returns the short form shown in the dashboard header.
func (r IdentityRecord) Display() string {
	return r.Owner.Short() + " · tier " + r.CreditTier
}

// IdentityFields carries the attributes for a fresh registration. All fields
// are required.
type IdentityFields struct {
	CreditTier       string
	IncomeBracket    string
	DebtRatioBracket string
}

// IdentityUpdate carries a field-level partial update. Empty fields are left
// unchanged on the existing record.
type IdentityUpdate struct {
	CreditTier       string
	IncomeBracket    string
	DebtRatioBracket string
}

// IsZero reports whether the update changes nothing.
func (u IdentityUpdate) IsZero() bool {
	return u == IdentityUpdate{}
}

// Apply merges the update onto an existing record, preserving unset fields.
func (u IdentityUpdate) Apply(r IdentityRecord) IdentityRecord {
	if u.CreditTier != "" {
		r.CreditTier = u.CreditTier
	}
	if u.IncomeBracket != "" {
		r.IncomeBracket = u.IncomeBracket
	}
	if u.DebtRatioBracket != "" {
		r.DebtRatioBracket = u.DebtRatioBracket
	}
	return r
}
