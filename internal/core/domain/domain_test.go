package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/veri/internal/core/domain"
)

func TestParseAddress(t *testing.T) {
	t.Run("canonicalizes mixed case", func(t *testing.T) {
		a, err := domain.ParseAddress("0xF39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
		require.NoError(t, err)
		require.Equal(t, "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266", a.String())
	})

	t.Run("rejects malformed values", func(t *testing.T) {
		for _, in := range []string{
			"",
			"0x1234",
			"f39fd6e51aad88f6f4ce6ab8827279cfffb92266",
			"0xf39fd6e51aad88f6f4ce6ab8827279cfffb9226g",
			"0xf39fd6e51aad88f6f4ce6ab8827279cfffb9226611",
		} {
			_, err := domain.ParseAddress(in)
			require.ErrorIs(t, err, domain.ErrInvalidAddress, "input %q", in)
		}
	})

	t.Run("short form", func(t *testing.T) {
		a := domain.MustParseAddress("0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266")
		require.Equal(t, "0xf39f…2266", a.Short())
	})
}

func TestParseHash32(t *testing.T) {
	valid := "0x" + "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	h, err := domain.ParseHash32(valid)
	require.NoError(t, err)
	require.Equal(t, valid, h.String())

	_, err = domain.ParseHash32("0x1234")
	require.ErrorIs(t, err, domain.ErrInvalidHash)
}

func TestScopeSetCanonicalization(t *testing.T) {
	a := domain.NewScopeSet("income", "credit_score", "income")
	b := domain.NewScopeSet(" credit_score ", "income")
	require.Equal(t, a, b)
	require.Equal(t, []string{"credit_score", "income"}, a.Values())
	require.Equal(t, 2, a.Len())
	require.True(t, a.Contains("income"))
	require.False(t, a.Contains("debt_ratio"))

	empty := domain.NewScopeSet()
	require.Equal(t, 0, empty.Len())
	require.Nil(t, empty.Values())
}

func TestConsentStatus(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		expires time.Time
		revoked bool
		want    domain.ConsentStatus
	}{
		{"active", now.Add(time.Hour), false, domain.ConsentActive},
		{"expired", now.Add(-time.Hour), false, domain.ConsentExpired},
		{"expiry boundary is expired", now, false, domain.ConsentExpired},
		{"revoked wins over active", now.Add(time.Hour), true, domain.ConsentRevoked},
		{"revoked wins over expired", now.Add(-time.Hour), true, domain.ConsentRevoked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := domain.ConsentRecord{ExpiresAt: tt.expires, Revoked: tt.revoked}
			require.Equal(t, tt.want, rec.Status(now))
		})
	}

	require.True(t, domain.ConsentActive.CanRevoke())
	require.False(t, domain.ConsentExpired.CanRevoke())
	require.False(t, domain.ConsentRevoked.CanRevoke())
}

func TestIdentityUpdateApply(t *testing.T) {
	rec := domain.IdentityRecord{
		CreditTier:       "A",
		IncomeBracket:    "50k-100k",
		DebtRatioBracket: "0-20%",
	}

	got := domain.IdentityUpdate{CreditTier: "B"}.Apply(rec)
	require.Equal(t, "B", got.CreditTier)
	require.Equal(t, "50k-100k", got.IncomeBracket)
	require.Equal(t, "0-20%", got.DebtRatioBracket)

	require.True(t, domain.IdentityUpdate{}.IsZero())
	require.Equal(t, rec, domain.IdentityUpdate{}.Apply(rec))
}

func TestAuditFilterMatches(t *testing.T) {
	tests := []struct {
		filter domain.AuditFilter
		kind   domain.AuditKind
		want   bool
	}{
		{domain.FilterAll, domain.AuditAccessRequest, true},
		{domain.FilterAll, domain.AuditIdentityUpdated, true},
		{domain.FilterConsentEvents, domain.AuditConsentGranted, true},
		{domain.FilterConsentEvents, domain.AuditConsentRevoked, true},
		{domain.FilterConsentEvents, domain.AuditAccessRequest, false},
		{domain.FilterIdentityEvents, domain.AuditIdentityRegistered, true},
		{domain.FilterIdentityEvents, domain.AuditConsentGranted, false},
		{domain.FilterAccessRequests, domain.AuditAccessRequest, true},
		{domain.FilterAccessRequests, domain.AuditIdentityUpdated, false},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, tt.filter.Matches(tt.kind), "%s/%s", tt.filter, tt.kind)
	}
}

func TestAuditFilterCycle(t *testing.T) {
	f := domain.FilterAll
	seen := map[domain.AuditFilter]bool{}
	for range domain.AuditFilters {
		seen[f] = true
		f = f.Next()
	}
	require.Equal(t, domain.FilterAll, f)
	require.Len(t, seen, len(domain.AuditFilters))
}

func TestPagination(t *testing.T) {
	t.Run("spec boundary", func(t *testing.T) {
		p := domain.NewPagination(1, 20, 45)
		require.Equal(t, 3, p.TotalPages)
		from, to := p.Bounds()
		require.Equal(t, 0, from)
		require.Equal(t, 20, to)

		last := domain.NewPagination(3, 20, 45)
		from, to = last.Bounds()
		require.Equal(t, 40, from)
		require.Equal(t, 45, to)
		require.False(t, last.HasNext())
		require.True(t, last.HasPrev())
	})

	t.Run("clamps out-of-range pages", func(t *testing.T) {
		require.Equal(t, 3, domain.NewPagination(99, 20, 45).Page)
		require.Equal(t, 1, domain.NewPagination(0, 20, 45).Page)
	})

	t.Run("empty list keeps one page", func(t *testing.T) {
		p := domain.NewPagination(1, 20, 0)
		require.Equal(t, 1, p.TotalPages)
		from, to := p.Bounds()
		require.Equal(t, 0, from)
		require.Equal(t, 0, to)
	})
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	require.False(t, errors.Is(domain.ErrNotFound, domain.ErrCallFailed))
	require.False(t, errors.Is(domain.ErrNotConnected, domain.ErrWrongNetwork))
}
