// Package domain contains the value records and state types shared by the
// view-model layer and the ledger-facing adapters. Every identifier entering
// the package is validated against its wire format first; malformed values
// never reach a view-model cell.
package domain

import (
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

var (
	addressPattern = regexp.MustCompile(`^0x[0-9a-f]{40}$`)
	hashPattern    = regexp.MustCompile(`^0x[0-9a-f]{64}$`)
)

// Address is a 20-byte account identifier in lower-case 0x-prefixed hex.
type Address string

// ParseAddress validates and canonicalizes an address. The input may use any
// letter case; the canonical form is lower-case.
func ParseAddress(s string) (Address, error) {
	c := strings.ToLower(strings.TrimSpace(s))
	if !addressPattern.MatchString(c) {
		return "", zerr.With(ErrInvalidAddress, "value", s)
	}
	return Address(c), nil
}

// MustParseAddress is ParseAddress for statically known inputs. It panics on
// malformed values and is intended for tests and seed data.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String returns the canonical hex form.
func (a Address) String() string { return string(a) }

// Short returns an abbreviated form suitable for display, e.g. 0x1234…cdef.
func (a Address) Short() string {
	if len(a) != 42 {
		return string(a)
	}
	return string(a[:6]) + "…" + string(a[38:])
}

// Hash32 is a 32-byte identifier (consent ids, audit entry ids) in lower-case
// 0x-prefixed hex.
type Hash32 string

// ParseHash32 validates and canonicalizes a 32-byte hash identifier.
func ParseHash32(s string) (Hash32, error) {
	c := strings.ToLower(strings.TrimSpace(s))
	if !hashPattern.MatchString(c) {
		return "", zerr.With(ErrInvalidHash, "value", s)
	}
	return Hash32(c), nil
}

// MustParseHash32 is ParseHash32 for statically known inputs.
func MustParseHash32(s string) Hash32 {
	h, err := ParseHash32(s)
	if err != nil {
		panic(err)
	}
	return h
}

// String returns the canonical hex form.
func (h Hash32) String() string { return string(h) }

// Short returns an abbreviated form suitable for display.
func (h Hash32) Short() string {
	if len(h) != 66 {
		return string(h)
	}
	return string(h[:10]) + "…"
}
