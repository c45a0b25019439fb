package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidAddress is returned when a value does not match the 20-byte hex address format.
	ErrInvalidAddress = zerr.New("invalid address")

	// ErrInvalidHash is returned when a value does not match the 32-byte hex hash format.
	ErrInvalidHash = zerr.New("invalid hash")

	// ErrNotConnected is returned by wallet-backed operations when no wallet session exists.
	ErrNotConnected = zerr.New("wallet not connected")

	// ErrWrongNetwork is returned when the wallet is connected to an unexpected chain.
	ErrWrongNetwork = zerr.New("wrong network")

	// ErrWalletRejected is returned when the user rejects a wallet prompt.
	ErrWalletRejected = zerr.New("wallet request rejected")

	// ErrNotFound is returned when a ledger record does not exist.
	ErrNotFound = zerr.New("record not found")

	// ErrCallFailed is returned when a remote contract call fails for infrastructure reasons.
	ErrCallFailed = zerr.New("contract call failed")

	// ErrConsentDenied is returned when no live consent covers a requested scope.
	ErrConsentDenied = zerr.New("consent denied")
)
