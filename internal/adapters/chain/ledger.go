// Package chain implements the wallet and registry ports against an
// in-process simulated ledger. The simulation keeps the same observable
// semantics as the contracts it stands in for: content-derived identifiers,
// monotonic block time from an injected clock, and an audit entry appended on
// every state change.
package chain

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/veri/internal/core/domain"
)

// Ledger is the shared simulated chain state. One Ledger backs all adapter
// instances of a process; every mutation is serialized under its lock, the
// way transactions serialize on a real chain.
type Ledger struct {
	clock   clockwork.Clock
	chainID uint64

	mu         sync.Mutex
	seq        uint64
	identities map[domain.Address]domain.IdentityRecord
	consents   map[domain.ConsentID]domain.ConsentRecord
	byBorrower map[domain.Address][]domain.ConsentID
	trail      []domain.AuditEntry
}

// NewLedger creates an empty ledger on the given chain.
func NewLedger(clock clockwork.Clock, chainID uint64) *Ledger {
	return &Ledger{
		clock:      clock,
		chainID:    chainID,
		identities: make(map[domain.Address]domain.IdentityRecord),
		consents:   make(map[domain.ConsentID]domain.ConsentRecord),
		byBorrower: make(map[domain.Address][]domain.ConsentID),
	}
}

// ChainID returns the simulated chain identifier.
func (l *Ledger) ChainID() uint64 { return l.chainID }

// newID derives a unique 32-byte identifier from the mutation's content and
// a per-ledger sequence number. Caller holds the lock.
func (l *Ledger) newID(parts ...string) domain.Hash32 {
	l.seq++
	h := sha256.New()
	var seq [8]byte
	binary.BigEndian.PutUint64(seq[:], l.seq)
	h.Write(seq[:])
	for _, p := range parts {
		h.Write([]byte(p))
	}
	return domain.Hash32("0x" + hex.EncodeToString(h.Sum(nil)))
}

// append records an audit entry for a mutation. Caller holds the lock.
func (l *Ledger) append(kind domain.AuditKind, actor, subject domain.Address, scopes domain.ScopeSet, at time.Time, detail string) {
	l.trail = append(l.trail, domain.AuditEntry{
		ID:      l.newID(string(kind), actor.String(), subject.String()),
		Kind:    kind,
		Actor:   actor,
		Subject: subject,
		Scopes:  scopes,
		At:      at,
		Detail:  detail,
	})
}
