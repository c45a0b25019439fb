// Package offchain implements the consent-gated payload store. Borrowers
// register raw data records per scope; lenders fetch them only while a live
// on-chain consent covers the borrower/lender/scope triple. The payloads
// themselves never touch the chain; only the gate does.
package offchain

import (
	"context"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	badger "github.com/dgraph-io/badger/v4"
	"go.trai.ch/veri/internal/core/domain"
	"go.trai.ch/veri/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store is the badger-backed record store. Every fetch is checked against the
// consent registry first, so the audit trail sees the access attempt even
// when the record does not exist.
type Store struct {
	db       *badger.DB
	consents ports.ConsentRegistry
	log      ports.Logger
}

// Open opens or creates a store at the given path.
func Open(path string, consents ports.ConsentRegistry, log ports.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	return open(opts, consents, log)
}

// OpenInMemory opens a store that lives only for the process, for tests and
// the demo flow.
func OpenInMemory(consents ports.ConsentRegistry, log ports.Logger) (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	return open(opts, consents, log)
}

func open(opts badger.Options, consents ports.ConsentRegistry, log ports.Logger) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, zerr.Wrap(err, "opening offchain store")
	}
	return &Store{db: db, consents: consents, log: log}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// recordKey derives the fixed-width storage key for one borrower/scope pair.
func recordKey(borrower domain.Address, scope string) []byte {
	sum := xxhash.Sum64String(borrower.String() + "|" + scope)
	return []byte(fmt.Sprintf("%016x", sum))
}

// RegisterRecord stores a payload under the borrower's scope, replacing any
// previous record for the same pair.
func (s *Store) RegisterRecord(ctx context.Context, borrower domain.Address, scope string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(recordKey(borrower, scope), payload)
	})
	if err != nil {
		return zerr.Wrap(err, "registering offchain record")
	}
	s.log.Info("offchain record registered: " + borrower.Short() + " " + scope)
	return nil
}

// Fetch returns the borrower's payload for a scope, acting as the lender.
// Without a live consent covering the scope the fetch fails with
// domain.ErrConsentDenied before the store is touched.
func (s *Store) Fetch(ctx context.Context, lender, borrower domain.Address, scope string) ([]byte, error) {
	granted, err := s.consents.CheckConsent(ctx, borrower, lender, scope)
	if err != nil {
		return nil, err
	}
	if !granted {
		return nil, zerr.With(zerr.With(domain.ErrConsentDenied, "scope", scope), "lender", lender.Short())
	}

	var payload []byte
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(recordKey(borrower, scope))
		if err != nil {
			return err
		}
		payload, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, zerr.With(domain.ErrNotFound, "scope", scope)
	}
	if err != nil {
		return nil, zerr.Wrap(err, "fetching offchain record")
	}
	return payload, nil
}

// Has reports whether the borrower has a record for the scope. It does not
// consult the consent registry; existence is not gated, content is.
func (s *Store) Has(ctx context.Context, borrower domain.Address, scope string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(recordKey(borrower, scope))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, zerr.Wrap(err, "checking offchain record")
	}
	return true, nil
}
