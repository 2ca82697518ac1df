// Package state holds the transactional key/value store every ledger record
// lives in. A Txn is the unit of atomicity: writes made through it become
// visible only on Commit, and Rollback drops them all.
package state

import "errors"

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrTxnFinished = errors.New("transaction already finished")
	ErrTxnReadOnly = errors.New("transaction is read-only")
	ErrStoreClosed = errors.New("store closed")
)

// Store hands out transactions over a keyspace.
type Store interface {
	NewTransaction(update bool) Txn
	Close() error
}

// Txn is a single isolated view of the store. Reads observe the txn's own
// pending writes.
type Txn interface {
	Get(key []byte) ([]byte, error)
	Set(key, val []byte) error
	Delete(key []byte) error
	Commit() error
	Rollback() error
}
