package state

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

type BadgerStoreOptionFunc func(*BadgerStore)

// WithBadgerLogger specifies the logger object to use for logging messages
func WithBadgerLogger(logger *slog.Logger) BadgerStoreOptionFunc {
	return func(b *BadgerStore) {
		b.logger = logger
	}
}

// WithBadgerDataDir specifies the data directory to use for storage. An empty
// dir keeps everything in memory.
func WithBadgerDataDir(dataDir string) BadgerStoreOptionFunc {
	return func(b *BadgerStore) {
		b.dataDir = dataDir
	}
}

// BadgerStore persists the keyspace in badger.
type BadgerStore struct {
	db      *badger.DB
	logger  *slog.Logger
	dataDir string
}

// NewBadgerStore opens (or creates) the badger database
func NewBadgerStore(opts ...BadgerStoreOptionFunc) (*BadgerStore, error) {
	s := &BadgerStore{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		// Create logger to throw away logs
		s.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	var badgerOpts badger.Options
	if s.dataDir == "" {
		badgerOpts = badger.DefaultOptions("").
			WithInMemory(true)
	} else {
		if _, err := os.Stat(s.dataDir); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read data dir: %w", err)
			}
			if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create data dir: %w", err)
			}
		}
		badgerOpts = badger.DefaultOptions(filepath.Join(s.dataDir, "accounts")).
			WithCompression(options.Snappy)
	}
	badgerOpts = badgerOpts.
		WithLogger(&badgerLogger{logger: s.logger}).
		// The default INFO logging is a bit verbose
		WithLoggingLevel(badger.WARNING)
	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, err
	}
	s.db = db
	return s, nil
}

func (s *BadgerStore) NewTransaction(update bool) Txn {
	return &badgerTxn{tx: s.db.NewTransaction(update)}
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// badgerTxn wraps a badger transaction and implements Txn
type badgerTxn struct {
	tx       *badger.Txn
	finished bool
}

func (t *badgerTxn) Get(key []byte) ([]byte, error) {
	if t.finished {
		return nil, ErrTxnFinished
	}
	item, err := t.tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return item.ValueCopy(nil)
}

func (t *badgerTxn) Set(key, val []byte) error {
	if t.finished {
		return ErrTxnFinished
	}
	if err := t.tx.Set(key, val); err != nil {
		if errors.Is(err, badger.ErrReadOnlyTxn) {
			return ErrTxnReadOnly
		}
		return err
	}
	return nil
}

func (t *badgerTxn) Delete(key []byte) error {
	if t.finished {
		return ErrTxnFinished
	}
	if err := t.tx.Delete(key); err != nil {
		if errors.Is(err, badger.ErrReadOnlyTxn) {
			return ErrTxnReadOnly
		}
		return err
	}
	return nil
}

func (t *badgerTxn) Commit() error {
	if t.finished {
		return nil
	}
	t.finished = true
	return t.tx.Commit()
}

func (t *badgerTxn) Rollback() error {
	if t.finished {
		return nil
	}
	t.finished = true
	t.tx.Discard()
	return nil
}

// badgerLogger routes badger's printf-style logging into slog
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(msg string, args ...any) {
	l.logger.Error(fmt.Sprintf(msg, args...), "component", "state")
}

func (l *badgerLogger) Warningf(msg string, args ...any) {
	l.logger.Warn(fmt.Sprintf(msg, args...), "component", "state")
}

func (l *badgerLogger) Infof(msg string, args ...any) {
	l.logger.Info(fmt.Sprintf(msg, args...), "component", "state")
}

func (l *badgerLogger) Debugf(msg string, args ...any) {
	l.logger.Debug(fmt.Sprintf(msg, args...), "component", "state")
}
