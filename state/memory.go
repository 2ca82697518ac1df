package state

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// MemoryStore keeps every key in a map. It backs the tests and the CLI's
// "memory" storage mode, where the map is snapshotted to a JSON file.
type MemoryStore struct {
	mu     sync.RWMutex
	db     map[string][]byte
	closed bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		db: make(map[string][]byte),
	}
}

func (m *MemoryStore) NewTransaction(update bool) Txn {
	return &memoryTxn{
		store:  m,
		update: update,
		writes: make(map[string][]byte),
	}
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Snapshot returns a deep copy of the committed keyspace.
func (m *MemoryStore) Snapshot() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string][]byte, len(m.db))
	for k, v := range m.db {
		out[k] = append([]byte(nil), v...)
	}
	return out
}

// SaveToFile writes the full map to a JSON file. Keys are hex encoded since
// they are raw bytes.
func (m *MemoryStore) SaveToFile(filename string) error {
	m.mu.RLock()
	out := make(map[string][]byte, len(m.db))
	for k, v := range m.db {
		out[hex.EncodeToString([]byte(k))] = v
	}
	m.mu.RUnlock()
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o600)
}

// LoadFromFile loads the map from a JSON file. A missing file leaves the
// store empty.
func (m *MemoryStore) LoadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	raw := make(map[string][]byte)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	db := make(map[string][]byte, len(raw))
	for k, v := range raw {
		key, err := hex.DecodeString(k)
		if err != nil {
			return fmt.Errorf("invalid key %q in %s: %w", k, filename, err)
		}
		db[string(key)] = v
	}
	m.mu.Lock()
	m.db = db
	m.mu.Unlock()
	return nil
}

type memoryTxn struct {
	store    *MemoryStore
	update   bool
	finished bool
	writes   map[string][]byte
}

func (t *memoryTxn) Get(key []byte) ([]byte, error) {
	if t.finished {
		return nil, ErrTxnFinished
	}
	if val, ok := t.writes[string(key)]; ok {
		if val == nil {
			return nil, ErrKeyNotFound
		}
		return append([]byte(nil), val...), nil
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if t.store.closed {
		return nil, ErrStoreClosed
	}
	val, ok := t.store.db[string(key)]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), val...), nil
}

func (t *memoryTxn) Set(key, val []byte) error {
	if err := t.writable(); err != nil {
		return err
	}
	if val == nil {
		val = []byte{}
	}
	t.writes[string(key)] = append([]byte(nil), val...)
	return nil
}

func (t *memoryTxn) Delete(key []byte) error {
	if err := t.writable(); err != nil {
		return err
	}
	t.writes[string(key)] = nil
	return nil
}

func (t *memoryTxn) writable() error {
	if t.finished {
		return ErrTxnFinished
	}
	if !t.update {
		return ErrTxnReadOnly
	}
	return nil
}

func (t *memoryTxn) Commit() error {
	if t.finished {
		return nil
	}
	t.finished = true
	if len(t.writes) == 0 {
		return nil
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if t.store.closed {
		return ErrStoreClosed
	}
	for k, v := range t.writes {
		if v == nil {
			delete(t.store.db, k)
			continue
		}
		t.store.db[k] = v
	}
	return nil
}

func (t *memoryTxn) Rollback() error {
	t.finished = true
	t.writes = nil
	return nil
}
