package keystore

import (
	"fmt"
	"sort"
	"sync"
)

// BackendMemory keeps keys in process memory.
const BackendMemory = "memory"

func init() {
	RegisterKeystore(BackendMemory, func(Config) (Keystore, error) {
		return NewMemoryKeystore(), nil
	})
}

// MemoryKeystore is an in-memory implementation of Keystore for tests and
// for embedding the engine without touching disk. Its keys are gone when the
// process exits, so the command line refuses to store into or list it.
// This is exported so it can be used by tests in other packages.
type MemoryKeystore struct {
	mu   sync.RWMutex
	keys map[string][]byte
}

// NewMemoryKeystore creates an empty in-memory keystore.
func NewMemoryKeystore() *MemoryKeystore {
	return &MemoryKeystore{keys: make(map[string][]byte)}
}

// Get returns a copy of the bytes stored at id.
func (m *MemoryKeystore) Get(id string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.keys[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, id)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Set stores a copy of data at id and wipes any previous value.
func (m *MemoryKeystore) Set(id string, data []byte) error {
	stored := make([]byte, len(data))
	copy(stored, data)

	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.keys[id]; ok {
		zeroize(old)
	}
	m.keys[id] = stored
	return nil
}

// ListKeys returns the stored identifiers.
func (m *MemoryKeystore) ListKeys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.keys))
	for k := range m.keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
