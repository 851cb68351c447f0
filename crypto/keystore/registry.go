package keystore

import (
	"fmt"
	"sort"
	"sync"
)

// KeystoreFactory is a function that opens a Keystore from configuration.
//
// Factory functions are registered with RegisterKeystore and are called the
// first time a key reference names their backend.
type KeystoreFactory func(cfg Config) (Keystore, error)

var (
	// registry stores keystore factories by backend name
	registry = make(map[string]KeystoreFactory)
	// registryMu protects concurrent access to the registry
	registryMu sync.RWMutex
)

// RegisterKeystore registers a keystore factory under a backend name.
//
// This should be called from init() functions in backend implementations.
// The name is also the prefix that selects the backend in a key reference
// ("keyring:signing-key").
//
// Example:
//
//	func init() {
//	    RegisterKeystore("keyring", NewKeyringKeystore)
//	}
func RegisterKeystore(backend string, factory KeystoreFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[backend] = factory
}

// GetKeystoreFactory retrieves the factory registered for backend.
func GetKeystoreFactory(backend string) (KeystoreFactory, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	factory, ok := registry[backend]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, backend)
	}
	return factory, nil
}

// ListRegisteredBackends returns all registered backend names, sorted.
func ListRegisteredBackends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	backends := make([]string, 0, len(registry))
	for backend := range registry {
		backends = append(backends, backend)
	}
	sort.Strings(backends)
	return backends
}

func isRegistered(backend string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[backend]
	return ok
}
