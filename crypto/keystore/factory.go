package keystore

import (
	"fmt"
	"strings"
	"sync"
)

// ParseRef splits a key reference into a backend name and an identifier.
// "keyring:sign" selects the keyring backend; a reference without a
// registered backend prefix is a file path, so "C:\keys\a.key" stays a path.
func ParseRef(ref string) (backend, id string) {
	if i := strings.Index(ref, ":"); i > 0 {
		if prefix := ref[:i]; isRegistered(prefix) {
			return prefix, ref[i+1:]
		}
	}
	return BackendFile, ref
}

// Resolver maps key references to backends, opening each backend once on
// first use. It satisfies the engine's key source.
type Resolver struct {
	cfg  Config
	mu   sync.Mutex
	open map[string]Keystore
}

// NewResolver creates a resolver that opens backends with cfg.
func NewResolver(cfg Config) *Resolver {
	return &Resolver{cfg: cfg, open: make(map[string]Keystore)}
}

// Mount makes ks the keystore for backend, replacing the registered factory
// for this resolver.
func (r *Resolver) Mount(backend string, ks Keystore) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.open[backend] = ks
}

// Open returns the keystore for backend, creating it if needed.
func (r *Resolver) Open(backend string) (Keystore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ks, ok := r.open[backend]; ok {
		return ks, nil
	}

	factory, err := GetKeystoreFactory(backend)
	if err != nil {
		return nil, err
	}
	ks, err := factory(r.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s keystore: %w", backend, err)
	}
	r.open[backend] = ks
	return ks, nil
}

// Get reads the key at ref.
func (r *Resolver) Get(ref string) ([]byte, error) {
	backend, id := ParseRef(ref)
	ks, err := r.Open(backend)
	if err != nil {
		return nil, err
	}
	return ks.Get(id)
}

// Set stores data at ref.
func (r *Resolver) Set(ref string, data []byte) error {
	backend, id := ParseRef(ref)
	ks, err := r.Open(backend)
	if err != nil {
		return err
	}
	return ks.Set(id, data)
}

// List returns the identifiers held by backend.
func (r *Resolver) List(backend string) ([]string, error) {
	ks, err := r.Open(backend)
	if err != nil {
		return nil, err
	}
	return ks.ListKeys()
}
