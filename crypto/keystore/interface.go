package keystore

import "errors"

var (
	// ErrKeyNotFound is returned when no resource exists at a key identifier.
	ErrKeyNotFound = errors.New("key not found")

	// ErrUnknownBackend is returned when a key reference names a backend that
	// has not been registered.
	ErrUnknownBackend = errors.New("unknown keystore backend")
)

// Keystore stores raw key bytes by identifier.
type Keystore interface {
	// Get returns all bytes stored at id. The caller owns the returned slice
	// and may wipe it.
	Get(id string) ([]byte, error)
	// Set stores data at id, replacing anything already there.
	Set(id string, data []byte) error
	// ListKeys returns every identifier in the keystore, sorted.
	ListKeys() ([]string, error)
}

// Config carries the settings backends are opened with.
type Config struct {
	// Dir is the base directory for relative file paths. Empty means the
	// working directory.
	Dir string
	// ServiceName namespaces entries in the OS keyring.
	ServiceName string
	// Backends restricts which OS keyring implementations may be used, for
	// example "secret-service" or "keychain". Empty allows all of them.
	Backends []string
}
