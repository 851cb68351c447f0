package keystore

import (
	"errors"
	"fmt"
	"sort"

	"github.com/99designs/keyring"
)

// BackendKeyring stores keys in the OS keyring.
const BackendKeyring = "keyring"

// DefaultServiceName is the keyring service used when none is configured.
const DefaultServiceName = "textcrypt"

func init() {
	RegisterKeystore(BackendKeyring, NewKeyringKeystore)
}

// KeyringKeystore implements Keystore on top of the OS keyring
// (Secret Service, Keychain, Windows Credential Manager, ...).
type KeyringKeystore struct {
	ring keyring.Keyring
}

// NewKeyringKeystore opens the OS keyring for cfg.ServiceName.
func NewKeyringKeystore(cfg Config) (Keystore, error) {
	service := cfg.ServiceName
	if service == "" {
		service = DefaultServiceName
	}

	var allowed []keyring.BackendType
	for _, b := range cfg.Backends {
		allowed = append(allowed, keyring.BackendType(b))
	}

	ring, err := keyring.Open(keyring.Config{
		ServiceName:      service,
		AllowedBackends:  allowed,
		FilePasswordFunc: keyring.TerminalPrompt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}

	return NewKeyringKeystoreFrom(ring), nil
}

// NewKeyringKeystoreFrom wraps an already opened keyring.
func NewKeyringKeystoreFrom(ring keyring.Keyring) *KeyringKeystore {
	return &KeyringKeystore{ring: ring}
}

// Get retrieves the key bytes stored under id.
func (k *KeyringKeystore) Get(id string) ([]byte, error) {
	item, err := k.ring.Get(id)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: keyring entry %q", ErrKeyNotFound, id)
		}
		return nil, fmt.Errorf("failed to get key from keyring: %w", err)
	}

	data := make([]byte, len(item.Data))
	copy(data, item.Data)
	return data, nil
}

// Set stores data under id.
func (k *KeyringKeystore) Set(id string, data []byte) error {
	err := k.ring.Set(keyring.Item{
		Key:         id,
		Data:        data,
		Label:       id,
		Description: "textcrypt key",
	})
	if err != nil {
		return fmt.Errorf("failed to store key in keyring: %w", err)
	}

	return nil
}

// ListKeys returns all key IDs stored under the service.
func (k *KeyringKeystore) ListKeys() ([]string, error) {
	keys, err := k.ring.Keys()
	if err != nil {
		return nil, fmt.Errorf("failed to list keys from keyring: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}
