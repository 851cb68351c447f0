package crypto

import (
	"fmt"
)

// KeySize is the key length in bytes shared by every scheme.
const KeySize = 32

// KeySource reads the full contents of a key resource.
//
// Resolving the identifier (file path, keyring entry, ...) is the source's
// concern; the engine only asks for all bytes at id.
type KeySource interface {
	Get(id string) ([]byte, error)
}

// LoadKey reads the resource at id and returns its first size bytes.
// Fewer than size bytes is ErrInvalidKeyLength. The returned slice is a copy,
// and the full buffer read from src is zeroized.
func LoadKey(src KeySource, id string, size int) ([]byte, error) {
	data, err := src.Get(id)
	if err != nil {
		return nil, fmt.Errorf("failed to read key %q: %w", id, err)
	}
	defer zeroize(data)

	if len(data) < size {
		return nil, fmt.Errorf("%w: key %q has %d bytes, need %d", ErrInvalidKeyLength, id, len(data), size)
	}

	key := make([]byte, size)
	copy(key, data[:size])
	return key, nil
}

// LoadExactKey is LoadKey for schemes whose key must be exactly size bytes.
func LoadExactKey(src KeySource, id string, size int) ([]byte, error) {
	data, err := src.Get(id)
	if err != nil {
		return nil, fmt.Errorf("failed to read key %q: %w", id, err)
	}
	defer zeroize(data)

	if len(data) != size {
		return nil, fmt.Errorf("%w: key %q has %d bytes, need exactly %d", ErrInvalidKeyLength, id, len(data), size)
	}

	key := make([]byte, size)
	copy(key, data)
	return key, nil
}
