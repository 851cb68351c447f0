package crypto

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// mapSource is an in-memory KeySource. Get returns a copy, like the real
// keystores do.
type mapSource map[string][]byte

func (m mapSource) Get(id string) ([]byte, error) {
	data, ok := m[id]
	if !ok {
		return nil, fmt.Errorf("key %q: %w", id, os.ErrNotExist)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// sharedSource hands out its own buffer so tests can observe zeroization.
type sharedSource struct {
	buf []byte
}

func (s *sharedSource) Get(string) ([]byte, error) {
	return s.buf, nil
}

func newTestEngine(t *testing.T, keys KeySource, opts ...Option) *Engine {
	t.Helper()
	e, err := NewEngine(keys, opts...)
	require.NoError(t, err)
	return e
}

func sequentialBytes(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i + 1)
	}
	return b
}

func text(s string) *strings.Reader {
	return strings.NewReader(s)
}
