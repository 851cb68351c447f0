package crypto

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadKey(t *testing.T) {
	t.Run("returns first size bytes", func(t *testing.T) {
		src := mapSource{"k": sequentialBytes(40)}
		key, err := LoadKey(src, "k", KeySize)
		require.NoError(t, err)
		assert.Equal(t, sequentialBytes(KeySize), key)
	})

	t.Run("exact size", func(t *testing.T) {
		src := mapSource{"k": sequentialBytes(KeySize)}
		key, err := LoadKey(src, "k", KeySize)
		require.NoError(t, err)
		assert.Len(t, key, KeySize)
	})

	t.Run("too short", func(t *testing.T) {
		src := mapSource{"k": sequentialBytes(KeySize - 1)}
		_, err := LoadKey(src, "k", KeySize)
		assert.ErrorIs(t, err, ErrInvalidKeyLength)
	})

	t.Run("missing resource", func(t *testing.T) {
		_, err := LoadKey(mapSource{}, "nope", KeySize)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("wipes source buffer", func(t *testing.T) {
		src := &sharedSource{buf: sequentialBytes(40)}
		key, err := LoadKey(src, "k", KeySize)
		require.NoError(t, err)
		assert.Equal(t, make([]byte, 40), src.buf)
		assert.Equal(t, sequentialBytes(KeySize), key)
	})
}

func TestLoadExactKey(t *testing.T) {
	for _, n := range []int{0, 31, 33, 64} {
		src := mapSource{"k": sequentialBytes(n)}
		_, err := LoadExactKey(src, "k", 32)
		assert.ErrorIs(t, err, ErrInvalidKeyLength, "length %d", n)
	}

	key, err := LoadExactKey(mapSource{"k": sequentialBytes(32)}, "k", 32)
	require.NoError(t, err)
	assert.Equal(t, sequentialBytes(32), key)
}
