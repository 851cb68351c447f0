package keystore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joncooperworks/textcrypt/crypto"
)

func testKeystore(t *testing.T, ks Keystore) {
	t.Helper()

	t.Run("missing key", func(t *testing.T) {
		_, err := ks.Get("absent")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, ks.Set("a.key", []byte("alpha")))
		data, err := ks.Get("a.key")
		require.NoError(t, err)
		assert.Equal(t, []byte("alpha"), data)
	})

	t.Run("get returns a copy", func(t *testing.T) {
		require.NoError(t, ks.Set("b.key", []byte("bravo")))
		first, err := ks.Get("b.key")
		require.NoError(t, err)
		for i := range first {
			first[i] = 0
		}
		second, err := ks.Get("b.key")
		require.NoError(t, err)
		assert.Equal(t, []byte("bravo"), second)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, ks.Set("a.key", []byte("alpha-2")))
		data, err := ks.Get("a.key")
		require.NoError(t, err)
		assert.Equal(t, []byte("alpha-2"), data)
	})

	t.Run("list", func(t *testing.T) {
		keys, err := ks.ListKeys()
		require.NoError(t, err)
		assert.Equal(t, []string{"a.key", "b.key"}, keys)
	})
}

func TestFileKeystore(t *testing.T) {
	dir := t.TempDir()
	ks, err := NewFileKeystore(Config{Dir: dir})
	require.NoError(t, err)

	testKeystore(t, ks)

	t.Run("writes owner-only files", func(t *testing.T) {
		info, err := os.Stat(filepath.Join(dir, "a.key"))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("absolute paths ignore dir", func(t *testing.T) {
		other := filepath.Join(t.TempDir(), "abs.key")
		require.NoError(t, os.WriteFile(other, []byte("abs"), 0o600))
		data, err := ks.Get(other)
		require.NoError(t, err)
		assert.Equal(t, []byte("abs"), data)
	})
}

func TestMemoryKeystore(t *testing.T) {
	testKeystore(t, NewMemoryKeystore())
}

func TestKeyringKeystore(t *testing.T) {
	testKeystore(t, NewKeyringKeystoreFrom(keyring.NewArrayKeyring(nil)))
}

func TestParseRef(t *testing.T) {
	tests := []struct {
		ref     string
		backend string
		id      string
	}{
		{"keyring:signing", BackendKeyring, "signing"},
		{"memory:test", BackendMemory, "test"},
		{"file:keys/a.key", BackendFile, "keys/a.key"},
		{"fixtures/blake3.txt", BackendFile, "fixtures/blake3.txt"},
		{`C:\keys\a.key`, BackendFile, `C:\keys\a.key`},
		{"vault:x", BackendFile, "vault:x"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			backend, id := ParseRef(tt.ref)
			assert.Equal(t, tt.backend, backend)
			assert.Equal(t, tt.id, id)
		})
	}
}

func TestRegistry(t *testing.T) {
	backends := ListRegisteredBackends()
	assert.Contains(t, backends, BackendFile)
	assert.Contains(t, backends, BackendKeyring)
	assert.Contains(t, backends, BackendMemory)

	_, err := GetKeystoreFactory("vault")
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestResolver(t *testing.T) {
	dir := t.TempDir()
	r := NewResolver(Config{Dir: dir})
	r.Mount(BackendKeyring, NewKeyringKeystoreFrom(keyring.NewArrayKeyring(nil)))

	t.Run("routes by prefix", func(t *testing.T) {
		require.NoError(t, r.Set("keyring:k", []byte("from keyring")))
		require.NoError(t, r.Set("memory:k", []byte("from memory")))
		require.NoError(t, r.Set("k", []byte("from file")))

		for ref, want := range map[string]string{
			"keyring:k": "from keyring",
			"memory:k":  "from memory",
			"k":         "from file",
		} {
			data, err := r.Get(ref)
			require.NoError(t, err)
			assert.Equal(t, want, string(data), ref)
		}

		_, err := os.Stat(filepath.Join(dir, "k"))
		assert.NoError(t, err)
	})

	t.Run("backends open once", func(t *testing.T) {
		a, err := r.Open(BackendMemory)
		require.NoError(t, err)
		b, err := r.Open(BackendMemory)
		require.NoError(t, err)
		assert.Same(t, a, b)
	})

	t.Run("list", func(t *testing.T) {
		keys, err := r.List(BackendKeyring)
		require.NoError(t, err)
		assert.Equal(t, []string{"k"}, keys)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := r.List("vault")
		assert.ErrorIs(t, err, ErrUnknownBackend)
	})
}

func TestResolverAsKeySource(t *testing.T) {
	ctx := context.Background()
	r := NewResolver(Config{Dir: t.TempDir()})

	e, err := crypto.NewEngine(r)
	require.NoError(t, err)

	ks, err := e.Generate(ctx, crypto.SignFormatEd25519)
	require.NoError(t, err)
	pair := ks.(crypto.KeyPair)
	require.NoError(t, r.Set("memory:ed25519.sk", pair.Private))
	require.NoError(t, r.Set("ed25519.pk", pair.Public))

	sig, err := e.Sign(ctx, "memory:ed25519.sk", strings.NewReader("hello"), crypto.SignFormatEd25519)
	require.NoError(t, err)

	ok, err := e.Verify(ctx, "ed25519.pk", strings.NewReader("hello"), sig, crypto.SignFormatEd25519)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = e.Sign(ctx, "missing.sk", strings.NewReader("hello"), crypto.SignFormatEd25519)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
