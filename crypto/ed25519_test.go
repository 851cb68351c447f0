package crypto

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RFC 8032 section 7.1, test 1.
const (
	rfc8032Seed = "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"
	rfc8032Pub  = "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a"
	rfc8032Sig  = "e5564300c360ac729086e2cc806e828a84877f1eb8e5d974d873e065224901555fb8821590a33bacc61e39701cf9b46bd25bf5f0595bbe24655141438e7a100b"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestEd25519(t *testing.T) {
	t.Run("known answer", func(t *testing.T) {
		signer, err := NewEd25519Signer(mustHex(t, rfc8032Seed))
		require.NoError(t, err)
		assert.Equal(t, mustHex(t, rfc8032Pub), []byte(signer.Public()))

		sig, err := signer.Sign(nil)
		require.NoError(t, err)
		assert.Equal(t, mustHex(t, rfc8032Sig), sig)

		verifier, err := NewEd25519Verifier(mustHex(t, rfc8032Pub))
		require.NoError(t, err)
		ok, err := verifier.Verify(nil, sig)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("tampered message fails", func(t *testing.T) {
		signer, err := NewEd25519Signer(mustHex(t, rfc8032Seed))
		require.NoError(t, err)
		verifier, err := NewEd25519Verifier(signer.Public())
		require.NoError(t, err)

		sig, err := signer.Sign([]byte("hello"))
		require.NoError(t, err)

		ok, err := verifier.Verify([]byte("hello!"), sig)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("tampered signature fails at every byte", func(t *testing.T) {
		signer, err := NewEd25519Signer(mustHex(t, rfc8032Seed))
		require.NoError(t, err)
		verifier, err := NewEd25519Verifier(signer.Public())
		require.NoError(t, err)

		msg := []byte("hello")
		sig, err := signer.Sign(msg)
		require.NoError(t, err)
		require.Len(t, sig, 64)

		for i := range sig {
			tampered := bytes.Clone(sig)
			tampered[i] ^= 0x01

			ok, err := verifier.Verify(msg, tampered)
			require.NoError(t, err, "byte %d", i)
			assert.False(t, ok, "byte %d", i)
		}
	})

	t.Run("signature under other key fails", func(t *testing.T) {
		ks, err := GenerateEd25519Key(rand.Reader)
		require.NoError(t, err)
		other, err := NewEd25519Verifier(ks.(KeyPair).Public)
		require.NoError(t, err)

		signer, err := NewEd25519Signer(mustHex(t, rfc8032Seed))
		require.NoError(t, err)
		sig, _ := signer.Sign([]byte("hello"))

		ok, err := other.Verify([]byte("hello"), sig)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("wrong signature length is a format error", func(t *testing.T) {
		verifier, err := NewEd25519Verifier(mustHex(t, rfc8032Pub))
		require.NoError(t, err)

		for _, n := range []int{0, 32, 63, 65} {
			_, err := verifier.Verify([]byte("hello"), make([]byte, n))
			assert.ErrorIs(t, err, ErrSignatureFormat, "signature length %d", n)
		}
	})

	t.Run("invalid curve point", func(t *testing.T) {
		// y = 2 has no matching x on the curve.
		pub := make([]byte, 32)
		pub[0] = 0x02

		_, err := NewEd25519Verifier(pub)
		assert.ErrorIs(t, err, ErrKeyParse)
	})

	t.Run("key lengths must be exact", func(t *testing.T) {
		for _, n := range []int{31, 33, 64} {
			src := mapSource{"k": sequentialBytes(n)}

			_, err := LoadEd25519Signer(src, "k")
			assert.ErrorIs(t, err, ErrInvalidKeyLength, "seed length %d", n)

			_, err = LoadEd25519Verifier(src, "k")
			assert.ErrorIs(t, err, ErrInvalidKeyLength, "public key length %d", n)
		}
	})
}

func TestGenerateEd25519Key(t *testing.T) {
	ks, err := GenerateEd25519Key(rand.Reader)
	require.NoError(t, err)

	pair, ok := ks.(KeyPair)
	require.True(t, ok)
	assert.Len(t, pair.Private, 32)
	assert.Len(t, pair.Public, 32)

	signer, err := NewEd25519Signer(pair.Private)
	require.NoError(t, err)
	assert.Equal(t, pair.Public, []byte(signer.Public()))
}
