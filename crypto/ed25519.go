package crypto

import (
	"crypto/ed25519"
	"fmt"
	"io"

	"filippo.io/edwards25519"
)

func init() {
	registerSignScheme(SignFormatEd25519, signScheme{
		newSigner: func(src KeySource, id string) (Signer, error) {
			return LoadEd25519Signer(src, id)
		},
		newVerifier: func(src KeySource, id string) (Verifier, error) {
			return LoadEd25519Verifier(src, id)
		},
		generate: GenerateEd25519Key,
	})
}

// Ed25519Signer signs with an Ed25519 private key.
type Ed25519Signer struct {
	key ed25519.PrivateKey
}

// NewEd25519Signer creates a signer from a 32-byte seed.
func NewEd25519Signer(seed []byte) (*Ed25519Signer, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: ed25519 seed is %d bytes, need %d", ErrInvalidKeyLength, len(seed), ed25519.SeedSize)
	}
	return &Ed25519Signer{key: ed25519.NewKeyFromSeed(seed)}, nil
}

// LoadEd25519Signer loads a signer from a resource holding exactly the seed.
func LoadEd25519Signer(src KeySource, id string) (*Ed25519Signer, error) {
	seed, err := LoadExactKey(src, id, ed25519.SeedSize)
	if err != nil {
		return nil, err
	}
	defer zeroize(seed)
	return NewEd25519Signer(seed)
}

// Sign returns the 64-byte deterministic signature of msg.
func (s *Ed25519Signer) Sign(msg []byte) ([]byte, error) {
	return ed25519.Sign(s.key, msg), nil
}

// Public returns the verifying half of the key.
func (s *Ed25519Signer) Public() ed25519.PublicKey {
	return s.key.Public().(ed25519.PublicKey)
}

// Zero wipes the private key.
func (s *Ed25519Signer) Zero() {
	zeroize(s.key)
}

// Ed25519Verifier verifies Ed25519 signatures.
type Ed25519Verifier struct {
	key ed25519.PublicKey
}

// NewEd25519Verifier creates a verifier from a 32-byte public key. Bytes that
// do not decode to a curve point are rejected with ErrKeyParse.
func NewEd25519Verifier(pub []byte) (*Ed25519Verifier, error) {
	if len(pub) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: ed25519 public key is %d bytes, need %d", ErrInvalidKeyLength, len(pub), ed25519.PublicKeySize)
	}
	if _, err := new(edwards25519.Point).SetBytes(pub); err != nil {
		return nil, fmt.Errorf("%w: ed25519 public key is not a valid point", ErrKeyParse)
	}
	key := make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(key, pub)
	return &Ed25519Verifier{key: key}, nil
}

// LoadEd25519Verifier loads a verifier from a resource holding exactly the public key.
func LoadEd25519Verifier(src KeySource, id string) (*Ed25519Verifier, error) {
	pub, err := LoadExactKey(src, id, ed25519.PublicKeySize)
	if err != nil {
		return nil, err
	}
	return NewEd25519Verifier(pub)
}

// Verify checks sig against msg. A signature that is not 64 bytes is
// ErrSignatureFormat.
func (v *Ed25519Verifier) Verify(msg, sig []byte) (bool, error) {
	if len(sig) != ed25519.SignatureSize {
		return false, fmt.Errorf("%w: ed25519 signature is %d bytes, need %d", ErrSignatureFormat, len(sig), ed25519.SignatureSize)
	}
	return ed25519.Verify(v.key, msg, sig), nil
}

// GenerateEd25519Key returns a fresh key pair: the 32-byte seed and the public key.
func GenerateEd25519Key(rand io.Reader) (KeySet, error) {
	pub, priv, err := ed25519.GenerateKey(rand)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ed25519 key: %w", err)
	}
	seed := make([]byte, ed25519.SeedSize)
	copy(seed, priv.Seed())
	zeroize(priv)
	return KeyPair{Private: seed, Public: []byte(pub)}, nil
}
