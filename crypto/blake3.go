package crypto

import (
	"crypto/subtle"
	"fmt"
	"io"

	"lukechampine.com/blake3"
)

// Blake3TagSize is the length of a keyed BLAKE3 tag.
const Blake3TagSize = 32

// blake3KeyPasswordLength is the number of printable characters in a generated MAC key.
const blake3KeyPasswordLength = 32

func init() {
	registerSignScheme(SignFormatBlake3, signScheme{
		newSigner: func(src KeySource, id string) (Signer, error) {
			return LoadBlake3(src, id)
		},
		newVerifier: func(src KeySource, id string) (Verifier, error) {
			return LoadBlake3(src, id)
		},
		generate: GenerateBlake3Key,
	})
}

// Blake3 is a keyed BLAKE3 MAC. The same key signs and verifies.
type Blake3 struct {
	key [KeySize]byte
}

// NewBlake3 creates a MAC from a key of exactly KeySize bytes.
func NewBlake3(key []byte) (*Blake3, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: blake3 key is %d bytes, need %d", ErrInvalidKeyLength, len(key), KeySize)
	}
	b := &Blake3{}
	copy(b.key[:], key)
	return b, nil
}

// LoadBlake3 loads the first KeySize bytes of the resource at id.
func LoadBlake3(src KeySource, id string) (*Blake3, error) {
	key, err := LoadKey(src, id, KeySize)
	if err != nil {
		return nil, err
	}
	defer zeroize(key)
	return NewBlake3(key)
}

// Sign returns the 32-byte keyed hash of msg.
func (b *Blake3) Sign(msg []byte) ([]byte, error) {
	h := blake3.New(Blake3TagSize, b.key[:])
	h.Write(msg)
	return h.Sum(nil), nil
}

// Verify recomputes the tag and compares it in constant time.
func (b *Blake3) Verify(msg, sig []byte) (bool, error) {
	if len(sig) != Blake3TagSize {
		return false, fmt.Errorf("%w: blake3 tag is %d bytes, need %d", ErrSignatureFormat, len(sig), Blake3TagSize)
	}
	tag, err := b.Sign(msg)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(tag, sig) == 1, nil
}

// Zero wipes the key.
func (b *Blake3) Zero() {
	zeroize(b.key[:])
}

// GenerateBlake3Key returns a MAC key made of 32 printable characters drawn
// from every password character class.
func GenerateBlake3Key(rand io.Reader) (KeySet, error) {
	password, err := GeneratePassword(rand, AllClasses(blake3KeyPasswordLength))
	if err != nil {
		return nil, fmt.Errorf("failed to generate blake3 key: %w", err)
	}
	return SymmetricKey{Key: []byte(password)}, nil
}
