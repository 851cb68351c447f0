package crypto

import (
	"crypto/cipher"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// NonceSize is the envelope nonce length.
const NonceSize = chacha20poly1305.NonceSize

func init() {
	registerEncryptScheme(EncryptFormatChaCha20Poly1305, encryptScheme{
		newEncryptor: func(src KeySource, id string, rand io.Reader) (Encryptor, error) {
			c, err := LoadChaCha20Poly1305(src, id)
			if err != nil {
				return nil, err
			}
			c.rand = rand
			return c, nil
		},
		newDecryptor: func(src KeySource, id string) (Decryptor, error) {
			return LoadChaCha20Poly1305(src, id)
		},
		generate: GenerateChaCha20Poly1305Key,
	})

	// The tag also lives in the signing set so that key generation works
	// through it; sign and verify are left nil.
	registerSignScheme(SignFormatChaCha20Poly1305, signScheme{
		generate: GenerateChaCha20Poly1305Key,
	})
}

// ChaCha20Poly1305 encrypts and decrypts envelopes laid out as
//
//	[nonce:12][ciphertext+tag]
type ChaCha20Poly1305 struct {
	aead cipher.AEAD
	rand io.Reader
}

// NewChaCha20Poly1305 creates a cipher from a 32-byte key. Nonces are drawn
// from rand.
func NewChaCha20Poly1305(key []byte, rand io.Reader) (*ChaCha20Poly1305, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("%w: chacha20poly1305 key is %d bytes, need %d", ErrInvalidKeyLength, len(key), chacha20poly1305.KeySize)
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyParse, err)
	}
	return &ChaCha20Poly1305{aead: aead, rand: rand}, nil
}

// LoadChaCha20Poly1305 loads the first 32 bytes of the resource at id. The
// returned cipher uses the default random source until the engine sets one.
func LoadChaCha20Poly1305(src KeySource, id string) (*ChaCha20Poly1305, error) {
	key, err := LoadKey(src, id, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer zeroize(key)
	return NewChaCha20Poly1305(key, defaultRand)
}

// Encrypt seals plaintext under a fresh random nonce.
func (c *ChaCha20Poly1305) Encrypt(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, NonceSize, NonceSize+len(plaintext)+c.aead.Overhead())
	if _, err := io.ReadFull(c.rand, nonce); err != nil {
		return nil, ErrEncrypt
	}

	// Seal appends ciphertext+tag after the nonce
	return c.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt splits the nonce off the envelope and opens the rest.
func (c *ChaCha20Poly1305) Decrypt(envelope []byte) ([]byte, error) {
	if len(envelope) < NonceSize+c.aead.Overhead() {
		return nil, ErrDecrypt
	}

	nonce := envelope[:NonceSize]
	ciphertext := envelope[NonceSize:]

	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plaintext, nil
}

// GenerateChaCha20Poly1305Key returns a fresh 32-byte key.
func GenerateChaCha20Poly1305Key(rand io.Reader) (KeySet, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(rand, key); err != nil {
		return nil, fmt.Errorf("failed to generate chacha20poly1305 key: %w", err)
	}
	return SymmetricKey{Key: key}, nil
}
