// Package crypto provides the text authentication and encryption engine.
// It signs and verifies byte streams with a keyed BLAKE3 MAC or Ed25519, and
// encrypts them with ChaCha20-Poly1305. Binary results travel as URL-safe
// base64 without padding.
package crypto

import (
	"context"
	"fmt"
	"io"
)

// Encrypt reads the whole of input, seals it and returns the envelope in
// wire form.
//
// The envelope is [nonce:12][ciphertext+tag]. The nonce is drawn fresh from
// the engine's random source for every call, so encrypting the same input
// twice yields different envelopes. The key is the first 32 bytes of the
// resource at keyID.
func (e *Engine) Encrypt(ctx context.Context, keyID string, input io.Reader, format EncryptFormat) (string, error) {
	log := operationLogger(ctx, "encrypt", format)

	scheme, err := lookupEncryptScheme(format)
	if err != nil {
		return "", err
	}
	if scheme.newEncryptor == nil {
		return "", fmt.Errorf("%w: %s cannot encrypt", ErrUnsupportedOperation, format)
	}

	plaintext, err := readInput(input)
	if err != nil {
		return "", err
	}

	enc, err := scheme.newEncryptor(e.keys, keyID, e.rand)
	if err != nil {
		return "", err
	}

	envelope, err := enc.Encrypt(plaintext)
	if err != nil {
		return "", err
	}

	log.Debug().Int("input_bytes", len(plaintext)).Int("envelope_bytes", len(envelope)).Msg("encrypted input")
	return EncodeWire(envelope), nil
}

// Decrypt reads wire text from input, decodes it and opens the envelope.
//
// Text that does not decode is ErrEncoding. A short envelope, a wrong key or
// any modification of the envelope is ErrDecrypt, with no further detail.
func (e *Engine) Decrypt(ctx context.Context, keyID string, input io.Reader, format EncryptFormat) ([]byte, error) {
	log := operationLogger(ctx, "decrypt", format)

	scheme, err := lookupEncryptScheme(format)
	if err != nil {
		return nil, err
	}
	if scheme.newDecryptor == nil {
		return nil, fmt.Errorf("%w: %s cannot decrypt", ErrUnsupportedOperation, format)
	}

	text, err := readInput(input)
	if err != nil {
		return nil, err
	}

	envelope, err := DecodeWire(string(text))
	if err != nil {
		return nil, fmt.Errorf("failed to decode envelope: %w", err)
	}

	dec, err := scheme.newDecryptor(e.keys, keyID)
	if err != nil {
		return nil, err
	}

	plaintext, err := dec.Decrypt(envelope)
	if err != nil {
		return nil, err
	}

	log.Debug().Int("envelope_bytes", len(envelope)).Msg("decrypted input")
	return plaintext, nil
}
