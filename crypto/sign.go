package crypto

import (
	"context"
	"fmt"
	"io"
)

// Sign reads the whole of input and returns its signature in wire form.
//
// The key at keyID is loaded according to format:
//   - blake3: the first 32 bytes of the resource are the MAC key
//   - ed25519: the resource must be exactly the 32-byte seed
//
// The chacha20poly1305 tag has no signing operation and returns
// ErrUnsupportedOperation.
func (e *Engine) Sign(ctx context.Context, keyID string, input io.Reader, format SignFormat) (string, error) {
	log := operationLogger(ctx, "sign", format)

	scheme, err := lookupSignScheme(format)
	if err != nil {
		return "", err
	}
	if scheme.newSigner == nil {
		return "", fmt.Errorf("%w: %s cannot sign", ErrUnsupportedOperation, format)
	}

	msg, err := readInput(input)
	if err != nil {
		return "", err
	}

	signer, err := scheme.newSigner(e.keys, keyID)
	if err != nil {
		return "", err
	}
	if z, ok := signer.(interface{ Zero() }); ok {
		defer z.Zero()
	}

	sig, err := signer.Sign(msg)
	if err != nil {
		return "", fmt.Errorf("failed to sign: %w", err)
	}

	log.Debug().Int("input_bytes", len(msg)).Int("signature_bytes", len(sig)).Msg("signed input")
	return EncodeWire(sig), nil
}

// Verify reads the whole of input and checks it against sigText, a signature
// in wire form.
//
// For ed25519 the resource at keyID must be exactly the 32-byte public key.
// A signature that does not decode is ErrEncoding and one of the wrong length
// is ErrSignatureFormat; neither is reported as false. A well-formed signature
// that does not match returns false with a nil error.
func (e *Engine) Verify(ctx context.Context, keyID string, input io.Reader, sigText string, format SignFormat) (bool, error) {
	log := operationLogger(ctx, "verify", format)

	scheme, err := lookupSignScheme(format)
	if err != nil {
		return false, err
	}
	if scheme.newVerifier == nil {
		return false, fmt.Errorf("%w: %s cannot verify", ErrUnsupportedOperation, format)
	}

	sig, err := DecodeWire(sigText)
	if err != nil {
		return false, fmt.Errorf("failed to decode signature: %w", err)
	}

	msg, err := readInput(input)
	if err != nil {
		return false, err
	}

	verifier, err := scheme.newVerifier(e.keys, keyID)
	if err != nil {
		return false, err
	}
	if z, ok := verifier.(interface{ Zero() }); ok {
		defer z.Zero()
	}

	valid, err := verifier.Verify(msg, sig)
	if err != nil {
		return false, err
	}

	log.Debug().Int("input_bytes", len(msg)).Bool("valid", valid).Msg("verified input")
	return valid, nil
}

// Generate creates fresh key material for format.
//
// blake3 yields a SymmetricKey of 32 printable password characters, ed25519 a
// KeyPair (seed, public key) and chacha20poly1305 a SymmetricKey of 32 random
// bytes. The caller owns the result and should Zero it once persisted.
func (e *Engine) Generate(ctx context.Context, format SignFormat) (KeySet, error) {
	log := operationLogger(ctx, "generate", format)

	scheme, err := lookupSignScheme(format)
	if err != nil {
		return nil, err
	}
	if scheme.generate == nil {
		return nil, fmt.Errorf("%w: %s cannot generate keys", ErrUnsupportedOperation, format)
	}

	ks, err := scheme.generate(e.rand)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("key_set", fmt.Sprintf("%T", ks)).Msg("generated key")
	return ks, nil
}
