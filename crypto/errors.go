package crypto

import "errors"

// Key errors are returned before any cryptographic primitive is invoked.
var (
	// ErrInvalidKeyLength is returned when a key resource holds fewer bytes
	// than the scheme requires (or, for Ed25519, not exactly the required count).
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrKeyParse is returned when the key bytes have the right length but do
	// not form a valid key for the scheme, such as an invalid curve point.
	ErrKeyParse = errors.New("invalid key material")
)

// Input errors describe malformed caller-supplied data.
var (
	// ErrSignatureFormat is returned when a decoded signature has the wrong
	// byte length for its scheme. It is never reported as a failed verification.
	ErrSignatureFormat = errors.New("invalid signature format")

	// ErrEncoding is returned when wire text cannot be decoded.
	ErrEncoding = errors.New("invalid encoding")

	// ErrUnknownFormat is returned when a format tag is not recognised.
	ErrUnknownFormat = errors.New("unknown format")

	// ErrUnsupportedOperation is returned when a format tag does not support
	// the requested operation.
	ErrUnsupportedOperation = errors.New("unsupported operation")
)

// Cipher errors carry no detail from the underlying primitive.
var (
	// ErrEncrypt is returned when encryption fails.
	ErrEncrypt = errors.New("encrypt error")

	// ErrDecrypt is returned for any authentication failure or malformed envelope.
	ErrDecrypt = errors.New("decrypt error")
)

// Password generation errors.
var (
	// ErrInvalidPasswordLength is returned when the requested length is below MinPasswordLength.
	ErrInvalidPasswordLength = errors.New("invalid password length")

	// ErrNoCharacterClass is returned when no character class is enabled.
	ErrNoCharacterClass = errors.New("no character class selected")
)
