package crypto

import (
	"fmt"
	"strings"
)

// SignFormat selects the scheme used by sign, verify and generate.
type SignFormat int

// Signing format tags.
const (
	// SignFormatBlake3 is the keyed BLAKE3 MAC.
	SignFormatBlake3 SignFormat = iota + 1
	// SignFormatEd25519 is the Ed25519 signature scheme.
	SignFormatEd25519
	// SignFormatChaCha20Poly1305 only supports key generation; sign and verify
	// return ErrUnsupportedOperation.
	SignFormatChaCha20Poly1305
)

// EncryptFormat selects the scheme used by encrypt and decrypt.
type EncryptFormat int

// Encryption format tags.
const (
	// EncryptFormatChaCha20Poly1305 is ChaCha20-Poly1305 with a random 96-bit nonce.
	EncryptFormatChaCha20Poly1305 EncryptFormat = iota + 1
)

const (
	nameBlake3           = "blake3"
	nameEd25519          = "ed25519"
	nameChaCha20Poly1305 = "chacha20poly1305"
)

var signFormatNames = map[SignFormat]string{
	SignFormatBlake3:           nameBlake3,
	SignFormatEd25519:          nameEd25519,
	SignFormatChaCha20Poly1305: nameChaCha20Poly1305,
}

var encryptFormatNames = map[EncryptFormat]string{
	EncryptFormatChaCha20Poly1305: nameChaCha20Poly1305,
}

// ParseSignFormat parses a signing format tag such as "blake3".
func ParseSignFormat(s string) (SignFormat, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for f, n := range signFormatNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// String returns the tag name, or "unknown" for values outside the enumeration.
func (f SignFormat) String() string {
	if n, ok := signFormatNames[f]; ok {
		return n
	}
	return "unknown"
}

// Set implements pflag.Value so the format can be bound directly to a flag.
func (f *SignFormat) Set(s string) error {
	parsed, err := ParseSignFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Type implements pflag.Value.
func (f *SignFormat) Type() string {
	return "sign-format"
}

// SignFormatNames lists the signing tags in declaration order.
func SignFormatNames() []string {
	return []string{nameBlake3, nameEd25519, nameChaCha20Poly1305}
}

// ParseEncryptFormat parses an encryption format tag.
func ParseEncryptFormat(s string) (EncryptFormat, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for f, n := range encryptFormatNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func (f EncryptFormat) String() string {
	if n, ok := encryptFormatNames[f]; ok {
		return n
	}
	return "unknown"
}

// Set implements pflag.Value.
func (f *EncryptFormat) Set(s string) error {
	parsed, err := ParseEncryptFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Type implements pflag.Value.
func (f *EncryptFormat) Type() string {
	return "encrypt-format"
}

// EncryptFormatNames lists the encryption tags.
func EncryptFormatNames() []string {
	return []string{nameChaCha20Poly1305}
}
