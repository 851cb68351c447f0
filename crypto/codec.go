package crypto

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// wireEncoding is the transport form for signatures, tags and envelopes.
var wireEncoding = base64.RawURLEncoding.Strict()

// EncodeWire encodes raw bytes as URL-safe base64 without padding.
func EncodeWire(data []byte) string {
	return wireEncoding.EncodeToString(data)
}

// DecodeWire decodes text produced by EncodeWire. Surrounding whitespace is
// ignored; padding, the standard alphabet and non-canonical trailing bits
// are rejected with ErrEncoding.
func DecodeWire(s string) ([]byte, error) {
	data, err := wireEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return data, nil
}

// Base64Format selects the base64 alphabet.
type Base64Format int

// Base64 alphabets.
const (
	// Base64Standard uses '+' and '/'.
	Base64Standard Base64Format = iota + 1
	// Base64URLSafe uses '-' and '_'.
	Base64URLSafe
)

// ParseBase64Format parses "standard" or "urlsafe".
func ParseBase64Format(s string) (Base64Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard":
		return Base64Standard, nil
	case "urlsafe":
		return Base64URLSafe, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

func (f Base64Format) String() string {
	switch f {
	case Base64Standard:
		return "standard"
	case Base64URLSafe:
		return "urlsafe"
	default:
		return "unknown"
	}
}

// Codec is a general base64 codec over either alphabet, with or without padding.
// The wire codec is Codec{Format: Base64URLSafe, NoPadding: true}.
type Codec struct {
	Format    Base64Format
	NoPadding bool
}

func (c Codec) encoding() *base64.Encoding {
	var enc *base64.Encoding
	switch {
	case c.Format == Base64URLSafe && c.NoPadding:
		enc = base64.RawURLEncoding
	case c.Format == Base64URLSafe:
		enc = base64.URLEncoding
	case c.NoPadding:
		enc = base64.RawStdEncoding
	default:
		enc = base64.StdEncoding
	}
	return enc.Strict()
}

// Encode encodes data.
func (c Codec) Encode(data []byte) string {
	return c.encoding().EncodeToString(data)
}

// Decode decodes s after trimming surrounding whitespace.
func (c Codec) Decode(s string) ([]byte, error) {
	data, err := c.encoding().DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return data, nil
}
