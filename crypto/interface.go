package crypto

// Signer produces a signature or MAC tag over a message.
type Signer interface {
	// Sign returns the raw signature bytes for msg.
	Sign(msg []byte) ([]byte, error)
}

// Verifier checks a signature or MAC tag.
type Verifier interface {
	// Verify reports whether sig is valid for msg. A malformed sig is an
	// error, while a well-formed sig that does not match returns false.
	Verify(msg, sig []byte) (bool, error)
}

// Encryptor seals plaintext into an envelope.
type Encryptor interface {
	// Encrypt returns the raw envelope bytes for plaintext.
	Encrypt(plaintext []byte) ([]byte, error)
}

// Decryptor opens an envelope produced by the matching Encryptor.
type Decryptor interface {
	// Decrypt returns the plaintext, or ErrDecrypt for any failure.
	Decrypt(envelope []byte) ([]byte, error)
}
