package crypto

// KeySet is freshly generated key material. It is one of SymmetricKey or KeyPair,
// so callers switch on the concrete type instead of indexing a list.
//
//	switch ks := ks.(type) {
//	case crypto.SymmetricKey:
//	    os.WriteFile("blake3.txt", ks.Key, 0o600)
//	case crypto.KeyPair:
//	    os.WriteFile("ed25519.sk", ks.Private, 0o600)
//	    os.WriteFile("ed25519.pk", ks.Public, 0o644)
//	}
type KeySet interface {
	// Zero wipes the key bytes.
	Zero()
	keySet()
}

// SymmetricKey is a single shared secret (MAC or AEAD key).
type SymmetricKey struct {
	Key []byte
}

// Zero wipes the key.
func (k SymmetricKey) Zero() { zeroize(k.Key) }

func (SymmetricKey) keySet() {}

// KeyPair is an asymmetric key pair. Private is the 32-byte seed.
type KeyPair struct {
	Private []byte
	Public  []byte
}

// Zero wipes the private half. The public key is left intact.
func (k KeyPair) Zero() { zeroize(k.Private) }

func (KeyPair) keySet() {}
