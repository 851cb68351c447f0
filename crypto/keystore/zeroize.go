package keystore

// zeroize overwrites key bytes the keystore is about to drop.
func zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
