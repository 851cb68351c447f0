package crypto

import "runtime"

// zeroize overwrites key material once an operation no longer needs it.
func zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}
