package crypto

import (
	"fmt"
	"io"
	"sort"
	"sync"
)

// signScheme describes what a signing format tag can do. A nil field means the
// tag does not support that operation.
type signScheme struct {
	newSigner   func(src KeySource, id string) (Signer, error)
	newVerifier func(src KeySource, id string) (Verifier, error)
	generate    func(rand io.Reader) (KeySet, error)
}

// encryptScheme describes an encryption format tag.
type encryptScheme struct {
	newEncryptor func(src KeySource, id string, rand io.Reader) (Encryptor, error)
	newDecryptor func(src KeySource, id string) (Decryptor, error)
	generate     func(rand io.Reader) (KeySet, error)
}

var (
	// signSchemes and encryptSchemes are filled by init functions in the
	// scheme files and are read-only afterwards.
	signSchemes    = make(map[SignFormat]signScheme)
	encryptSchemes = make(map[EncryptFormat]encryptScheme)
	// schemesMu protects concurrent access to both registries
	schemesMu sync.RWMutex
)

// registerSignScheme registers the scheme backing a signing tag.
//
// This should be called from init() in the scheme's file:
//
//	func init() {
//	    registerSignScheme(SignFormatBlake3, signScheme{...})
//	}
func registerSignScheme(f SignFormat, s signScheme) {
	schemesMu.Lock()
	defer schemesMu.Unlock()
	signSchemes[f] = s
}

func registerEncryptScheme(f EncryptFormat, s encryptScheme) {
	schemesMu.Lock()
	defer schemesMu.Unlock()
	encryptSchemes[f] = s
}

func lookupSignScheme(f SignFormat) (signScheme, error) {
	schemesMu.RLock()
	defer schemesMu.RUnlock()
	s, ok := signSchemes[f]
	if !ok {
		return signScheme{}, fmt.Errorf("%w: no scheme registered for sign format %d", ErrUnknownFormat, int(f))
	}
	return s, nil
}

func lookupEncryptScheme(f EncryptFormat) (encryptScheme, error) {
	schemesMu.RLock()
	defer schemesMu.RUnlock()
	s, ok := encryptSchemes[f]
	if !ok {
		return encryptScheme{}, fmt.Errorf("%w: no scheme registered for encrypt format %d", ErrUnknownFormat, int(f))
	}
	return s, nil
}

// RegisteredSignFormats returns the signing tags that have a scheme, sorted.
func RegisteredSignFormats() []SignFormat {
	schemesMu.RLock()
	defer schemesMu.RUnlock()
	formats := make([]SignFormat, 0, len(signSchemes))
	for f := range signSchemes {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// Supports reports whether f supports op ("sign", "verify" or "generate").
func (f SignFormat) Supports(op string) bool {
	s, err := lookupSignScheme(f)
	if err != nil {
		return false
	}
	switch op {
	case "sign":
		return s.newSigner != nil
	case "verify":
		return s.newVerifier != nil
	case "generate":
		return s.generate != nil
	default:
		return false
	}
}
