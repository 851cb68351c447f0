package crypto

import (
	cryptorand "crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// MinPasswordLength is the shortest password GeneratePassword accepts.
const MinPasswordLength = 4

// Character classes. Look-alike characters (O, l, o, 0) are left out.
const (
	upperChars  = "ABCDEFGHIJKLMNPQRSTUVWXYZ"
	lowerChars  = "abcdefghijkmnpqrstuvwxyz"
	numberChars = "123456789"
	symbolChars = "!@#$%^&*_"
)

// PasswordOptions selects the length and character classes of a password.
type PasswordOptions struct {
	Length int
	Upper  bool
	Lower  bool
	Number bool
	Symbol bool
}

// AllClasses returns options of the given length with every class enabled.
func AllClasses(length int) PasswordOptions {
	return PasswordOptions{Length: length, Upper: true, Lower: true, Number: true, Symbol: true}
}

// GeneratePassword returns a random password drawn from rand.
//
// Every enabled class contributes at least one character; the remaining
// positions are uniform over the union of the enabled classes, and the
// result is shuffled.
func GeneratePassword(rand io.Reader, opts PasswordOptions) (string, error) {
	if opts.Length < MinPasswordLength {
		return "", fmt.Errorf("%w: %d is shorter than %d", ErrInvalidPasswordLength, opts.Length, MinPasswordLength)
	}

	var classes []string
	if opts.Upper {
		classes = append(classes, upperChars)
	}
	if opts.Lower {
		classes = append(classes, lowerChars)
	}
	if opts.Number {
		classes = append(classes, numberChars)
	}
	if opts.Symbol {
		classes = append(classes, symbolChars)
	}
	if len(classes) == 0 {
		return "", ErrNoCharacterClass
	}

	var charset []byte
	password := make([]byte, 0, opts.Length)
	for _, class := range classes {
		charset = append(charset, class...)
		c, err := pick(rand, class)
		if err != nil {
			return "", err
		}
		password = append(password, c)
	}

	for len(password) < opts.Length {
		c, err := pick(rand, string(charset))
		if err != nil {
			return "", err
		}
		password = append(password, c)
	}

	// Fisher-Yates
	for i := len(password) - 1; i > 0; i-- {
		j, err := randIndex(rand, i+1)
		if err != nil {
			return "", err
		}
		password[i], password[j] = password[j], password[i]
	}

	return string(password), nil
}

func pick(rand io.Reader, set string) (byte, error) {
	i, err := randIndex(rand, len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

func randIndex(rand io.Reader, n int) (int, error) {
	v, err := cryptorand.Int(rand, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to read random index: %w", err)
	}
	return int(v.Int64()), nil
}
