package crypto

import (
	"crypto/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePassword(t *testing.T) {
	t.Run("length and classes", func(t *testing.T) {
		for _, n := range []int{4, 16, 64} {
			p, err := GeneratePassword(rand.Reader, AllClasses(n))
			require.NoError(t, err)
			assert.Len(t, p, n)
			assert.True(t, strings.ContainsAny(p, upperChars))
			assert.True(t, strings.ContainsAny(p, lowerChars))
			assert.True(t, strings.ContainsAny(p, numberChars))
			assert.True(t, strings.ContainsAny(p, symbolChars))
		}
	})

	t.Run("only selected classes", func(t *testing.T) {
		p, err := GeneratePassword(rand.Reader, PasswordOptions{Length: 32, Number: true})
		require.NoError(t, err)
		for _, c := range p {
			assert.Contains(t, numberChars, string(c))
		}
	})

	t.Run("no look-alike characters", func(t *testing.T) {
		p, err := GeneratePassword(rand.Reader, AllClasses(256))
		require.NoError(t, err)
		assert.False(t, strings.ContainsAny(p, "Ol0o"))
	})

	t.Run("too short", func(t *testing.T) {
		_, err := GeneratePassword(rand.Reader, AllClasses(3))
		assert.ErrorIs(t, err, ErrInvalidPasswordLength)
	})

	t.Run("no class", func(t *testing.T) {
		_, err := GeneratePassword(rand.Reader, PasswordOptions{Length: 16})
		assert.ErrorIs(t, err, ErrNoCharacterClass)
	})
}
