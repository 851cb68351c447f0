package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Sign:    SignConfig{Format: "blake3"},
		Encrypt: EncryptConfig{Format: "chacha20poly1305"},
		Batch:   BatchConfig{Concurrency: 4},
		Log:     LogConfig{Level: "info", MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 28},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults", func(*Config) {}, true},
		{"ed25519 signing", func(c *Config) { c.Sign.Format = "ed25519" }, true},
		{"unknown sign format", func(c *Config) { c.Sign.Format = "rsa" }, false},
		{"unknown encrypt format", func(c *Config) { c.Encrypt.Format = "aes" }, false},
		{"zero concurrency", func(c *Config) { c.Batch.Concurrency = 0 }, false},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, false},
		{"negative rotation", func(c *Config) { c.Log.MaxBackups = -1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}

	assert.ErrorIs(t, Validate(nil), ErrInvalidConfig)

	t.Run("format error lists known tags", func(t *testing.T) {
		cfg := validConfig()
		cfg.Sign.Format = "rsa"
		err := Validate(cfg)
		assert.ErrorContains(t, err, "blake3|ed25519|chacha20poly1305")
	})
}
