package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/joncooperworks/textcrypt/crypto"
)

// ErrInvalidConfig is returned for any configuration value that fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks the configuration and returns the first failure found.
//
// Validation rules:
//   - sign.format and encrypt.format must name known schemes
//   - batch.concurrency must be at least 1
//   - log.level must be a zerolog level
//   - log rotation limits must not be negative
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if _, err := crypto.ParseSignFormat(cfg.Sign.Format); err != nil {
		return fmt.Errorf("%w: sign.format: %w (want %s)", ErrInvalidConfig, err, strings.Join(crypto.SignFormatNames(), "|"))
	}
	if _, err := crypto.ParseEncryptFormat(cfg.Encrypt.Format); err != nil {
		return fmt.Errorf("%w: encrypt.format: %w (want %s)", ErrInvalidConfig, err, strings.Join(crypto.EncryptFormatNames(), "|"))
	}

	if cfg.Batch.Concurrency < 1 {
		return fmt.Errorf("%w: batch.concurrency must be at least 1, got %d", ErrInvalidConfig, cfg.Batch.Concurrency)
	}

	return validateLogConfig(&cfg.Log)
}

func validateLogConfig(cfg *LogConfig) error {
	if _, err := zerolog.ParseLevel(cfg.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalidConfig, err)
	}
	if cfg.MaxSizeMB < 0 || cfg.MaxBackups < 0 || cfg.MaxAgeDays < 0 {
		return fmt.Errorf("%w: log rotation limits must not be negative", ErrInvalidConfig)
	}
	return nil
}
