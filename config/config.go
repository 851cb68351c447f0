// Package config provides configuration management for textcrypt with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (bound through LoadOptions.Flags)
//  2. Environment variables (TEXTCRYPT_* prefix)
//  3. Project config (./.textcrypt.yaml) or the file named by --config
//  4. Global config (~/.textcrypt/config.yaml)
//  5. Built-in defaults
package config

import (
	"github.com/joncooperworks/textcrypt/crypto"
	"github.com/joncooperworks/textcrypt/crypto/keystore"
)

// Config is the root configuration structure.
type Config struct {
	// Sign selects the default signing scheme.
	Sign SignConfig `yaml:"sign" mapstructure:"sign"`

	// Encrypt selects the default encryption scheme.
	Encrypt EncryptConfig `yaml:"encrypt" mapstructure:"encrypt"`

	// Keystore controls where key references resolve.
	Keystore KeystoreConfig `yaml:"keystore" mapstructure:"keystore"`

	// Generate controls where generated keys are written.
	Generate GenerateConfig `yaml:"generate" mapstructure:"generate"`

	// Batch controls concurrent signing of several inputs.
	Batch BatchConfig `yaml:"batch" mapstructure:"batch"`

	// Log controls console and file logging.
	Log LogConfig `yaml:"log" mapstructure:"log"`
}

// SignConfig holds signing settings.
type SignConfig struct {
	// Format is one of blake3, ed25519 or chacha20poly1305.
	Format string `yaml:"format" mapstructure:"format"`
}

// EncryptConfig holds encryption settings.
type EncryptConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
}

// KeystoreConfig holds key resource settings.
type KeystoreConfig struct {
	// Dir is the base directory for relative key file paths.
	Dir string `yaml:"dir" mapstructure:"dir"`

	// ServiceName namespaces entries in the OS keyring.
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`

	// Backends limits the OS keyring implementations that may be used.
	Backends []string `yaml:"backends" mapstructure:"backends"`
}

// GenerateConfig holds key generation settings.
type GenerateConfig struct {
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
}

// BatchConfig holds batch signing settings.
type BatchConfig struct {
	// Concurrency is how many inputs are signed at once.
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is a zerolog level name (trace, debug, info, warn, error).
	Level string `yaml:"level" mapstructure:"level"`

	// File, when set, receives logs in addition to stderr and is rotated.
	File string `yaml:"file" mapstructure:"file"`

	MaxSizeMB  int `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int `yaml:"max_age_days" mapstructure:"max_age_days"`
}

// SignFormat parses Sign.Format.
func (c *Config) SignFormat() (crypto.SignFormat, error) {
	return crypto.ParseSignFormat(c.Sign.Format)
}

// EncryptFormat parses Encrypt.Format.
func (c *Config) EncryptFormat() (crypto.EncryptFormat, error) {
	return crypto.ParseEncryptFormat(c.Encrypt.Format)
}

// KeystoreConfig converts the keystore section for the keystore package.
func (c *Config) KeystoreConfig() keystore.Config {
	return keystore.Config{
		Dir:         c.Keystore.Dir,
		ServiceName: c.Keystore.ServiceName,
		Backends:    c.Keystore.Backends,
	}
}
