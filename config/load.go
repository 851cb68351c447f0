package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix         = "TEXTCRYPT"
	projectConfigName = ".textcrypt.yaml"
	globalConfigDir   = ".textcrypt"
	globalConfigName  = "config.yaml"
)

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// ConfigFile replaces the project config lookup when set. It must exist.
	ConfigFile string

	// Flags maps configuration keys ("sign.format") to CLI flags. A flag only
	// takes effect when the user set it.
	Flags map[string]*pflag.Flag

	// WorkDir is where the project config is looked up. Empty means the
	// working directory.
	WorkDir string

	// HomeDir is where the global config is looked up. Empty means the
	// user's home directory.
	HomeDir string
}

// newViperInstance creates a Viper instance with the TEXTCRYPT_ env prefix,
// key replacer and defaults.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("sign.format", "blake3")
	v.SetDefault("encrypt.format", "chacha20poly1305")

	v.SetDefault("keystore.dir", "")
	v.SetDefault("keystore.service_name", "textcrypt")
	v.SetDefault("keystore.backends", []string{})

	v.SetDefault("generate.output_dir", "fixtures")

	v.SetDefault("batch.concurrency", runtime.NumCPU())

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
}

// Load reads configuration from all sources with proper precedence, then
// validates it.
//
// Missing project and global files are not an error; a missing file named
// by ConfigFile is.
func Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	v := newViperInstance()

	// Global config first (lower precedence)
	if err := loadGlobalConfig(v, opts.HomeDir); err != nil {
		return nil, err
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", opts.ConfigFile, err)
		}
	} else if err := loadProjectConfig(v, opts.WorkDir); err != nil {
		return nil, err
	}

	for key, flag := range opts.Flags {
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("failed to bind flag for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Str("config_file", v.ConfigFileUsed()).
		Str("sign.format", cfg.Sign.Format).
		Str("encrypt.format", cfg.Encrypt.Format).
		Int("batch.concurrency", cfg.Batch.Concurrency).
		Msg("configuration loaded")

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadGlobalConfig reads ~/.textcrypt/config.yaml if it exists.
func loadGlobalConfig(v *viper.Viper, home string) error {
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			// No home directory, nothing to load
			return nil
		}
	}

	path := filepath.Join(home, globalConfigDir, globalConfigName)
	if !fileExists(path) {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return fmt.Errorf("failed to read global config file: %w", err)
	}
	return nil
}

// loadProjectConfig merges ./.textcrypt.yaml over the global config if it exists.
func loadProjectConfig(v *viper.Viper, dir string) error {
	path := filepath.Join(dir, projectConfigName)
	if !fileExists(path) {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return fmt.Errorf("failed to read project config file: %w", err)
	}
	return nil
}

func isConfigNotFoundError(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// viperDecoderOption lets list settings come from comma separated env values
// (TEXTCRYPT_KEYSTORE_BACKENDS=secret-service,file).
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToSliceHookFunc(","),
		),
	)
}
