// Package cli provides the command-line interface for textcrypt.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/joncooperworks/textcrypt/config"
	"github.com/joncooperworks/textcrypt/crypto"
	"github.com/joncooperworks/textcrypt/crypto/keystore"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// annotationConfigPrefix marks a command annotation that binds one of the
// command's flags to a configuration key: "config.format" -> "sign.format".
const annotationConfigPrefix = "config."

// app is the state shared by every command once PersistentPreRunE has run.
type app struct {
	flags  *GlobalFlags
	stdin  io.Reader
	cfg    *config.Config
	logger zerolog.Logger
	closer io.Closer
	keys   *keystore.Resolver
}

// engine builds an engine over the configured key resolver.
func (a *app) engine() (*crypto.Engine, error) {
	return crypto.NewEngine(a.keys, crypto.WithConcurrency(a.cfg.Batch.Concurrency))
}

// newRootCmd creates and returns the root command for the textcrypt CLI.
func newRootCmd(a *app, info BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "textcrypt",
		Short: "Sign, verify, encrypt and decrypt text",
		Long: `textcrypt authenticates and encrypts text with modern primitives.

Schemes:
  blake3            keyed BLAKE3 MAC (sign, verify, generate)
  ed25519           Ed25519 signatures (sign, verify, generate)
  chacha20poly1305  ChaCha20-Poly1305 AEAD (encrypt, decrypt, generate)

Signatures and ciphertexts are printed as URL-safe base64 without padding.`,
		Version: formatVersion(info),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		SilenceUsage: true,
	}

	AddGlobalFlags(cmd, a.flags)

	AddTextCommand(cmd, a)
	AddGenpassCommand(cmd, a)
	AddBase64Command(cmd, a)
	AddKeyCommand(cmd, a)
	AddConfigCommand(cmd, a)

	return cmd
}

// setup loads configuration, builds the logger and the key resolver.
func (a *app) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx, config.LoadOptions{
		ConfigFile: a.flags.ConfigFile,
		Flags:      configFlags(cmd),
	})
	if err != nil {
		return err
	}
	if a.flags.Verbose {
		cfg.Log.Level = zerolog.LevelDebugValue
	}
	a.cfg = cfg

	logger, closer, err := InitLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	a.closer = closer

	a.keys = keystore.NewResolver(cfg.KeystoreConfig())

	cmd.SetContext(logger.WithContext(ctx))
	logger.Debug().Str("command", cmd.CommandPath()).Msg("starting command")
	return nil
}

// configFlags collects the global flags and the flags the running command
// binds through annotations.
func configFlags(cmd *cobra.Command) map[string]*pflag.Flag {
	root := cmd.Root().PersistentFlags()
	flags := map[string]*pflag.Flag{
		"log.level":    root.Lookup("log-level"),
		"log.file":     root.Lookup("log-file"),
		"keystore.dir": root.Lookup("keystore-dir"),
	}
	for name, key := range cmd.Annotations {
		flagName, ok := strings.CutPrefix(name, annotationConfigPrefix)
		if !ok {
			continue
		}
		if f := cmd.Flags().Lookup(flagName); f != nil {
			flags[key] = f
		}
	}
	return flags
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build info.
func Execute(ctx context.Context, info BuildInfo) error {
	a := &app{flags: &GlobalFlags{}, stdin: os.Stdin}
	cmd := newRootCmd(a, info)
	return executeApp(ctx, a, cmd)
}

// executeApp runs cmd and then closes the log file, whether or not the
// command failed.
func executeApp(ctx context.Context, a *app, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	if a.closer != nil {
		if cerr := a.closer.Close(); err == nil {
			err = cerr
		}
		a.closer = nil
	}
	return err
}
