package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joncooperworks/textcrypt/crypto"
)

// Exit codes for the CLI.
const (
	// ExitError indicates a general error.
	ExitError = 1
)

// stdinPath is the input path that means standard input.
const stdinPath = "-"

// GlobalFlags holds flags available to all commands.
type GlobalFlags struct {
	// ConfigFile replaces ./.textcrypt.yaml.
	ConfigFile string
	// LogLevel overrides log.level.
	LogLevel string
	// LogFile overrides log.file.
	LogFile string
	// KeystoreDir overrides keystore.dir.
	KeystoreDir string
	// Verbose forces debug logging.
	Verbose bool
}

// AddGlobalFlags adds global flags to a command.
// These flags are available to all subcommands via PersistentFlags.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	cmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "config file (default ./.textcrypt.yaml)")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&flags.LogFile, "log-file", "", "also write logs to this rotated file")
	cmd.PersistentFlags().StringVar(&flags.KeystoreDir, "keystore-dir", "", "base directory for relative key paths")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "enable debug logging")
}

// bindConfig records that the command's flag binds to a configuration key.
func bindConfig(cmd *cobra.Command, flag, key string) {
	if cmd.Annotations == nil {
		cmd.Annotations = make(map[string]string)
	}
	cmd.Annotations[annotationConfigPrefix+flag] = key
}

// signFormatUsage lists the registered signing formats that support op,
// separated by "|".
func signFormatUsage(op string) string {
	var names []string
	for _, f := range crypto.RegisteredSignFormats() {
		if f.Supports(op) {
			names = append(names, f.String())
		}
	}
	return strings.Join(names, "|")
}

// verifyInputs checks that every input path other than stdin names an
// existing regular file. Stdin can be read only once, so "-" may appear at
// most one time.
func verifyInputs(paths []string) error {
	stdinSeen := false
	for _, p := range paths {
		if p == stdinPath {
			if stdinSeen {
				return errors.New("input -: stdin may be given only once")
			}
			stdinSeen = true
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("input %s: file does not exist", p)
		}
		if info.IsDir() {
			return fmt.Errorf("input %s: is a directory", p)
		}
	}
	return nil
}
