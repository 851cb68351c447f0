package cli

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// AddConfigCommand adds the config command group.
func AddConfigCommand(root *cobra.Command, a *app) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display the effective configuration as YAML after applying defaults,
~/.textcrypt/config.yaml, ./.textcrypt.yaml, TEXTCRYPT_* environment
variables and flags.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(a.cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	cmd.AddCommand(show)
	root.AddCommand(cmd)
}
