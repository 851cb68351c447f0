package cli

import (
	"crypto/rand"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joncooperworks/textcrypt/crypto"
)

// GenpassFlags holds flags for genpass.
type GenpassFlags struct {
	Length    int
	Uppercase bool
	Lowercase bool
	Number    bool
	Symbol    bool
}

// AddGenpassCommand adds the genpass command.
func AddGenpassCommand(root *cobra.Command, _ *app) {
	flags := &GenpassFlags{}
	cmd := &cobra.Command{
		Use:   "genpass",
		Short: "Generate a random password",
		Long: `Generate a random password with at least one character from every
enabled class. Look-alike characters (O, l, o, 0) are never used.

Examples:
  textcrypt genpass
  textcrypt genpass -l 32 --symbol=false`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := crypto.GeneratePassword(rand.Reader, crypto.PasswordOptions{
				Length: flags.Length,
				Upper:  flags.Uppercase,
				Lower:  flags.Lowercase,
				Number: flags.Number,
				Symbol: flags.Symbol,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), password)
			return err
		},
	}

	cmd.Flags().IntVarP(&flags.Length, "length", "l", 16, "password length")
	cmd.Flags().BoolVar(&flags.Uppercase, "uppercase", true, "include uppercase letters")
	cmd.Flags().BoolVar(&flags.Lowercase, "lowercase", true, "include lowercase letters")
	cmd.Flags().BoolVar(&flags.Number, "number", true, "include digits")
	cmd.Flags().BoolVar(&flags.Symbol, "symbol", true, "include symbols")

	root.AddCommand(cmd)
}
