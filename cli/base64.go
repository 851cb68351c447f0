package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joncooperworks/textcrypt/crypto"
)

// Base64Flags holds flags for base64 encode and decode.
type Base64Flags struct {
	Input     string
	Format    string
	NoPadding bool
}

// AddBase64Command adds the base64 command group.
func AddBase64Command(root *cobra.Command, a *app) {
	cmd := &cobra.Command{
		Use:   "base64",
		Short: "Encode or decode base64",
	}

	encodeFlags := &Base64Flags{}
	encode := &cobra.Command{
		Use:   "encode",
		Short: "Encode input as base64",
		RunE: func(cmd *cobra.Command, _ []string) error {
			codec, err := encodeFlags.codec()
			if err != nil {
				return err
			}
			data, err := a.readInput(encodeFlags.Input)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), codec.Encode(data))
			return err
		},
	}
	addBase64Flags(encode, encodeFlags)

	decodeFlags := &Base64Flags{}
	decode := &cobra.Command{
		Use:   "decode",
		Short: "Decode base64 input",
		RunE: func(cmd *cobra.Command, _ []string) error {
			codec, err := decodeFlags.codec()
			if err != nil {
				return err
			}
			data, err := a.readInput(decodeFlags.Input)
			if err != nil {
				return err
			}
			decoded, err := codec.Decode(string(data))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(decoded)
			return err
		},
	}
	addBase64Flags(decode, decodeFlags)

	cmd.AddCommand(encode, decode)
	root.AddCommand(cmd)
}

func addBase64Flags(cmd *cobra.Command, flags *Base64Flags) {
	cmd.Flags().StringVarP(&flags.Input, "input", "i", stdinPath, "input file, - for stdin")
	cmd.Flags().StringVarP(&flags.Format, "format", "f", "standard", "alphabet (standard|urlsafe)")
	cmd.Flags().BoolVar(&flags.NoPadding, "no-padding", false, "omit '=' padding")
}

func (f *Base64Flags) codec() (crypto.Codec, error) {
	if err := verifyInputs([]string{f.Input}); err != nil {
		return crypto.Codec{}, err
	}
	format, err := crypto.ParseBase64Format(f.Format)
	if err != nil {
		return crypto.Codec{}, err
	}
	return crypto.Codec{Format: format, NoPadding: f.NoPadding}, nil
}
