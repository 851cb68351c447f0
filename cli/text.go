package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/joncooperworks/textcrypt/crypto"
	"github.com/joncooperworks/textcrypt/crypto/keystore"
)

// Generated key file names, relative to the output directory.
const (
	blake3KeyFile           = "blake3.txt"
	ed25519PrivateKeyFile   = "ed25519.sk"
	ed25519PublicKeyFile    = "ed25519.pk"
	chacha20poly1305KeyFile = "chacha20poly1305.key"
)

// AddTextCommand adds the text command group.
func AddTextCommand(root *cobra.Command, a *app) {
	cmd := &cobra.Command{
		Use:   "text",
		Short: "Sign, verify, encrypt and decrypt text",
	}

	cmd.AddCommand(newTextSignCmd(a))
	cmd.AddCommand(newTextVerifyCmd(a))
	cmd.AddCommand(newTextGenerateCmd(a))
	cmd.AddCommand(newTextEncryptCmd(a))
	cmd.AddCommand(newTextDecryptCmd(a))

	root.AddCommand(cmd)
}

// TextSignFlags holds flags for text sign.
type TextSignFlags struct {
	Key         string
	Inputs      []string
	Format      crypto.SignFormat
	Concurrency int
}

func newTextSignCmd(a *app) *cobra.Command {
	flags := &TextSignFlags{Format: crypto.SignFormatBlake3}
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign text with a MAC or signature key",
		Long: `Sign the whole of each input and print the signature.

With one input the signature is printed alone. With several inputs they are
signed concurrently and printed as "name: signature" lines in input order.

Examples:
  textcrypt text sign -k fixtures/blake3.txt -i message.txt
  echo hello | textcrypt text sign -k fixtures/ed25519.sk -f ed25519
  textcrypt text sign -k keyring:mac -i a.txt -i b.txt`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTextSign(cmd, a, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.Key, "key", "k", "", "key reference (file path, keyring:NAME, memory:NAME)")
	cmd.Flags().StringArrayVarP(&flags.Inputs, "input", "i", []string{stdinPath}, "input file, - for stdin (repeatable)")
	cmd.Flags().VarP(&flags.Format, "format", "f", "signing format ("+signFormatUsage("sign")+")")
	cmd.Flags().IntVar(&flags.Concurrency, "concurrency", 0, "inputs signed at once")
	_ = cmd.MarkFlagRequired("key")
	bindConfig(cmd, "format", "sign.format")
	bindConfig(cmd, "concurrency", "batch.concurrency")

	return cmd
}

func runTextSign(cmd *cobra.Command, a *app, flags *TextSignFlags) error {
	ctx := cmd.Context()
	if err := verifyInputs(flags.Inputs); err != nil {
		return err
	}
	format, err := a.cfg.SignFormat()
	if err != nil {
		return err
	}
	e, err := a.engine()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if len(flags.Inputs) == 1 {
		r, err := a.openInput(flags.Inputs[0])
		if err != nil {
			return err
		}
		defer r.Close()

		sig, err := e.Sign(ctx, flags.Key, r, format)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, sig)
		return err
	}

	inputs := make([]crypto.NamedInput, 0, len(flags.Inputs))
	for _, p := range flags.Inputs {
		r, err := a.openInput(p)
		if err != nil {
			return err
		}
		defer r.Close()
		inputs = append(inputs, crypto.NamedInput{Name: p, Reader: r})
	}

	sigs, err := e.SignAll(ctx, flags.Key, format, inputs)
	if err != nil {
		return err
	}
	for _, s := range sigs {
		if _, err := fmt.Fprintf(out, "%s: %s\n", s.Name, s.Signature); err != nil {
			return err
		}
	}
	return nil
}

// TextVerifyFlags holds flags for text verify.
type TextVerifyFlags struct {
	Key       string
	Input     string
	Signature string
	Format    crypto.SignFormat
}

func newTextVerifyCmd(a *app) *cobra.Command {
	flags := &TextVerifyFlags{Format: crypto.SignFormatBlake3}
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a signature over text",
		Long: `Verify a signature produced by "text sign".

For ed25519 the key is the public key file. For blake3 it is the shared MAC key.

Examples:
  textcrypt text verify -k fixtures/blake3.txt -i message.txt -s SIG
  textcrypt text verify -k fixtures/ed25519.pk -f ed25519 -i message.txt -s SIG`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTextVerify(cmd, a, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.Key, "key", "k", "", "key reference")
	cmd.Flags().StringVarP(&flags.Input, "input", "i", stdinPath, "input file, - for stdin")
	cmd.Flags().StringVarP(&flags.Signature, "sig", "s", "", "signature in URL-safe base64")
	cmd.Flags().VarP(&flags.Format, "format", "f", "signing format ("+signFormatUsage("verify")+")")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("sig")
	bindConfig(cmd, "format", "sign.format")

	return cmd
}

func runTextVerify(cmd *cobra.Command, a *app, flags *TextVerifyFlags) error {
	if err := verifyInputs([]string{flags.Input}); err != nil {
		return err
	}
	format, err := a.cfg.SignFormat()
	if err != nil {
		return err
	}
	e, err := a.engine()
	if err != nil {
		return err
	}

	r, err := a.openInput(flags.Input)
	if err != nil {
		return err
	}
	defer r.Close()

	valid, err := e.Verify(cmd.Context(), flags.Key, r, flags.Signature, format)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if valid {
		_, err = color.New(color.FgGreen).Fprintln(out, "✓ signature valid")
	} else {
		_, err = color.New(color.FgRed).Fprintln(out, "✗ signature invalid")
	}
	return err
}

// TextGenerateFlags holds flags for text generate.
type TextGenerateFlags struct {
	Format    crypto.SignFormat
	OutputDir string
}

func newTextGenerateCmd(a *app) *cobra.Command {
	flags := &TextGenerateFlags{Format: crypto.SignFormatBlake3}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a key",
		Long: `Generate key material and write it to the output directory.

  blake3            blake3.txt (32 printable characters)
  ed25519           ed25519.sk (seed) and ed25519.pk (public key)
  chacha20poly1305  chacha20poly1305.key (32 random bytes)`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTextGenerate(cmd, a)
		},
	}

	cmd.Flags().VarP(&flags.Format, "format", "f", "key format ("+signFormatUsage("generate")+")")
	cmd.Flags().StringVarP(&flags.OutputDir, "output", "o", "", "output directory")
	bindConfig(cmd, "format", "sign.format")
	bindConfig(cmd, "output", "generate.output_dir")

	return cmd
}

func runTextGenerate(cmd *cobra.Command, a *app) error {
	format, err := a.cfg.SignFormat()
	if err != nil {
		return err
	}
	e, err := a.engine()
	if err != nil {
		return err
	}

	ks, err := e.Generate(cmd.Context(), format)
	if err != nil {
		return err
	}
	defer ks.Zero()

	dir := a.cfg.Generate.OutputDir
	store, err := keystore.NewFileKeystore(keystore.Config{Dir: dir})
	if err != nil {
		return err
	}

	var written []string
	switch ks := ks.(type) {
	case crypto.SymmetricKey:
		name := blake3KeyFile
		if format == crypto.SignFormatChaCha20Poly1305 {
			name = chacha20poly1305KeyFile
		}
		if err := store.Set(name, ks.Key); err != nil {
			return err
		}
		written = append(written, name)
	case crypto.KeyPair:
		if err := store.Set(ed25519PrivateKeyFile, ks.Private); err != nil {
			return err
		}
		if err := store.Set(ed25519PublicKeyFile, ks.Public); err != nil {
			return err
		}
		written = append(written, ed25519PrivateKeyFile, ed25519PublicKeyFile)
	default:
		return fmt.Errorf("unexpected key set %T", ks)
	}

	for _, name := range written {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}

// TextCipherFlags holds flags for text encrypt and text decrypt.
type TextCipherFlags struct {
	Key    string
	Input  string
	Output string
	Format crypto.EncryptFormat
}

func newTextEncryptCmd(a *app) *cobra.Command {
	flags := &TextCipherFlags{Format: crypto.EncryptFormatChaCha20Poly1305}
	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt text",
		Long: `Encrypt the whole input and print the envelope as URL-safe base64.

Every call uses a fresh random nonce, so the same input never encrypts to the
same text twice.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTextEncrypt(cmd, a, flags)
		},
	}

	addCipherFlags(cmd, flags)
	return cmd
}

func newTextDecryptCmd(a *app) *cobra.Command {
	flags := &TextCipherFlags{Format: crypto.EncryptFormatChaCha20Poly1305}
	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt text produced by encrypt",
		Long: `Decrypt an envelope produced by "text encrypt".

When writing to a terminal the plaintext is printed as text; otherwise the
raw bytes are written unchanged.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTextDecrypt(cmd, a, flags)
		},
	}

	addCipherFlags(cmd, flags)
	return cmd
}

func addCipherFlags(cmd *cobra.Command, flags *TextCipherFlags) {
	cmd.Flags().StringVarP(&flags.Key, "key", "k", "", "key reference")
	cmd.Flags().StringVarP(&flags.Input, "input", "i", stdinPath, "input file, - for stdin")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().VarP(&flags.Format, "format", "f", "encryption format ("+strings.Join(crypto.EncryptFormatNames(), "|")+")")
	_ = cmd.MarkFlagRequired("key")
	bindConfig(cmd, "format", "encrypt.format")
}

func runTextEncrypt(cmd *cobra.Command, a *app, flags *TextCipherFlags) error {
	if err := verifyInputs([]string{flags.Input}); err != nil {
		return err
	}
	format, err := a.cfg.EncryptFormat()
	if err != nil {
		return err
	}
	e, err := a.engine()
	if err != nil {
		return err
	}

	r, err := a.openInput(flags.Input)
	if err != nil {
		return err
	}
	defer r.Close()

	ciphertext, err := e.Encrypt(cmd.Context(), flags.Key, r, format)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), flags.Output, []byte(ciphertext+"\n"))
}

func runTextDecrypt(cmd *cobra.Command, a *app, flags *TextCipherFlags) error {
	if err := verifyInputs([]string{flags.Input}); err != nil {
		return err
	}
	format, err := a.cfg.EncryptFormat()
	if err != nil {
		return err
	}
	e, err := a.engine()
	if err != nil {
		return err
	}

	r, err := a.openInput(flags.Input)
	if err != nil {
		return err
	}
	defer r.Close()

	plaintext, err := e.Decrypt(cmd.Context(), flags.Key, r, format)
	if err != nil {
		if errors.Is(err, crypto.ErrDecrypt) {
			return fmt.Errorf("%w: wrong key or corrupted input", err)
		}
		return err
	}

	out := cmd.OutOrStdout()
	if flags.Output == "" && isTerminal(out) {
		return printText(out, plaintext)
	}
	return writeOutput(out, flags.Output, plaintext)
}

// printText writes plaintext for a human, ending with a newline.
func printText(w io.Writer, plaintext []byte) error {
	text := strings.ToValidUTF8(string(plaintext), "�")
	if !bytes.HasSuffix(plaintext, []byte("\n")) {
		text += "\n"
	}
	_, err := io.WriteString(w, text)
	return err
}
