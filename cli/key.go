package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/joncooperworks/textcrypt/crypto/keystore"
)

// KeyStoreFlags holds flags for key store.
type KeyStoreFlags struct {
	ID    string
	Input string
}

// persistentBackend rejects backends whose keys do not outlive the process.
func persistentBackend(backend string) error {
	if backend == keystore.BackendMemory {
		return fmt.Errorf("backend %s cannot be used here: its keys only live for one process", backend)
	}
	return nil
}

// AddKeyCommand adds the key command group for managing stored keys.
func AddKeyCommand(root *cobra.Command, a *app) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Store and list keys",
	}

	storeFlags := &KeyStoreFlags{}
	store := &cobra.Command{
		Use:   "store",
		Short: "Copy a key file into a keystore",
		Long: `Copy key bytes into the keystore named by the reference prefix.

Examples:
  textcrypt key store --id keyring:mac -i fixtures/blake3.txt
  textcrypt key store --id backup/ed25519.sk -i fixtures/ed25519.sk`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			backend, _ := keystore.ParseRef(storeFlags.ID)
			if err := persistentBackend(backend); err != nil {
				return err
			}
			if err := verifyInputs([]string{storeFlags.Input}); err != nil {
				return err
			}
			data, err := a.readInput(storeFlags.Input)
			if err != nil {
				return err
			}
			defer func() {
				for i := range data {
					data[i] = 0
				}
			}()

			if err := a.keys.Set(storeFlags.ID, data); err != nil {
				return err
			}
			a.logger.Info().Str("key", storeFlags.ID).Int("bytes", len(data)).Msg("key stored")
			return nil
		},
	}
	store.Flags().StringVar(&storeFlags.ID, "id", "", "key reference to write")
	store.Flags().StringVarP(&storeFlags.Input, "input", "i", stdinPath, "key file, - for stdin")
	_ = store.MarkFlagRequired("id")

	var backend string
	list := &cobra.Command{
		Use:   "list",
		Short: "List keys held by a backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := persistentBackend(backend); err != nil {
				return err
			}
			keys, err := a.keys.List(backend)
			if err != nil {
				return err
			}
			for _, k := range keys {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), k); err != nil {
					return err
				}
			}
			return nil
		},
	}
	backends := slices.DeleteFunc(keystore.ListRegisteredBackends(), func(b string) bool {
		return persistentBackend(b) != nil
	})
	list.Flags().StringVar(&backend, "backend", keystore.BackendKeyring, fmt.Sprintf("backend to list (%v)", backends))

	cmd.AddCommand(store, list)
	root.AddCommand(cmd)
}
