package cmd

import (
	"fmt"
	"os"
	"syscall"

	"keyimport-core/pkg/importer"
	"keyimport-core/pkg/secguard"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt <encrypted-key>",
	Short: "Decrypt a BIP38 password-protected private key",
	Long: `Prompts for the password on the terminal and decrypts a 6P-prefixed
key. Decryption happens only here, never over the network. The decrypted
key is printed once; nothing is logged or stored.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		encrypted := args[0]
		if !importer.IsBIP38(encrypted) {
			fmt.Println("Input is not a BIP38 encrypted key (expected a 6P prefix).")
			os.Exit(1)
		}

		fmt.Print("Password: ")
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			fmt.Println("Failed to read password:", err)
			os.Exit(1)
		}
		password := string(raw)
		secguard.Zero(raw)

		fmt.Println("Decrypting (scrypt takes a few seconds)...")
		result, err := importer.NewBIP38Decrypter(nil).Decrypt(encrypted, password, importer.Options{})
		if err != nil {
			code, msg := importer.Decode(err)
			fmt.Printf("Rejected [%s]: %s\n", code, msg)
			os.Exit(1)
		}

		fmt.Printf("WIF:     %s\n", result.WIF)
		if result.PreviewAddress != "" {
			fmt.Printf("Address: %s\n", result.PreviewAddress)
		}
		fmt.Println("Anyone who sees this key controls its funds.")
	},
}

func init() {
	rootCmd.AddCommand(decryptCmd)
}
