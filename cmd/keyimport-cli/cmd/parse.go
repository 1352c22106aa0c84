package cmd

import (
	"fmt"
	"os"
	"syscall"

	"keyimport-core/pkg/derive"
	"keyimport-core/pkg/importer"
	"keyimport-core/pkg/secguard"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var parseCmd = &cobra.Command{
	Use:   "parse [input]",
	Short: "Validate key material and show its non-secret summary",
	Long: `Detects the format, runs the full validation pipeline and prints the
fingerprint and preview address. Private key material is printed only when
--reveal is set.`,
	Run: func(cmd *cobra.Command, args []string) {
		text, filename, err := readInput(cmd, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		opts := importer.Options{Filename: filename}
		if script, _ := cmd.Flags().GetString("script"); script != "" {
			opts.Script = importer.ScriptType(script)
		}
		if path, _ := cmd.Flags().GetString("path"); path != "" {
			if !derive.IsValidPath(path) {
				fmt.Printf("Derivation path %q is not valid.\n", path)
				os.Exit(1)
			}
			opts.Derivation = &importer.DerivationPathConfig{
				Preset:     importer.PresetCustom,
				CustomPath: path,
			}
		}
		if prompt, _ := cmd.Flags().GetBool("passphrase"); prompt {
			fmt.Print("Passphrase: ")
			raw, err := term.ReadPassword(int(syscall.Stdin))
			fmt.Println()
			if err != nil {
				fmt.Println("Failed to read passphrase:", err)
				os.Exit(1)
			}
			opts.Passphrase = string(raw)
			secguard.Zero(raw)
		}

		var result *importer.ImportResult
		if format, _ := cmd.Flags().GetString("as"); format != "" {
			result, err = importer.ImportAs(importer.ImportFormat(format), text, opts)
		} else {
			result, err = importer.Import(text, opts)
		}
		if err != nil {
			code, msg := importer.Decode(err)
			fmt.Printf("Rejected [%s]: %s\n", code, msg)
			os.Exit(1)
		}

		printResult(result, cmd)

		secguard.Zero(result.Seed)
	},
}

func printResult(result *importer.ImportResult, cmd *cobra.Command) {
	reveal, _ := cmd.Flags().GetBool("reveal")

	fmt.Printf("Format:      %s\n", result.SourceFormat)
	fmt.Printf("Result type: %s\n", result.Type)
	if result.Fingerprint != "" {
		fmt.Printf("Fingerprint: %s\n", result.Fingerprint)
	}
	if result.PreviewAddress != "" {
		fmt.Printf("Preview:     %s\n", result.PreviewAddress)
	}
	if result.Xpub != "" {
		fmt.Printf("Xpub:        %s\n", result.Xpub)
	}
	if len(result.Keys) > 0 {
		fmt.Printf("Keys:        %d\n", len(result.Keys))
		for _, k := range result.Keys {
			line := "  -"
			if k.Address != "" {
				line += " " + k.Address
			}
			if k.HDKeypath != "" {
				line += " (" + k.HDKeypath + ")"
			}
			if k.Label != "" {
				line += " label=" + k.Label
			}
			fmt.Println(line)
		}
	}
	if len(result.Descriptors) > 0 {
		fmt.Printf("Descriptors: %d\n", len(result.Descriptors))
		for _, d := range result.Descriptors {
			role := "external"
			if d.IsInternal {
				role = "internal"
			}
			fmt.Printf("  - %s %s path=%s private=%t\n", d.ScriptType, role, d.DerivationPath, d.HasPrivateKey)
		}
	}
	if result.BestBlockHeight > 0 {
		fmt.Printf("Best block:  %d\n", result.BestBlockHeight)
	}

	if !reveal {
		return
	}
	fmt.Println("--- secret material (requested with --reveal) ---")
	if result.Mnemonic != "" {
		fmt.Printf("Mnemonic: %s\n", result.Mnemonic)
	}
	if result.Xprv != "" {
		fmt.Printf("Xprv:     %s\n", result.Xprv)
	}
	if result.WIF != "" {
		fmt.Printf("WIF:      %s\n", result.WIF)
	}
	for _, k := range result.Keys {
		if k.WIF != "" {
			fmt.Printf("WIF:      %s\n", k.WIF)
		}
	}
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringP("file", "f", "", "read input from a file instead of the argument")
	parseCmd.Flags().StringP("script", "s", "", "preview address type: wpkh, sh(wpkh), pkh or tr")
	parseCmd.Flags().String("path", "", "custom derivation path for the preview address")
	parseCmd.Flags().BoolP("passphrase", "p", false, "prompt for a BIP39 passphrase")
	parseCmd.Flags().Bool("reveal", false, "print private key material to the terminal")
	parseCmd.Flags().String("as", "", "parse as an explicit format (e.g. brainwallet, seed_bytes_hex) instead of trusting detection")
}
