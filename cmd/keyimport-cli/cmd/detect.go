package cmd

import (
	"fmt"
	"os"

	"keyimport-core/pkg/importer"

	"github.com/spf13/cobra"
)

var detectCmd = &cobra.Command{
	Use:   "detect [input]",
	Short: "Classify key material without parsing it",
	Long: `Runs format detection only. Nothing is decoded or validated beyond
what classification needs, and the input is never echoed back.`,
	Run: func(cmd *cobra.Command, args []string) {
		text, filename, err := readInput(cmd, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		det := importer.DetectFile(text, filename)
		if det == nil {
			fmt.Println("Input does not match any supported key format.")
			os.Exit(1)
		}

		fmt.Printf("Format:     %s\n", det.Format)
		fmt.Printf("Label:      %s\n", det.Label)
		fmt.Printf("Confidence: %s\n", det.Confidence)
		if det.WordCount > 0 {
			fmt.Printf("Words:      %d\n", det.WordCount)
		}
		if det.NeedsPassword {
			fmt.Println("A password is required to decrypt this key.")
		}
		if det.IsWatchOnly {
			fmt.Println("This input contains no private keys (watch-only).")
		}
		if !det.IsMainnet {
			fmt.Println("Warning: this is testnet material and will be rejected on import.")
		}
		for _, alt := range det.Alternatives {
			fmt.Printf("Could also be read as: %s\n", alt)
		}
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
	detectCmd.Flags().StringP("file", "f", "", "read input from a file instead of the argument")
}
