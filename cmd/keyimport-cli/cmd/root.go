package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "keyimport-cli",
	Short: "Bitcoin key material import tool",
	Long: `Detects and validates Bitcoin key material in any common encoding:
recovery phrases, WIF and raw private keys, extended keys, encrypted keys,
wallet export files and output descriptors. Secrets are only ever printed
on explicit request and never written to logs.`,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// readInput resolves the positional argument or --file flag into the raw
// text to process.
func readInput(cmd *cobra.Command, args []string) (text, filename string, err error) {
	filename, _ = cmd.Flags().GetString("file")
	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return "", "", fmt.Errorf("reading %s: %w", filename, err)
		}
		return string(data), filename, nil
	}
	if len(args) == 0 {
		return "", "", fmt.Errorf("provide the input as an argument or via --file")
	}
	return args[0], "", nil
}
