package cmd

import (
	"fmt"
	"os"
	"strings"

	"keyimport-core/pkg/importer"

	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <prefix>",
	Short: "Complete a recovery phrase word",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		prefix := args[0]
		limit, _ := cmd.Flags().GetInt("limit")

		if importer.IsValidWord(prefix) {
			fmt.Printf("%q is a wordlist word.\n", strings.ToLower(prefix))
		}
		suggestions := importer.GetWordSuggestions(prefix, limit)
		if len(suggestions) == 0 {
			fmt.Printf("No wordlist words start with %q.\n", prefix)
			os.Exit(1)
		}
		for _, word := range suggestions {
			fmt.Println(word)
		}
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)
	suggestCmd.Flags().IntP("limit", "n", 10, "maximum number of suggestions")
}
