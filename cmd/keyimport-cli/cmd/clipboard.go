package cmd

import (
	"encoding/base64"
	"fmt"
	"os"

	"keyimport-core/pkg/secguard"

	"github.com/spf13/cobra"
)

// osc52Clipboard drives the terminal clipboard through the OSC 52 escape
// sequence. It works over SSH and needs no platform bindings.
type osc52Clipboard struct{}

func (osc52Clipboard) WriteText(text string) error {
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	_, err := fmt.Fprintf(os.Stderr, "\x1b]52;c;%s\x07", encoded)
	return err
}

var clearClipboardCmd = &cobra.Command{
	Use:   "clear-clipboard",
	Short: "Overwrite the clipboard with an empty string",
	Long: `Clears the terminal clipboard. This only ever runs when you invoke it;
no command in this tool touches the clipboard on its own.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := secguard.Clear(osc52Clipboard{}); err != nil {
			fmt.Println("Failed to clear clipboard:", err)
			os.Exit(1)
		}
		fmt.Println("Clipboard cleared.")
	},
}

func init() {
	rootCmd.AddCommand(clearClipboardCmd)
}
