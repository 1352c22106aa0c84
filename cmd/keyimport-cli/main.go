package main

import "keyimport-core/cmd/keyimport-cli/cmd"

func main() {
	cmd.Execute()
}
