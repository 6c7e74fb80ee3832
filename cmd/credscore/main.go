package main

import (
	"os"

	"github.com/finlab/credscore/cmd/credscore/commands"
)

// main is the entry point for the credscore CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
