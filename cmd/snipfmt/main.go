// Package main is the entry point for the snipfmt CLI.
package main

import (
	"os"

	"github.com/jmylchreest/snipfmt/cmd/snipfmt/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
