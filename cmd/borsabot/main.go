package main

import (
	"os"

	"github.com/acagil/borsabot/cmd/borsabot/commands"
)

// main is the entry point for the borsabot CLI:
// go run ./cmd/borsabot [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
