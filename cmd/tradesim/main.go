package main

import (
	"os"

	"github.com/wonny/tradesim/cmd/tradesim/commands"
)

// main is the entry point for the tradesim CLI
// ⭐ single CLI entry point: go run ./cmd/tradesim [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
