// Package main provides the entry point for the permgen CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"permgen/cmd/permgen/commands"
)

func main() {
	// A .env beside the invocation may hold PERMGEN_* path overrides.
	_ = godotenv.Load()

	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
