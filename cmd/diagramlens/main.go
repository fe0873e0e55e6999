// Package main provides the diagramlens CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Optional .env with GEMINI_API_KEY and friends.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitCode(err))
	}
}
