// Command keggmatch is the entry point for the compound matching CLI and
// API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/openmetab/keggmatch/internal/interfaces/cli"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func init() {
	cli.Version = version
	cli.GitCommit = commit
	cli.BuildDate = buildDate
}

func main() {
	// A .env file is optional; environment variables win over it.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
