// Command exclint reports redundant Maven dependency exclusions.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/exclint/internal/adapters/driving/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// .env is optional
	_ = godotenv.Load()

	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
