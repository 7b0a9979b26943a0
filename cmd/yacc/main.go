package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/yellingatcode/yet-another-commit-checker/internal/adapters/inbound/cli"
)

func main() {
	// Hosting services often drop hook environment into a .env next to the
	// hook; missing file is fine.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
