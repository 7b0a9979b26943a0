package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/yellingatcode/yet-another-commit-checker/internal/adapters/inbound/cli"
)

func main() {
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
