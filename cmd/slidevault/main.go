package main

import (
	"os"

	"github.com/slidevault-labs/slidevault-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
