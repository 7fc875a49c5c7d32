package main

import (
	"os"

	"github.com/JonMunkholm/datacleaner/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
