package main

import (
	"fmt"
	"os"

	"tempo/internal/cli"
)

func main() {
	cli.LoadEnvFile()

	if err := cli.New().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tempo-cli: %v\n", err)
		os.Exit(1)
	}
}
