package main

import (
	"os"

	"github.com/fernvale/modremap/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
