package main

import (
	"os"

	"github.com/nebulastore/nebula/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
