package main

import (
	"os"

	"github.com/quantbr/fundascore/cmd/fundascore/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
