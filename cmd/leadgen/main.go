package main

import (
	"os"

	"github.com/stroomai/leadgen/cmd/leadgen/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
