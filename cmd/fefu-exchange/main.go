package main

import (
	"os"

	"github.com/deppfellow/fefu-exchange/cmd/fefu-exchange/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
