package main

import (
	"os"

	"shipping/cmd/trackctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
