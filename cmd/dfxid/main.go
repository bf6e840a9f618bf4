package main

import (
	"os"

	"dfxid/cmd/dfxid/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
