package main

import (
	"os"

	"hybridchat/cmd/hybridchat/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
