package main

import (
	"os"

	"github.com/ontax-dev/ontax/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
