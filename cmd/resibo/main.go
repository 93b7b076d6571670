package main

import (
	"os"

	"github.com/resibo-dev/resibo/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
