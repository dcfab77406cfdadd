package main

import (
	"os"

	"github.com/imgnorm/imgnorm-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
