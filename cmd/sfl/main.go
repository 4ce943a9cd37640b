package main

import (
	"os"

	"github.com/msto63/sfl/cmd/sfl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
