package main

import (
	"os"

	"github.com/bimmerbailey/logmine/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
