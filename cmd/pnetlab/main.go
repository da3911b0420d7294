package main

import (
	"os"

	"github.com/pnetlab/go-pnetlab/cmd/pnetlab/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
