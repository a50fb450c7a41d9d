package main

import (
	"os"

	"github.com/abhisek/internsim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
