package main

import (
	"os"

	"github.com/abhisek/nckh/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
