package main

import (
	"os"

	"github.com/abhisek/snapquiz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
