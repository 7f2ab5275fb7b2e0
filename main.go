package main

import (
	"os"

	"github.com/umutgultepe/recruiting-analyst/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
