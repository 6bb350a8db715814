package main

import (
	"os"

	"github.com/sot/schedule-view/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
