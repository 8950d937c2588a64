package main

import (
	"os"

	"github.com/vj-vijeta/job-hunt-assistant/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
