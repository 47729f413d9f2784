// Package main is the entry point for the cloud-pricing CLI.
package main

import (
	"os"

	"github.com/Sudheer128/cloud4india-sub003/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
