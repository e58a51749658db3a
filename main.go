// Command asgen extracts AppStream component metadata from a binary
// package repository and renders both machine-readable catalog files and
// human-oriented issue reports.
package main

import (
	"fmt"
	"os"

	"github.com/iainlane/appstream-generator/cmd"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, date)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
