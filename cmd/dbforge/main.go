// Package main is the entry point for the dbforge CLI.
//
// dbforge renders the Kubernetes manifest set for a relational database
// instance from packaged defaults plus override files, and can optionally
// apply the rendered set to a cluster. Rendering is deterministic: the same
// instance name and values always produce the same documents.
//
// Commands: render, validate, apply, version.
//
// For detailed usage information, run:
//
//	dbforge --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/dbforge/cmd/dbforge/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
