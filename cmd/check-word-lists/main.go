// Package main is the entry point for the check-word-lists CLI, which
// verifies that word lists are sorted and free of duplicates.
//
// Build-time variables (version, commit, date) are injected via ldflags.
// During development they default to "dev", "none", and "unknown".
package main

import (
	"github.com/shinji-kodama/repolint/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Inject build-time version info before the command is created, since
	// the version string is rendered at construction.
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	cli.Execute(cli.NewCheckWordListsCommand())
}
