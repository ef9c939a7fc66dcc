// Package model defines the domain types and value objects shared by the
// repolint utilities.
//
// This package contains pure data structures with no external dependencies:
// whitespace findings, word-list order mismatches and duplicates, and the
// document formats a word list can be stored in.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
