package model

import (
	"fmt"
	"strings"
)

// DocumentFormat identifies the serialization of a configuration document
// that carries a word list.
type DocumentFormat string

const (
	// FormatJSON covers plain JSON and JSONC (JSON with comments), which is
	// what cspell.json files are in practice.
	FormatJSON DocumentFormat = "json"

	// FormatYAML covers cspell.yaml / cspell.config.yml style documents.
	FormatYAML DocumentFormat = "yaml"
)

// String returns the string representation of DocumentFormat.
func (f DocumentFormat) String() string {
	return string(f)
}

// IsValid checks whether the DocumentFormat is one of the supported formats.
func (f DocumentFormat) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// ParseDocumentFormat converts a string to a DocumentFormat.
// Returns an error if the string does not match any supported format.
func ParseDocumentFormat(s string) (DocumentFormat, error) {
	format := DocumentFormat(strings.ToLower(s))
	if !format.IsValid() {
		return "", fmt.Errorf("invalid document format: %q (valid: json, yaml)", s)
	}
	return format, nil
}

// WhitespaceFinding reports trailing whitespace in a tracked file.
// Only the first occurrence per file is reported.
type WhitespaceFinding struct {
	// Path is the repository-relative path of the offending file.
	Path string `json:"path"`

	// Offset is the byte offset of the first trailing whitespace character.
	Offset int `json:"offset"`

	// Line and Column are 1-based and point at the same character as Offset.
	// Column counts bytes, not runes.
	Line   int `json:"line"`
	Column int `json:"column"`

	// Context is a window of the file contents around the match, used to
	// help the user locate the problem.
	Context string `json:"context"`
}

// String returns a compact "path:line:col" form for log output.
func (f WhitespaceFinding) String() string {
	return fmt.Sprintf("%s:%d:%d", f.Path, f.Line, f.Column)
}

// OrderMismatch records the first position where a word list differs
// from its expected sorted form.
type OrderMismatch struct {
	// Source is the path of the document the word list was loaded from.
	Source string `json:"source"`

	// Index is the 0-based position of the first mismatch.
	Index int `json:"index"`

	// Actual is the word found at Index.
	Actual string `json:"actual"`

	// Expected is the word that should be at Index.
	Expected string `json:"expected"`
}

// DuplicateWord records the first word that repeats an earlier entry of a
// word list.
type DuplicateWord struct {
	Source string `json:"source"`

	// Index is the position of the second occurrence.
	Index int    `json:"index"`
	Word  string `json:"word"`
}

// WordListReport aggregates the violations found across all checked lists.
type WordListReport struct {
	Mismatches []OrderMismatch `json:"mismatches"`
	Duplicates []DuplicateWord `json:"duplicates"`
}

// HasViolations reports whether any list failed the check.
func (r *WordListReport) HasViolations() bool {
	return len(r.Mismatches) > 0 || len(r.Duplicates) > 0
}

// ExitCode defines the process exit codes shared by all utilities.
// CI drivers rely on them to tell content problems from tool failures.
type ExitCode int

const (
	// ExitSuccess indicates the check passed (or the formatter finished).
	ExitSuccess ExitCode = 0

	// ExitViolation indicates a content problem the user must fix:
	// trailing whitespace, an unsorted word list, or duplicate words.
	ExitViolation ExitCode = 1

	// ExitInternalError indicates a bug or environment problem, such as
	// git failing to enumerate tracked files or an unreadable word list.
	ExitInternalError ExitCode = 2
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
