package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/repolint/internal/git"
	"github.com/shinji-kodama/repolint/internal/model"
	"github.com/shinji-kodama/repolint/internal/whitespace"
)

// NewWhitespaceCommand creates the check-trailing-whitespace command.
func NewWhitespaceCommand() *cobra.Command {
	cmd := newCommand(
		"check-trailing-whitespace",
		"Report git-tracked files with trailing whitespace",
		`Check every file tracked at HEAD for lines ending in spaces or tabs.

The first offending line of each file is reported together with the
surrounding text. Files with an ignored extension (by default .ico, .png
and .desc) are not read. Files are never modified.

Exit status is 0 when no file has trailing whitespace, 1 when at least one
does, and 2 when the tracked files cannot be listed.

Examples:
  check-trailing-whitespace
  check-trailing-whitespace --root path/to/repo --json`,
	)

	cmd.Args = cobra.NoArgs
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runWhitespace(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	}

	return cmd
}

// runWhitespace lists the tracked files, checks them and reports findings.
func runWhitespace(ctx context.Context, stdout, stderr io.Writer) error {
	env, err := setupEnvironment(ctx, true)
	if err != nil {
		return err
	}
	defer env.logger.Sync()

	checker := whitespace.NewChecker(env.config.IgnoredExtensions, env.config.Concurrency, env.logger)
	findings, err := checker.CheckRepository(ctx, git.NewManager(), env.root)
	if err != nil {
		return err
	}

	if jsonOutput {
		out := struct {
			Findings []model.WhitespaceFinding `json:"findings"`
		}{
			// Empty slice instead of nil so JSON shows [] rather than null.
			Findings: append(make([]model.WhitespaceFinding, 0, len(findings)), findings...),
		}
		if err := writeJSON(stdout, out); err != nil {
			return err
		}
	} else {
		fmt.Fprint(stderr, FormatWhitespaceFindings(findings))
	}

	if len(findings) > 0 {
		return model.NewCLIError(model.ExitViolation,
			fmt.Sprintf("%d file(s) contain trailing whitespace", len(findings)))
	}
	return nil
}
