package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shinji-kodama/repolint/internal/model"
	"github.com/shinji-kodama/repolint/internal/wordlist"
)

// formatFlags holds the flag values for the format-word-list command.
type formatFlags struct {
	// files are the documents to format. Empty means the configured lists.
	files []string

	// strict turns formatting failures into exit status 2.
	strict bool

	// format overrides extension-based format detection when set.
	format string
}

// formatResultJSON is the JSON output structure for one formatted document.
type formatResultJSON struct {
	Path    string `json:"path"`
	Words   int    `json:"words"`
	Removed int    `json:"removed"`
	Changed bool   `json:"changed"`
}

// NewFormatWordListCommand creates the format-word-list command.
func NewFormatWordListCommand() *cobra.Command {
	flags := &formatFlags{}

	cmd := newCommand(
		"format-word-list",
		"Sort and deduplicate the words of a word list in place",
		`Rewrite the "words" field of each word list sorted (byte order) with
duplicates removed.

JSON documents are re-serialized with two-space indentation, keeping
their key order; comments are not preserved. YAML documents keep their
comments and key order. The format is taken from the file extension unless
--format is given.

Failures are logged and the command still exits 0, so it can run as a
best-effort hook. Pass --strict to exit 2 instead.

Examples:
  format-word-list
  format-word-list --file cspell.json --strict`,
	)

	cmd.Args = cobra.NoArgs
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runFormat(cmd.Context(), flags, cmd.OutOrStdout())
	}

	cmd.Flags().StringSliceVar(&flags.files, "file", nil,
		"Word list document to format, repeatable (default: the configured word lists)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "Exit with status 2 when a word list cannot be formatted")
	cmd.Flags().StringVar(&flags.format, "format", "", formatFlagUsage)

	return cmd
}

// runFormat formats each document independently; one failure does not
// stop the others.
func runFormat(ctx context.Context, flags *formatFlags, stdout io.Writer) error {
	override, err := parseFormatFlag(flags.format)
	if err != nil {
		return err
	}

	env, err := setupEnvironment(ctx, false)
	if err != nil {
		return err
	}
	defer env.logger.Sync()

	paths := flags.files
	if len(paths) == 0 {
		paths = env.config.ResolveWordLists(env.root)
	}

	checker := wordlist.NewOrderChecker(env.config.LanguageTag())

	var results []*wordlist.Result
	failed := 0
	for _, path := range paths {
		result, err := wordlist.FormatFileAs(path, formatFor(path, override))
		if err != nil {
			env.logger.Errorw("failed to format word list", "path", path, "error", err)
			failed++
			continue
		}

		env.logger.Infow("formatted word list",
			"path", path,
			"words", len(result.Words),
			"removed", result.Removed,
			"changed", result.Changed,
		)
		warnCollationMismatch(env.logger, checker, result)
		results = append(results, result)
	}

	if jsonOutput {
		out := struct {
			Results []formatResultJSON `json:"results"`
		}{
			Results: make([]formatResultJSON, 0, len(results)),
		}
		for _, r := range results {
			out.Results = append(out.Results, formatResultJSON{
				Path:    r.Path,
				Words:   len(r.Words),
				Removed: r.Removed,
				Changed: r.Changed,
			})
		}
		if err := writeJSON(stdout, out); err != nil {
			return err
		}
	} else if verbose {
		fmt.Fprint(stdout, FormatResults(results))
	}

	if failed > 0 && flags.strict {
		return model.NewCLIError(model.ExitInternalError,
			fmt.Sprintf("failed to format %d word list(s)", failed))
	}
	return nil
}

// warnCollationMismatch logs a warning when the byte-ordered result would
// fail the locale-aware order check, which happens as soon as the list mixes
// upper and lower case initials.
func warnCollationMismatch(logger *zap.SugaredLogger, checker *wordlist.OrderChecker, result *wordlist.Result) {
	mismatch, _, err := checker.CheckList(&wordlist.List{Source: result.Path, Words: result.Words})
	if err != nil || mismatch == nil {
		return
	}
	logger.Warnw("formatted word list is not in locale order; check-word-lists will report it",
		"path", result.Path,
		"index", mismatch.Index,
		"actual", mismatch.Actual,
		"expected", mismatch.Expected,
	)
}
