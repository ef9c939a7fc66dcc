package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/repolint/internal/model"
	"github.com/shinji-kodama/repolint/internal/wordlist"
)

// checkWordListsFlags holds the flag values for the check-word-lists command.
type checkWordListsFlags struct {
	// format overrides extension-based format detection when set.
	format string
}

// NewCheckWordListsCommand creates the check-word-lists command.
func NewCheckWordListsCommand() *cobra.Command {
	flags := &checkWordListsFlags{}

	cmd := newCommand(
		"check-word-lists [path...]",
		"Verify that word lists are sorted and free of duplicates",
		`Check that the "words" field of each configured word list is in
alphabetical order (locale-aware collation) and holds no duplicates.

By default the lists named in the configuration are checked (cspell.json
in the repository root). Paths given as arguments replace them.
JSON (with comments) and YAML documents are supported; the format is
taken from the file extension unless --format is given.

Exit status is 0 when every list passes, 1 when at least one is out of
order or has duplicates, and 2 when a list cannot be loaded.

Examples:
  check-word-lists
  check-word-lists cspell.json docs/cspell.yaml
  check-word-lists --format yaml .cspellrc`,
	)

	cmd.Args = cobra.ArbitraryArgs
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCheckWordLists(cmd.Context(), flags, args, cmd.OutOrStdout(), cmd.ErrOrStderr())
	}

	cmd.Flags().StringVar(&flags.format, "format", "", formatFlagUsage)

	return cmd
}

// runCheckWordLists loads every list, checks all of them and reports every
// violation before failing.
func runCheckWordLists(ctx context.Context, flags *checkWordListsFlags, paths []string, stdout, stderr io.Writer) error {
	override, err := parseFormatFlag(flags.format)
	if err != nil {
		return err
	}

	env, err := setupEnvironment(ctx, false)
	if err != nil {
		return err
	}
	defer env.logger.Sync()

	if len(paths) == 0 {
		paths = env.config.ResolveWordLists(env.root)
	}

	lists := make([]*wordlist.List, 0, len(paths))
	for _, path := range paths {
		list, err := wordlist.LoadAs(path, formatFor(path, override))
		if err != nil {
			return model.WrapCLIError(model.ExitInternalError,
				fmt.Sprintf("unexpected error while loading word list %s", path), err)
		}
		env.logger.Debugw("loaded word list", "path", path, "format", list.Format, "words", len(list.Words))
		lists = append(lists, list)
	}

	checker := wordlist.NewOrderChecker(env.config.LanguageTag())
	report, err := checker.CheckAll(lists)
	if err != nil {
		return model.WrapCLIError(model.ExitInternalError, "unexpected error while checking word lists", err)
	}

	if jsonOutput {
		out := model.WordListReport{
			Mismatches: append(make([]model.OrderMismatch, 0, len(report.Mismatches)), report.Mismatches...),
			Duplicates: append(make([]model.DuplicateWord, 0, len(report.Duplicates)), report.Duplicates...),
		}
		if err := writeJSON(stdout, out); err != nil {
			return err
		}
	} else {
		fmt.Fprint(stderr, FormatWordListReport(report))
	}

	if report.HasViolations() {
		return model.NewCLIError(model.ExitViolation,
			fmt.Sprintf("%d word list(s) out of order, %d with duplicates",
				len(report.Mismatches), len(report.Duplicates)))
	}
	return nil
}

// formatFlagUsage is the help text of --format on the word-list commands.
const formatFlagUsage = "Document format, json or yaml (default: detected from the file extension)"

// parseFormatFlag validates a --format value. An empty value means no
// override.
func parseFormatFlag(value string) (model.DocumentFormat, error) {
	if value == "" {
		return "", nil
	}
	format, err := model.ParseDocumentFormat(value)
	if err != nil {
		return "", model.WrapCLIError(model.ExitInternalError, "invalid --format value", err)
	}
	return format, nil
}

// formatFor returns override when set, otherwise the format detected from
// the extension of path.
func formatFor(path string, override model.DocumentFormat) model.DocumentFormat {
	if override != "" {
		return override
	}
	return wordlist.DetectFormat(path)
}
