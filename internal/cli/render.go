package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/shinji-kodama/repolint/internal/model"
	"github.com/shinji-kodama/repolint/internal/wordlist"
)

// Terminal styles. fatih/color turns them off when the output is not a
// terminal or NO_COLOR is set.
var (
	errorStyle  = color.New(color.FgRed, color.Bold)
	headerStyle = color.New(color.FgYellow, color.Bold)
	fileStyle   = color.New(color.FgCyan, color.Bold)
	labelStyle  = color.New(color.FgBlue, color.Bold)
)

// FormatWhitespaceFindings renders one line per finding. The context is
// quoted so the offending spaces and tabs are visible.
func FormatWhitespaceFindings(findings []model.WhitespaceFinding) string {
	var builder strings.Builder
	for _, f := range findings {
		builder.WriteString(fileStyle.Sprint(f.String()))
		builder.WriteString(" contains trailing whitespaces around: ")
		builder.WriteString(fmt.Sprintf("%q\n", f.Context))
	}
	return builder.String()
}

// FormatWordListReport renders the order mismatches followed by the
// duplicates. Each section is omitted when empty.
func FormatWordListReport(report *model.WordListReport) string {
	var builder strings.Builder

	if len(report.Mismatches) > 0 {
		builder.WriteString(headerStyle.Sprint("Alphabetical order of words is not maintained in the following files:"))
		builder.WriteString("\n\n")
		for _, m := range report.Mismatches {
			builder.WriteString(fileStyle.Sprint(m.Source) + "\n")
			builder.WriteString(fmt.Sprintf("First mismatch (index %d):\n", m.Index))
			builder.WriteString(labelStyle.Sprint("  actual: ") + m.Actual + "\n")
			builder.WriteString(labelStyle.Sprint("expected: ") + m.Expected + "\n\n")
		}
	}

	if len(report.Duplicates) > 0 {
		builder.WriteString(headerStyle.Sprint("Duplicate words found in the following files:"))
		builder.WriteString("\n\n")
		for _, d := range report.Duplicates {
			builder.WriteString(fileStyle.Sprint(d.Source) + "\n")
			builder.WriteString(fmt.Sprintf("First duplicate (index %d):\n", d.Index))
			builder.WriteString(labelStyle.Sprint("  word: ") + d.Word + "\n\n")
		}
	}

	return builder.String()
}

// FormatResults renders a summary line per formatted document.
func FormatResults(results []*wordlist.Result) string {
	var builder strings.Builder
	for _, r := range results {
		status := "unchanged"
		if r.Changed {
			status = "formatted"
		}
		builder.WriteString(fmt.Sprintf("%s %s (%d words, %d duplicates removed)\n",
			fileStyle.Sprint(r.Path), status, len(r.Words), r.Removed))
	}
	return builder.String()
}
