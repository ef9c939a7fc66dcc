// Package whitespace implements the trailing-whitespace checker.
//
// The checker reads every git-tracked text file and reports the first line
// in each file that ends in one or more spaces or tabs. Files are read
// concurrently; each read is an independent task that owns one slot of the
// result slice, so no locking is needed and the results are gathered after
// all tasks finish.
package whitespace

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"regexp"
	"runtime"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shinji-kodama/repolint/internal/logging"
	"github.com/shinji-kodama/repolint/internal/model"
)

const (
	// contextBefore is how far the context window starts before the match.
	contextBefore = 30

	// contextWidth is the total width of the context window in bytes.
	contextWidth = 60
)

// trailingWhitespace matches spaces/tabs right before a line terminator
// (LF, CR or CRLF) or the end of the file.
var trailingWhitespace = regexp.MustCompile(`(?m)[ \t]+(\r|$)`)

// FileLister enumerates the files to check. *git.Manager satisfies it.
type FileLister interface {
	ListTracked(ctx context.Context, repoPath string) ([]string, error)
}

// Checker holds the settings of a whitespace check run.
type Checker struct {
	// IgnoredExtensions are path suffixes that are never read.
	IgnoredExtensions []string

	// Concurrency bounds the number of files read at once.
	// Zero or negative means runtime.NumCPU().
	Concurrency int

	// Logger receives debug output about skipped files. May be nil.
	Logger *zap.SugaredLogger
}

// NewChecker returns a Checker ignoring the given extensions.
func NewChecker(ignoredExtensions []string, concurrency int, logger *zap.SugaredLogger) *Checker {
	return &Checker{
		IgnoredExtensions: ignoredExtensions,
		Concurrency:       concurrency,
		Logger:            logger,
	}
}

// ShouldCheck reports whether path is subject to the check, i.e. it does
// not end in one of the ignored extensions. The match is case-sensitive.
func (c *Checker) ShouldCheck(path string) bool {
	if path == "" {
		return false
	}
	for _, ext := range c.IgnoredExtensions {
		if strings.HasSuffix(path, ext) {
			return false
		}
	}
	return true
}

// CheckRepository lists the tracked files of the repository at root and
// checks them. A listing failure is returned as a CLIError with
// ExitInternalError so the caller can tell it apart from findings.
func (c *Checker) CheckRepository(ctx context.Context, lister FileLister, root string) ([]model.WhitespaceFinding, error) {
	paths, err := lister.ListTracked(ctx, root)
	if err != nil {
		if _, ok := err.(*model.CLIError); ok {
			return nil, err
		}
		return nil, model.WrapCLIError(model.ExitInternalError, "failed to list tracked files", err)
	}

	logging.OrNop(c.Logger).Debugw("listed tracked files", "root", root, "count", len(paths))

	return c.Check(ctx, os.DirFS(root), paths)
}

// Check reads each path from fsys and returns one finding per offending
// file, in the order of paths. Paths are slash separated and relative to
// the root of fsys, which is exactly what git ls-tree prints.
//
// Unreadable entries (submodule gitlinks, files deleted from the work
// tree) are skipped. The only error returned is a context cancellation.
func (c *Checker) Check(ctx context.Context, fsys fs.FS, paths []string) ([]model.WhitespaceFinding, error) {
	log := logging.OrNop(c.Logger)

	toCheck := make([]string, 0, len(paths))
	for _, p := range paths {
		if c.ShouldCheck(p) {
			toCheck = append(toCheck, p)
		} else if p != "" {
			log.Debugw("skipping ignored file", "path", p)
		}
	}

	limit := c.Concurrency
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	// Each task writes only results[i]; hits[i] marks a populated slot.
	results := make([]model.WhitespaceFinding, len(toCheck))
	hits := make([]bool, len(toCheck))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range toCheck {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			content, err := fs.ReadFile(fsys, path)
			if err != nil {
				log.Debugw("skipping unreadable file", "path", path, "error", err)
				return nil
			}

			if finding, ok := FindTrailing(path, content); ok {
				results[i] = finding
				hits[i] = true
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var findings []model.WhitespaceFinding
	for i, hit := range hits {
		if hit {
			findings = append(findings, results[i])
		}
	}

	log.Debugw("whitespace check finished", "checked", len(toCheck), "violations", len(findings))
	return findings, nil
}

// FindTrailing searches content for the first line ending in whitespace.
func FindTrailing(path string, content []byte) (model.WhitespaceFinding, bool) {
	loc := trailingWhitespace.FindIndex(content)
	if loc == nil {
		return model.WhitespaceFinding{}, false
	}

	offset := loc[0]
	lineStart := bytes.LastIndexByte(content[:offset], '\n') + 1

	return model.WhitespaceFinding{
		Path:    path,
		Offset:  offset,
		Line:    bytes.Count(content[:offset], []byte{'\n'}) + 1,
		Column:  offset - lineStart + 1,
		Context: Snippet(content, offset),
	}, true
}

// Snippet returns the context window around index: contextWidth bytes
// starting contextBefore bytes earlier, clamped to the content and trimmed
// inward so no multi-byte rune is split.
func Snippet(content []byte, index int) string {
	start := max(0, index-contextBefore)
	end := min(len(content), start+contextWidth)

	for start < end && !utf8.RuneStart(content[start]) {
		start++
	}
	for end > start && end < len(content) && !utf8.RuneStart(content[end]) {
		end--
	}

	return string(content[start:end])
}
