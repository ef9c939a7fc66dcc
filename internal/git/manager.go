package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/shinji-kodama/repolint/internal/model"
)

// Manager provides Git queries by invoking the git CLI.
//
// It is stateless apart from the binary to run. The field exists so tests
// can point the manager at a missing binary to exercise failure paths.
type Manager struct {
	// Binary is the git executable name or path. Empty means "git".
	Binary string
}

// NewManager creates a new Manager that runs the git found on PATH.
func NewManager() *Manager {
	return &Manager{Binary: "git"}
}

// ListTracked returns the paths of all files tracked at HEAD, relative to
// the repository root and slash separated.
//
// It runs `git ls-tree --full-tree -r -z --name-only HEAD`. The -z form is
// used so paths containing newlines or non-ASCII characters come back
// verbatim instead of C-quoted. Submodules appear as a single path (the
// gitlink).
//
// repoPath may be any directory inside the work tree; --full-tree keeps the
// returned paths relative to the repository root regardless.
func (m *Manager) ListTracked(ctx context.Context, repoPath string) ([]string, error) {
	output, err := m.runGit(ctx, repoPath, "ls-tree", "--full-tree", "-r", "-z", "--name-only", "HEAD")
	if err != nil {
		return nil, err
	}
	return parseNulSeparated(output), nil
}

// RepoRoot returns the absolute path to the top-level directory of the
// work tree containing path.
//
// This uses `git rev-parse --show-toplevel`, which works from any
// subdirectory and from linked worktrees.
func (m *Manager) RepoRoot(ctx context.Context, path string) (string, error) {
	output, err := m.runGit(ctx, path, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// runGit executes a git command with the given arguments in the specified directory.
//
// It captures both stdout and stderr. On success (exit code 0), it returns
// the stdout output. On failure, it returns a model.CLIError with
// ExitInternalError, including the stderr output in the message: a failing
// git query is an environment problem, never a content violation.
//
// The repoPath parameter is passed to git via the -C flag, which causes git
// to change to that directory before doing anything else. This avoids the need
// to change the process's working directory.
func (m *Manager) runGit(ctx context.Context, repoPath string, args ...string) (string, error) {
	binary := m.Binary
	if binary == "" {
		binary = "git"
	}

	fullArgs := append([]string{"-C", repoPath}, args...)

	// #nosec G204 — args are constructed internally, not from user input
	cmd := exec.CommandContext(ctx, binary, fullArgs...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		message := fmt.Sprintf("git %s failed", strings.Join(args, " "))
		if stderrStr != "" {
			message = fmt.Sprintf("%s: %s", message, stderrStr)
		}
		return "", model.WrapCLIError(model.ExitInternalError, message, err)
	}

	return stdout.String(), nil
}

// parseNulSeparated splits -z output into entries. The trailing NUL
// terminator produces an empty last element, which is dropped along with
// any other empty entries.
func parseNulSeparated(output string) []string {
	if output == "" {
		return nil
	}

	parts := strings.Split(output, "\x00")
	paths := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		paths = append(paths, p)
	}
	return paths
}
