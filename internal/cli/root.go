// Package cli implements the cobra commands behind the repolint binaries.
//
// Each binary (check-trailing-whitespace, check-word-lists,
// format-word-list) is a single cobra command defined in its own file in
// this package. This file holds the flags they share, the setup that turns
// those flags into a repository root, a configuration and a logger, and the
// translation of returned errors into process exit codes.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shinji-kodama/repolint/internal/config"
	"github.com/shinji-kodama/repolint/internal/git"
	"github.com/shinji-kodama/repolint/internal/logging"
	"github.com/shinji-kodama/repolint/internal/model"
)

// Global flag variables shared by every command.
// A process runs exactly one command, so package-level state is enough;
// registering the flags on a new command resets them to their defaults.
var (
	// jsonOutput switches findings to JSON on stdout.
	jsonOutput bool

	// verbose enables debug logging on stderr.
	verbose bool

	// configPath is an explicit configuration file. Empty means the
	// project file in the repository root, if any.
	configPath string

	// rootDir overrides the repository root.
	rootDir string
)

// Version, Commit and Date are set at build time via ldflags.
// They are injected from the main packages.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// newCommand creates a command with the settings and flags every repolint
// binary shares. Callers set Args and RunE.
func newCommand(use, short, long string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,

		// SilenceUsage prevents cobra from printing usage on every error.
		// A lint failure is not a usage mistake.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// Execute formats them (text or JSON based on --json).
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output findings in JSON format on stdout")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to a configuration file (default: "+config.ProjectConfigFile+" in the repository root)")
	cmd.PersistentFlags().StringVar(&rootDir, "root", "",
		"Repository root (default: the top level of the current git work tree)")

	return cmd
}

// Execute runs the command and exits the process.
//
// A CLIError carries its own exit code. Any other error (bad flags,
// unexpected failures) is an internal error. A nil error exits 0.
func Execute(cmd *cobra.Command) {
	err := cmd.Execute()
	if err == nil {
		os.Exit(int(model.ExitSuccess))
	}

	code := ExitCodeFor(err)
	// A violation has already been reported as findings; only internal
	// errors need a separate message.
	if code != model.ExitViolation {
		printError(cmd.ErrOrStderr(), err)
	}
	os.Exit(int(code))
}

// ExitCodeFor maps an error returned by a command to a process exit code.
func ExitCodeFor(err error) model.ExitCode {
	if err == nil {
		return model.ExitSuccess
	}

	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Code
	}
	return model.ExitInternalError
}

// printError outputs an error in the appropriate format (JSON or text)
// based on the --json flag. Errors always go to stderr, even in JSON mode,
// because stdout is reserved for findings.
func printError(w io.Writer, err error) {
	message := err.Error()
	var underlying error

	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		message = cliErr.Message
		underlying = cliErr.Err
	}

	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(w, "%s %s: %v\n", errorStyle.Sprint("Error:"), message, underlying)
	} else {
		fmt.Fprintf(w, "%s %s\n", errorStyle.Sprint("Error:"), message)
	}
}

// writeJSON writes v to w as indented JSON.
func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return model.WrapCLIError(model.ExitInternalError, "failed to encode JSON output", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// environment is what a command needs before it can run: where the
// repository is, how it is configured, and where to log.
type environment struct {
	root   string
	config *config.Config
	logger *zap.SugaredLogger
}

// setupEnvironment resolves the repository root, loads the configuration
// and builds the logger from the global flags.
//
// The root is --root when given, otherwise the top level of the git work
// tree containing the working directory. When requireRepo is false a
// directory outside any work tree falls back to the working directory.
func setupEnvironment(ctx context.Context, requireRepo bool) (*environment, error) {
	logger, err := logging.New(verbose)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitInternalError, "failed to initialize logger", err)
	}

	root, err := resolveRoot(ctx, logger, requireRepo)
	if err != nil {
		return nil, err
	}

	cfg, err := config.NewLoader().
		WithProjectRoot(root).
		WithPath(configPath).
		Load()
	if err != nil {
		return nil, model.WrapCLIError(model.ExitInternalError, "failed to load configuration", err)
	}

	logger.Debugw("environment ready",
		"root", root,
		"config", configPath,
		"locale", cfg.Locale,
		"concurrency", cfg.Concurrency,
	)

	return &environment{root: root, config: cfg, logger: logger}, nil
}

func resolveRoot(ctx context.Context, logger *zap.SugaredLogger, requireRepo bool) (string, error) {
	if rootDir != "" {
		abs, err := filepath.Abs(rootDir)
		if err != nil {
			return "", model.WrapCLIError(model.ExitInternalError,
				fmt.Sprintf("invalid root directory %q", rootDir), err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return "", model.WrapCLIError(model.ExitInternalError,
				fmt.Sprintf("root directory %q is not accessible", rootDir), err)
		}
		if !info.IsDir() {
			return "", model.NewCLIError(model.ExitInternalError,
				fmt.Sprintf("root %q is not a directory", rootDir))
		}
		return abs, nil
	}

	root, err := git.NewManager().RepoRoot(ctx, ".")
	if err == nil {
		return root, nil
	}
	if requireRepo {
		return "", err
	}

	logger.Debugw("not inside a git work tree, using the working directory", "error", err)
	cwd, err := os.Getwd()
	if err != nil {
		return "", model.WrapCLIError(model.ExitInternalError, "failed to get current directory", err)
	}
	return cwd, nil
}
