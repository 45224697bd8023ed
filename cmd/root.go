// Package cmd provides the CLI commands for repolink.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/psyomn/repolink/internal/domain"
)

// Logger defines the logging interface used by the command.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// Dependencies holds all injectable dependencies for the command.
// This enables testing by allowing mock implementations to be injected.
type Dependencies struct {
	// LoggerFactory creates a logger instance.
	LoggerFactory func() Logger

	// ConfigLoader loads application configuration.
	ConfigLoader func() (*AppConfig, error)

	// GitRepoFactory creates a LocalGitRepository for the given directory.
	GitRepoFactory func(dir string, log Logger) (domain.LocalGitRepository, error)

	// URLParserFactory creates the remote-URL parsing collaborator.
	URLParserFactory func() domain.RemoteURLParser

	// ResolverFactory creates a Resolver with the given dependencies.
	ResolverFactory func(
		repo domain.LocalGitRepository,
		parser domain.RemoteURLParser,
		log Logger,
	) domain.Resolver

	// LinkWriterFactory creates a LinkWriter.
	LinkWriterFactory func() domain.LinkWriter

	// OpenInBrowser opens a URL in the user's browser. Only used with --open;
	// nil falls back to the platform default.
	OpenInBrowser func(url string) error

	// Stdout is the writer for standard output (for the link).
	Stdout io.Writer

	// Stderr is the writer for standard error (for warnings/errors).
	Stderr io.Writer
}

// AppConfig holds application configuration loaded by ConfigLoader.
type AppConfig struct {
	// LogLevel is the log level setting.
	LogLevel string

	// LogAppName is the application name for logging.
	LogAppName string

	// DefaultRemote is the remote used when --remote is not given.
	DefaultRemote string
}

// Command-line flags.
var (
	remoteName string
	openLink   bool
	verbose    bool
)

// defaultDeps holds the production dependencies.
// This is set by the production wiring in main or via SetDefaultDependencies.
var defaultDeps *Dependencies

// SetDefaultDependencies sets the default dependencies for production use.
// This should be called from main() before Execute().
func SetDefaultDependencies(deps *Dependencies) {
	defaultDeps = deps
}

// NewRootCmd creates the root command for repolink.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithDeps(defaultDeps)
}

// NewRootCmdWithDeps creates the root command with explicit dependencies.
// This is the primary constructor that enables testing via dependency injection.
func NewRootCmdWithDeps(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "repolink <path>[:LINE[-END]]",
		Short: "Generate a permalink to a file on its Git hosting service",
		Long: `repolink resolves the current position of the local Git repository (a
remote-tracked branch, a tag, or a bare commit) and prints a permanent web
link to the given file at the equivalent location on the hosting service.

Supported services: github.com, git.sr.ht.

The repository is discovered upward from the file's directory. The remote
defaults to "origin" (override with --remote or REPOLINK_REMOTE). A line or
line range can be appended to the path.

Examples:
  # Link to a whole file
  repolink src/main.go

  # Link to a single line
  repolink src/main.go:42

  # Link to a range of lines, against a different remote
  repolink -r upstream src/main.go:42-58

  # Also open the link in the browser
  repolink --open README.md`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLink(cmd, args, deps)
		},
	}

	// Define flags
	rootCmd.Flags().StringVarP(&remoteName, "remote", "r", "",
		"Remote to link against (default \"origin\")")
	rootCmd.Flags().BoolVarP(&openLink, "open", "o", false,
		"Open the link in the default browser")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose/debug logging")

	return rootCmd
}

// runLink executes the link resolution logic with injected dependencies.
func runLink(cmd *cobra.Command, args []string, deps *Dependencies) error {
	if deps == nil {
		return errors.New("dependencies not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	stderr := deps.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	filePath, lines, err := parseTarget(args[0])
	if err != nil {
		return err
	}

	// Set log level based on verbose flag (best-effort)
	if verbose {
		if err := os.Setenv("LOG_LEVEL", "debug"); err != nil {
			writeWarningf(stderr, "warning: could not set log level: %v\n", err)
		}
	}

	// Initialize logger
	log := deps.LoggerFactory()

	log.Info(ctx, "starting repolink", map[string]interface{}{
		"file":    filePath,
		"remote":  remoteName,
		"verbose": verbose,
	})

	// Load configuration
	cfg, err := deps.ConfigLoader()
	if err != nil {
		log.Error(ctx, "failed to load configuration", err, nil)
		return fmt.Errorf("configuration error: %w", err)
	}

	remote := remoteName
	if remote == "" {
		remote = cfg.DefaultRemote
	}

	// Discover the repository starting at the file's directory
	startDir := filepath.Dir(filePath)
	gitRepo, err := deps.GitRepoFactory(startDir, log)
	if err != nil {
		log.Error(ctx, "failed to open git repository", err, map[string]interface{}{
			"dir": startDir,
		})
		if errors.Is(err, domain.ErrRepositoryNotFound) {
			return fmt.Errorf("not inside a git repository: %s", filePath)
		}
		if errors.Is(err, domain.ErrBareRepository) {
			return fmt.Errorf("repository is bare; nothing to link")
		}
		return err
	}
	defer func() {
		if closeErr := gitRepo.Close(); closeErr != nil {
			log.Warn(ctx, "failed to close git repository", map[string]interface{}{
				"error": closeErr.Error(),
			})
		}
	}()

	// Create resolver and synthesize the link
	resolver := deps.ResolverFactory(gitRepo, deps.URLParserFactory(), log)
	result, err := resolver.Resolve(ctx, domain.LinkInput{
		RemoteName: remote,
		FilePath:   filePath,
		Lines:      lines,
	})
	if err != nil {
		log.Error(ctx, "failed to resolve link", err, nil)
		return translateError(err, remote, filePath)
	}

	// Write the link to stdout
	writer := deps.LinkWriterFactory()
	if err := writer.WriteLink(result.URL); err != nil {
		log.Error(ctx, "failed to write output", err, nil)
		return fmt.Errorf("output error: %w", err)
	}

	if openLink {
		open := deps.OpenInBrowser
		if open == nil {
			open = openInBrowser
		}
		if err := open(result.URL); err != nil {
			log.Error(ctx, "failed to open browser", err, nil)
			return fmt.Errorf("could not open browser: %w", err)
		}
	}

	log.Info(ctx, "link resolution complete", map[string]interface{}{
		"url":    result.URL,
		"remote": result.Remote,
		"path":   result.Path,
	})

	return nil
}

// translateError maps domain errors to the messages shown to the user.
// Anything unrecognized passes through untouched.
func translateError(err error, remote, filePath string) error {
	switch {
	case errors.Is(err, domain.ErrPathOutsideRepository):
		return fmt.Errorf("%s is outside the repository working directory", filePath)
	case errors.Is(err, domain.ErrInvalidHeadKind):
		return errors.New("HEAD is neither a branch nor a detached commit")
	case errors.Is(err, domain.ErrNoMatchingRemoteRef):
		return fmt.Errorf("cannot find a branch on remote %q matching the current branch", remote)
	case errors.Is(err, domain.ErrRemoteNotFound):
		return fmt.Errorf("remote %q is not configured", remote)
	case errors.Is(err, domain.ErrInvalidRemoteURL):
		return fmt.Errorf("could not parse the URL of remote %q", remote)
	case errors.Is(err, domain.ErrMissingHost), errors.Is(err, domain.ErrMissingOwner):
		return fmt.Errorf("the URL of remote %q has no host or owner to link to", remote)
	case errors.Is(err, domain.ErrUnsupportedHost):
		return err
	default:
		return err
	}
}

// targetSpanRE matches an optional ":LINE" or ":LO-HI" suffix on the path
// argument.
var targetSpanRE = regexp.MustCompile(`:(\d+)(?:-(\d+))?$`)

// parseTarget splits the positional argument into a file path and an optional
// line range.
func parseTarget(arg string) (string, *domain.LineRange, error) {
	m := targetSpanRE.FindStringSubmatchIndex(arg)
	if m == nil {
		return arg, nil, nil
	}

	path := arg[:m[0]]
	start, err := strconv.Atoi(arg[m[2]:m[3]])
	if err != nil {
		return "", nil, fmt.Errorf("invalid line number in %q: %w", arg, err)
	}
	end := start
	if m[4] >= 0 {
		end, err = strconv.Atoi(arg[m[4]:m[5]])
		if err != nil {
			return "", nil, fmt.Errorf("invalid line number in %q: %w", arg, err)
		}
	}

	lines, err := domain.NewLineRange(start, end)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %d-%d", err, start, end)
	}
	return path, lines, nil
}

// openInBrowser opens the URL with the platform's default handler.
func openInBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Run()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Run()
	default:
		return exec.Command("xdg-open", url).Run()
	}
}

// Execute runs the root command.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// writeWarningf writes a warning message to the given writer.
// This is a best-effort operation; errors are intentionally ignored
// because there is no recovery action if stderr writes fail.
func writeWarningf(w io.Writer, format string, args ...any) {
	_, err := fmt.Fprintf(w, format, args...)
	if err != nil {
		return
	}
}
