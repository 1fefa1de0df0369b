// Package cmd provides the CLI commands for commit-composer.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/commit-composer/internal/domain"
	"github.com/MyCarrier-DevOps/commit-composer/internal/usecases"
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
	// LoggerFactory creates a logger whose entries carry the given component.
	// It is called only after LOG_LEVEL and LOG_APP_NAME hold their final values.
	LoggerFactory func(component string) Logger

	// ConfigLoader loads application configuration.
	// path is the --config flag value and may be empty.
	ConfigLoader func(path string) (*AppConfig, error)

	// BranchResolverFactory creates the resolver for the working directory's branch.
	BranchResolverFactory func(log Logger) domain.BranchResolver

	// HighlighterFactory creates the pass/fail emphasis for the prompt output.
	HighlighterFactory func(out io.Writer) domain.Highlighter

	// PrompterFactory creates the prompt engine reading in and writing questions to out.
	PrompterFactory func(in io.Reader, out io.Writer, hl domain.Highlighter, log Logger) domain.Prompter

	// MessageWriterFactory creates the writer printing the message to out.
	MessageWriterFactory func(out io.Writer) domain.MessageWriter

	// FileWriterFactory creates a writer storing the message at path.
	FileWriterFactory func(path string) domain.MessageWriter

	// ClipboardWriterFactory creates a writer copying the message to the clipboard.
	ClipboardWriterFactory func() domain.MessageWriter

	// CommitterFactory creates a committer for the working directory's repository.
	CommitterFactory func(log Logger) (domain.Committer, error)

	// Stdin is the reader answers are read from.
	Stdin io.Reader

	// Stdout is the writer for the composed message.
	Stdout io.Writer

	// Stderr is the writer for questions, warnings and errors.
	Stderr io.Writer
}

// AppConfig holds application configuration loaded by ConfigLoader.
type AppConfig struct {
	// Composer is passed to the message composer.
	Composer domain.Config

	// ConfigFile is the config file that was read, empty when none was found.
	ConfigFile string

	// LogLevel is the log level setting.
	LogLevel string

	// LogAppName is the application name for logging.
	LogAppName string
}

// Environment variables read by the logger when it is created.
const (
	envLogLevel   = "LOG_LEVEL"
	envLogAppName = "LOG_APP_NAME"
)

// Command-line flags.
var (
	configPath string
	outputPath string
	copyToClip bool
	commit     bool
	quiet      bool
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

// NewRootCmd creates the root command for commit-composer.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithDeps(defaultDeps)
}

// NewRootCmdWithDeps creates the root command with explicit dependencies.
// This is the primary constructor that enables testing via dependency injection.
func NewRootCmdWithDeps(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "commit-composer",
		Short: "Compose a conventional commit message interactively",
		Long: `commit-composer asks for the type, scope, subject, body and breaking
changes of a commit and assembles a conventional commit message.

Questions are written to stderr and the finished message to stdout, so the
output can be captured by scripts and Git hooks. When the configuration sets
prefixWithBranch, the current branch name can be added to the header.

Configuration is read from .commit-composer.{yaml,json,toml} in the current
directory or the home directory, from .env, and from CZ_* variables.

Examples:
  # Print a message
  commit-composer

  # Use it from a prepare-commit-msg hook
  commit-composer --quiet --output "$1"

  # Commit the staged changes with the composed message
  commit-composer --commit

  # Copy the message to the clipboard
  commit-composer --copy`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompose(cmd, deps)
		},
	}

	// Define flags
	rootCmd.Flags().StringVar(&configPath, "config", "",
		"Path to a config file (default .commit-composer.* in the current or home directory)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Also write the message to this file (e.g. .git/COMMIT_EDITMSG)")
	rootCmd.Flags().BoolVar(&copyToClip, "copy", false,
		"Copy the message to the clipboard")
	rootCmd.Flags().BoolVarP(&commit, "commit", "c", false,
		"Commit the staged changes with the message")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false,
		"Do not print the message to stdout")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose/debug logging")

	return rootCmd
}

// runCompose executes one composition with injected dependencies.
func runCompose(cmd *cobra.Command, deps *Dependencies) error {
	if deps == nil {
		return errors.New("dependencies not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	stdin := deps.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	stdout := deps.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := deps.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	if quiet && outputPath == "" && !copyToClip && !commit {
		return errors.New("--quiet needs --output, --copy or --commit")
	}

	cfg, err := deps.ConfigLoader(configPath)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	exportLogSettings(stderr, cfg)
	log := deps.LoggerFactory("cmd")

	log.Debug(ctx, "starting commit-composer", map[string]interface{}{
		"config_file": cfg.ConfigFile,
		"output":      outputPath,
		"copy":        copyToClip,
		"commit":      commit,
		"verbose":     verbose,
	})

	var committer domain.Committer
	if commit {
		committer, err = deps.CommitterFactory(deps.LoggerFactory("git"))
		if err != nil {
			log.Error(ctx, "failed to open git repository", err, nil)
			if errors.Is(err, domain.ErrRepositoryNotFound) {
				return errors.New("not a git repository; --commit needs one")
			}
			return err
		}
	}

	hl := deps.HighlighterFactory(stderr)
	composerLog := deps.LoggerFactory("composer")
	resolver := deps.BranchResolverFactory(deps.LoggerFactory("git"))
	composer := usecases.NewComposer(cfg.Composer, resolver, hl, composerLog)
	prompter := deps.PrompterFactory(stdin, stderr, hl, deps.LoggerFactory("prompt"))

	session := usecases.NewSession(composer, prompter, buildWriters(deps, stdout), committer, composerLog)
	result, err := session.Run(ctx)
	if err != nil {
		log.Error(ctx, "failed to compose commit message", err, nil)
		if errors.Is(err, domain.ErrPromptAborted) {
			return errors.New("aborted")
		}
		if errors.Is(err, domain.ErrRepositoryNotFound) {
			return errors.New("not a git repository; prefixWithBranch needs one")
		}
		if errors.Is(err, domain.ErrEmptyCommit) {
			return errors.New("nothing staged to commit; use 'git add' first")
		}
		return err
	}

	if result.CommitHash != "" {
		writeWarningf(stderr, "created commit %s\n", shortHash(result.CommitHash))
	}

	return nil
}

// exportLogSettings publishes the configured log level and app name to the
// environment the logger reads; --verbose forces debug.
func exportLogSettings(stderr io.Writer, cfg *AppConfig) {
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}

	settings := map[string]string{
		envLogLevel:   level,
		envLogAppName: cfg.LogAppName,
	}
	for key, value := range settings {
		if value == "" {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			writeWarningf(stderr, "warning: could not set %s: %v\n", key, err)
		}
	}
}

// buildWriters returns the outputs selected by the flags, stdout first.
func buildWriters(deps *Dependencies, stdout io.Writer) []domain.MessageWriter {
	var writers []domain.MessageWriter
	if !quiet {
		writers = append(writers, deps.MessageWriterFactory(stdout))
	}
	if outputPath != "" {
		writers = append(writers, deps.FileWriterFactory(outputPath))
	}
	if copyToClip {
		writers = append(writers, deps.ClipboardWriterFactory())
	}
	return writers
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
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
		// Intentionally ignored: no recovery action for failed stderr writes
		return
	}
}
