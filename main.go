// Package main is the entry point for the commit-composer CLI application.
// commit-composer asks structured questions about a change and prints a
// conventional commit message built from the answers.
package main

import (
	"io"
	"os"

	"github.com/MyCarrier-DevOps/goLibMyCarrier/logger"

	"github.com/MyCarrier-DevOps/commit-composer/cmd"
	"github.com/MyCarrier-DevOps/commit-composer/internal/adapters/git"
	logadapter "github.com/MyCarrier-DevOps/commit-composer/internal/adapters/logger"
	"github.com/MyCarrier-DevOps/commit-composer/internal/adapters/output"
	"github.com/MyCarrier-DevOps/commit-composer/internal/adapters/prompt"
	"github.com/MyCarrier-DevOps/commit-composer/internal/adapters/terminal"
	"github.com/MyCarrier-DevOps/commit-composer/internal/domain"
	"github.com/MyCarrier-DevOps/commit-composer/internal/infrastructure/config"
)

func main() {
	// Wire up production dependencies
	deps := &cmd.Dependencies{
		LoggerFactory: newLoggerFactory(func() logadapter.Logger {
			return logger.NewZapLoggerFromConfig()
		}),

		ConfigLoader: loadConfig,

		BranchResolverFactory: func(log cmd.Logger) domain.BranchResolver {
			return git.NewBranchResolver(".", log)
		},

		HighlighterFactory: func(out io.Writer) domain.Highlighter {
			return terminal.NewColorHighlighter(prompt.IsTerminal(os.Stdin, out))
		},

		PrompterFactory: func(in io.Reader, out io.Writer, hl domain.Highlighter, log cmd.Logger) domain.Prompter {
			return newPrompter(in, out, hl, log)
		},

		MessageWriterFactory: func(out io.Writer) domain.MessageWriter {
			return output.NewWriter(out)
		},

		FileWriterFactory: func(path string) domain.MessageWriter {
			return output.NewFileWriter(path)
		},

		ClipboardWriterFactory: func() domain.MessageWriter {
			return output.NewClipboardWriter()
		},

		CommitterFactory: func(log cmd.Logger) (domain.Committer, error) {
			return git.NewGoGitCommitter(".", nil, log)
		},

		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	cmd.SetDefaultDependencies(deps)
	cmd.Execute()
}

// newLoggerFactory returns a factory that creates the shared logger on first
// use, once the command has exported the final log settings, and tags each
// returned logger with its component.
func newLoggerFactory(create func() logadapter.Logger) func(component string) cmd.Logger {
	var base *logadapter.ZapAdapter
	return func(component string) cmd.Logger {
		if base == nil {
			base = logadapter.NewZapAdapter(create())
		}
		return base.WithComponent(component)
	}
}

// loadConfig loads configuration from path, or from the default locations when
// path is empty.
func loadConfig(path string) (*cmd.AppConfig, error) {
	cfg, err := config.LoadWithOptions(config.Options{ConfigFile: path})
	if err != nil {
		return nil, err
	}
	return toAppConfig(cfg), nil
}

func toAppConfig(cfg *config.Config) *cmd.AppConfig {
	return &cmd.AppConfig{
		Composer:   cfg.Composer,
		ConfigFile: cfg.ConfigFile,
		LogLevel:   cfg.LogLevel,
		LogAppName: cfg.LogAppName,
	}
}

// newPrompter returns a line prompter; list questions get the arrow-key picker
// when both ends are a terminal.
func newPrompter(in io.Reader, out io.Writer, hl domain.Highlighter, log prompt.Logger) *prompt.LinePrompter {
	var picker prompt.ListPicker
	if prompt.IsTerminal(in, out) {
		picker = prompt.NewTeaPicker(in, out)
	}
	return prompt.NewLinePrompter(in, out, hl, picker, log)
}
