package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/MyCarrier-DevOps/commit-composer/internal/domain"
)

// Session drives one composition: it asks the plugin's questions through the
// prompt engine, composes the message and hands it to every configured output.
type Session struct {
	plugin    domain.PrompterPlugin
	prompter  domain.Prompter
	writers   []domain.MessageWriter
	committer domain.Committer
	logger    Logger
}

// NewSession creates a new Session with the given dependencies.
// committer may be nil when no commit should be created.
func NewSession(
	plugin domain.PrompterPlugin,
	prompter domain.Prompter,
	writers []domain.MessageWriter,
	committer domain.Committer,
	log Logger,
) *Session {
	return &Session{
		plugin:    plugin,
		prompter:  prompter,
		writers:   writers,
		committer: committer,
		logger:    log,
	}
}

// Run executes the session and returns the composed message.
func (s *Session) Run(ctx context.Context) (*domain.SessionOutput, error) {
	questions, err := s.plugin.Questions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build questions: %w", err)
	}

	s.logger.Debug(ctx, "starting composition", map[string]interface{}{
		"questions": len(questions),
	})

	answers, err := s.prompter.Prompt(ctx, questions)
	if err != nil {
		if errors.Is(err, domain.ErrPromptAborted) {
			s.logger.Warn(ctx, "composition aborted by user", nil)
		}
		return nil, fmt.Errorf("failed to collect answers: %w", err)
	}

	message, err := s.plugin.OnComplete(ctx, *answers)
	if err != nil {
		return nil, fmt.Errorf("failed to compose message: %w", err)
	}

	output := &domain.SessionOutput{Message: message}
	if b, ok := s.plugin.(interface{ Branch() domain.Branch }); ok {
		output.Branch = b.Branch()
	}

	for _, w := range s.writers {
		if err := w.WriteMessage(ctx, message); err != nil {
			return nil, fmt.Errorf("failed to write message: %w", err)
		}
	}

	if s.committer != nil {
		hash, err := s.committer.Commit(ctx, message)
		if err != nil {
			return nil, fmt.Errorf("failed to create commit: %w", err)
		}
		output.CommitHash = hash
	}

	s.logger.Debug(ctx, "composition complete", map[string]interface{}{
		"type":        answers.Type,
		"scope":       answers.Scope,
		"is_breaking": answers.IsBreaking,
		"branch":      output.Branch.Name,
		"commit_hash": output.CommitHash,
	})

	return output, nil
}
