package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/commit-composer/internal/domain"
)

// mockPrompter implements domain.Prompter for testing.
type mockPrompter struct {
	answers   *domain.Answers
	err       error
	questions []domain.Question
}

func (m *mockPrompter) Prompt(_ context.Context, questions []domain.Question) (*domain.Answers, error) {
	m.questions = questions
	return m.answers, m.err
}

// mockWriter implements domain.MessageWriter for testing.
type mockWriter struct {
	written  []string
	writeErr error
}

func (m *mockWriter) WriteMessage(_ context.Context, message string) error {
	m.written = append(m.written, message)
	return m.writeErr
}

// mockCommitter implements domain.Committer for testing.
type mockCommitter struct {
	message string
	hash    string
	err     error
}

func (m *mockCommitter) Commit(_ context.Context, message string) (string, error) {
	m.message = message
	return m.hash, m.err
}

func TestSession_Run_Success(t *testing.T) {
	composer := NewComposer(testConfig(), &stubResolver{}, plainHighlighter{}, &mockLogger{})
	prompter := &mockPrompter{answers: &domain.Answers{Type: "fix", Subject: "resolve crash"}}
	stdout := &mockWriter{}
	clip := &mockWriter{}

	session := NewSession(composer, prompter, []domain.MessageWriter{stdout, clip}, nil, &mockLogger{})
	out, err := session.Run(context.Background())

	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "fix: resolve crash", out.Message)
	assert.Empty(t, out.CommitHash)
	assert.Equal(t, []string{"fix: resolve crash"}, stdout.written)
	assert.Equal(t, []string{"fix: resolve crash"}, clip.written)
	assert.Len(t, prompter.questions, 7)
}

func TestSession_Run_Commits(t *testing.T) {
	cfg := testConfig()
	cfg.PrefixWithBranch = true
	composer := NewComposer(cfg, &stubResolver{branches: []domain.Branch{{Name: "main"}}}, plainHighlighter{}, &mockLogger{})
	prompter := &mockPrompter{answers: &domain.Answers{Type: "feat", Subject: "add parser", PrefixWithBranchName: true}}
	committer := &mockCommitter{hash: "abc123"}

	session := NewSession(composer, prompter, nil, committer, &mockLogger{})
	out, err := session.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "feat: #main add parser", committer.message)
	assert.Equal(t, "abc123", out.CommitHash)
	assert.Equal(t, domain.Branch{Name: "main"}, out.Branch)
}

func TestSession_Run_Errors(t *testing.T) {
	answers := &domain.Answers{Type: "fix", Subject: "resolve crash"}

	tests := []struct {
		name      string
		resolver  *stubResolver
		prompter  *mockPrompter
		writer    *mockWriter
		committer *mockCommitter
		wantErr   error
	}{
		{
			name:     "branch resolution fails",
			resolver: &stubResolver{err: domain.ErrRepositoryNotFound},
			prompter: &mockPrompter{answers: answers},
			writer:   &mockWriter{},
			wantErr:  domain.ErrRepositoryNotFound,
		},
		{
			name:     "prompt aborted",
			resolver: &stubResolver{branches: []domain.Branch{{Name: "main"}}},
			prompter: &mockPrompter{err: domain.ErrPromptAborted},
			writer:   &mockWriter{},
			wantErr:  domain.ErrPromptAborted,
		},
		{
			name:     "write fails",
			resolver: &stubResolver{branches: []domain.Branch{{Name: "main"}}},
			prompter: &mockPrompter{answers: answers},
			writer:   &mockWriter{writeErr: assert.AnError},
			wantErr:  assert.AnError,
		},
		{
			name:      "nothing staged",
			resolver:  &stubResolver{branches: []domain.Branch{{Name: "main"}}},
			prompter:  &mockPrompter{answers: answers},
			writer:    &mockWriter{},
			committer: &mockCommitter{err: domain.ErrEmptyCommit},
			wantErr:   domain.ErrEmptyCommit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.PrefixWithBranch = true
			composer := NewComposer(cfg, tt.resolver, plainHighlighter{}, &mockLogger{})

			var committer domain.Committer
			if tt.committer != nil {
				committer = tt.committer
			}

			session := NewSession(composer, tt.prompter, []domain.MessageWriter{tt.writer}, committer, &mockLogger{})
			out, err := session.Run(context.Background())

			require.Error(t, err)
			assert.Nil(t, out)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}
