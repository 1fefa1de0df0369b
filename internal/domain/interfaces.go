// Package domain defines the core entities and interfaces for commit-composer.
// This package contains no external dependencies and represents the innermost layer
// of the CLEAN architecture.
package domain

import (
	"context"
	"errors"
	"fmt"
)

// Domain errors for branch resolution, prompting and delivery.
var (
	// ErrRepositoryNotFound indicates no Git repository was found from the working directory upward.
	ErrRepositoryNotFound = errors.New("git repository not found")

	// ErrPromptAborted indicates the user interrupted the question sequence.
	ErrPromptAborted = errors.New("prompt aborted")

	// ErrEmptyCommit indicates there are no staged changes to commit.
	ErrEmptyCommit = errors.New("nothing staged to commit")

	// ErrSubjectRequired indicates the normalized subject is empty.
	ErrSubjectRequired = errors.New("subject is required")

	// ErrSubjectTooLong indicates the normalized subject exceeds the computed maximum.
	ErrSubjectTooLong = errors.New("length exceeded")

	// ErrBodyRequired indicates a breaking change was declared without a body.
	ErrBodyRequired = errors.New("body required")
)

// ValidationError is returned by question validators. The prompt engine shows it
// next to the question and asks again; it never leaves the question loop.
type ValidationError struct {
	Err    error
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + e.Detail
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// UnknownQuestionError is returned when an answer is stored under a name the
// Answers record does not know.
type UnknownQuestionError struct {
	Name string
}

func (e *UnknownQuestionError) Error() string {
	return fmt.Sprintf("unknown question %q", e.Name)
}

// BranchResolver provides the current branch of the repository containing the working directory.
type BranchResolver interface {
	// ResolveBranch reads HEAD without following it.
	// Returns a detached Branch when HEAD is not a symbolic branch reference.
	// Returns ErrRepositoryNotFound if no repository is found.
	ResolveBranch(ctx context.Context) (Branch, error)
}

// Prompter asks an ordered list of questions and returns the collected answers.
type Prompter interface {
	// Prompt asks each question whose When predicate holds, re-asking on validation errors.
	// Returns ErrPromptAborted if the user ends input before the sequence completes.
	Prompt(ctx context.Context, questions []Question) (*Answers, error)
}

// Highlighter renders text in two visually distinct states.
type Highlighter interface {
	Pass(s string) string
	Fail(s string) string
}

// MessageWriter delivers the composed message to an output destination.
type MessageWriter interface {
	// WriteMessage writes the complete commit message.
	WriteMessage(ctx context.Context, message string) error
}

// Committer creates a commit from the staged changes of the current worktree.
type Committer interface {
	// Commit creates the commit and returns its hash.
	// Returns ErrEmptyCommit if nothing is staged.
	Commit(ctx context.Context, message string) (string, error)
}

// PrompterPlugin is what the composer exposes to its host: the question set
// and the completion function that turns answers into the final message.
type PrompterPlugin interface {
	Questions(ctx context.Context) ([]Question, error)
	OnComplete(ctx context.Context, answers Answers) (string, error)
}
