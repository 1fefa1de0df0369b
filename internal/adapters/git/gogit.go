// Package git provides adapters for interacting with local Git repositories.
// This package implements domain.BranchResolver and domain.Committer using go-git/v5.
package git

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/MyCarrier-DevOps/commit-composer/internal/domain"
)

// Logger defines the logging interface for the git adapter.
// This interface enables dependency injection and testability.
type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
}

// openRepository opens the repository containing path, searching parent
// directories for the .git entry.
// Returns domain.ErrRepositoryNotFound if no repository is found.
func openRepository(path string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrRepositoryNotFound, path)
	}
	return repo, nil
}

// BranchResolver implements domain.BranchResolver using go-git/v5.
// The repository is opened on every call, so each resolution reads HEAD afresh.
type BranchResolver struct {
	path   string
	logger Logger
}

// NewBranchResolver creates a new BranchResolver rooted at the given path.
// Nothing is read until ResolveBranch is called.
func NewBranchResolver(path string, log Logger) *BranchResolver {
	return &BranchResolver{
		path:   path,
		logger: log,
	}
}

// ResolveBranch reads HEAD without following it and returns the branch it points to.
// Returns a detached Branch when HEAD holds a commit hash or a non-branch reference.
// Returns domain.ErrRepositoryNotFound if the path is not inside a Git repository.
func (r *BranchResolver) ResolveBranch(ctx context.Context) (domain.Branch, error) {
	if err := ctx.Err(); err != nil {
		return domain.Branch{}, err
	}

	repo, err := openRepository(r.path)
	if err != nil {
		return domain.Branch{}, err
	}

	// HEAD may point at an unborn branch, so it is read unresolved
	head, err := repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return domain.Branch{}, fmt.Errorf("failed to read HEAD: %w", err)
	}

	if head.Type() != plumbing.SymbolicReference || !head.Target().IsBranch() {
		r.logger.Warn(ctx, "HEAD is detached; branch name will be empty", map[string]interface{}{
			"head": head.String(),
			"path": r.path,
		})
		return domain.Branch{IsDetached: true}, nil
	}

	branch := domain.Branch{Name: head.Target().Short()}

	r.logger.Debug(ctx, "resolved branch", map[string]interface{}{
		"branch": branch.Name,
		"path":   r.path,
	})

	return branch, nil
}

// GoGitCommitter implements domain.Committer using go-git/v5.
// It commits whatever is currently staged in the index.
type GoGitCommitter struct {
	repo   *git.Repository
	path   string
	author *object.Signature
	logger Logger
}

// NewGoGitCommitter creates a new GoGitCommitter for the repository containing path.
// When author is nil the author and committer are read from the Git configuration.
// Returns domain.ErrRepositoryNotFound if the path is not inside a Git repository.
func NewGoGitCommitter(path string, author *object.Signature, log Logger) (*GoGitCommitter, error) {
	repo, err := openRepository(path)
	if err != nil {
		return nil, err
	}

	return &GoGitCommitter{
		repo:   repo,
		path:   path,
		author: author,
		logger: log,
	}, nil
}

// Commit creates a commit of the staged changes and returns its hash.
// Returns domain.ErrEmptyCommit if the index matches HEAD.
func (c *GoGitCommitter) Commit(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	wt, err := c.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to open worktree: %w", err)
	}

	opts := &git.CommitOptions{}
	if c.author != nil {
		opts.Author = c.author
	}

	hash, err := wt.Commit(message, opts)
	if err != nil {
		if errors.Is(err, git.ErrEmptyCommit) {
			return "", fmt.Errorf("%w: %s", domain.ErrEmptyCommit, c.path)
		}
		return "", fmt.Errorf("failed to commit: %w", err)
	}

	c.logger.Debug(ctx, "created commit", map[string]interface{}{
		"hash": hash.String(),
		"path": c.path,
	})

	return hash.String(), nil
}
