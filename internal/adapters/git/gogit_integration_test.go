// Package git provides adapters for interacting with local Git repositories.
package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/commit-composer/internal/domain"
)

// testLogger is a minimal logger for testing that records warnings.
type testLogger struct {
	warnings []string
}

func (l *testLogger) Debug(_ context.Context, _ string, _ map[string]interface{}) {}
func (l *testLogger) Warn(_ context.Context, msg string, _ map[string]interface{}) {
	l.warnings = append(l.warnings, msg)
}

func testSignature() *object.Signature {
	return &object.Signature{
		Name:  "Test User",
		Email: "test@example.com",
		When:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

// setupTestRepo creates a temporary repository whose HEAD points at branch.
func setupTestRepo(t *testing.T, branch string) (string, *git.Repository) {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	head := plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName(branch))
	require.NoError(t, repo.Storer.SetReference(head))

	return dir, repo
}

// commitFile writes a file, stages it and commits it.
func commitFile(t *testing.T, dir string, repo *git.Repository, name, content string) plumbing.Hash {
	t.Helper()

	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(name)
	require.NoError(t, err)

	hash, err := wt.Commit("test commit", &git.CommitOptions{Author: testSignature()})
	require.NoError(t, err)
	return hash
}

func TestBranchResolver_UnbornBranch(t *testing.T) {
	dir, _ := setupTestRepo(t, "main")

	resolver := NewBranchResolver(dir, &testLogger{})
	branch, err := resolver.ResolveBranch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.Branch{Name: "main"}, branch)
	assert.True(t, branch.Present())
}

func TestBranchResolver_NestedBranchName(t *testing.T) {
	dir, repo := setupTestRepo(t, "feature/login-form")
	commitFile(t, dir, repo, "a.txt", "a")

	resolver := NewBranchResolver(dir, &testLogger{})
	branch, err := resolver.ResolveBranch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "feature/login-form", branch.Name)
}

func TestBranchResolver_SearchesParentDirectories(t *testing.T) {
	dir, _ := setupTestRepo(t, "main")
	nested := filepath.Join(dir, "pkg", "sub")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	resolver := NewBranchResolver(nested, &testLogger{})
	branch, err := resolver.ResolveBranch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "main", branch.Name)
}

func TestBranchResolver_DetachedHead(t *testing.T) {
	dir, repo := setupTestRepo(t, "main")
	hash := commitFile(t, dir, repo, "a.txt", "a")
	require.NoError(t, repo.Storer.SetReference(plumbing.NewHashReference(plumbing.HEAD, hash)))

	log := &testLogger{}
	resolver := NewBranchResolver(dir, log)
	branch, err := resolver.ResolveBranch(context.Background())

	require.NoError(t, err)
	assert.True(t, branch.IsDetached)
	assert.Empty(t, branch.Name)
	assert.False(t, branch.Present())
	assert.Len(t, log.warnings, 1)
}

func TestBranchResolver_ReadsHeadOnEveryCall(t *testing.T) {
	dir, repo := setupTestRepo(t, "main")
	resolver := NewBranchResolver(dir, &testLogger{})
	ctx := context.Background()

	first, err := resolver.ResolveBranch(ctx)
	require.NoError(t, err)

	head := plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName("release"))
	require.NoError(t, repo.Storer.SetReference(head))

	second, err := resolver.ResolveBranch(ctx)
	require.NoError(t, err)

	assert.Equal(t, "main", first.Name)
	assert.Equal(t, "release", second.Name)
}

func TestBranchResolver_NotARepository(t *testing.T) {
	resolver := NewBranchResolver(t.TempDir(), &testLogger{})

	_, err := resolver.ResolveBranch(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRepositoryNotFound)
}

func TestBranchResolver_CanceledContext(t *testing.T) {
	dir, _ := setupTestRepo(t, "main")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBranchResolver(dir, &testLogger{}).ResolveBranch(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestGoGitCommitter_Commit(t *testing.T) {
	dir, repo := setupTestRepo(t, "main")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("a.txt")
	require.NoError(t, err)

	committer, err := NewGoGitCommitter(dir, testSignature(), &testLogger{})
	require.NoError(t, err)

	message := "feat(core): add parser\n\nBREAKING CHANGE: new API"
	hash, err := committer.Commit(context.Background(), message)

	require.NoError(t, err)
	assert.Len(t, hash, 40)

	commit, err := repo.CommitObject(plumbing.NewHash(hash))
	require.NoError(t, err)
	assert.Equal(t, message, commit.Message)
	assert.Equal(t, "Test User", commit.Author.Name)

	head, err := repo.Head()
	require.NoError(t, err)
	assert.Equal(t, plumbing.NewBranchReferenceName("main"), head.Name())
}

func TestGoGitCommitter_NothingStaged(t *testing.T) {
	dir, repo := setupTestRepo(t, "main")
	commitFile(t, dir, repo, "a.txt", "a")

	committer, err := NewGoGitCommitter(dir, testSignature(), &testLogger{})
	require.NoError(t, err)

	_, err = committer.Commit(context.Background(), "fix: nothing")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyCommit)
}

func TestNewGoGitCommitter_NotARepository(t *testing.T) {
	committer, err := NewGoGitCommitter(t.TempDir(), nil, &testLogger{})

	require.Error(t, err)
	assert.Nil(t, committer)
	assert.ErrorIs(t, err, domain.ErrRepositoryNotFound)
}
