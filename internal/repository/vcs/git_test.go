package vcs

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/mkver/internal/repository/vcs/vcstest"
)

// requireGit skips tests that need a real git binary.
func requireGit(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath(defaultGitBinary); err != nil {
		t.Skip("git binary not available")
	}
}

// TestGitCLI_ToolMissing reports a missing binary as its own category.
func TestGitCLI_ToolMissing(t *testing.T) {
	t.Parallel()

	q := NewGitCLI("mkver-no-such-git-binary")

	_, err := q.HeadCommitSHA(context.Background(), t.TempDir())
	require.ErrorIs(t, err, ErrVCSToolMissing)

	_, err = q.HeadCommitTime(context.Background(), t.TempDir())
	require.ErrorIs(t, err, ErrVCSToolMissing)
}

// TestGitCLI_HeadCommit matches the go-git backend on a real repository.
func TestGitCLI_HeadCommit(t *testing.T) {
	t.Parallel()
	requireGit(t)

	dir := t.TempDir()
	when := time.Date(2021, time.February, 16, 18, 51, 48, 0, time.UTC)
	sha := vcstest.InitRepo(t, dir, map[string]string{"package.json": `{"version":"1.0.0"}`}, when)

	q := NewGitCLI("")

	gotSHA, err := q.HeadCommitSHA(context.Background(), dir)
	require.NoError(t, err)
	require.Equal(t, sha, gotSHA)

	gotTime, err := q.HeadCommitTime(context.Background(), dir)
	require.NoError(t, err)
	require.True(t, when.Equal(gotTime))
}

// TestGitCLI_NoCommitsYet maps an unborn HEAD for both queries.
func TestGitCLI_NoCommitsYet(t *testing.T) {
	t.Parallel()
	requireGit(t)

	dir := t.TempDir()
	vcstest.InitEmptyRepo(t, dir)

	q := NewGitCLI("")

	_, err := q.HeadCommitSHA(context.Background(), dir)
	require.ErrorIs(t, err, ErrNoCommitsYet)

	_, err = q.HeadCommitTime(context.Background(), dir)
	require.ErrorIs(t, err, ErrNoCommitsYet)
}

// TestClassify covers stderr patterns without running git.
func TestClassify(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	errExit := errors.New("exit status 128")

	require.ErrorIs(t,
		classify(ctx, "git log", errExit, "fatal: not a git repository (or any of the parent directories): .git\n"),
		ErrNotARepository)
	require.ErrorIs(t,
		classify(ctx, "git log", errExit, "fatal: your current branch 'main' does not have any commits yet\n"),
		ErrNoCommitsYet)
	require.ErrorIs(t,
		classify(ctx, "git log", errExit, "fatal: bad default revision 'HEAD'\n"),
		ErrNoCommitsYet)
	require.ErrorIs(t,
		classify(ctx, "git log", &exec.Error{Name: "git", Err: exec.ErrNotFound}, ""),
		ErrVCSToolMissing)

	err := classify(ctx, "git log", errExit, "\nfatal: detected dubious ownership in repository\nmore noise\n")
	require.ErrorIs(t, err, ErrVCSCommandFailed)
	require.EqualError(t, err, "git log failed: detected dubious ownership in repository")

	err = classify(ctx, "git rev-parse", errExit, "")
	require.EqualError(t, err, "git rev-parse failed: exit status 128")

	canceled, cancel := context.WithCancel(ctx)
	cancel()

	err = classify(canceled, "git log", errExit, "")
	require.ErrorIs(t, err, ErrVCSCommandFailed)
	require.ErrorIs(t, err, context.Canceled)
}
