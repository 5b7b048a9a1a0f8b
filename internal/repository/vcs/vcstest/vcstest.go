// Package vcstest creates throwaway git repositories and fake queriers for tests.
package vcstest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// InitRepo initializes a repository in dir, writes files, commits them at
// when and returns the commit SHA.
func InitRepo(t *testing.T, dir string, files map[string]string, when time.Time) string {
	t.Helper()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	for name, contents := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

		_, err = wt.Add(name)
		require.NoError(t, err)
	}

	//nolint:exhaustruct // Committer defaults to the author.
	hash, err := wt.Commit("test-commit", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "anonymous",
			Email: "anon@example.com",
			When:  when,
		},
	})
	require.NoError(t, err)

	return hash.String()
}

// InitEmptyRepo initializes a repository in dir without any commit.
func InitEmptyRepo(t *testing.T, dir string) {
	t.Helper()

	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)
}

// Querier is an in-memory vcs.Querier returning fixed answers.
type Querier struct {
	// SHA is returned by HeadCommitSHA.
	SHA string
	// Time is returned by HeadCommitTime.
	Time time.Time
	// SHAErr is returned by HeadCommitSHA when set.
	SHAErr error
	// TimeErr is returned by HeadCommitTime when set.
	TimeErr error
	// Dirs records every directory queried, in order.
	Dirs []string
}

// HeadCommitSHA returns the configured SHA or error.
func (q *Querier) HeadCommitSHA(_ context.Context, dir string) (string, error) {
	q.Dirs = append(q.Dirs, dir)

	return q.SHA, q.SHAErr
}

// HeadCommitTime returns the configured time or error.
func (q *Querier) HeadCommitTime(_ context.Context, dir string) (time.Time, error) {
	q.Dirs = append(q.Dirs, dir)

	return q.Time, q.TimeErr
}
