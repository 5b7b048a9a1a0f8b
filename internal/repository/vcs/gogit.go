package vcs

import (
	"context"
	"errors"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/oshokin/mkver/internal/logger"
)

// GoGit queries the repository in-process with go-git, so no git binary is needed.
type GoGit struct{}

// NewGoGit creates a go-git backed Querier.
func NewGoGit() *GoGit {
	return &GoGit{}
}

// HeadCommitSHA returns the hash HEAD points to.
func (g *GoGit) HeadCommitSHA(ctx context.Context, dir string) (string, error) {
	ref, _, err := g.head(ctx, dir)
	if err != nil {
		return "", err
	}

	return ref.Hash().String(), nil
}

// HeadCommitTime returns the committer time of the HEAD commit, the same value as `git log -1 --pretty=%ct`.
func (g *GoGit) HeadCommitTime(ctx context.Context, dir string) (time.Time, error) {
	ref, repo, err := g.head(ctx, dir)
	if err != nil {
		return time.Time{}, err
	}

	var commit *object.Commit

	commit, err = repo.CommitObject(ref.Hash())
	if err != nil {
		return time.Time{}, &CommandFailedError{Op: "read head commit", Detail: err.Error(), Err: err}
	}

	return time.Unix(commit.Committer.When.Unix(), 0), nil
}

// head opens the repository containing dir and resolves HEAD.
func (g *GoGit) head(ctx context.Context, dir string) (*plumbing.Reference, *git.Repository, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, &CommandFailedError{Op: "open repository", Detail: "timed out or canceled", Err: err}
	}

	logger.DebugKV(ctx, "Opening repository", "dir", dir)

	//nolint:exhaustruct // Only discovery of parent .git directories is needed.
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, nil, ErrNotARepository
		}

		return nil, nil, &CommandFailedError{Op: "open repository", Detail: err.Error(), Err: err}
	}

	ref, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil, ErrNoCommitsYet
		}

		return nil, nil, &CommandFailedError{Op: "resolve HEAD", Detail: err.Error(), Err: err}
	}

	return ref, repo, nil
}
