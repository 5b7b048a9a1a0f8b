package vcs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oshokin/mkver/internal/config"
)

// Querier reads head commit information from the repository containing a directory.
type Querier interface {
	// HeadCommitSHA returns the full SHA of the head commit.
	HeadCommitSHA(ctx context.Context, dir string) (string, error)
	// HeadCommitTime returns the committer time of the head commit.
	HeadCommitTime(ctx context.Context, dir string) (time.Time, error)
}

var (
	// ErrVCSToolMissing is returned when the git binary cannot be found.
	ErrVCSToolMissing = errors.New("git is not installed or not on PATH")
	// ErrNotARepository is returned when the directory is not inside a git work tree.
	ErrNotARepository = errors.New("not a git repository")
	// ErrNoCommitsYet is returned when the repository has no head commit.
	ErrNoCommitsYet = errors.New("git repository has no commits yet")
	// ErrVCSCommandFailed is matched by every CommandFailedError.
	ErrVCSCommandFailed = errors.New("git command failed")
	// errUnknownBackend is returned by New for an unsupported backend name.
	errUnknownBackend = errors.New("unknown vcs backend")
)

// CommandFailedError reports a VCS failure that fits no specific category.
type CommandFailedError struct {
	// Op names the failed query, e.g. "git log".
	Op string
	// Detail is a one-line summary of what went wrong.
	Detail string
	// Err is the underlying error, kept for errors.Is/As but not printed.
	Err error
}

// Error implements error.
func (e *CommandFailedError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s failed", e.Op)
	}

	return fmt.Sprintf("%s failed: %s", e.Op, e.Detail)
}

// Is lets errors.Is(err, ErrVCSCommandFailed) match.
func (e *CommandFailedError) Is(target error) bool {
	return target == ErrVCSCommandFailed
}

// Unwrap returns the underlying error.
func (e *CommandFailedError) Unwrap() error {
	return e.Err
}

// New returns the Querier for a backend name from config.
//
//nolint:ireturn // Backend is chosen at runtime.
func New(backend string) (Querier, error) {
	switch backend {
	case "", config.VCSGit:
		return NewGitCLI(""), nil
	case config.VCSGoGit:
		return NewGoGit(), nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownBackend, backend)
	}
}
