package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/oshokin/mkver/internal/domain/release"
	"github.com/oshokin/mkver/internal/logger"
)

// defaultGitBinary is looked up on PATH.
const defaultGitBinary = "git"

// GitCLI queries the repository by running the git binary.
type GitCLI struct {
	// binary is the git executable name or path.
	binary string
}

// NewGitCLI creates a Querier running the given git binary ("git" when empty).
func NewGitCLI(binary string) *GitCLI {
	if binary == "" {
		binary = defaultGitBinary
	}

	return &GitCLI{
		binary: binary,
	}
}

// HeadCommitSHA runs `git rev-parse -q --verify HEAD`.
func (g *GitCLI) HeadCommitSHA(ctx context.Context, dir string) (string, error) {
	out, err := g.run(ctx, dir, "rev-parse", "-q", "--verify", "HEAD")
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(out), nil
}

// HeadCommitTime runs `git log -1 --pretty=format:%ct` and converts the unix seconds.
func (g *GitCLI) HeadCommitTime(ctx context.Context, dir string) (time.Time, error) {
	out, err := g.run(ctx, dir, "log", "-1", "--pretty=format:%ct")
	if err != nil {
		return time.Time{}, err
	}

	seconds, err := strconv.ParseInt(strings.TrimSpace(out), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: unexpected git log output %q", release.ErrInvalidCommitTimestamp, out)
	}

	return time.Unix(seconds, 0), nil
}

// run executes git in dir and classifies any failure.
func (g *GitCLI) run(ctx context.Context, dir string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, g.binary, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.DebugKV(ctx, "Running git", "dir", dir, "args", args)

	if err := cmd.Run(); err != nil {
		return "", classify(ctx, "git "+args[0], err, stderr.String())
	}

	return stdout.String(), nil
}

// classify turns an exec failure into one of the package errors.
func classify(ctx context.Context, op string, err error, stderr string) error {
	if errors.Is(err, exec.ErrNotFound) {
		return ErrVCSToolMissing
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return &CommandFailedError{Op: op, Detail: "timed out or canceled", Err: ctxErr}
	}

	lower := strings.ToLower(stderr)

	switch {
	case strings.Contains(lower, "not a git repository"):
		return ErrNotARepository
	case strings.Contains(lower, "does not have any commits"),
		strings.Contains(lower, "bad default revision"),
		strings.Contains(lower, "unknown revision"):
		return ErrNoCommitsYet
	}

	// rev-parse -q --verify exits 1 silently when HEAD does not resolve.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 && strings.TrimSpace(stderr) == "" {
		return ErrNoCommitsYet
	}

	detail := firstLine(stderr)
	if detail == "" {
		detail = err.Error()
	}

	return &CommandFailedError{Op: op, Detail: detail, Err: err}
}

// firstLine returns the first non-empty stderr line without git's "fatal: " prefix.
func firstLine(s string) string {
	for line := range strings.SplitSeq(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		line = strings.TrimPrefix(line, "fatal: ")
		line = strings.TrimPrefix(line, "error: ")

		return line
	}

	return ""
}
