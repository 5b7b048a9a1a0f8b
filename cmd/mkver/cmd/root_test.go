package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/mkver/internal/repository/vcs/vcstest"
)

// TestRun_Help prints usage and writes nothing.
func TestRun_Help(t *testing.T) {
	t.Parallel()

	for _, flag := range []string{"--help", "-h"} {
		var stdout, stderr bytes.Buffer

		code := run(context.Background(), []string{flag}, &stdout, &stderr)

		require.Equal(t, 0, code, flag)
		require.Contains(t, stdout.String(), "Usage:")
		require.Contains(t, stdout.String(), "./Version.ts")
		require.Empty(t, stderr.String())
	}
}

// TestRun_Generates writes the requested file and prints the summary.
func TestRun_Generates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	when := time.Date(2022, time.March, 4, 5, 6, 7, 0, time.UTC)
	sha := vcstest.InitRepo(t, dir, map[string]string{"package.json": `{"version":"1.2.3"}`}, when)
	target := filepath.Join(dir, "lib", "ver.cjs")

	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{
		"--vcs", "go-git",
		"--config", filepath.Join(dir, "absent.yaml"),
		"--print",
		target,
	}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	require.Contains(t, stdout.String(), sha)

	contents, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Contains(t, string(contents), `exports.version = "1.2.3";`)
}

// TestRun_FailureExitsNonZero reports an unsupported extension on stderr.
func TestRun_FailureExitsNonZero(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "ver.go")

	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"--config", filepath.Join(t.TempDir(), "absent.yaml"), target}, &stdout, &stderr)

	require.Equal(t, 1, code)
	require.Contains(t, stderr.String(), "Failed: ")
	require.Contains(t, stderr.String(), "unsupported file extension")
	require.Contains(t, stderr.String(), target)

	_, err := os.Stat(target)
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestRun_TooManyArgs rejects more than one FILE.
func TestRun_TooManyArgs(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"a.ts", "b.ts"}, &stdout, &stderr)

	require.Equal(t, 1, code)
	require.Contains(t, stderr.String(), "Failed: ")
}
