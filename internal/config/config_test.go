package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks defaults and rejected values.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Empty settings get defaults.
	cfg := new(Config)

	require.NoError(t, Validate(cfg))
	require.Equal(t, Default(), cfg)

	// Unknown backend.
	cfg = &Config{VCS: "svn"}

	require.ErrorIs(t, Validate(cfg), errUnknownVCS)

	// Backend names are case-insensitive.
	cfg = &Config{VCS: " Go-Git "}

	require.NoError(t, Validate(cfg))
	require.Equal(t, VCSGoGit, cfg.VCS)

	// Manifest must be a bare filename.
	cfg = &Config{Manifest: "sub/package.json"}

	require.ErrorIs(t, Validate(cfg), errManifestHasDirectory)

	require.ErrorIs(t, Validate(nil), errConfigIsNotSet)
}

// TestLoadMissingFileReturnsDefaults ensures an absent settings file is not an error.
func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

// TestLoadRejectsBrokenYAML ensures decode errors are reported.
func TestLoadRejectsBrokenYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeout: [oops"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	settings := &Config{
		Manifest: "manifest.json",
		VCS:      VCSGoGit,
		Timeout:  3 * time.Second,
		LogLevel: "debug",
		Output:   "src/Version.mjs",
	}

	require.NoError(t, Save(path, settings))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, settings, loaded)

	// File exists.
	_, err = os.Stat(path)
	require.NoError(t, err)
}
