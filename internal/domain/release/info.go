package release

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var (
	// ErrInvalidCommitSHA is returned when the VCS reports something other than a full 40-character hex SHA.
	ErrInvalidCommitSHA = errors.New("invalid commit SHA")
	// ErrInvalidCommitTimestamp is returned when the head commit time is before 2000-01-01 or in the future.
	ErrInvalidCommitTimestamp = errors.New("invalid commit timestamp")
)

// shaPattern matches a full git object name.
var shaPattern = regexp.MustCompile(`^[0-9a-fA-F]{40}$`)

// OutputPath describes the target file of a generation run.
type OutputPath struct {
	// Dir is the absolute directory holding the file.
	Dir string
	// Base is the file name including its extension.
	Base string
	// Ext is the extension including the leading dot, as written by the user.
	Ext string
}

// NewOutputPath splits a cleaned path into its directory, base name and extension.
func NewOutputPath(path string) OutputPath {
	path = filepath.Clean(path)

	return OutputPath{
		Dir:  filepath.Dir(path),
		Base: filepath.Base(path),
		Ext:  filepath.Ext(path),
	}
}

// Path joins the parts back into a single path.
func (p OutputPath) Path() string {
	return filepath.Join(p.Dir, p.Base)
}

// Name returns the base name without extension.
func (p OutputPath) Name() string {
	return strings.TrimSuffix(p.Base, p.Ext)
}

// VersionInfo is the record rendered into the generated file.
// It is built by Compose and not modified afterwards.
type VersionInfo struct {
	// Output is where the rendered file is written; its extension picks the format.
	Output OutputPath
	// Version is the version string exactly as declared by the manifest.
	Version string
	// Semver is the parsed form of Version, or nil when Version is not a semantic version.
	Semver *Semver
	// Release is Version plus "+" plus the commit timestamp tag.
	Release string
	// GitSHA is the lowercase 40-character SHA of the head commit.
	GitSHA string
	// GitDate is the head commit time.
	GitDate time.Time
}

// ComposeParams are the inputs gathered from the manifest and the VCS.
type ComposeParams struct {
	// Version is the declared version string.
	Version string
	// GitSHA is the raw head commit SHA reported by the VCS.
	GitSHA string
	// GitDate is the head commit time reported by the VCS.
	GitDate time.Time
	// Output is the target file.
	Output OutputPath
	// Now is the upper bound for GitDate; zero means time.Now().
	Now time.Time
}

// Compose validates the VCS data and builds the VersionInfo.
func Compose(params ComposeParams) (*VersionInfo, error) {
	sha := strings.TrimSpace(params.GitSHA)
	if !shaPattern.MatchString(sha) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCommitSHA, sha)
	}

	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}

	if err := ValidateCommitTime(params.GitDate, now); err != nil {
		return nil, err
	}

	semver, _ := ParseSemver(params.Version)

	return &VersionInfo{
		Output:  params.Output,
		Version: params.Version,
		Semver:  semver,
		Release: params.Version + "+" + Tag(params.GitDate),
		GitSHA:  strings.ToLower(sha),
		GitDate: params.GitDate,
	}, nil
}

// ValidateCommitTime rejects commit times before 2000-01-01 (local time) or after now.
func ValidateCommitTime(t, now time.Time) error {
	if t.Before(MinCommitTime()) || t.After(now) {
		return fmt.Errorf("%w: %d", ErrInvalidCommitTimestamp, t.Unix())
	}

	return nil
}

// MinCommitTime is the earliest commit time accepted, midnight 2000-01-01 in local time.
func MinCommitTime() time.Time {
	return time.Date(2000, time.January, 1, 0, 0, 0, 0, time.Local)
}
