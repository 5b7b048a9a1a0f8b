package release

import (
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// maxSafeInteger is the largest integer generated code can hold exactly in a number.
const maxSafeInteger = 1<<53 - 1

// Semver is the major.minor.patch[-prerelease] breakdown of a version string.
type Semver struct {
	// Major is the major version number.
	Major int64
	// Minor is the minor version number.
	Minor int64
	// Patch is the patch version number.
	Patch int64
	// Prerelease holds the dot-separated prerelease identifiers in order.
	// Numeric identifiers are int64, all others are string. Never nil.
	Prerelease []any
}

// ParseSemver parses a semantic version. A leading "v" or "=" and surrounding
// whitespace are tolerated; build metadata is accepted and dropped.
// The second result is false when version is not a full major.minor.patch semver.
func ParseSemver(version string) (*Semver, bool) {
	s := strings.TrimLeft(strings.TrimSpace(version), "=v")
	v := "v" + s

	if !semver.IsValid(v) {
		return nil, false
	}

	// x/mod accepts "v1" and "v1.2" shorthands; a declared version must be complete.
	core := s
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core = core[:i]
	}

	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return nil, false
	}

	numbers := make([]int64, 0, len(parts))

	for _, part := range parts {
		n, ok := safeInteger(part)
		if !ok {
			return nil, false
		}

		numbers = append(numbers, n)
	}

	return &Semver{
		Major:      numbers[0],
		Minor:      numbers[1],
		Patch:      numbers[2],
		Prerelease: prereleaseIdentifiers(semver.Prerelease(v)),
	}, true
}

// prereleaseIdentifiers splits "-rc.1" into ["rc", 1].
func prereleaseIdentifiers(prerelease string) []any {
	prerelease = strings.TrimPrefix(prerelease, "-")
	if prerelease == "" {
		return []any{}
	}

	fields := strings.Split(prerelease, ".")
	ids := make([]any, 0, len(fields))

	for _, field := range fields {
		if n, ok := safeInteger(field); ok {
			ids = append(ids, n)
			continue
		}

		ids = append(ids, field)
	}

	return ids
}

// safeInteger parses an all-digit identifier that fits in a generated number.
func safeInteger(s string) (int64, bool) {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, false
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n > maxSafeInteger {
		return 0, false
	}

	return n, true
}
