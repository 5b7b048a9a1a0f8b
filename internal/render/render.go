package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/oshokin/mkver/internal/domain/release"
)

// Field names exported by every generated module, in output order.
const (
	FieldVersion           = "version"
	FieldVersionMajor      = "versionMajor"
	FieldVersionMinor      = "versionMinor"
	FieldVersionPatch      = "versionPatch"
	FieldVersionPrerelease = "versionPrerelease"
	FieldRelease           = "release"
	FieldGitSHA            = "gitSha"
	FieldGitDate           = "gitDate"
)

// literals encodes strings and arrays the way JSON.stringify does: no HTML
// escaping, invalid UTF-8 replaced.
//
//nolint:gochecknoglobals // Frozen sonic API is immutable.
var literals = sonic.Config{ValidateString: true}.Froze()

// binding is one exported name with its source-code value.
type binding struct {
	name  string
	value string
}

// Render produces the module text for info in the format chosen by info.Output.
func Render(info *release.VersionInfo) ([]byte, error) {
	format, err := FormatFor(info.Output.Path())
	if err != nil {
		return nil, err
	}

	bindings, err := collect(info)
	if err != nil {
		return nil, err
	}

	var b strings.Builder

	if format == CommonModule {
		b.WriteString("\"use strict\";\n")
		b.WriteString("Object.defineProperty(exports, \"__esModule\", { value: true });\n")
	}

	names := make([]string, 0, len(bindings))

	for _, bind := range bindings {
		names = append(names, bind.name)

		if format == CommonModule {
			fmt.Fprintf(&b, "exports.%s = %s;\n", bind.name, bind.value)
		} else {
			fmt.Fprintf(&b, "export const %s = %s;\n", bind.name, bind.value)
		}
	}

	if format.HasDefaultExport() {
		fmt.Fprintf(&b, "export default {%s};\n", strings.Join(names, ","))
	}

	return []byte(b.String()), nil
}

// collect lists the populated fields of info as source literals.
func collect(info *release.VersionInfo) ([]binding, error) {
	version, err := stringLiteral(info.Version)
	if err != nil {
		return nil, err
	}

	bindings := []binding{{FieldVersion, version}}

	if sv := info.Semver; sv != nil {
		ids := sv.Prerelease
		if ids == nil {
			ids = []any{}
		}

		prerelease, err := literals.MarshalToString(ids)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", FieldVersionPrerelease, err)
		}

		bindings = append(bindings,
			binding{FieldVersionMajor, strconv.FormatInt(sv.Major, 10)},
			binding{FieldVersionMinor, strconv.FormatInt(sv.Minor, 10)},
			binding{FieldVersionPatch, strconv.FormatInt(sv.Patch, 10)},
			binding{FieldVersionPrerelease, prerelease},
		)
	}

	rel, err := stringLiteral(info.Release)
	if err != nil {
		return nil, err
	}

	sha, err := stringLiteral(info.GitSHA)
	if err != nil {
		return nil, err
	}

	return append(bindings,
		binding{FieldRelease, rel},
		binding{FieldGitSHA, sha},
		binding{FieldGitDate, fmt.Sprintf("new Date(%d)", info.GitDate.UnixMilli())},
	), nil
}

// stringLiteral quotes s as a double-quoted string literal.
func stringLiteral(s string) (string, error) {
	out, err := literals.MarshalToString(s)
	if err != nil {
		return "", fmt.Errorf("encode string %q: %w", s, err)
	}

	return out, nil
}
