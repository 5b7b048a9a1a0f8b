package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/mkver/internal/domain/release"
	"github.com/oshokin/mkver/internal/render/rendertest"
)

const testSHA = "0123456789abcdef0123456789abcdef01234567"

// newInfo composes a record for the given output path and version.
func newInfo(t *testing.T, path, version string) *release.VersionInfo {
	t.Helper()

	info, err := release.Compose(release.ComposeParams{
		Version: version,
		GitSHA:  testSHA,
		GitDate: time.UnixMilli(1613501508123),
		Output:  release.NewOutputPath(path),
	})
	require.NoError(t, err)

	return info
}

// TestFormatFor maps extensions to formats and rejects everything else.
func TestFormatFor(t *testing.T) {
	t.Parallel()

	cases := map[string]Format{
		"/p/Version.ts":  TypedSource,
		"/p/version.mjs": ESModule,
		"/p/ver.js":      CommonModule,
		"/p/ver.cjs":     CommonModule,
		"/p/VER.JS":      CommonModule,
		"/p/Version.TS":  TypedSource,
	}
	for path, want := range cases {
		got, err := FormatFor(path)
		require.NoError(t, err, path)
		require.Equal(t, want, got, path)
	}

	for _, path := range []string{"/p/ver.go", "/p/ver.py", "/p/ver.d", "/p/Version", "/p/ver.tsx"} {
		_, err := FormatFor(path)
		require.ErrorIs(t, err, ErrUnsupportedOutputFormat, path)
		require.ErrorContains(t, err, path)
		require.ErrorContains(t, err, ".ts, .mjs, .js, .cjs")
	}
}

// TestRender_CommonModule checks the exact CommonJS output.
func TestRender_CommonModule(t *testing.T) {
	t.Parallel()

	info := newInfo(t, "/p/ver.js", "2.5.9-rc.1")

	got, err := Render(info)
	require.NoError(t, err)

	want := `"use strict";
Object.defineProperty(exports, "__esModule", { value: true });
exports.version = "2.5.9-rc.1";
exports.versionMajor = 2;
exports.versionMinor = 5;
exports.versionPatch = 9;
exports.versionPrerelease = ["rc",1];
exports.release = "` + info.Release + `";
exports.gitSha = "` + testSHA + `";
exports.gitDate = new Date(1613501508123);
`
	require.Equal(t, want, string(got))
}

// TestRender_ESModule checks the exact ES module output, which TypeScript shares.
func TestRender_ESModule(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/p/version.mjs", "/p/Version.ts"} {
		info := newInfo(t, path, "1.2.3")

		got, err := Render(info)
		require.NoError(t, err)

		want := `export const version = "1.2.3";
export const versionMajor = 1;
export const versionMinor = 2;
export const versionPatch = 3;
export const versionPrerelease = [];
export const release = "` + info.Release + `";
export const gitSha = "` + testSHA + `";
export const gitDate = new Date(1613501508123);
export default {version,versionMajor,versionMinor,versionPatch,versionPrerelease,release,gitSha,gitDate};
`
		require.Equal(t, want, string(got), path)
	}
}

// TestRender_SkipsUnparsedVersionFields omits semver bindings for a non-semver version.
func TestRender_SkipsUnparsedVersionFields(t *testing.T) {
	t.Parallel()

	got, err := Render(newInfo(t, "/p/version.mjs", "nightly"))
	require.NoError(t, err)

	module, err := rendertest.Parse(string(got))
	require.NoError(t, err)
	require.Equal(t, []string{FieldVersion, FieldRelease, FieldGitSHA, FieldGitDate}, module.Order)
	require.Equal(t, module.Order, module.Default)
}

// TestRender_EscapesStrings keeps quotes, backslashes and markup intact through a round trip.
func TestRender_EscapesStrings(t *testing.T) {
	t.Parallel()

	version := "1.0.0 \"quoted\" \\ <b>&</b>\n"

	got, err := Render(newInfo(t, "/p/ver.cjs", version))
	require.NoError(t, err)
	require.Contains(t, string(got), `<b>&</b>`)

	module, err := rendertest.Parse(string(got))
	require.NoError(t, err)
	require.Equal(t, version, module.Exports[FieldVersion])
}

// TestRender_RoundTrip decodes every format back into the original values.
func TestRender_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/p/Version.ts", "/p/version.mjs", "/p/ver.js", "/p/ver.cjs"} {
		t.Run(path, func(t *testing.T) {
			t.Parallel()

			info := newInfo(t, path, "2.5.9-rc.1")

			got, err := Render(info)
			require.NoError(t, err)

			module, err := rendertest.Parse(string(got))
			require.NoError(t, err)

			format, err := FormatFor(path)
			require.NoError(t, err)
			require.Equal(t, format == CommonModule, module.CommonJS)

			if format.HasDefaultExport() {
				require.Equal(t, module.Order, module.Default)
			} else {
				require.Nil(t, module.Default)
			}

			require.Equal(t, info.Version, module.Exports[FieldVersion])
			require.Equal(t, int64(2), module.Exports[FieldVersionMajor])
			require.Equal(t, int64(5), module.Exports[FieldVersionMinor])
			require.Equal(t, int64(9), module.Exports[FieldVersionPatch])
			require.Equal(t, []any{"rc", int64(1)}, module.Exports[FieldVersionPrerelease])
			require.Equal(t, info.Release, module.Exports[FieldRelease])
			require.Equal(t, info.GitSHA, module.Exports[FieldGitSHA])

			gitDate, ok := module.Exports[FieldGitDate].(time.Time)
			require.True(t, ok)
			require.Equal(t, info.GitDate.UnixMilli(), gitDate.UnixMilli())
		})
	}
}

// TestRender_UnsupportedFormat refuses to render an unknown extension.
func TestRender_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	info := newInfo(t, "/p/ver.go", "1.0.0")

	got, err := Render(info)
	require.ErrorIs(t, err, ErrUnsupportedOutputFormat)
	require.Nil(t, got)
}
