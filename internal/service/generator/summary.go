package generator

import (
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/oshokin/mkver/internal/domain/release"
	"github.com/oshokin/mkver/internal/render"
)

// PrintSummary renders the generated fields as a table to w.
func PrintSummary(w io.Writer, info *release.VersionInfo) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Field", "Value"})

	t.AppendRow(table.Row{"file", info.Output.Path()})
	t.AppendRow(table.Row{render.FieldVersion, info.Version})

	if sv := info.Semver; sv != nil {
		t.AppendRow(table.Row{render.FieldVersionMajor, sv.Major})
		t.AppendRow(table.Row{render.FieldVersionMinor, sv.Minor})
		t.AppendRow(table.Row{render.FieldVersionPatch, sv.Patch})
		t.AppendRow(table.Row{render.FieldVersionPrerelease, sv.Prerelease})
	}

	t.AppendRow(table.Row{render.FieldRelease, info.Release})
	t.AppendRow(table.Row{render.FieldGitSHA, info.GitSHA})
	t.AppendRow(table.Row{render.FieldGitDate, info.GitDate.Format(time.RFC3339)})

	t.SetStyle(table.StyleRounded)
	t.Render()
}
