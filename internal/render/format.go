package render

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format is the module flavor of a generated file.
type Format int

const (
	// CommonModule is CommonJS: strict mode, __esModule marker and exports.<name> assignments.
	CommonModule Format = iota + 1
	// ESModule is an ECMAScript module with named exports and a default export.
	ESModule
	// TypedSource is a TypeScript module; it uses ES module syntax and relies on inferred types.
	TypedSource
)

// ErrUnsupportedOutputFormat is returned for an output path with an unrecognized extension.
var ErrUnsupportedOutputFormat = errors.New("unsupported file extension")

// extensions maps lower-cased file extensions to formats.
//
//nolint:gochecknoglobals // Fixed lookup table.
var extensions = map[string]Format{
	".ts":  TypedSource,
	".mjs": ESModule,
	".js":  CommonModule,
	".cjs": CommonModule,
}

// SupportedExtensions lists accepted extensions in the order shown to users.
func SupportedExtensions() []string {
	return []string{".ts", ".mjs", ".js", ".cjs"}
}

// FormatFor picks the format for path by its extension, case-insensitively.
func FormatFor(path string) (Format, error) {
	format, ok := extensions[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return 0, fmt.Errorf("%w: expected %q to end in %s",
			ErrUnsupportedOutputFormat, path, strings.Join(SupportedExtensions(), ", "))
	}

	return format, nil
}

// HasDefaultExport reports whether the format also exports an object with every field.
func (f Format) HasDefaultExport() bool {
	return f == ESModule || f == TypedSource
}

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case CommonModule:
		return "commonjs"
	case ESModule:
		return "esm"
	case TypedSource:
		return "typescript"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}
