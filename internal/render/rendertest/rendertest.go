// Package rendertest reads generated modules back into Go values so tests can
// check that rendering round-trips.
package rendertest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// decoder keeps integers as int64 so prerelease identifiers compare exactly.
//
//nolint:gochecknoglobals // Frozen sonic API is immutable.
var decoder = sonic.Config{UseInt64: true}.Froze()

// Module is a parsed generated file.
type Module struct {
	// CommonJS is true when the file starts with the strict-mode and __esModule lines.
	CommonJS bool
	// Exports holds every named export by name. gitDate is a time.Time.
	Exports map[string]any
	// Order lists named exports as they appear.
	Order []string
	// Default lists the names aggregated by `export default`, or nil when absent.
	Default []string
}

// Parse decodes a module produced by render.Render.
func Parse(text string) (*Module, error) {
	if !strings.HasSuffix(text, "\n") {
		return nil, errors.New("module does not end with a newline")
	}

	module := &Module{
		Exports: make(map[string]any),
	}

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")

	if len(lines) >= 2 && lines[0] == `"use strict";` &&
		lines[1] == `Object.defineProperty(exports, "__esModule", { value: true });` {
		module.CommonJS = true
		lines = lines[2:]
	}

	for _, line := range lines {
		if err := module.parseLine(line); err != nil {
			return nil, err
		}
	}

	return module, nil
}

// parseLine handles one export statement.
func (m *Module) parseLine(line string) error {
	body, ok := strings.CutSuffix(line, ";")
	if !ok {
		return fmt.Errorf("missing semicolon: %q", line)
	}

	if names, ok := strings.CutPrefix(body, "export default {"); ok {
		if m.CommonJS {
			return fmt.Errorf("default export in CommonJS module: %q", line)
		}

		names, ok = strings.CutSuffix(names, "}")
		if !ok {
			return fmt.Errorf("unterminated default export: %q", line)
		}

		m.Default = strings.Split(names, ",")

		return nil
	}

	prefix := "export const "
	if m.CommonJS {
		prefix = "exports."
	}

	assignment, ok := strings.CutPrefix(body, prefix)
	if !ok {
		return fmt.Errorf("unexpected statement: %q", line)
	}

	name, literal, ok := strings.Cut(assignment, " = ")
	if !ok {
		return fmt.Errorf("missing assignment: %q", line)
	}

	value, err := parseLiteral(literal)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	m.Exports[name] = value
	m.Order = append(m.Order, name)

	return nil
}

// parseLiteral decodes a JSON literal or a `new Date(millis)` expression.
func parseLiteral(literal string) (any, error) {
	if millis, ok := strings.CutPrefix(literal, "new Date("); ok {
		millis, ok = strings.CutSuffix(millis, ")")
		if !ok {
			return nil, fmt.Errorf("bad date expression %q", literal)
		}

		n, err := strconv.ParseInt(millis, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad date millis %q: %w", literal, err)
		}

		return time.UnixMilli(n), nil
	}

	var value any
	if err := decoder.UnmarshalFromString(literal, &value); err != nil {
		return nil, fmt.Errorf("bad literal %q: %w", literal, err)
	}

	return value, nil
}
