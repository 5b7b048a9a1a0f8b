package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oshokin/mkver/internal/logger"
)

const (
	// DefaultFileMode is used for generated source files.
	DefaultFileMode os.FileMode = 0o644

	// DefaultDirMode is used for parent directories created on demand.
	DefaultDirMode os.FileMode = 0o755
)

// Writer defines how rendered modules are persisted.
type Writer interface {
	Write(ctx context.Context, path string, contents []byte) error
}

// FileWriter persists rendered modules on the local filesystem.
type FileWriter struct {
	// mode is the permission used when the file is created.
	mode os.FileMode
}

// NewFileWriter creates a writer using DefaultFileMode.
func NewFileWriter() *FileWriter {
	return &FileWriter{
		mode: DefaultFileMode,
	}
}

// Write creates the parent directories of path and overwrites the file with contents.
func (w *FileWriter) Write(ctx context.Context, path string, contents []byte) error {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)

	// MkdirAll treats an existing directory as success.
	if err := os.MkdirAll(dir, DefaultDirMode); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, contents, w.mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	logger.DebugKV(ctx, "Wrote file", "path", path, "bytes", len(contents))

	return nil
}
