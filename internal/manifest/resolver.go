package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/oshokin/mkver/internal/config"
	"github.com/oshokin/mkver/internal/logger"
)

var (
	// ErrManifestNotFound is returned when no manifest exists up to the filesystem root.
	ErrManifestNotFound = errors.New("manifest not found")
	// ErrManifestMissingVersion is returned when the nearest manifest has no usable version field.
	ErrManifestMissingVersion = errors.New("manifest has no version")
)

// Declaration is a version found in a manifest.
type Declaration struct {
	// Version is the version string exactly as written in the manifest.
	Version string
	// Dir is the directory that holds the manifest.
	Dir string
	// Path is the manifest file itself.
	Path string
}

// Resolver finds the nearest manifest declaring a version.
type Resolver struct {
	// filename is the manifest name looked up in every directory.
	filename string
}

// NewResolver creates a resolver for the given manifest filename (package.json when empty).
func NewResolver(filename string) *Resolver {
	if filename == "" {
		filename = config.DefaultManifest
	}

	return &Resolver{
		filename: filename,
	}
}

// Resolve searches startDir and then each parent directory for the manifest.
func (r *Resolver) Resolve(ctx context.Context, startDir string) (*Declaration, error) {
	ctx = logger.WithName(ctx, "manifest")

	start, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", startDir, err)
	}

	for dir := start; ; {
		path := filepath.Join(dir, r.filename)

		document, ok := readObject(ctx, path)
		if ok {
			version, isString := document["version"].(string)
			if !isString || strings.TrimSpace(version) == "" {
				return nil, fmt.Errorf("%w: no version field found in %s", ErrManifestMissingVersion, path)
			}

			logger.DebugKV(ctx, "Found version", "path", path, "version", version)

			return &Declaration{
				Version: version,
				Dir:     dir,
				Path:    path,
			}, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, fmt.Errorf("%w: no %s in %s or parent directories", ErrManifestNotFound, r.filename, start)
		}

		dir = parent
	}
}

// readObject loads path as a JSON object. Unreadable files, broken JSON and
// non-object documents all report false so the search moves on.
func readObject(ctx context.Context, path string) (map[string]any, bool) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		logger.DebugKV(ctx, "No manifest", "path", path, "error", err)
		return nil, false
	}

	var document map[string]any
	if err = sonic.Unmarshal(contents, &document); err != nil {
		logger.DebugKV(ctx, "Skipping unparsable manifest", "path", path, "error", err)
		return nil, false
	}

	if document == nil {
		logger.DebugKV(ctx, "Skipping empty manifest", "path", path)
		return nil, false
	}

	return document, true
}
