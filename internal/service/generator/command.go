package generator

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/oshokin/mkver/internal/config"
	"github.com/oshokin/mkver/internal/domain/release"
	"github.com/oshokin/mkver/internal/logger"
	"github.com/oshokin/mkver/internal/manifest"
	"github.com/oshokin/mkver/internal/render"
	"github.com/oshokin/mkver/internal/repository/output"
	"github.com/oshokin/mkver/internal/repository/vcs"
)

// Options contains inputs for the generator entry point.
// Empty fields fall back to the settings file, then to built-in defaults.
type Options struct {
	// ConfigPath is the optional settings file (defaults to .mkver.yaml).
	ConfigPath string
	// OutputPath is the file to generate; its extension picks the format.
	OutputPath string
	// VCS overrides the version control backend ("git" or "go-git").
	VCS string
	// Timeout overrides the VCS query timeout.
	Timeout time.Duration
	// LogLevel overrides the log level.
	LogLevel string
}

// generator holds the collaborators of a single run.
// It is unexported; callers use Run, which loads settings and wires the backends.
type generator struct {
	// resolver finds the manifest declaring the version.
	resolver *manifest.Resolver
	// querier answers head commit questions.
	querier vcs.Querier
	// writer persists the rendered module.
	writer output.Writer
	// timeout bounds the VCS queries.
	timeout time.Duration
	// now is the clock used to reject commits from the future.
	now func() time.Time
}

// Run generates the version file described by opts and returns what was written.
func Run(ctx context.Context, opts *Options) (*release.VersionInfo, error) {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "mkver")

	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, &GenerationFailedError{Path: opts.OutputPath, Err: err}
	}

	outputPath := opts.OutputPath
	if strings.TrimSpace(outputPath) == "" {
		outputPath = cfg.Output
	}

	querier, err := vcs.New(cfg.VCS)
	if err != nil {
		return nil, &GenerationFailedError{Path: outputPath, Err: err}
	}

	g := newGenerator(cfg, querier, output.NewFileWriter())

	return g.generate(ctx, outputPath)
}

// loadConfig reads the settings file and applies command-line overrides.
func loadConfig(opts *Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	if opts.VCS != "" {
		cfg.VCS = opts.VCS
	}

	if opts.Timeout > 0 {
		cfg.Timeout = opts.Timeout
	}

	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	if err = config.Validate(cfg); err != nil {
		return nil, err
	}

	level, ok := logger.ParseLogLevel(cfg.LogLevel)
	if !ok {
		return nil, fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}

	logger.SetLevel(level)

	return cfg, nil
}

// newGenerator wires a generator from validated settings.
func newGenerator(cfg *config.Config, querier vcs.Querier, writer output.Writer) *generator {
	return &generator{
		resolver: manifest.NewResolver(cfg.Manifest),
		querier:  querier,
		writer:   writer,
		timeout:  cfg.Timeout,
		now:      time.Now,
	}
}

// generate runs the workflow for one output path and wraps any failure with it.
func (g *generator) generate(ctx context.Context, outputPath string) (*release.VersionInfo, error) {
	info, err := g.build(ctx, outputPath)
	if err != nil {
		return nil, &GenerationFailedError{Path: outputPath, Err: err}
	}

	return info, nil
}

// build resolves, composes, renders and writes.
func (g *generator) build(ctx context.Context, outputPath string) (*release.VersionInfo, error) {
	abs, err := filepath.Abs(filepath.Clean(outputPath))
	if err != nil {
		return nil, fmt.Errorf("resolve output path: %w", err)
	}

	// Reject unknown extensions before touching version control or the filesystem.
	if _, err = render.FormatFor(abs); err != nil {
		return nil, err
	}

	target := release.NewOutputPath(abs)

	declaration, err := g.resolver.Resolve(ctx, target.Dir)
	if err != nil {
		return nil, err
	}

	sha, date, err := g.headCommit(ctx, declaration.Dir)
	if err != nil {
		return nil, err
	}

	info, err := release.Compose(release.ComposeParams{
		Version: declaration.Version,
		GitSHA:  sha,
		GitDate: date,
		Output:  target,
		Now:     g.now(),
	})
	if err != nil {
		return nil, err
	}

	contents, err := render.Render(info)
	if err != nil {
		return nil, err
	}

	if err = g.writer.Write(ctx, abs, contents); err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "Generated version file",
		"path", abs,
		"release", info.Release,
		"git_sha", info.GitSHA,
	)

	return info, nil
}

// headCommit queries SHA and then commit time under a single timeout.
func (g *generator) headCommit(ctx context.Context, dir string) (string, time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	sha, err := g.querier.HeadCommitSHA(ctx, dir)
	if err != nil {
		return "", time.Time{}, err
	}

	date, err := g.querier.HeadCommitTime(ctx, dir)
	if err != nil {
		return "", time.Time{}, err
	}

	return sha, date, nil
}
