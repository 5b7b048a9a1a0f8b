package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the mkver command and the generator service.
type Config struct {
	// Manifest is the filename searched for while walking up from the output directory.
	Manifest string `yaml:"manifest"`
	// VCS selects the version control backend: "git" or "go-git".
	VCS string `yaml:"vcs"`
	// Timeout bounds the VCS queries of a single run.
	Timeout time.Duration `yaml:"timeout"`
	// LogLevel is the zap level name used by the command.
	LogLevel string `yaml:"log_level"`
	// Output is the default output path used when no FILE argument is given.
	Output string `yaml:"output"`
}

const (
	// DefaultConfigFilename is the settings file looked up in the working directory.
	DefaultConfigFilename = ".mkver.yaml"

	// DefaultManifest is the conventional manifest declaring the version.
	DefaultManifest = "package.json"

	// DefaultOutput is written when neither the command line nor the settings name a file.
	DefaultOutput = "./Version.ts"

	// DefaultTimeout bounds the VCS queries.
	DefaultTimeout = 10 * time.Second

	// DefaultLogLevel keeps the generator quiet unless something goes wrong.
	DefaultLogLevel = "warn"

	// VCSGit runs the git binary as a subprocess.
	VCSGit = "git"

	// VCSGoGit reads the repository in-process with go-git.
	VCSGoGit = "go-git"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownVCS is returned for a VCS backend name other than git or go-git.
	errUnknownVCS = errors.New("unknown vcs backend")
	// errManifestHasDirectory is returned when the manifest setting is a path instead of a filename.
	errManifestHasDirectory = errors.New("manifest must be a bare filename")
)

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		Manifest: DefaultManifest,
		VCS:      VCSGit,
		Timeout:  DefaultTimeout,
		LogLevel: DefaultLogLevel,
		Output:   DefaultOutput,
	}
}

// Load reads configuration from the provided path and validates it.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes Config to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills in defaults for empty fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.Manifest == "" {
		cfg.Manifest = DefaultManifest
	}

	if filepath.Base(cfg.Manifest) != cfg.Manifest {
		return fmt.Errorf("%w: %q", errManifestHasDirectory, cfg.Manifest)
	}

	cfg.VCS = strings.ToLower(strings.TrimSpace(cfg.VCS))
	switch cfg.VCS {
	case "":
		cfg.VCS = VCSGit
	case VCSGit, VCSGoGit:
	default:
		return fmt.Errorf("%w: %q (expected %q or %q)", errUnknownVCS, cfg.VCS, VCSGit, VCSGoGit)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if strings.TrimSpace(cfg.Output) == "" {
		cfg.Output = DefaultOutput
	}

	return nil
}
