package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/mkver/internal/config"
	"github.com/oshokin/mkver/internal/service/generator"
	"github.com/oshokin/mkver/internal/version"
)

// flags holds the command-line options of a single command instance.
type flags struct {
	// configPath stores the path to the configuration YAML file.
	configPath string
	// vcs overrides the version control backend.
	vcs string
	// timeout overrides the VCS query timeout.
	timeout time.Duration
	// logLevel overrides the log level.
	logLevel string
	// print shows a summary table of the generated fields.
	print bool
}

// NewRootCommand builds the mkver command.
func NewRootCommand() *cobra.Command {
	f := new(flags)

	root := &cobra.Command{
		Use:   "mkver [FILE]",
		Short: "Generate a module with your app's version and release metadata.",
		Long: `Provides Node.js access to your app's version and release metadata.

Finds the nearest package.json above FILE, reads its "version", asks git for the
SHA and commit time of HEAD, and writes FILE exporting version, versionMajor,
versionMinor, versionPatch, versionPrerelease, release, gitSha and gitDate.

With no FILE, default output is "` + config.DefaultOutput + `".
The file extension picks the format: .ts and .mjs produce ES module exports
with a default export, .js and .cjs produce CommonJS exports.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use output argument if provided, otherwise rely on config.
			var outputPath string
			if len(args) > 0 {
				outputPath = args[0]
			}

			options := &generator.Options{
				ConfigPath: f.configPath,
				OutputPath: outputPath,
				VCS:        f.vcs,
				Timeout:    f.timeout,
				LogLevel:   f.logLevel,
			}

			info, err := generator.Run(ctx, options)
			if err != nil {
				return err
			}

			if f.print {
				generator.PrintSummary(cmd.OutOrStdout(), info)
			}

			return nil
		},
	}

	// Setup command flags with consistent naming and descriptions.
	root.Flags().StringVarP(&f.configPath, "config", "c", config.DefaultConfigFilename, "path to optional configuration file")
	root.Flags().StringVar(&f.vcs, "vcs", "", "version control backend: git or go-git (default from config, then git)")
	root.Flags().DurationVar(&f.timeout, "timeout", 0, "timeout for version control queries (default from config, then 10s)")
	root.Flags().StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error (default from config, then warn)")
	root.Flags().BoolVarP(&f.print, "print", "p", false, "print a summary of the generated fields")

	version.AttachCobraVersionCommand(root)

	return root
}

// run executes the command with args and reports failures to stderr.
// It returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(stderr, "Failed: "+err.Error())
		return 1
	}

	return 0
}

// Execute runs the mkver CLI and exits with non-zero status on error.
func Execute() {
	if code := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); code != 0 {
		os.Exit(code)
	}
}
