package cli

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/hupe1980/geovec"
)

// EnvEngine selects the default engine when --engine is not given.
const EnvEngine = "GEOVEC_ENGINE"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "json" | "yaml"
	Engine  string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for the geovec CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	defaultEngine := os.Getenv(EnvEngine)
	if defaultEngine == "" {
		defaultEngine = "planar"
	}

	cmd := &cobra.Command{
		Use:   "geovec",
		Short: "geovec - vectorized geometry operations",
		Long:  "Evaluate elementwise geometry ufuncs over broadcast arrays and inspect the ufunc registry.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if !slices.Contains(EngineNames(), opts.Engine) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("unknown engine %q: available engines are %v", opts.Engine, EngineNames()))
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.Engine, "engine", defaultEngine, "geometry engine (env "+EnvEngine+")")

	cmd.AddCommand(NewOpsCommand(opts))
	cmd.AddCommand(NewEvalCommand(opts))

	return cmd
}

// newFormatter returns the formatter for a command's output streams.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// newLogger returns a debug logger on stderr in verbose mode and a
// discarding logger otherwise. JSON output gets JSON log records.
func newLogger(opts *RootOptions, cmd *cobra.Command) *geovec.Logger {
	if !opts.Verbose {
		return geovec.NoopLogger()
	}
	if opts.Format == "json" {
		return geovec.NewJSONLogger(cmd.ErrOrStderr(), slog.LevelDebug)
	}
	return geovec.NewTextLogger(cmd.ErrOrStderr(), slog.LevelDebug)
}
