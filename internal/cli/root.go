package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GNB-UAM/neungen/internal/generator"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the neungen CLI.
// The root command is itself the generator: it takes a registry file and
// an output file and writes the pybind11 bindings.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	genOpts := &GenerateOptions{RootOptions: opts}

	cmd := &cobra.Command{
		Use:   "neungen <registry-file> <output-file>",
		Short: "Generate pybind11 bindings from a neuron model registry",
		Long: `Generate pybind11 C++ binding code from a declarative model registry.

The registry (YAML or JSON) declares neuron models, numeric precisions,
integration methods, and coupling models. neungen validates the registry,
enumerates every model/precision/integrator combination, and writes a
single self-contained C++ source file registering them all.`,
		Version:       generator.Version,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(genOpts, args[0], args[1], cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Generate-only flags
	cmd.Flags().StringVar(&genOpts.History, "history", "", "path to SQLite run history database (optional)")

	// Add subcommands
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
