package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GNB-UAM/neungen/internal/combin"
	"github.com/GNB-UAM/neungen/internal/registry"
)

// ListResult holds the combination names a registry expands to.
type ListResult struct {
	Individuals      []string `json:"individuals"`
	Pairs            []string `json:"pairs,omitempty"`
	PairsEnabled     bool     `json:"pairs_enabled"`
	Truncated        bool     `json:"truncated"`
	TotalPairs       int      `json:"total_pairs,omitempty"`
	SkippedCouplings []string `json:"skipped_couplings,omitempty"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <registry-file>",
		Short: "List the combinations a registry expands to",
		Long: `List every combination name a registry expands to, without
generating code.

Shows the individual model/precision/integrator names and, when pairing
is enabled, the pair names that survive the combination cap.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runList(opts *RootOptions, registryPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	reg, err := registry.Load(registryPath)
	if err != nil {
		var verrs registry.ValidationErrors
		if errors.As(err, &verrs) {
			return outputValidationErrors(formatter, verrs)
		}
		var loadErr *registry.LoadError
		if errors.As(err, &loadErr) {
			return outputRegistryError(formatter, loadErr)
		}
		_ = formatter.Error(ErrCodeUnexpected, err.Error(), nil)
		return WrapExitError(ExitCommandError, "listing combinations failed", err)
	}

	individuals := combin.Individuals(reg)
	result := &ListResult{
		PairsEnabled: reg.Generation.Pairs,
		Individuals:  make([]string, 0, len(individuals)),
	}
	for _, ind := range individuals {
		result.Individuals = append(result.Individuals, ind.Name)
	}

	if reg.Generation.Pairs {
		pairs, truncated, skipped := combin.CollectPairs(reg, reg.Generation.MaxPairs)
		result.Truncated = truncated
		result.SkippedCouplings = skipped
		result.TotalPairs = combin.NewPairCursor(reg).Total()
		result.Pairs = make([]string, 0, len(pairs))
		for _, p := range pairs {
			result.Pairs = append(result.Pairs, p.Name)
		}
	}

	return outputListResult(formatter, result)
}

// outputListResult outputs the enumerated combination names.
func outputListResult(formatter *OutputFormatter, result *ListResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	// Human-readable text output
	fmt.Fprintf(formatter.Writer, "Individual neurons (%d):\n", len(result.Individuals))
	for _, name := range result.Individuals {
		fmt.Fprintf(formatter.Writer, "  %s\n", name)
	}

	if len(result.Pairs) > 0 {
		fmt.Fprintln(formatter.Writer)
		if result.Truncated {
			fmt.Fprintf(formatter.Writer, "Synaptic pairs (%d of %d):\n", len(result.Pairs), result.TotalPairs)
		} else {
			fmt.Fprintf(formatter.Writer, "Synaptic pairs (%d):\n", len(result.Pairs))
		}
		for _, name := range result.Pairs {
			fmt.Fprintf(formatter.Writer, "  %s\n", name)
		}
	}

	if len(result.SkippedCouplings) > 0 {
		fmt.Fprintln(formatter.Writer)
		fmt.Fprintf(formatter.Writer, "Skipped couplings: %s\n", strings.Join(result.SkippedCouplings, ", "))
	}

	return nil
}
