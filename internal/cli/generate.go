package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GNB-UAM/neungen/internal/generator"
	"github.com/GNB-UAM/neungen/internal/registry"
)

// GenerateOptions holds flags for the root generate command.
type GenerateOptions struct {
	*RootOptions
	History string // run history database path (optional)
}

func runGenerate(opts *GenerateOptions, registryPath, outputPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	// Configure logging based on verbose flag
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	sum, err := generator.Run(ctx, generator.Options{
		RegistryPath: registryPath,
		OutputPath:   outputPath,
		HistoryPath:  opts.History,
	})
	if err != nil {
		return outputGenerateError(formatter, err)
	}

	return outputGenerateSuccess(formatter, sum)
}

// outputGenerateError maps pipeline failures onto exit codes: rejected
// registries (validation errors, symbol collisions) exit 1, environment
// problems (missing files, unwritable output) exit 2.
func outputGenerateError(formatter *OutputFormatter, err error) error {
	var verrs registry.ValidationErrors
	if errors.As(err, &verrs) {
		return outputValidationErrors(formatter, verrs)
	}

	var loadErr *registry.LoadError
	if errors.As(err, &loadErr) {
		return outputRegistryError(formatter, loadErr)
	}

	var genErr *generator.GenerationError
	if errors.As(err, &genErr) {
		message := genErr.Message
		if genErr.Err != nil {
			message = fmt.Sprintf("%s: %v", genErr.Message, genErr.Err)
		}
		_ = formatter.Error(genErr.Code, message, nil)
		code := ExitCommandError
		if genErr.Code == generator.ErrCodeSymbolCollision {
			code = ExitFailure
		}
		return NewExitError(code, fmt.Sprintf("%s: %s", genErr.Code, genErr.Message))
	}

	_ = formatter.Error(ErrCodeUnexpected, err.Error(), nil)
	return WrapExitError(ExitCommandError, "generation failed", err)
}

// outputGenerateSuccess outputs the run summary.
func outputGenerateSuccess(formatter *OutputFormatter, sum *generator.Summary) error {
	if formatter.Format == "json" {
		return formatter.Success(sum)
	}

	// Human-readable text output
	fmt.Fprintf(formatter.Writer, "✓ Generated %d lines in %s\n\n", sum.Lines, sum.OutputPath)
	fmt.Fprintf(formatter.Writer, "  Individual combinations: %d\n", sum.Individuals)

	switch {
	case !sum.PairsEnabled:
		fmt.Fprintf(formatter.Writer, "  Pair combinations: disabled\n")
	case sum.Truncated:
		fmt.Fprintf(formatter.Writer, "  Pair combinations: %d (truncated at cap %d)\n", sum.Pairs, sum.Cap)
	default:
		fmt.Fprintf(formatter.Writer, "  Pair combinations: %d\n", sum.Pairs)
	}

	if len(sum.SkippedCouplings) > 0 {
		fmt.Fprintf(formatter.Writer, "  Skipped couplings: %s\n", strings.Join(sum.SkippedCouplings, ", "))
	}

	return nil
}
