package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/GNB-UAM/neungen/internal/history"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
}

// HistoryResult holds recorded generation runs.
type HistoryResult struct {
	Runs []history.Run `json:"runs"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded generation runs",
		Long: `Show generation runs recorded in a history database.

Runs are recorded when the generator is invoked with --history. The most
recent runs are shown first.

Example:
  neungen history --db ./runs.db
  neungen history --db ./runs.db --limit 5`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite run history database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum runs to show (0 for all)")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	// Open would create a fresh database at a mistyped path; require an
	// existing file instead.
	if _, err := os.Stat(opts.Database); err != nil {
		message := fmt.Sprintf("history database not found: %s", opts.Database)
		_ = formatter.Error(ErrCodeHistoryNotFound, message, nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", ErrCodeHistoryNotFound, message))
	}

	st, err := history.Open(opts.Database)
	if err != nil {
		message := fmt.Sprintf("opening history database: %v", err)
		_ = formatter.Error(ErrCodeHistoryRead, message, nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", ErrCodeHistoryRead, message))
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	runs, err := st.ListRuns(ctx, opts.Limit)
	if err != nil {
		message := fmt.Sprintf("reading run history: %v", err)
		_ = formatter.Error(ErrCodeHistoryRead, message, nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", ErrCodeHistoryRead, message))
	}

	return outputHistoryResult(formatter, &HistoryResult{Runs: runs})
}

// outputHistoryResult outputs recorded runs, most recent first.
func outputHistoryResult(formatter *OutputFormatter, result *HistoryResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	if len(result.Runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded")
		return nil
	}

	for _, run := range result.Runs {
		truncNote := ""
		if run.Truncated {
			truncNote = ", truncated"
		}
		fmt.Fprintf(formatter.Writer, "%s  %s\n", run.StartedAt.Format(time.RFC3339), run.ID)
		fmt.Fprintf(formatter.Writer, "  %s -> %s\n", run.RegistryPath, run.OutputPath)
		fmt.Fprintf(formatter.Writer, "  %d lines, %d individuals, %d pairs%s (tool %s)\n\n",
			run.Lines, run.Individuals, run.Pairs, truncNote, run.ToolVersion)
	}

	return nil
}
