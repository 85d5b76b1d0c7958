package history

import (
	"context"
	"fmt"
	"time"
)

// Run is one recorded generation run.
type Run struct {
	ID           string    `json:"id"`
	StartedAt    time.Time `json:"started_at"`
	RegistryPath string    `json:"registry_path"`
	RegistryHash string    `json:"registry_hash"`
	OutputPath   string    `json:"output_path"`
	ArtifactHash string    `json:"artifact_hash"`
	ToolVersion  string    `json:"tool_version"`
	Lines        int       `json:"lines"`
	Individuals  int       `json:"individuals"`
	Pairs        int       `json:"pairs"`
	Truncated    bool      `json:"truncated"`
}

// RecordRun inserts a run record.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate IDs are
// silently ignored.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, started_at, registry_path, registry_hash, output_path, artifact_hash, tool_version, lines, individuals, pairs, truncated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.RegistryPath,
		run.RegistryHash,
		run.OutputPath,
		run.ArtifactHash,
		run.ToolVersion,
		run.Lines,
		run.Individuals,
		run.Pairs,
		run.Truncated,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	return nil
}

// ListRuns returns recorded runs, most recent first. A non-positive limit
// returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1 // SQLite treats a negative LIMIT as unbounded
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, registry_path, registry_hash, output_path, artifact_hash, tool_version, lines, individuals, pairs, truncated
		FROM runs
		ORDER BY started_at DESC, id COLLATE BINARY DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var startedAt string
		if err := rows.Scan(
			&run.ID,
			&startedAt,
			&run.RegistryPath,
			&run.RegistryHash,
			&run.OutputPath,
			&run.ArtifactHash,
			&run.ToolVersion,
			&run.Lines,
			&run.Individuals,
			&run.Pairs,
			&run.Truncated,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		started, err := time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		run.StartedAt = started
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	// Return empty slice instead of nil
	if runs == nil {
		runs = []Run{}
	}

	return runs, nil
}
