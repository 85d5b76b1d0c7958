// Package generator runs the full registry-to-bindings pipeline: load,
// enumerate, collision-check, emit, and atomically write the artifact,
// optionally recording the run in a history database.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/GNB-UAM/neungen/internal/combin"
	"github.com/GNB-UAM/neungen/internal/dedup"
	"github.com/GNB-UAM/neungen/internal/emit"
	"github.com/GNB-UAM/neungen/internal/history"
	"github.com/GNB-UAM/neungen/internal/naming"
	"github.com/GNB-UAM/neungen/internal/registry"
)

// Version is the tool version recorded with every run.
const Version = "0.1.0"

// Options configures one generation run.
type Options struct {
	RegistryPath string
	OutputPath   string
	HistoryPath  string // empty disables run recording
}

// Summary reports what one generation run produced.
type Summary struct {
	RunID            string   `json:"run_id"`
	RegistryPath     string   `json:"registry_path"`
	OutputPath       string   `json:"output_path"`
	RegistryHash     string   `json:"registry_hash"`
	ArtifactHash     string   `json:"artifact_hash"`
	Lines            int      `json:"lines"`
	Individuals      int      `json:"individuals"`
	Pairs            int      `json:"pairs"`
	PairsEnabled     bool     `json:"pairs_enabled"`
	Truncated        bool     `json:"truncated"`
	Cap              int      `json:"cap"`
	SkippedCouplings []string `json:"skipped_couplings,omitempty"`
}

// Run executes one generation run.
//
// Registry problems are returned unchanged as *registry.LoadError or
// registry.ValidationErrors; pipeline failures are *GenerationError.
// The artifact is written atomically: a failed run never leaves a partial
// file at the output path.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	start := time.Now().UTC()

	slog.Debug("loading registry", "path", opts.RegistryPath)
	reg, err := registry.Load(opts.RegistryPath)
	if err != nil {
		return nil, err
	}
	slog.Debug("registry loaded",
		"models", len(reg.Models),
		"couplings", len(reg.Couplings),
		"precisions", len(reg.Precisions),
		"integrators", len(reg.Integrators),
	)

	individuals := combin.Individuals(reg)
	var pairs []combin.Pair
	var truncated bool
	var skipped []string
	if reg.Generation.Pairs {
		pairs, truncated, skipped = combin.CollectPairs(reg, reg.Generation.MaxPairs)
	}
	slog.Debug("combinations enumerated",
		"individuals", len(individuals),
		"pairs", len(pairs),
		"truncated", truncated,
	)
	if len(skipped) > 0 {
		slog.Warn("couplings skipped: unsupported kind", "couplings", skipped)
	}

	if err := checkSymbols(individuals, pairs); err != nil {
		return nil, err
	}

	ded := dedup.New()
	data := emit.Generate(reg, individuals, pairs, truncated, ded)

	if err := writeArtifact(opts.OutputPath, data); err != nil {
		return nil, &GenerationError{
			Code:    ErrCodeWriteFailed,
			Message: fmt.Sprintf("writing %s", opts.OutputPath),
			Err:     err,
		}
	}
	slog.Info("bindings written",
		"path", opts.OutputPath,
		"lines", emit.Lines(data),
		"bytes", len(data),
	)

	regHash, err := reg.Hash()
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		RunID:            uuid.Must(uuid.NewV7()).String(),
		RegistryPath:     opts.RegistryPath,
		OutputPath:       opts.OutputPath,
		RegistryHash:     regHash,
		ArtifactHash:     registry.ArtifactHash(data),
		Lines:            emit.Lines(data),
		Individuals:      len(individuals),
		Pairs:            len(pairs),
		PairsEnabled:     reg.Generation.Pairs,
		Truncated:        truncated,
		Cap:              reg.Generation.MaxPairs,
		SkippedCouplings: skipped,
	}

	if opts.HistoryPath != "" {
		// The artifact is already on disk; a history failure downgrades
		// to a warning instead of failing the run.
		if err := recordRun(ctx, opts.HistoryPath, sum, start); err != nil {
			slog.Warn("recording run history failed", "error", err)
		}
	}

	return sum, nil
}

// checkSymbols rejects registries whose short codes concatenate into the
// same Python symbol twice. Names are collected in registration order, so
// the reported pair is the first the emitted module would hit.
func checkSymbols(individuals []combin.Individual, pairs []combin.Pair) error {
	type artifactKey struct{ owner, ctype string }

	sources := make(map[string]string)
	claim := func(name, source string) error {
		if prev, ok := sources[name]; ok {
			return &GenerationError{
				Code:    ErrCodeSymbolCollision,
				Message: fmt.Sprintf("symbol %q generated by both %s and %s", name, prev, source),
			}
		}
		sources[name] = source
		return nil
	}

	seen := make(map[artifactKey]bool)
	for _, ind := range individuals {
		key := artifactKey{ind.Model.Class, ind.Precision.CType}
		if !seen[key] {
			seen[key] = true
			owner := fmt.Sprintf("%s/%s", ind.Model.Class, ind.Precision.CType)
			if err := claim(naming.VariableEnum(ind.Model.Short, ind.Precision.Suffix), "variable enum "+owner); err != nil {
				return err
			}
			if err := claim(naming.ParameterEnum(ind.Model.Short, ind.Precision.Suffix), "parameter enum "+owner); err != nil {
				return err
			}
			if err := claim(naming.ConstructorArgs(ind.Model.Short, ind.Precision.Suffix), "constructor args "+owner); err != nil {
				return err
			}
		}
		source := fmt.Sprintf("individual %s/%s/%s", ind.Model.Class, ind.Precision.CType, ind.Integrator.Class)
		if err := claim(ind.Name, source); err != nil {
			return err
		}
	}

	for _, p := range pairs {
		key := artifactKey{p.Coupling.Class, p.Precision.CType}
		if !seen[key] {
			seen[key] = true
			owner := fmt.Sprintf("%s/%s", p.Coupling.Class, p.Precision.CType)
			if err := claim(naming.VariableEnum(p.Coupling.Short, p.Precision.Suffix), "coupling variable enum "+owner); err != nil {
				return err
			}
			if err := claim(naming.ParameterEnum(p.Coupling.Short, p.Precision.Suffix), "coupling parameter enum "+owner); err != nil {
				return err
			}
		}
		source := fmt.Sprintf("pair %s[%s,%s]/%s/%s",
			p.Coupling.Class, p.First.Class, p.Second.Class, p.Precision.CType, p.Integrator.Class)
		if err := claim(p.Name, source); err != nil {
			return err
		}
	}

	return nil
}

// writeArtifact writes data to a temp file beside path and renames it into
// place, so a failed run never leaves a partial artifact.
func writeArtifact(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".neungen-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func recordRun(ctx context.Context, path string, sum *Summary, start time.Time) error {
	st, err := history.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()

	return st.RecordRun(ctx, history.Run{
		ID:           sum.RunID,
		StartedAt:    start,
		RegistryPath: sum.RegistryPath,
		RegistryHash: sum.RegistryHash,
		OutputPath:   sum.OutputPath,
		ArtifactHash: sum.ArtifactHash,
		ToolVersion:  Version,
		Lines:        sum.Lines,
		Individuals:  sum.Individuals,
		Pairs:        sum.Pairs,
		Truncated:    sum.Truncated,
	})
}
