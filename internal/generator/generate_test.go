package generator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GNB-UAM/neungen/internal/history"
	"github.com/GNB-UAM/neungen/internal/registry"
	"github.com/GNB-UAM/neungen/internal/testutil"
)

func runFixture(t *testing.T, src string) (*Summary, string, error) {
	t.Helper()
	outPath := filepath.Join(t.TempDir(), "neun_py_bindings.cpp")
	sum, err := Run(context.Background(), Options{
		RegistryPath: testutil.WriteRegistry(t, src),
		OutputPath:   outPath,
	})
	return sum, outPath, err
}

func TestRunWritesArtifact(t *testing.T) {
	sum, outPath, err := runFixture(t, testutil.MinimalYAML)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "// ==="), "artifact starts with the banner")

	assert.Equal(t, strings.Count(string(data), "\n"), sum.Lines)
	assert.Equal(t, registry.ArtifactHash(data), sum.ArtifactHash)
	assert.Len(t, sum.RegistryHash, 64)
	assert.NotEmpty(t, sum.RunID)
	assert.Equal(t, 1, sum.Individuals)
	assert.Equal(t, 0, sum.Pairs)
	assert.False(t, sum.PairsEnabled)
	assert.False(t, sum.Truncated)

	info, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestRunDeterministic(t *testing.T) {
	regPath := testutil.WriteRegistry(t, testutil.FullYAML)
	outA := filepath.Join(t.TempDir(), "a.cpp")
	outB := filepath.Join(t.TempDir(), "b.cpp")

	sumA, err := Run(context.Background(), Options{RegistryPath: regPath, OutputPath: outA})
	require.NoError(t, err)
	sumB, err := Run(context.Background(), Options{RegistryPath: regPath, OutputPath: outB})
	require.NoError(t, err)

	dataA, err := os.ReadFile(outA)
	require.NoError(t, err)
	dataB, err := os.ReadFile(outB)
	require.NoError(t, err)

	assert.Equal(t, dataA, dataB)
	assert.Equal(t, sumA.RegistryHash, sumB.RegistryHash)
	assert.Equal(t, sumA.ArtifactHash, sumB.ArtifactHash)
	assert.NotEqual(t, sumA.RunID, sumB.RunID, "each run gets a fresh id")
}

func TestRunCoupledSummary(t *testing.T) {
	sum, _, err := runFixture(t, testutil.CoupledYAML)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Individuals)
	assert.Equal(t, 3, sum.Pairs)
	assert.True(t, sum.PairsEnabled)
	assert.True(t, sum.Truncated)
	assert.Equal(t, 3, sum.Cap)
	assert.Empty(t, sum.SkippedCouplings)
}

func TestRunSkipsUnknownCouplingKinds(t *testing.T) {
	sum, outPath, err := runFixture(t, testutil.UnknownKindYAML)
	require.NoError(t, err)

	assert.Equal(t, 0, sum.Pairs)
	assert.False(t, sum.Truncated)
	assert.Equal(t, []string{"ChemicalSynapsis"}, sum.SkippedCouplings)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "CSyn")
	assert.NotContains(t, string(data), "ChemicalSynapsis")
	assert.Contains(t, string(data), "void register_synaptic_pairs")
}

func TestRunSymbolCollision(t *testing.T) {
	sum, outPath, err := runFixture(t, testutil.CollisionYAML)
	require.Error(t, err)
	assert.Nil(t, sum)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, ErrCodeSymbolCollision, genErr.Code)
	assert.Contains(t, genErr.Message, `"ADFVariable"`)
	assert.Contains(t, genErr.Message, "AlphaModel/double")
	assert.Contains(t, genErr.Message, "AlphaDeltaModel/float")

	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr), "no artifact may be written on collision")
}

func TestRunUnwritableOutput(t *testing.T) {
	sum, err := Run(context.Background(), Options{
		RegistryPath: testutil.WriteRegistry(t, testutil.MinimalYAML),
		OutputPath:   filepath.Join(t.TempDir(), "missing", "out.cpp"),
	})
	require.Error(t, err)
	assert.Nil(t, sum)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, ErrCodeWriteFailed, genErr.Code)
}

func TestRunRecordsHistory(t *testing.T) {
	regPath := testutil.WriteRegistry(t, testutil.CoupledYAML)
	dir := t.TempDir()
	historyPath := filepath.Join(dir, "history.db")

	sum, err := Run(context.Background(), Options{
		RegistryPath: regPath,
		OutputPath:   filepath.Join(dir, "out.cpp"),
		HistoryPath:  historyPath,
	})
	require.NoError(t, err)

	st, err := history.Open(historyPath)
	require.NoError(t, err)
	defer st.Close()

	runs, err := st.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, sum.RunID, run.ID)
	assert.Equal(t, sum.RegistryHash, run.RegistryHash)
	assert.Equal(t, sum.ArtifactHash, run.ArtifactHash)
	assert.Equal(t, Version, run.ToolVersion)
	assert.Equal(t, sum.Lines, run.Lines)
	assert.Equal(t, 2, run.Individuals)
	assert.Equal(t, 3, run.Pairs)
	assert.True(t, run.Truncated)
}

func TestRunPropagatesLoadError(t *testing.T) {
	_, err := Run(context.Background(), Options{
		RegistryPath: filepath.Join(t.TempDir(), "missing.yaml"),
		OutputPath:   filepath.Join(t.TempDir(), "out.cpp"),
	})
	require.Error(t, err)

	var loadErr *registry.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, registry.ErrCodeNotFound, loadErr.Code)
}

func TestRunPropagatesValidationErrors(t *testing.T) {
	src := strings.Replace(testutil.MinimalYAML,
		"    variables:\n      v: Membrane potential\n      m: Sodium activation gate\n",
		"    variables: {}\n", 1)
	require.NotEqual(t, testutil.MinimalYAML, src, "fixture replacement must apply")

	_, err := Run(context.Background(), Options{
		RegistryPath: testutil.WriteRegistry(t, src),
		OutputPath:   filepath.Join(t.TempDir(), "out.cpp"),
	})
	require.Error(t, err)

	var verrs registry.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, registry.ErrCodeEmptyModel, verrs[0].Code)
}
