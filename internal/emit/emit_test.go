package emit

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GNB-UAM/neungen/internal/combin"
	"github.com/GNB-UAM/neungen/internal/dedup"
	"github.com/GNB-UAM/neungen/internal/registry"
	"github.com/GNB-UAM/neungen/internal/testutil"
)

// generate runs the full enumerate-and-emit pipeline the way the
// generator does.
func generate(reg *registry.Registry) ([]byte, *dedup.Registry) {
	individuals := combin.Individuals(reg)
	var pairs []combin.Pair
	var truncated bool
	if reg.Generation.Pairs {
		pairs, truncated, _ = combin.CollectPairs(reg, reg.Generation.MaxPairs)
	}
	ded := dedup.New()
	out := Generate(reg, individuals, pairs, truncated, ded)
	return out, ded
}

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

// =============================================================================
// Golden Artifact Tests
// =============================================================================

func TestGenerateMinimalGolden(t *testing.T) {
	out, _ := generate(testutil.Minimal())
	golden(t).Assert(t, "minimal", out)
}

func TestGenerateCoupledGolden(t *testing.T) {
	out, _ := generate(testutil.Coupled())
	golden(t).Assert(t, "coupled", out)
}

// =============================================================================
// Determinism
// =============================================================================

func TestGenerateDeterministic(t *testing.T) {
	a, _ := generate(testutil.Full())
	b, _ := generate(testutil.Full())
	assert.Equal(t, a, b)
}

// =============================================================================
// Dedup Properties
// =============================================================================

func TestGenerateEnumArtifactsOncePerModelPrecision(t *testing.T) {
	out, _ := generate(testutil.Full())
	src := string(out)

	// 2 models x 2 precisions, regardless of the 2 integrators.
	assert.Equal(t, 4, strings.Count(src, "register_model_enums<"))
	assert.Equal(t, 4, strings.Count(src, "register_constructor_args<"))
	assert.Equal(t, 8, strings.Count(src, "register_neuron_simple<"))
}

func TestGenerateRecordsSharedArtifactNames(t *testing.T) {
	_, ded := generate(testutil.Minimal())

	assert.Equal(t, []string{
		"HHFloatVariable",
		"HHFloatParameter",
		"HHFloatConstructorArgs",
	}, ded.Names())
}

func TestGenerateReservesCouplingEnumNames(t *testing.T) {
	_, ded := generate(testutil.Coupled())

	// Diffusion couplings emit no enums but still hold their names.
	assert.True(t, ded.Has("ESynFloatVariable"))
	assert.True(t, ded.Has("ESynDoubleVariable"))
	assert.True(t, ded.Has("DSynFloatVariable"))
	assert.False(t, ded.Has("DSynDoubleVariable"), "the truncated pair must not reserve names")
}

// =============================================================================
// Wrapper Dispatch
// =============================================================================

func TestGenerateWrapperOverride(t *testing.T) {
	out, _ := generate(testutil.Full())
	src := string(out)

	assert.Contains(t, src, `#include "IzhikevichSystemWrapper.h"`)
	assert.Contains(t, src, "struct wrapper_type_trait<Precision, IzhikevichModel> {")
	assert.Contains(t, src, "using type = IzhikevichSystemWrapper<Precision>;")
}

func TestGenerateNoOverrideWithoutOverriddenModel(t *testing.T) {
	out, _ := generate(testutil.Minimal())
	src := string(out)

	assert.NotContains(t, src, "IzhikevichSystemWrapper")
	assert.Contains(t, src, "using type = SystemWrapper<Model<Precision>>;")
}

// =============================================================================
// Pair Section
// =============================================================================

func TestGeneratePairsDisabled(t *testing.T) {
	out, _ := generate(testutil.Minimal())
	src := string(out)

	assert.NotContains(t, src, "SYNAPTIC PAIR")
	assert.NotContains(t, src, "get_available_synapses")
	assert.NotContains(t, src, "register_synaptic_pairs")
}

func TestGenerateTruncationComment(t *testing.T) {
	out, _ := generate(testutil.Coupled())
	assert.Contains(t, string(out), "// Additional combinations truncated to avoid code explosion")

	out, _ = generate(testutil.Full())
	assert.NotContains(t, string(out), "truncated to avoid code explosion")
}

func TestGenerateSynapseListMatchesEmittedPairs(t *testing.T) {
	out, _ := generate(testutil.Coupled())
	src := string(out)

	assert.Equal(t, 3, strings.Count(src, "synapses.push_back"))
	assert.Contains(t, src, `synapses.push_back("ESynHHHHFloatRK4");`)
	assert.Contains(t, src, `synapses.push_back("ESynHHHHDoubleRK4");`)
	assert.Contains(t, src, `synapses.push_back("DSynHHHHFloatRK4");`)
	assert.NotContains(t, src, "DSynHHHHDoubleRK4", "names past the cap must not appear anywhere")
}

func TestGenerateDiffusionRegistration(t *testing.T) {
	out, _ := generate(testutil.Coupled())
	src := string(out)

	assert.Contains(t, src, "// DiffusionSynapsis exposes no Python-visible enumerations")
	assert.Contains(t, src,
		`register_diffusion_pair<float, RungeKutta4, DiffusionSynapsis, DiffusionSynapsisModel, HodgkinHuxleyModel, HodgkinHuxleyModel>(m, "DSynHHHHFloatRK4");`)
}

func TestGenerateReferencePairingUsesFirstRegistryEntries(t *testing.T) {
	out, _ := generate(testutil.Coupled())

	assert.Contains(t, string(out),
		"using ReferenceNeuron = IntegratedSystemWrapper<typename wrapper_type_trait<Precision, HodgkinHuxleyModel>::type, RungeKutta4>;")
}

func TestGenerateOmitsUnsupportedCouplingHeaders(t *testing.T) {
	reg := testutil.Coupled()
	reg.Couplings = append(reg.Couplings, registry.Coupling{
		Class:  "ChemicalSynapsis",
		Short:  "CSyn",
		Header: "ChemicalSynapsis.h",
		Kind:   "chemical",
	})

	out, _ := generate(reg)
	src := string(out)

	assert.NotContains(t, src, "ChemicalSynapsis")
	assert.Contains(t, src, `#include "ElectricalSynapsis.h"`)
	assert.Contains(t, src, `#include "DiffusionSynapsis.h"`)
}

// =============================================================================
// String Escaping
// =============================================================================

func TestGenerateEscapesRegistryStrings(t *testing.T) {
	reg := &registry.Registry{
		Models: []registry.Model{{
			Class:       "QuoteModel",
			Short:       "Q",
			Description: `says "hello" with a \`,
			Header:      "QuoteModel.h",
			Variables:   []registry.Field{{Name: "x", Description: "line\nbreak"}},
			Parameters:  []registry.Field{{Name: "a", Description: "tab\there"}},
		}},
		Precisions:  []registry.Precision{{CType: "float", Suffix: "Float"}},
		Integrators: []registry.Integrator{{Class: "Euler", Short: "Euler", Header: "Euler.h"}},
	}

	out, _ := generate(reg)
	src := string(out)

	assert.Contains(t, src, `"says \"hello\" with a \\",`)
	assert.Contains(t, src, `{"x", "line\nbreak"},`)
	assert.Contains(t, src, `{"a", "tab\there"},`)
}

// =============================================================================
// Lines
// =============================================================================

func TestLinesCountsArtifactLines(t *testing.T) {
	out, _ := generate(testutil.Minimal())

	require.NotEmpty(t, out)
	assert.Equal(t, strings.Count(string(out), "\n"), Lines(out))
	assert.True(t, strings.HasSuffix(string(out), "}\n"), "artifact ends with the module block and a final newline")
}
