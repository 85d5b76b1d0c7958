// Package testutil provides shared registry fixtures for tests.
//
// Fixtures are defined once as registry source and parsed through the real
// loader, so every test sees exactly what a user's registry file would
// produce.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GNB-UAM/neungen/internal/registry"
)

// MinimalYAML is the smallest useful registry: one model, one precision,
// one integrator, pairing disabled.
const MinimalYAML = `
models:
  HodgkinHuxleyModel:
    short: HH
    description: Hodgkin-Huxley conductance model
    header: HodgkinHuxleyModel.h
    variables:
      v: Membrane potential
      m: Sodium activation gate
    parameters:
      cm: Membrane capacitance
      gna: Maximal sodium conductance
precisions:
  - float
integrators:
  RungeKutta4:
    short: RK4
    header: RungeKutta4.h
generation:
  pairs: false
`

// CoupledYAML exercises both coupling kinds with a pair cap that truncates
// the sequence: of the four possible pairs only the first three are
// generated.
const CoupledYAML = `
models:
  HodgkinHuxleyModel:
    short: HH
    description: Hodgkin-Huxley conductance model
    header: HodgkinHuxleyModel.h
    variables:
      v: Membrane potential
    parameters:
      cm: Membrane capacitance
couplings:
  ElectricalSynapsis:
    short: ESyn
    header: ElectricalSynapsis.h
    kind: conductance
  DiffusionSynapsis:
    short: DSyn
    header: DiffusionSynapsis.h
    kind: diffusion
precisions:
  - float
  - double
integrators:
  RungeKutta4:
    short: RK4
    header: RungeKutta4.h
generation:
  pairs: true
  max_pairs: 3
`

// FullYAML covers two models (one routed to a non-default wrapper), both
// precisions, two integrators, and both coupling kinds, uncapped in
// practice.
const FullYAML = `
models:
  HodgkinHuxleyModel:
    short: HH
    description: Hodgkin-Huxley conductance model
    header: HodgkinHuxleyModel.h
    variables:
      v: Membrane potential
      m: Sodium activation gate
      n: Potassium activation gate
      h: Sodium inactivation gate
    parameters:
      cm: Membrane capacitance
      gna: Maximal sodium conductance
      gk: Maximal potassium conductance
      gl: Leak conductance
  IzhikevichModel:
    short: Iz
    description: Izhikevich spiking model
    header: IzhikevichModel.h
    variables:
      v: Membrane potential
      u: Recovery variable
    parameters:
      a: Recovery time scale
      b: Recovery sensitivity
      c: Post-spike reset value
      d: Post-spike recovery boost
couplings:
  ElectricalSynapsis:
    short: ESyn
    header: ElectricalSynapsis.h
    kind: conductance
  DiffusionSynapsis:
    short: DSyn
    header: DiffusionSynapsis.h
    kind: diffusion
precisions:
  - float
  - double
integrators:
  RungeKutta4:
    short: RK4
    header: RungeKutta4.h
  Euler:
    short: Euler
    header: Euler.h
generation:
  pairs: true
  max_pairs: 200
`

// CollisionYAML concatenates to the same symbol twice: AlphaModel with
// the double suffix and AlphaDeltaModel with the float suffix both
// produce ADFVariable.
const CollisionYAML = `
models:
  AlphaModel:
    short: A
    description: Alpha model
    header: AlphaModel.h
    variables:
      v: Potential
    parameters:
      p: Gain
  AlphaDeltaModel:
    short: AD
    description: Alpha delta model
    header: AlphaDeltaModel.h
    variables:
      v: Potential
    parameters:
      p: Gain
precisions:
  float: F
  double: DF
integrators:
  RungeKutta4:
    short: RK4
    header: RungeKutta4.h
generation:
  pairs: false
`

// UnknownKindYAML declares a coupling of a kind no registration strategy
// exists for; it must be skipped, not generated.
const UnknownKindYAML = `
models:
  HodgkinHuxleyModel:
    short: HH
    description: Hodgkin-Huxley conductance model
    header: HodgkinHuxleyModel.h
    variables:
      v: Membrane potential
    parameters:
      cm: Membrane capacitance
couplings:
  ChemicalSynapsis:
    short: CSyn
    header: ChemicalSynapsis.h
    kind: chemical
precisions:
  - float
integrators:
  RungeKutta4:
    short: RK4
    header: RungeKutta4.h
generation:
  pairs: true
`

// Minimal returns the parsed MinimalYAML registry.
func Minimal() *registry.Registry { return mustParse(MinimalYAML) }

// Coupled returns the parsed CoupledYAML registry.
func Coupled() *registry.Registry { return mustParse(CoupledYAML) }

// Full returns the parsed FullYAML registry.
func Full() *registry.Registry { return mustParse(FullYAML) }

func mustParse(src string) *registry.Registry {
	reg, err := registry.Parse([]byte(src))
	if err != nil {
		panic(err)
	}
	return reg
}

// WriteRegistry writes src to a fresh temp file and returns its path.
func WriteRegistry(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "registry.yaml")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write registry fixture: %v", err)
	}
	return path
}
