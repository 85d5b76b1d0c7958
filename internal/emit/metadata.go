package emit

import (
	"strings"

	"github.com/GNB-UAM/neungen/internal/registry"
)

// wrapperStrategy selects the C++ wrapper template instantiated for a
// model. The default strategy wraps the concrete model type; override
// wrappers take the precision directly and carry their model internally.
type wrapperStrategy struct {
	Wrapper string
	Header  string
}

// wrapperOverrides maps model class names that need a non-default wrapper.
// Any model can be routed to an alternate wrapper by adding a row here.
var wrapperOverrides = map[string]wrapperStrategy{
	"IzhikevichModel": {Wrapper: "IzhikevichSystemWrapper", Header: "IzhikevichSystemWrapper.h"},
}

// enumEntry is one fixed enumerator of a coupling kind.
type enumEntry struct {
	Name  string
	Value string
}

// kindMetadata is the intrinsic Python-visible surface of a coupling kind.
// Coupling enumerations are fixed per kind and never derived from the
// registry, unlike model enumerations.
type kindMetadata struct {
	Variables  []enumEntry
	Parameters []enumEntry
}

// couplingKinds holds the registration metadata per supported kind.
// A diffusion coupling exposes no enumerations to Python.
var couplingKinds = map[string]kindMetadata{
	registry.KindConductance: {
		Variables:  []enumEntry{{Name: "i1", Value: "i1"}, {Name: "i2", Value: "i2"}},
		Parameters: []enumEntry{{Name: "g1", Value: "g1"}, {Name: "g2", Value: "g2"}},
	},
	registry.KindDiffusion: {},
}

// cppString escapes s for use inside a C++ double-quoted string literal.
func cppString(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
