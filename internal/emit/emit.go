// Package emit renders a loaded registry and its enumerated combinations
// into the generated pybind11 binding source.
//
// Generate is pure: the same registry and combination sequences produce
// byte-identical output. All iteration follows registry declaration order,
// never Go map order. The emitted file is organized in fixed sections:
// banner, includes, model metadata, wrapper traits, shared registration
// helpers, individual registrations, pair registrations (when enabled),
// introspection utilities, and the module entry point.
package emit

import (
	"fmt"
	"strings"

	"github.com/GNB-UAM/neungen/internal/combin"
	"github.com/GNB-UAM/neungen/internal/dedup"
	"github.com/GNB-UAM/neungen/internal/registry"
)

// ModuleName is the emitted extension module's import name.
const ModuleName = "neun_py"

// ModuleVersion is the emitted module's __version__ attribute.
const ModuleVersion = "0.4.0"

const rule = "// ============================================================================"

// Generate renders the complete binding source. The pair slice must be the
// capped canonical prefix for reg, truncated must say whether the cap cut
// the sequence, and ded must be the empty per-run dedup registry; Generate
// fills it with every shared artifact name it schedules.
func Generate(reg *registry.Registry, individuals []combin.Individual, pairs []combin.Pair, truncated bool, ded *dedup.Registry) []byte {
	e := &emitter{
		reg:         reg,
		individuals: individuals,
		pairs:       pairs,
		truncated:   truncated,
		ded:         ded,
	}

	e.banner()
	e.includes()
	e.modelInfo()
	e.traits()
	e.sharedHelpers()
	e.neuronTemplate()
	e.individualRegistrations()
	if reg.Generation.Pairs {
		e.pairSection()
	}
	e.utilities()
	e.mainModule()

	return []byte(e.buf.String())
}

// Lines counts the lines of a generated artifact.
func Lines(data []byte) int {
	return strings.Count(string(data), "\n")
}

type emitter struct {
	buf         strings.Builder
	reg         *registry.Registry
	individuals []combin.Individual
	pairs       []combin.Pair
	truncated   bool
	ded         *dedup.Registry
}

func (e *emitter) line(s string) {
	e.buf.WriteString(s)
	e.buf.WriteByte('\n')
}

func (e *emitter) linef(format string, args ...any) {
	fmt.Fprintf(&e.buf, format, args...)
	e.buf.WriteByte('\n')
}

func (e *emitter) blank() {
	e.buf.WriteByte('\n')
}

func (e *emitter) section(title string) {
	e.line(rule)
	e.line("// " + title)
	e.line(rule)
	e.blank()
}

func (e *emitter) banner() {
	e.line(rule)
	e.line("// AUTOMATICALLY GENERATED FILE - DO NOT EDIT MANUALLY")
	e.line("// Generated from the model registry by neungen")
	e.line(rule)
	e.blank()
}

func (e *emitter) includes() {
	e.line("#include <pybind11/pybind11.h>")
	e.line("#include <pybind11/stl.h>")
	e.line("#include <string>")
	e.line("#include <vector>")
	e.line("#include <map>")
	e.blank()

	e.line(`#include "NeuronBase.h"`)
	e.line(`#include "SystemWrapper.h"`)
	for _, h := range e.strategyHeaders() {
		e.linef("#include \"%s\"", cppString(h))
	}
	e.line(`#include "IntegratedSystemWrapper.h"`)
	for _, m := range e.reg.Models {
		e.linef("#include \"%s\"", cppString(m.Header))
	}
	for _, c := range e.reg.Couplings {
		// Couplings of an unsupported kind are never registered; leave
		// their headers out.
		if _, ok := couplingKinds[c.Kind]; !ok {
			continue
		}
		e.linef("#include \"%s\"", cppString(c.Header))
	}
	for _, in := range e.reg.Integrators {
		e.linef("#include \"%s\"", cppString(in.Header))
	}
	e.blank()

	e.line("namespace py = pybind11;")
	e.blank()
}

// strategyHeaders returns the extra wrapper headers required by models
// with a non-default strategy, in first-model-use order.
func (e *emitter) strategyHeaders() []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range e.reg.Models {
		s, ok := wrapperOverrides[m.Class]
		if !ok || s.Header == "" || seen[s.Header] {
			continue
		}
		seen[s.Header] = true
		out = append(out, s.Header)
	}
	return out
}

// modelInfo emits the static model metadata table consumed by the shared
// registration helpers and the introspection entry points. It is a
// faithful re-serialization of the registry's model collection.
func (e *emitter) modelInfo() {
	e.section("GENERATED MODEL INFORMATION")

	e.line("struct ModelInfo {")
	e.line("    std::string class_name;")
	e.line("    std::string short_name;")
	e.line("    std::string description;")
	e.line("    std::vector<std::pair<std::string, std::string>> variables;")
	e.line("    std::vector<std::pair<std::string, std::string>> parameters;")
	e.line("};")
	e.blank()

	e.line("static const std::map<std::string, ModelInfo> g_models_info = {")
	for _, m := range e.reg.Models {
		e.linef("    {\"%s\", {", cppString(m.Class))
		e.linef("        \"%s\",", cppString(m.Class))
		e.linef("        \"%s\",", cppString(m.Short))
		e.linef("        \"%s\",", cppString(m.Description))
		e.line("        {")
		for _, v := range m.Variables {
			e.linef("            {\"%s\", \"%s\"},", cppString(v.Name), cppString(v.Description))
		}
		e.line("        },")
		e.line("        {")
		for _, p := range m.Parameters {
			e.linef("            {\"%s\", \"%s\"},", cppString(p.Name), cppString(p.Description))
		}
		e.line("        }")
		e.line("    }},")
	}
	e.line("};")
	e.blank()
}

// traits emits the compile-time name trait per model and the wrapper
// dispatch: a primary template selecting the default wrapper plus one
// specialization per model routed to an alternate strategy.
func (e *emitter) traits() {
	e.line("// Template to extract model name at compile time")
	e.line("template<typename T>")
	e.line("struct model_name_trait;")
	e.blank()

	for _, m := range e.reg.Models {
		e.line("template<typename T>")
		e.linef("struct model_name_trait<%s<T>> {", m.Class)
		e.linef("    static constexpr const char* value = \"%s\";", cppString(m.Class))
		e.line("};")
		e.blank()
	}

	e.line("// Template to determine the appropriate wrapper type for each model")
	e.line("template<typename Precision, template<typename> class Model>")
	e.line("struct wrapper_type_trait {")
	e.line("    using type = SystemWrapper<Model<Precision>>;")
	e.line("};")
	e.blank()

	for _, m := range e.reg.Models {
		s, ok := wrapperOverrides[m.Class]
		if !ok {
			continue
		}
		e.linef("// Specialization for %s", m.Class)
		e.line("template<typename Precision>")
		e.linef("struct wrapper_type_trait<Precision, %s> {", m.Class)
		e.linef("    using type = %s<Precision>;", s.Wrapper)
		e.line("};")
		e.blank()
	}
}
