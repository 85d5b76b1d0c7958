package emit

import (
	"github.com/GNB-UAM/neungen/internal/naming"
	"github.com/GNB-UAM/neungen/internal/registry"
)

// pairSection emits the registration templates for the coupling kinds that
// actually occur in the emitted pairs, then the pair registration calls.
func (e *emitter) pairSection() {
	e.section("SYNAPTIC PAIR REGISTRATIONS")

	kinds := make(map[string]bool, len(couplingKinds))
	for _, p := range e.pairs {
		kinds[p.Coupling.Kind] = true
	}

	if kinds[registry.KindConductance] {
		e.conductanceEnumHelper()
		e.conductancePairTemplate()
	}
	if kinds[registry.KindDiffusion] {
		e.diffusionPairTemplate()
	}
	e.pairRegistrations()
}

// conductanceEnumHelper emits the enum registration for conductance
// couplings. The enum shape is intrinsic to the kind; a reference pairing
// of the registry's first model and integrator supplies the concrete type
// the enumerators hang off.
func (e *emitter) conductanceEnumHelper() {
	meta := couplingKinds[registry.KindConductance]
	refModel := e.reg.Models[0]
	refIntegrator := e.reg.Integrators[0]

	e.line("// Coupling enums depend only on the coupling type and precision")
	e.line("template<typename Precision, template<typename, typename, typename> class Coupling>")
	e.line("void register_conductance_coupling_enums(py::module_& m, const std::string& var_name, const std::string& param_name) {")
	e.linef("    using ReferenceNeuron = IntegratedSystemWrapper<typename wrapper_type_trait<Precision, %s>::type, %s>;",
		refModel.Class, refIntegrator.Class)
	e.line("    using CouplingType = Coupling<ReferenceNeuron, ReferenceNeuron, Precision>;")
	e.blank()
	e.line("    py::enum_<typename CouplingType::variable>(m, var_name.c_str())")
	for _, v := range meta.Variables {
		e.linef("        .value(\"%s\", CouplingType::%s)", cppString(v.Name), v.Value)
	}
	e.line("        .export_values();")
	e.blank()
	e.line("    py::enum_<typename CouplingType::parameter>(m, param_name.c_str())")
	for _, p := range meta.Parameters {
		e.linef("        .value(\"%s\", CouplingType::%s)", cppString(p.Name), p.Value)
	}
	e.line("        .export_values();")
	e.line("}")
	e.blank()
}

func (e *emitter) conductancePairTemplate() {
	e.line("// Template for conductance couplings")
	e.line("template<typename Precision, typename Integrator, template<typename, typename, typename> class Coupling, template<typename> class Model1, template<typename> class Model2>")
	e.line("void register_conductance_pair(py::module_& m, const std::string& name) {")
	e.line("    using Model1Type = Model1<Precision>;")
	e.line("    using Model2Type = Model2<Precision>;")
	e.line("    using WrappedModel1Type = typename wrapper_type_trait<Precision, Model1>::type;")
	e.line("    using WrappedModel2Type = typename wrapper_type_trait<Precision, Model2>::type;")
	e.line("    using Neuron1Type = IntegratedSystemWrapper<WrappedModel1Type, Integrator>;")
	e.line("    using Neuron2Type = IntegratedSystemWrapper<WrappedModel2Type, Integrator>;")
	e.line("    using CouplingType = Coupling<Neuron1Type, Neuron2Type, Precision>;")
	e.blank()
	e.line("    py::class_<CouplingType>(m, name.c_str())")
	e.line("        .def(py::init<Neuron1Type&, typename Model1Type::variable, Neuron2Type&, typename Model2Type::variable, Precision, Precision>())")
	e.line(`        .def("get", static_cast<Precision (CouplingType::*)(typename CouplingType::variable) const>(&CouplingType::get))`)
	e.line(`        .def("set", static_cast<void (CouplingType::*)(typename CouplingType::variable, Precision)>(&CouplingType::set))`)
	e.line(`        .def("get_param", static_cast<Precision (CouplingType::*)(typename CouplingType::parameter) const>(&CouplingType::get))`)
	e.line(`        .def("set_param", static_cast<void (CouplingType::*)(typename CouplingType::parameter, Precision)>(&CouplingType::set))`)
	e.line(`        .def("step", &CouplingType::step);`)
	e.line("}")
	e.blank()
}

func (e *emitter) diffusionPairTemplate() {
	e.line("// Template for diffusion couplings")
	e.line("template<typename Precision, typename Integrator, template<typename, typename, typename, typename> class Coupling, template<typename> class CouplingModel, template<typename> class Model1, template<typename> class Model2>")
	e.line("void register_diffusion_pair(py::module_& m, const std::string& name) {")
	e.line("    using Model1Type = Model1<Precision>;")
	e.line("    using Model2Type = Model2<Precision>;")
	e.line("    using WrappedModel1Type = typename wrapper_type_trait<Precision, Model1>::type;")
	e.line("    using WrappedModel2Type = typename wrapper_type_trait<Precision, Model2>::type;")
	e.line("    using Neuron1Type = IntegratedSystemWrapper<WrappedModel1Type, Integrator>;")
	e.line("    using Neuron2Type = IntegratedSystemWrapper<WrappedModel2Type, Integrator>;")
	e.line("    using CouplingType = Coupling<Neuron1Type, Neuron2Type, Integrator, Precision>;")
	e.line("    using ConstructorArgsType = typename SystemWrapper<CouplingModel<Precision>>::ConstructorArgs;")
	e.blank()
	e.line("    py::class_<CouplingType>(m, name.c_str())")
	e.line("        .def(py::init<const Neuron1Type&, typename Model1Type::variable, Neuron2Type&, typename Model2Type::variable, ConstructorArgsType&, int>())")
	e.line(`        .def("step", &CouplingType::step);`)
	e.line("}")
	e.blank()
}

// pairRegistrations emits one registration call per emitted pair. The
// first pair of each coupling x precision also registers the coupling's
// enumerations; for kinds without Python-visible enumerations the names
// are reserved and a note emitted instead.
func (e *emitter) pairRegistrations() {
	e.line("void register_synaptic_pairs(py::module_& m) {")
	for _, p := range e.pairs {
		varName := naming.VariableEnum(p.Coupling.Short, p.Precision.Suffix)
		paramName := naming.ParameterEnum(p.Coupling.Short, p.Precision.Suffix)
		if e.ded.TryRegister(varName) {
			e.ded.TryRegister(paramName)
			switch p.Coupling.Kind {
			case registry.KindConductance:
				e.linef("    register_conductance_coupling_enums<%s, %s>(m, \"%s\", \"%s\");",
					p.Precision.CType, p.Coupling.Class, cppString(varName), cppString(paramName))
			case registry.KindDiffusion:
				e.linef("    // %s exposes no Python-visible enumerations", p.Coupling.Class)
			}
		}
		switch p.Coupling.Kind {
		case registry.KindConductance:
			e.linef("    register_conductance_pair<%s, %s, %s, %s, %s>(m, \"%s\");",
				p.Precision.CType, p.Integrator.Class, p.Coupling.Class, p.First.Class, p.Second.Class, cppString(p.Name))
		case registry.KindDiffusion:
			e.linef("    register_diffusion_pair<%s, %s, %s, %sModel, %s, %s>(m, \"%s\");",
				p.Precision.CType, p.Integrator.Class, p.Coupling.Class, p.Coupling.Class, p.First.Class, p.Second.Class, cppString(p.Name))
		}
	}
	if e.truncated {
		e.line("    // Additional combinations truncated to avoid code explosion")
	}
	e.line("}")
	e.blank()
}
