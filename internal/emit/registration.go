package emit

import (
	"github.com/GNB-UAM/neungen/internal/naming"
)

// sharedHelpers emits the templates that register the artifacts shared
// across combinations: variable/parameter enumerations and
// constructor-argument types. Each helper registers unconditionally; the
// generator emits every call site at most once, guarded by the dedup
// registry, so the emitted module needs no runtime bookkeeping of its own.
func (e *emitter) sharedHelpers() {
	e.section("SHARED ENUM AND CONSTRUCTOR REGISTRATION")

	e.line("template<typename ModelType>")
	e.line("const ModelInfo* get_model_info_by_type() {")
	e.line(`    static_assert(std::is_same_v<ModelType, std::decay_t<ModelType>>, "ModelType should be decayed");`)
	e.blank()
	e.line("    if constexpr (requires { model_name_trait<ModelType>::value; }) {")
	e.line("        auto it = g_models_info.find(model_name_trait<ModelType>::value);")
	e.line("        return (it != g_models_info.end()) ? &it->second : nullptr;")
	e.line("    } else {")
	e.line("        return nullptr;")
	e.line("    }")
	e.line("}")
	e.blank()

	e.line("template<typename Precision, template<typename> class Model>")
	e.line("void register_model_enums(py::module_& m, const std::string& var_name, const std::string& param_name) {")
	e.line("    using ModelType = Model<Precision>;")
	e.blank()
	e.line("    const ModelInfo* model_info = get_model_info_by_type<ModelType>();")
	e.line("    if (!model_info) {")
	e.line(`        throw std::runtime_error("Model info not found for " + var_name);`)
	e.line("    }")
	e.blank()
	e.line("    auto var_enum = py::enum_<typename ModelType::variable>(m, var_name.c_str());")
	e.line("    for (size_t i = 0; i < model_info->variables.size(); ++i) {")
	e.line("        var_enum.value(model_info->variables[i].first.c_str(), static_cast<typename ModelType::variable>(i));")
	e.line("    }")
	e.line("    var_enum.export_values();")
	e.blank()
	e.line("    auto param_enum = py::enum_<typename ModelType::parameter>(m, param_name.c_str());")
	e.line("    for (size_t i = 0; i < model_info->parameters.size(); ++i) {")
	e.line("        param_enum.value(model_info->parameters[i].first.c_str(), static_cast<typename ModelType::parameter>(i));")
	e.line("    }")
	e.line("    param_enum.export_values();")
	e.line("}")
	e.blank()

	e.line("template<typename Precision, template<typename> class Model>")
	e.line("void register_constructor_args(py::module_& m, const std::string& name) {")
	e.line("    using WrappedModelType = typename wrapper_type_trait<Precision, Model>::type;")
	e.blank()
	e.line("    py::class_<typename WrappedModelType::ConstructorArgs>(m, name.c_str())")
	e.line("        .def(py::init<>());")
	e.line("}")
	e.blank()
}

// neuronTemplate emits the registration template for one individual
// combination's full operational surface.
func (e *emitter) neuronTemplate() {
	e.section("NEURON REGISTRATION FUNCTIONS")

	e.line("template<typename Precision, typename Integrator, template<typename> class Model>")
	e.line("void register_neuron_simple(py::module_& m, const std::string& name) {")
	e.line("    using ModelType = Model<Precision>;")
	e.line("    using WrappedModelType = typename wrapper_type_trait<Precision, Model>::type;")
	e.line("    using NeuronType = IntegratedSystemWrapper<WrappedModelType, Integrator>;")
	e.blank()
	e.line("    py::class_<NeuronType>(m, name.c_str())")
	e.line("        .def(py::init<typename NeuronType::ConstructorArgs&>())")
	e.line(`        .def("set", static_cast<void (NeuronType::*)(typename ModelType::variable, Precision)>(&NeuronType::set))`)
	e.line(`        .def("get", static_cast<Precision (NeuronType::*)(typename ModelType::variable) const>(&NeuronType::get))`)
	e.line(`        .def("set_param", static_cast<void (NeuronType::*)(typename ModelType::parameter, Precision)>(&NeuronType::set))`)
	e.line(`        .def("get_param", static_cast<Precision (NeuronType::*)(typename ModelType::parameter) const>(&NeuronType::get))`)
	e.line(`        .def("add_synaptic_input", &NeuronType::add_synaptic_input)`)
	e.line(`        .def("get_synaptic_input", &NeuronType::get_synaptic_input)`)
	e.line(`        .def("step", &NeuronType::step);`)
	e.line("}")
	e.blank()
}

// individualRegistrations emits one registration call per individual
// combination, preceded by the one-time registrations of that
// combination's shared artifacts.
func (e *emitter) individualRegistrations() {
	e.section("INDIVIDUAL NEURON REGISTRATIONS")

	e.line("void register_individual_neurons(py::module_& m) {")
	for _, ind := range e.individuals {
		varName := naming.VariableEnum(ind.Model.Short, ind.Precision.Suffix)
		paramName := naming.ParameterEnum(ind.Model.Short, ind.Precision.Suffix)
		if e.ded.TryRegister(varName) {
			e.ded.TryRegister(paramName)
			e.linef("    register_model_enums<%s, %s>(m, \"%s\", \"%s\");",
				ind.Precision.CType, ind.Model.Class, cppString(varName), cppString(paramName))
		}
		ctorName := naming.ConstructorArgs(ind.Model.Short, ind.Precision.Suffix)
		if e.ded.TryRegister(ctorName) {
			e.linef("    register_constructor_args<%s, %s>(m, \"%s\");",
				ind.Precision.CType, ind.Model.Class, cppString(ctorName))
		}
		e.linef("    register_neuron_simple<%s, %s, %s>(m, \"%s\");",
			ind.Precision.CType, ind.Integrator.Class, ind.Model.Class, cppString(ind.Name))
	}
	e.line("}")
	e.blank()
}
