package emit

// utilities emits the introspection entry points. The name lists reflect
// what this run actually registered: a truncated pair sequence yields a
// truncated synapse list, never names with no backing registration.
func (e *emitter) utilities() {
	e.section("UTILITY FUNCTIONS")

	e.line("std::vector<std::string> get_available_neurons() {")
	e.line("    std::vector<std::string> neurons;")
	for _, ind := range e.individuals {
		e.linef("    neurons.push_back(\"%s\");", cppString(ind.Name))
	}
	e.line("    return neurons;")
	e.line("}")
	e.blank()

	if e.reg.Generation.Pairs {
		e.line("std::vector<std::string> get_available_synapses() {")
		e.line("    std::vector<std::string> synapses;")
		for _, p := range e.pairs {
			e.linef("    synapses.push_back(\"%s\");", cppString(p.Name))
		}
		e.line("    return synapses;")
		e.line("}")
		e.blank()
	}

	e.line("py::dict get_model_info(const std::string& short_name) {")
	e.line("    for (const auto& pair : g_models_info) {")
	e.line("        const auto& model_info = pair.second;")
	e.line("        if (model_info.short_name == short_name) {")
	e.line("            py::dict result;")
	e.line(`            result["class_name"] = model_info.class_name;`)
	e.line(`            result["short_name"] = model_info.short_name;`)
	e.line(`            result["description"] = model_info.description;`)
	e.blank()
	e.line("            py::list vars;")
	e.line("            for (const auto& var_pair : model_info.variables) {")
	e.line("                py::dict var_info;")
	e.line(`                var_info["name"] = var_pair.first;`)
	e.line(`                var_info["description"] = var_pair.second;`)
	e.line("                vars.append(var_info);")
	e.line("            }")
	e.line(`            result["variables"] = vars;`)
	e.blank()
	e.line("            py::list params;")
	e.line("            for (const auto& param_pair : model_info.parameters) {")
	e.line("                py::dict param_info;")
	e.line(`                param_info["name"] = param_pair.first;`)
	e.line(`                param_info["description"] = param_pair.second;`)
	e.line("                params.append(param_info);")
	e.line("            }")
	e.line(`            result["parameters"] = params;`)
	e.blank()
	e.line("            return result;")
	e.line("        }")
	e.line("    }")
	e.line("    return py::dict();")
	e.line("}")
	e.blank()
}

func (e *emitter) mainModule() {
	e.section("MAIN PYBIND11 MODULE")

	e.linef("PYBIND11_MODULE(%s, m) {", ModuleName)
	e.line(`    m.doc() = "Neun Python Bindings - Neural Simulation Library";`)
	e.linef("    m.attr(\"__version__\") = \"%s\";", ModuleVersion)
	e.blank()
	e.line("    register_individual_neurons(m);")
	if e.reg.Generation.Pairs {
		e.line("    register_synaptic_pairs(m);")
	}
	e.blank()
	e.line(`    m.def("get_available_neurons", &get_available_neurons);`)
	if e.reg.Generation.Pairs {
		e.line(`    m.def("get_available_synapses", &get_available_synapses);`)
	}
	e.line(`    m.def("get_model_info", &get_model_info);`)
	e.line("}")
}
