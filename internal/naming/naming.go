// Package naming synthesizes the symbol names used throughout the
// generated artifact.
//
// Names are plain concatenations of registry short codes in a fixed order,
// with no separators. Every name here is part of the generated module's
// public surface: driver scripts construct these symbols by the same
// scheme, so changing the concatenation order is a breaking change.
//
// The synthesizer performs no collision detection. Uniqueness follows from
// the registry invariants (unique short codes per descriptor kind, unique
// precision suffixes); the generator separately refuses to emit an
// artifact in which two combinations collapsed to one name.
package naming

// Individual names one model x precision x integrator instantiation,
// e.g. "HHFloatRK4".
func Individual(modelShort, precisionSuffix, integratorShort string) string {
	return modelShort + precisionSuffix + integratorShort
}

// Pair names one coupled instantiation of two endpoint models,
// e.g. "ESynHHHRFloatRK4". Endpoint order is significant: the pair
// (HH, HR) is a different combination from (HR, HH).
func Pair(couplingShort, firstShort, secondShort, precisionSuffix, integratorShort string) string {
	return couplingShort + firstShort + secondShort + precisionSuffix + integratorShort
}

// VariableEnum names the variable enumeration shared by every combination
// of one owner (model or coupling) and one precision, e.g. "HHFloatVariable".
func VariableEnum(ownerShort, precisionSuffix string) string {
	return ownerShort + precisionSuffix + "Variable"
}

// ParameterEnum names the parameter enumeration shared by every combination
// of one owner and one precision, e.g. "HHFloatParameter".
func ParameterEnum(ownerShort, precisionSuffix string) string {
	return ownerShort + precisionSuffix + "Parameter"
}

// ConstructorArgs names the constructor-argument type shared by every
// integrator variant of one model x precision, e.g. "HHFloatConstructorArgs".
func ConstructorArgs(modelShort, precisionSuffix string) string {
	return modelShort + precisionSuffix + "ConstructorArgs"
}
