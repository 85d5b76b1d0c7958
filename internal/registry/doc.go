// Package registry loads and validates the declarative model registry that
// drives binding generation.
//
// The registry is YAML (JSON parses as YAML) and is loaded in two layers:
// an embedded CUE schema checks the shape of the document and reports every
// violation with its path, then a semantic pass checks the rules the schema
// cannot express (short-code uniqueness, suffix uniqueness, non-empty
// variable/parameter mappings, known precision identifiers).
//
// Mapping insertion order is semantically significant everywhere: model
// order fixes emission order, and variable/parameter order assigns the
// dense enumeration indices used by the generated code. Loading therefore
// walks the yaml.Node tree directly and never round-trips through Go maps.
//
// A loaded Registry is immutable for the rest of the run.
package registry
