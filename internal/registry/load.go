package registry

import (
	"fmt"
	"os"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Load error codes. Validation codes live in validate.go.
const (
	ErrCodeNotFound = "E001" // registry file missing or unreadable
	ErrCodeParse    = "E002" // registry is not well-formed YAML/JSON
)

// LoadError is a fatal registry loading failure (I/O or syntax).
// Validation problems are reported as ValidationErrors instead.
type LoadError struct {
	Code    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads, shape-checks, and semantically validates a registry file.
// The error is a *LoadError for I/O and syntax failures, or
// ValidationErrors listing every schema and semantic violation found.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("registry file not found: %s", path), Err: err}
		}
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading registry %s: %v", path, err), Err: err}
	}
	return Parse(data)
}

// Parse builds a Registry from raw YAML or JSON bytes.
func Parse(data []byte) (*Registry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("parsing registry: %v", err), Err: err}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, &LoadError{Code: ErrCodeParse, Message: "registry is empty"}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &LoadError{Code: ErrCodeParse, Message: "registry root must be a mapping"}
	}

	// Extraction runs first: it owns duplicate-key detection, which must
	// see the raw document before CUE unifies repeated fields away.
	reg, errs := extract(root)
	if len(errs) > 0 {
		return nil, errs
	}
	if errs := validateShape(data); len(errs) > 0 {
		return nil, errs
	}
	if errs := reg.validate(); len(errs) > 0 {
		return nil, errs
	}
	return reg, nil
}

// defaultSuffixes maps precision identifiers to the symbol-name suffix used
// when the registry's list form does not supply one.
var defaultSuffixes = map[string]string{
	"float":  "Float",
	"double": "Double",
}

// extract walks the document tree in order. The shape is already validated,
// so the walk only checks what the schema cannot see: duplicated keys.
func extract(root *yaml.Node) (*Registry, ValidationErrors) {
	var errs ValidationErrors
	reg := &Registry{Generation: Generation{MaxPairs: DefaultMaxPairs}}

	for _, kv := range mappingEntries(root, "", &errs) {
		switch kv.key {
		case "models":
			reg.Models = extractModels(kv.node, &errs)
		case "couplings":
			reg.Couplings = extractCouplings(kv.node, &errs)
		case "precisions":
			reg.Precisions = extractPrecisions(kv.node, &errs)
		case "integrators":
			reg.Integrators = extractIntegrators(kv.node, &errs)
		case "generation":
			extractGeneration(kv.node, &reg.Generation, &errs)
		}
	}
	return reg, errs
}

func extractModels(n *yaml.Node, errs *ValidationErrors) []Model {
	entries := mappingEntries(n, "models", errs)
	models := make([]Model, 0, len(entries))
	for _, e := range entries {
		path := "models." + e.key
		m := Model{Class: e.key}
		for _, f := range mappingEntries(e.node, path, errs) {
			switch f.key {
			case "short":
				m.Short = scalar(f.node)
			case "description":
				m.Description = scalar(f.node)
			case "header":
				m.Header = scalar(f.node)
			case "variables":
				m.Variables = extractFields(f.node, path+".variables", errs)
			case "parameters":
				m.Parameters = extractFields(f.node, path+".parameters", errs)
			}
		}
		models = append(models, m)
	}
	return models
}

// extractFields reads an ordered name -> description mapping. Document
// order is preserved because it assigns the enumeration index of each
// field.
func extractFields(n *yaml.Node, path string, errs *ValidationErrors) []Field {
	entries := mappingEntries(n, path, errs)
	fields := make([]Field, 0, len(entries))
	for _, e := range entries {
		fields = append(fields, Field{Name: e.key, Description: scalar(e.node)})
	}
	return fields
}

func extractCouplings(n *yaml.Node, errs *ValidationErrors) []Coupling {
	entries := mappingEntries(n, "couplings", errs)
	couplings := make([]Coupling, 0, len(entries))
	for _, e := range entries {
		c := Coupling{Class: e.key}
		for _, f := range mappingEntries(e.node, "couplings."+e.key, errs) {
			switch f.key {
			case "short":
				c.Short = scalar(f.node)
			case "header":
				c.Header = scalar(f.node)
			case "kind":
				c.Kind = scalar(f.node)
			}
		}
		couplings = append(couplings, c)
	}
	return couplings
}

// extractPrecisions accepts both registry forms: a list of identifiers with
// default suffixes, or a mapping of identifier to explicit suffix.
func extractPrecisions(n *yaml.Node, errs *ValidationErrors) []Precision {
	if n.Kind == yaml.SequenceNode {
		out := make([]Precision, 0, len(n.Content))
		for _, item := range n.Content {
			ident := nfc(item.Value)
			out = append(out, Precision{CType: ident, Suffix: defaultSuffixes[ident]})
		}
		return out
	}
	entries := mappingEntries(n, "precisions", errs)
	out := make([]Precision, 0, len(entries))
	for _, e := range entries {
		out = append(out, Precision{CType: e.key, Suffix: scalar(e.node)})
	}
	return out
}

func extractIntegrators(n *yaml.Node, errs *ValidationErrors) []Integrator {
	entries := mappingEntries(n, "integrators", errs)
	integrators := make([]Integrator, 0, len(entries))
	for _, e := range entries {
		in := Integrator{Class: e.key}
		for _, f := range mappingEntries(e.node, "integrators."+e.key, errs) {
			switch f.key {
			case "short":
				in.Short = scalar(f.node)
			case "header":
				in.Header = scalar(f.node)
			}
		}
		integrators = append(integrators, in)
	}
	return integrators
}

func extractGeneration(n *yaml.Node, gen *Generation, errs *ValidationErrors) {
	for _, e := range mappingEntries(n, "generation", errs) {
		switch e.key {
		case "pairs":
			if err := e.node.Decode(&gen.Pairs); err != nil {
				*errs = append(*errs, ValidationError{Field: "generation.pairs", Message: err.Error(), Code: ErrCodeSchema, Line: e.line})
			}
		case "max_pairs":
			if err := e.node.Decode(&gen.MaxPairs); err != nil {
				*errs = append(*errs, ValidationError{Field: "generation.max_pairs", Message: err.Error(), Code: ErrCodeSchema, Line: e.line})
			}
		}
	}
}

type mapEntry struct {
	key  string
	node *yaml.Node
	line int
}

// mappingEntries returns the entries of a mapping node in document order,
// recording a validation error for every duplicated key. YAML permits
// duplicate keys; silently keeping either occurrence would hide registry
// mistakes.
func mappingEntries(n *yaml.Node, path string, errs *ValidationErrors) []mapEntry {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	seen := make(map[string]bool, len(n.Content)/2)
	entries := make([]mapEntry, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		key := nfc(k.Value)
		if seen[key] {
			*errs = append(*errs, ValidationError{
				Field:   joinPath(path, key),
				Message: fmt.Sprintf("key %q appears more than once", key),
				Code:    ErrCodeDuplicateKey,
				Line:    k.Line,
			})
			continue
		}
		seen[key] = true
		entries = append(entries, mapEntry{key: key, node: n.Content[i+1], line: k.Line})
	}
	return entries
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func scalar(n *yaml.Node) string { return nfc(n.Value) }

// nfc normalizes registry strings so emission does not depend on the
// Unicode representation chosen by the registry file.
func nfc(s string) string { return norm.NFC.String(s) }
