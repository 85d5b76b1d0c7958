package registry

// Kind tags selecting a coupling's registration strategy.
const (
	KindConductance = "conductance"
	KindDiffusion   = "diffusion"
)

// DefaultMaxPairs bounds pair generation when the registry sets no cap.
const DefaultMaxPairs = 200

// Field is one named variable or parameter. Its position in the enclosing
// slice assigns the dense enumeration index used by the generated code.
type Field struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Model describes one simulated component type.
type Model struct {
	Class       string  `json:"class"`
	Short       string  `json:"short"`
	Description string  `json:"description"`
	Header      string  `json:"header"`
	Variables   []Field `json:"variables"`
	Parameters  []Field `json:"parameters"`
}

// Coupling describes one pairwise connector type. Kind selects the
// registration strategy; the variable/parameter enumerations of a coupling
// are intrinsic to its kind, not registry data.
type Coupling struct {
	Class  string `json:"class"`
	Short  string `json:"short"`
	Header string `json:"header"`
	Kind   string `json:"kind"`
}

// Precision pairs a native precision type with the suffix used in
// generated symbol names.
type Precision struct {
	CType  string `json:"ctype"`
	Suffix string `json:"suffix"`
}

// Integrator describes one numerical integrator.
type Integrator struct {
	Class  string `json:"class"`
	Short  string `json:"short"`
	Header string `json:"header"`
}

// Generation holds the pair-generation policy.
type Generation struct {
	Pairs    bool `json:"pairs"`
	MaxPairs int  `json:"max_pairs"`
}

// Registry is the loaded, validated registry model. Slice order everywhere
// is the registry file's insertion order.
type Registry struct {
	Models      []Model      `json:"models"`
	Couplings   []Coupling   `json:"couplings,omitempty"`
	Precisions  []Precision  `json:"precisions"`
	Integrators []Integrator `json:"integrators"`
	Generation  Generation   `json:"generation"`
}
