package registry

import "fmt"

// Validation error codes. E1xx codes are stable and part of the CLI
// contract; tests and callers match on them.
const (
	ErrCodeModels           = "E100" // models collection missing or malformed
	ErrCodeCouplings        = "E101" // couplings collection malformed
	ErrCodePrecisions       = "E102" // precisions collection missing or malformed
	ErrCodeIntegrators      = "E103" // integrators collection missing or malformed
	ErrCodeGeneration       = "E104" // generation config missing or malformed
	ErrCodeSchema           = "E105" // other schema violation
	ErrCodeDuplicateKey     = "E110" // duplicate identifier
	ErrCodeDuplicateShort   = "E111" // duplicate short code or precision suffix
	ErrCodeEmptyModel       = "E112" // model lacks a variable or parameter
	ErrCodeUnknownPrecision = "E113" // precision identifier outside the known set
)

// ValidationError describes one registry violation with the path of the
// offending key.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// ValidationErrors aggregates every problem found in one validation pass.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "registry validation failed"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	return fmt.Sprintf("%s (and %d more validation errors)", e[0].Error(), len(e)-1)
}

// knownPrecisions is the fixed set of native precision types the generated
// wrappers can be instantiated with.
var knownPrecisions = map[string]bool{
	"float":  true,
	"double": true,
}

// validate applies the semantic rules the shape schema cannot express.
// All violations are collected before failing.
func (r *Registry) validate() ValidationErrors {
	var errs ValidationErrors

	modelShorts := make(map[string]string, len(r.Models))
	for _, m := range r.Models {
		path := "models." + m.Class
		if prev, ok := modelShorts[m.Short]; ok {
			errs = append(errs, ValidationError{
				Field:   path + ".short",
				Message: fmt.Sprintf("short code %q already used by %s", m.Short, prev),
				Code:    ErrCodeDuplicateShort,
			})
		} else {
			modelShorts[m.Short] = m.Class
		}
		if len(m.Variables) == 0 {
			errs = append(errs, ValidationError{
				Field:   path + ".variables",
				Message: "model must declare at least one variable",
				Code:    ErrCodeEmptyModel,
			})
		}
		if len(m.Parameters) == 0 {
			errs = append(errs, ValidationError{
				Field:   path + ".parameters",
				Message: "model must declare at least one parameter",
				Code:    ErrCodeEmptyModel,
			})
		}
	}

	couplingShorts := make(map[string]string, len(r.Couplings))
	for _, c := range r.Couplings {
		if prev, ok := couplingShorts[c.Short]; ok {
			errs = append(errs, ValidationError{
				Field:   "couplings." + c.Class + ".short",
				Message: fmt.Sprintf("short code %q already used by %s", c.Short, prev),
				Code:    ErrCodeDuplicateShort,
			})
		} else {
			couplingShorts[c.Short] = c.Class
		}
	}

	seenPrecisions := make(map[string]bool, len(r.Precisions))
	suffixes := make(map[string]string, len(r.Precisions))
	for _, p := range r.Precisions {
		path := "precisions." + p.CType
		if !knownPrecisions[p.CType] {
			errs = append(errs, ValidationError{
				Field:   path,
				Message: fmt.Sprintf("unknown precision %q: must be one of float, double", p.CType),
				Code:    ErrCodeUnknownPrecision,
			})
		}
		if seenPrecisions[p.CType] {
			errs = append(errs, ValidationError{
				Field:   path,
				Message: fmt.Sprintf("precision %q appears more than once", p.CType),
				Code:    ErrCodeDuplicateKey,
			})
			continue
		}
		seenPrecisions[p.CType] = true
		if p.Suffix == "" {
			continue
		}
		if prev, ok := suffixes[p.Suffix]; ok {
			errs = append(errs, ValidationError{
				Field:   path,
				Message: fmt.Sprintf("suffix %q already used by precision %q", p.Suffix, prev),
				Code:    ErrCodeDuplicateShort,
			})
		} else {
			suffixes[p.Suffix] = p.CType
		}
	}

	integratorShorts := make(map[string]string, len(r.Integrators))
	for _, in := range r.Integrators {
		if prev, ok := integratorShorts[in.Short]; ok {
			errs = append(errs, ValidationError{
				Field:   "integrators." + in.Class + ".short",
				Message: fmt.Sprintf("short code %q already used by %s", in.Short, prev),
				Code:    ErrCodeDuplicateShort,
			})
		} else {
			integratorShorts[in.Short] = in.Class
		}
	}

	return errs
}
