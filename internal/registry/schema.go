package registry

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var schemaSource string

// validateShape unifies the registry bytes with the embedded #Registry
// schema and maps every violation to a coded ValidationError. The #Registry
// definition is closed, so misspelled or foreign keys are rejected here
// with their path rather than silently ignored.
func validateShape(data []byte) ValidationErrors {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		panic(fmt.Sprintf("registry: embedded schema does not compile: %v", err))
	}
	def := schema.LookupPath(cue.ParsePath("#Registry"))

	file, err := cueyaml.Extract("registry", data)
	if err != nil {
		return ValidationErrors{{Field: "registry", Message: err.Error(), Code: ErrCodeSchema}}
	}
	value := ctx.BuildFile(file)
	if err := value.Err(); err != nil {
		return shapeErrors(err)
	}

	if err := def.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return shapeErrors(err)
	}
	return nil
}

func shapeErrors(err error) ValidationErrors {
	var out ValidationErrors
	for _, e := range cueerrors.Errors(err) {
		path := strings.Join(e.Path(), ".")
		format, args := e.Msg()
		ve := ValidationError{
			Field:   path,
			Message: fmt.Sprintf(format, args...),
			Code:    shapeCode(path),
		}
		if positions := cueerrors.Positions(e); len(positions) > 0 && positions[0].IsValid() {
			ve.Line = positions[0].Line()
		}
		out = append(out, ve)
	}
	if len(out) == 0 {
		out = ValidationErrors{{Field: "registry", Message: err.Error(), Code: ErrCodeSchema}}
	}
	return out
}

// shapeCode assigns the error code from the top-level collection a schema
// violation falls under.
func shapeCode(path string) string {
	section, _, _ := strings.Cut(path, ".")
	switch section {
	case "models":
		return ErrCodeModels
	case "couplings":
		return ErrCodeCouplings
	case "precisions":
		return ErrCodePrecisions
	case "integrators":
		return ErrCodeIntegrators
	case "generation":
		return ErrCodeGeneration
	default:
		return ErrCodeSchema
	}
}
