package generator

import "fmt"

// Generation error codes. Registry loading and validation codes live in
// the registry package.
const (
	ErrCodeWriteFailed     = "E007" // artifact could not be written
	ErrCodeSymbolCollision = "E120" // two combinations map to one symbol
)

// GenerationError is a fatal failure of the generation pipeline after the
// registry has loaded cleanly.
type GenerationError struct {
	Code    string
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *GenerationError) Unwrap() error { return e.Err }
