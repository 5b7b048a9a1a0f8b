package generator

import "fmt"

// GenerationFailedError wraps any failure of a run with the requested output path.
type GenerationFailedError struct {
	// Path is the output file the run was asked to produce.
	Path string
	// Err is the cause.
	Err error
}

// Error implements error.
func (e *GenerationFailedError) Error() string {
	return fmt.Sprintf("generate %s: %v", e.Path, e.Err)
}

// Unwrap returns the cause so errors.Is matches the underlying sentinel.
func (e *GenerationFailedError) Unwrap() error {
	return e.Err
}
