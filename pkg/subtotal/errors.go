package subtotal

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx container.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ProcessError wraps a failure during one stage of the pass.
type ProcessError struct {
	Path  string
	Stage string // "validate", "open", "transform", "save"
	Err   error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("process %q (%s): %v", e.Path, e.Stage, e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// NewProcessError creates a new ProcessError.
func NewProcessError(path, stage string, err error) *ProcessError {
	return &ProcessError{Path: path, Stage: stage, Err: err}
}
