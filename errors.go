package acceptor

import (
	"errors"
	"fmt"
)

// RuntimeError represents an operational error that should lead to exit code 2.
// Op names the step that failed, such as "load catalog" or "persist report".
type RuntimeError struct {
	Op  string
	Err error
}

func (e *RuntimeError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("runtime error: %v", e.Err)
	}
	return fmt.Sprintf("runtime error: failed to %s: %v", e.Op, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// NewRuntimeError creates a new RuntimeError for the named step
func NewRuntimeError(op string, err error) *RuntimeError {
	return &RuntimeError{Op: op, Err: err}
}

// IsRuntimeError checks if the error is or wraps a RuntimeError
func IsRuntimeError(err error) bool {
	var runtimeErr *RuntimeError
	return err != nil && errors.As(err, &runtimeErr)
}

// RuntimeOp returns the failed step of the outermost RuntimeError in err's chain
func RuntimeOp(err error) (string, bool) {
	var runtimeErr *RuntimeError
	if !errors.As(err, &runtimeErr) {
		return "", false
	}
	return runtimeErr.Op, true
}
