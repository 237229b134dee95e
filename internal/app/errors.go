package app

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// Application errors.
var (
	// ErrQuit signals that the application should exit normally.
	ErrQuit = errors.Base("quit requested")

	// ErrAlreadyRunning indicates Run was called twice.
	ErrAlreadyRunning = errors.Base("application already running")

	// ErrNoDocuments indicates nothing could be opened.
	ErrNoDocuments = errors.Base("no documents to show")

	// ErrNoView indicates an operation needed a focused view.
	ErrNoView = errors.Base("no view")
)

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op     string // Operation name (e.g., "open", "expand")
	Target string // Target of the operation (e.g., file path, pattern)
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
