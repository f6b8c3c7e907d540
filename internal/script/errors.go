package script

import "errors"

// Errors for script runtime operations.
var (
	// ErrRuntimeClosed is returned when operating on a closed runtime.
	ErrRuntimeClosed = errors.New("script runtime is closed")

	// ErrExecutionTimeout is returned when a script exceeds its deadline or
	// its context is cancelled.
	ErrExecutionTimeout = errors.New("script execution timeout")
)
