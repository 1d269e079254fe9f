package script

import "errors"

// Errors for script execution.
var (
	// ErrClosed is returned when running on a closed runtime.
	ErrClosed = errors.New("script runtime is closed")

	// ErrTimeout is returned when a script runs past its time limit.
	ErrTimeout = errors.New("script execution timeout")
)
