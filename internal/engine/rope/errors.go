package rope

import "errors"

// ErrOutOfRange indicates a position outside the valid range for an operation.
var ErrOutOfRange = errors.New("position out of range")
