package buffer

import (
	"errors"

	"github.com/dshills/textcore/internal/engine/rope"
)

// Errors returned by buffer operations.
var (
	// ErrOutOfRange indicates a position outside the buffer.
	ErrOutOfRange = rope.ErrOutOfRange

	// ErrIO indicates a failed file read or write.
	ErrIO = errors.New("buffer i/o failed")
)
