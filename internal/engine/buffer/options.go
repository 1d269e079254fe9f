package buffer

import (
	"io"
	"log/slog"

	"github.com/dshills/textcore/internal/engine/rope"
)

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithFileSystem sets the file system used for load and save.
func WithFileSystem(fsys FileSystem) Option {
	return func(b *Buffer) {
		if fsys != nil {
			b.fs = fsys
		}
	}
}

// WithLogger sets the buffer's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Buffer) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithMaxUndo limits the number of undo entries kept.
// Zero or less keeps every entry.
func WithMaxUndo(n int) Option {
	return func(b *Buffer) {
		b.maxUndo = n
	}
}

// WithRopeOptions sets the options used for every rope the buffer builds.
func WithRopeOptions(opts ...rope.Option) Option {
	return func(b *Buffer) {
		b.ropeOpts = append(b.ropeOpts, opts...)
	}
}

// discardLogger is used when no logger is configured.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
