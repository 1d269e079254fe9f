package buffer

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dshills/textcore/internal/engine/cursor"
	"github.com/dshills/textcore/internal/engine/history"
	"github.com/dshills/textcore/internal/engine/rope"
)

// ByteOffset is an alias for rope.ByteOffset for convenience.
type ByteOffset = rope.ByteOffset

// Buffer wraps a Rope with selection tracking, linear undo/redo and
// file load/save. It provides the primary interface for text manipulation.
//
// A Buffer is not safe for concurrent use. Use Snapshot to hand the current
// text to other goroutines.
type Buffer struct {
	id       uuid.UUID
	rope     rope.Rope
	sel      cursor.Selection
	history  *history.History
	modified bool
	path     string

	fs       FileSystem
	logger   *slog.Logger
	maxUndo  int
	ropeOpts []rope.Option
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		id:     uuid.New(),
		fs:     DefaultFS(),
		logger: discardLogger(),
	}

	for _, opt := range opts {
		opt(b)
	}

	b.rope = rope.New(b.ropeOpts...)
	b.history = history.NewHistory(b.maxUndo)
	b.logger = b.logger.With(slog.String("buffer_id", b.id.String()))
	return b
}

// NewBufferFromString creates a buffer with initial content.
// The initial content is not an edit: the buffer starts unmodified with
// empty history.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.rope = rope.FromString(s, b.ropeOpts...)
	return b
}

// Read Operations

// Text returns the full buffer content as a string.
// For large buffers, prefer Substr or Snapshot.
func (b *Buffer) Text() string {
	return b.rope.String()
}

// Substr returns up to n bytes starting at pos.
// Positions past the end yield "" and n is clamped to the end.
func (b *Buffer) Substr(pos, n ByteOffset) string {
	return b.rope.Substr(pos, n)
}

// At returns the byte at pos.
func (b *Buffer) At(pos ByteOffset) (byte, error) {
	return b.rope.At(pos)
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	return b.rope.Len()
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	return b.rope.IsEmpty()
}

// Snapshot returns the current rope. Ropes are immutable, so the result
// stays valid and unchanged while the buffer keeps being edited.
func (b *Buffer) Snapshot() rope.Rope {
	return b.rope
}

// ID returns the buffer's unique identifier.
func (b *Buffer) ID() uuid.UUID {
	return b.id
}

// Path returns the path of the last successful load or save.
func (b *Buffer) Path() string {
	return b.path
}

// Selection

// Selection returns the current selection.
func (b *Buffer) Selection() cursor.Selection {
	return b.sel
}

// SetCursor collapses the selection to pos, clamped to [0, Len()].
// Cursor movement is not recorded in history.
func (b *Buffer) SetCursor(pos ByteOffset) {
	b.sel = cursor.NewCursorSelection(pos).Clamp(b.rope.Len())
}

// SetSelection sets the selection, clamping each endpoint to [0, Len()].
// Endpoint order is kept.
func (b *Buffer) SetSelection(start, end ByteOffset) {
	b.sel = cursor.NewSelection(start, end).Clamp(b.rope.Len())
}

// Write Operations

// Insert inserts text at pos and moves the cursor to the end of it.
// Inserting empty text does nothing.
func (b *Buffer) Insert(pos ByteOffset, text string) error {
	if len(text) == 0 {
		return nil
	}

	r, err := b.rope.Insert(pos, text)
	if err != nil {
		return err
	}

	b.commit(r, history.NewInsertOperation(pos, text, b.sel))
	return nil
}

// Erase removes up to n bytes starting at pos and moves the cursor to pos.
// n is clamped to the end of the buffer; erasing nothing does nothing.
func (b *Buffer) Erase(pos, n ByteOffset) error {
	if n <= 0 {
		return nil
	}

	removed := b.rope.Substr(pos, n)
	r, err := b.rope.Erase(pos, n)
	if err != nil {
		return err
	}

	b.commit(r, history.NewDeleteOperation(pos, removed, b.sel))
	return nil
}

// Replace removes up to n bytes at pos and inserts text in their place,
// recording a single history entry. The cursor moves to the end of the new
// text. pos must satisfy 0 <= pos < Len(); a valid replace that changes
// nothing leaves the buffer and its history untouched.
func (b *Buffer) Replace(pos, n ByteOffset, text string) error {
	r, err := b.rope.Replace(pos, n, text)
	if err != nil {
		return err
	}

	removed := b.rope.Substr(pos, n)
	if len(removed) == 0 && len(text) == 0 {
		return nil
	}

	b.commit(r, history.NewReplaceOperation(pos, removed, text, b.sel))
	return nil
}

// commit installs the rope produced by a user edit and records it.
func (b *Buffer) commit(r rope.Rope, op history.Operation) {
	b.rope = r
	b.sel = op.NewSelection
	b.modified = true
	b.history.Push(op)
}

// apply performs op on the current rope without touching history.
func (b *Buffer) apply(op history.Operation) (rope.Rope, error) {
	r := b.rope
	var err error
	if len(op.OldText) > 0 {
		if r, err = r.Erase(op.Position, ByteOffset(len(op.OldText))); err != nil {
			return b.rope, err
		}
	}
	if len(op.NewText) > 0 {
		if r, err = r.Insert(op.Position, op.NewText); err != nil {
			return b.rope, err
		}
	}
	return r, nil
}

// Undo/Redo

// Undo reverts the most recent edit and restores the selection from before
// it. Does nothing when there is nothing to undo.
func (b *Buffer) Undo() error {
	op, ok := b.history.PopUndo()
	if !ok {
		return nil
	}

	r, err := b.apply(op.Invert())
	if err != nil {
		b.history.RevertUndo(op)
		return fmt.Errorf("undo %s: %w", op.Description(), err)
	}

	b.rope = r
	b.sel = op.OldSelection
	b.modified = b.history.CanUndo()
	b.logger.Debug("undo", slog.String("op", op.Description()), slog.Int("undo", b.history.UndoCount()))
	return nil
}

// Redo re-applies the most recently undone edit and restores the selection
// from after it. Does nothing when there is nothing to redo.
func (b *Buffer) Redo() error {
	op, ok := b.history.PopRedo()
	if !ok {
		return nil
	}

	r, err := b.apply(op)
	if err != nil {
		b.history.RevertRedo(op)
		return fmt.Errorf("redo %s: %w", op.Description(), err)
	}

	b.rope = r
	b.sel = op.NewSelection
	b.modified = true
	b.logger.Debug("redo", slog.String("op", op.Description()), slog.Int("redo", b.history.RedoCount()))
	return nil
}

// CanUndo returns true if undo is available.
func (b *Buffer) CanUndo() bool {
	return b.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (b *Buffer) CanRedo() bool {
	return b.history.CanRedo()
}

// UndoCount returns the number of undo entries.
func (b *Buffer) UndoCount() int {
	return b.history.UndoCount()
}

// RedoCount returns the number of redo entries.
func (b *Buffer) RedoCount() int {
	return b.history.RedoCount()
}

// UndoInfo returns a summary of each undoable edit, oldest first.
func (b *Buffer) UndoInfo() []history.OperationInfo {
	return b.history.UndoInfo()
}

// Modified State

// IsModified reports whether the buffer has undoable edits, unless
// overridden by SetModified.
func (b *Buffer) IsModified() bool {
	return b.modified
}

// SetModified overrides the modified flag until the next edit, undo or redo.
func (b *Buffer) SetModified(modified bool) {
	b.modified = modified
}

// File Operations

// LoadFromFile replaces the buffer content with the file at path.
// History is cleared, the cursor moves to 0 and the buffer becomes
// unmodified. On failure the buffer is left unchanged.
func (b *Buffer) LoadFromFile(path string) error {
	f, err := b.fs.Open(path)
	if err != nil {
		return fmt.Errorf("load %s: %w: %w", path, ErrIO, err)
	}
	defer f.Close()

	r, err := rope.FromReader(f, b.ropeOpts...)
	if err != nil {
		return fmt.Errorf("load %s: %w: %w", path, ErrIO, err)
	}

	b.rope = r
	b.sel = cursor.Selection{}
	b.history.Clear()
	b.modified = false
	b.path = path

	b.logger.Info("buffer loaded",
		slog.String("path", path),
		slog.Int64("bytes", int64(r.Len())),
		slog.Int("leaves", r.LeafCount()),
	)
	return nil
}

// SaveToFile writes the full buffer content to path, replacing the file.
// History, selection and the modified flag are not changed.
func (b *Buffer) SaveToFile(path string) error {
	w, err := b.fs.Create(path)
	if err != nil {
		return fmt.Errorf("save %s: %w: %w", path, ErrIO, err)
	}

	n, err := b.rope.WriteTo(w)
	if closeErr := w.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("save %s: %w: %w", path, ErrIO, err)
	}

	b.path = path
	b.logger.Info("buffer saved", slog.String("path", path), slog.Int64("bytes", n))
	return nil
}
