package history

import (
	"fmt"
	"time"

	"github.com/dshills/textcore/internal/engine/cursor"
	"github.com/dshills/textcore/internal/engine/rope"
)

// ByteOffset is an alias for rope.ByteOffset for convenience.
type ByteOffset = rope.ByteOffset

// Selection is an alias for cursor.Selection for convenience.
type Selection = cursor.Selection

// Operation represents a single undoable edit.
// It captures all information needed to undo or redo the edit.
type Operation struct {
	// Edit data
	Position ByteOffset // Where the edit happened
	OldText  string     // Text that was removed (may be empty)
	NewText  string     // Text that was inserted (may be empty)

	// Selection state for restore
	OldSelection Selection // Selection before the edit
	NewSelection Selection // Selection after the edit

	// Metadata
	Timestamp time.Time // When the operation occurred
}

// NewInsertOperation creates an operation for an insertion.
// The selection after the edit is a cursor at the end of the inserted text.
func NewInsertOperation(pos ByteOffset, text string, before Selection) Operation {
	return NewReplaceOperation(pos, "", text, before)
}

// NewDeleteOperation creates an operation for a deletion.
// The selection after the edit is a cursor at pos.
func NewDeleteOperation(pos ByteOffset, deleted string, before Selection) Operation {
	return NewReplaceOperation(pos, deleted, "", before)
}

// NewReplaceOperation creates an operation for a replacement.
// The selection after the edit is a cursor at the end of the new text.
func NewReplaceOperation(pos ByteOffset, oldText, newText string, before Selection) Operation {
	return Operation{
		Position:     pos,
		OldText:      oldText,
		NewText:      newText,
		OldSelection: before,
		NewSelection: cursor.NewCursorSelection(pos + ByteOffset(len(newText))),
		Timestamp:    time.Now(),
	}
}

// IsInsert returns true if this operation is a pure insertion.
func (op Operation) IsInsert() bool {
	return len(op.OldText) == 0 && len(op.NewText) > 0
}

// IsDelete returns true if this operation is a pure deletion.
func (op Operation) IsDelete() bool {
	return len(op.OldText) > 0 && len(op.NewText) == 0
}

// IsReplace returns true if this operation replaces text.
func (op Operation) IsReplace() bool {
	return len(op.OldText) > 0 && len(op.NewText) > 0
}

// IsNoop returns true if this operation makes no changes.
func (op Operation) IsNoop() bool {
	return len(op.OldText) == 0 && len(op.NewText) == 0
}

// BytesDelta returns the change in document length.
func (op Operation) BytesDelta() int {
	return len(op.NewText) - len(op.OldText)
}

// Invert returns an operation that undoes this one.
// Inverting twice yields the original operation.
func (op Operation) Invert() Operation {
	return Operation{
		Position:     op.Position,
		OldText:      op.NewText,
		NewText:      op.OldText,
		OldSelection: op.NewSelection,
		NewSelection: op.OldSelection,
		Timestamp:    op.Timestamp,
	}
}

// Description returns a short human-readable description.
func (op Operation) Description() string {
	switch {
	case op.IsInsert():
		return fmt.Sprintf("Insert %d bytes at %d", len(op.NewText), op.Position)
	case op.IsDelete():
		return fmt.Sprintf("Delete %d bytes at %d", len(op.OldText), op.Position)
	case op.IsReplace():
		return fmt.Sprintf("Replace %d bytes at %d with %d bytes", len(op.OldText), op.Position, len(op.NewText))
	default:
		return "No-op"
	}
}

// OperationInfo provides read-only info about an operation.
// Used for displaying undo/redo history to users.
type OperationInfo struct {
	Description string    // Human-readable description
	Timestamp   time.Time // When the operation occurred
	BytesDelta  int       // Positive for insertions, negative for deletions
}

// Info returns the display summary of the operation.
func (op Operation) Info() OperationInfo {
	return OperationInfo{
		Description: op.Description(),
		Timestamp:   op.Timestamp,
		BytesDelta:  op.BytesDelta(),
	}
}
