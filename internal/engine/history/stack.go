package history

// History manages undo/redo state for a buffer.
// It is not safe for concurrent use; the owning buffer confines it to one
// goroutine.
type History struct {
	undoStack []Operation
	redoStack []Operation

	// Configuration
	maxEntries int // 0 means unlimited
}

// NewHistory creates a new history manager.
// A maxEntries of zero or less keeps every undo entry.
func NewHistory(maxEntries int) *History {
	if maxEntries < 0 {
		maxEntries = 0
	}
	return &History{
		maxEntries: maxEntries,
	}
}

// Push adds an operation to the undo stack.
// Clears the redo stack.
func (h *History) Push(op Operation) {
	h.undoStack = append(h.undoStack, op)

	// Clear redo stack
	h.redoStack = nil

	h.trim()
}

// trim drops the oldest undo entries beyond the configured maximum.
func (h *History) trim() {
	if h.maxEntries == 0 || len(h.undoStack) <= h.maxEntries {
		return
	}
	excess := len(h.undoStack) - h.maxEntries
	kept := make([]Operation, h.maxEntries)
	copy(kept, h.undoStack[excess:])
	h.undoStack = kept
}

// PopUndo removes the most recent operation from the undo stack and pushes
// its inverse onto the redo stack. The returned operation is the forward
// edit that must now be reverted.
func (h *History) PopUndo() (Operation, bool) {
	if len(h.undoStack) == 0 {
		return Operation{}, false
	}

	op := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, op.Invert())
	return op, true
}

// PopRedo removes the most recent inverse record from the redo stack and
// pushes the forward operation it describes back onto the undo stack.
// The returned operation is the forward edit that must now be re-applied.
func (h *History) PopRedo() (Operation, bool) {
	if len(h.redoStack) == 0 {
		return Operation{}, false
	}

	inv := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	op := inv.Invert()
	h.undoStack = append(h.undoStack, op)
	return op, true
}

// RevertUndo reverses a PopUndo whose application failed.
func (h *History) RevertUndo(op Operation) {
	if len(h.redoStack) > 0 {
		h.redoStack = h.redoStack[:len(h.redoStack)-1]
	}
	h.undoStack = append(h.undoStack, op)
}

// RevertRedo reverses a PopRedo whose application failed.
func (h *History) RevertRedo(op Operation) {
	if len(h.undoStack) > 0 {
		h.undoStack = h.undoStack[:len(h.undoStack)-1]
	}
	h.redoStack = append(h.redoStack, op.Invert())
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo operations available.
func (h *History) UndoCount() int {
	return len(h.undoStack)
}

// RedoCount returns the number of redo operations available.
func (h *History) RedoCount() int {
	return len(h.redoStack)
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

// UndoInfo returns info about available undo operations, oldest first.
func (h *History) UndoInfo() []OperationInfo {
	result := make([]OperationInfo, len(h.undoStack))
	for i, op := range h.undoStack {
		result[i] = op.Info()
	}
	return result
}

// RedoInfo returns info about available redo operations, oldest first.
// Each entry describes the edit a redo would re-apply.
func (h *History) RedoInfo() []OperationInfo {
	result := make([]OperationInfo, len(h.redoStack))
	for i, inv := range h.redoStack {
		result[i] = inv.Invert().Info()
	}
	return result
}

// PeekUndo returns the next operation an undo would revert.
func (h *History) PeekUndo() (Operation, bool) {
	if len(h.undoStack) == 0 {
		return Operation{}, false
	}
	return h.undoStack[len(h.undoStack)-1], true
}

// PeekRedo returns the inverse record on top of the redo stack.
func (h *History) PeekRedo() (Operation, bool) {
	if len(h.redoStack) == 0 {
		return Operation{}, false
	}
	return h.redoStack[len(h.redoStack)-1], true
}

// SetMaxEntries changes the maximum number of undo entries.
// If the current stack is larger, oldest entries are removed.
func (h *History) SetMaxEntries(max int) {
	if max < 0 {
		max = 0
	}
	h.maxEntries = max
	h.trim()
}

// MaxEntries returns the maximum number of undo entries (0 means unlimited).
func (h *History) MaxEntries() int {
	return h.maxEntries
}
