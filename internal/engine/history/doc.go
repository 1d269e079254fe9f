// Package history provides linear undo/redo bookkeeping for the buffer.
//
// # Operations
//
// An Operation records a single atomic edit:
//   - The position the edit happened at
//   - The text it removed and the text it inserted
//   - The selection before and after
//
// Invert swaps the removed/inserted text and the two selections, producing
// the record that undoes the edit.
//
// # History Stack
//
// History keeps two stacks, most recent last:
//
//	h := NewHistory(0) // Unlimited undo entries
//
//	h.Push(op)               // Record a new edit, clears redo
//	op, ok := h.PopUndo()    // Undo stack → redo stack (as inverse)
//	op, ok = h.PopRedo()     // Redo stack → undo stack (as forward edit)
//
// Any Push after one or more undos discards the redo stack: the model is a
// single line of history, never a tree of branches.
//
// History only moves records. Applying an operation to text is the
// caller's job.
package history
