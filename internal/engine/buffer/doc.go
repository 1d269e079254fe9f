// Package buffer provides the editable text buffer built on top of the rope
// data structure. It serves as the primary interface for text manipulation.
//
// The buffer package provides:
//
//   - Positional insert, erase and replace through the underlying rope
//   - A selection that follows each edit
//   - Linear undo/redo: a new edit after undo discards the redo stack
//   - A modified flag that is true while undoable edits exist
//   - Whole-file load and save through a FileSystem
//
// Basic usage:
//
//	// Create a buffer with some text
//	buf := buffer.NewBufferFromString("Hello, World!")
//
//	// Insert text
//	buf.Insert(7, "Beautiful ") // "Hello, Beautiful World!"
//
//	// Erase text
//	buf.Erase(0, 7) // "Beautiful World!"
//
//	// Undo the erase
//	buf.Undo() // "Hello, Beautiful World!"
//
//	// Get a snapshot for concurrent reading
//	snap := buf.Snapshot()
//	go func() {
//	    text := snap.String()
//	    // Process text...
//	}()
//
// Positions:
//
// All positions are byte offsets. Inserting at Len() appends; erasing or
// reading at Len() fails with ErrOutOfRange. Substr and selection setters
// clamp instead of failing.
//
// Thread Safety:
//
// A Buffer has no lock and must be confined to one goroutine. Snapshot
// returns an immutable rope that may be read from anywhere.
package buffer
