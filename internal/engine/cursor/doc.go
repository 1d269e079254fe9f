// Package cursor provides the selection value type used by the buffer.
//
// A Selection is a pair of byte offsets (Start, End). Either endpoint may be
// less than, equal to or greater than the other, which preserves the
// direction the user selected in. When Start == End the selection is a
// collapsed cursor; End is where typing occurs.
//
// Basic usage:
//
//	sel := cursor.NewCursorSelection(10)  // Cursor at offset 10
//	sel = sel.Extend(4)                   // Backward selection 10 → 4
//	start, end := sel.Range()             // 4, 10
//
// Thread Safety:
//
// Selection is an immutable value type and safe for concurrent use.
package cursor
