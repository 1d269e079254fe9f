package cursor

import (
	"fmt"

	"github.com/dshills/textcore/internal/engine/rope"
)

// ByteOffset is an alias for rope.ByteOffset for convenience.
type ByteOffset = rope.ByteOffset

// Selection represents a range of selected text.
// Start is where the selection began; End is the current cursor position.
// Selection is an immutable value type.
type Selection struct {
	Start ByteOffset
	End   ByteOffset
}

// NewSelection creates a selection from start to end, in the given order.
func NewSelection(start, end ByteOffset) Selection {
	return Selection{Start: start, End: end}
}

// NewCursorSelection creates a collapsed selection at offset.
func NewCursorSelection(offset ByteOffset) Selection {
	return Selection{Start: offset, End: offset}
}

// HasSelection returns true if the selection has an extent.
func (s Selection) HasSelection() bool {
	return s.Start != s.End
}

// IsEmpty returns true if the selection is just a cursor.
func (s Selection) IsEmpty() bool {
	return s.Start == s.End
}

// Range returns the endpoints ordered so that first <= second.
func (s Selection) Range() (ByteOffset, ByteOffset) {
	if s.End >= s.Start {
		return s.Start, s.End
	}
	return s.End, s.Start
}

// Len returns the length of the selection in bytes.
func (s Selection) Len() ByteOffset {
	if s.End >= s.Start {
		return s.End - s.Start
	}
	return s.Start - s.End
}

// Cursor returns the position where typing would occur.
func (s Selection) Cursor() ByteOffset {
	return s.End
}

// IsBackward returns true if the selection extends backward (end < start).
func (s Selection) IsBackward() bool {
	return s.End < s.Start
}

// Extend returns a new selection whose end moves to offset.
func (s Selection) Extend(offset ByteOffset) Selection {
	return Selection{Start: s.Start, End: offset}
}

// Collapse returns a cursor at the selection's end.
func (s Selection) Collapse() Selection {
	return Selection{Start: s.End, End: s.End}
}

// Contains returns true if offset is within [min, max).
// A collapsed selection contains nothing.
func (s Selection) Contains(offset ByteOffset) bool {
	lo, hi := s.Range()
	return offset >= lo && offset < hi
}

// Clamp returns a selection with each endpoint clamped to [0, maxOffset].
// The order of the endpoints is preserved.
func (s Selection) Clamp(maxOffset ByteOffset) Selection {
	return Selection{
		Start: clampOffset(s.Start, maxOffset),
		End:   clampOffset(s.End, maxOffset),
	}
}

func clampOffset(offset, maxOffset ByteOffset) ByteOffset {
	if offset < 0 {
		return 0
	}
	if offset > maxOffset {
		return maxOffset
	}
	return offset
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Cursor(%d)", s.End)
	}
	dir := "→"
	if s.IsBackward() {
		dir = "←"
	}
	return fmt.Sprintf("Selection(%d%s%d)", s.Start, dir, s.End)
}
