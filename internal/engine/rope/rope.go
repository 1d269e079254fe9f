package rope

import (
	"fmt"
	"io"
	"strings"
)

// ByteOffset is a byte position in a rope.
type ByteOffset int64

// Rope is an immutable rope data structure for text storage.
// Operations return new Rope values; the original is never modified.
// This enables cheap snapshots and thread-safe concurrent read access.
// The zero Rope is empty and uses default options.
type Rope struct {
	root *Node
	cfg  *config
}

// New creates an empty rope.
func New(opts ...Option) Rope {
	return Rope{cfg: newConfig(opts)}
}

// FromString creates a balanced rope from a string.
func FromString(s string, opts ...Option) Rope {
	cfg := newConfig(opts)
	return Rope{
		root: buildBalanced(splitFragments(s, cfg.maxLeafSize)),
		cfg:  cfg,
	}
}

// FromReader creates a rope from everything read from r.
func FromReader(r io.Reader, opts ...Option) (Rope, error) {
	b := NewBuilder(opts...)
	if _, err := io.Copy(b, r); err != nil {
		return Rope{}, err
	}
	return b.Build(), nil
}

// config returns the rope's options, falling back to the defaults.
func (r Rope) config() *config {
	if r.cfg == nil {
		return defaultConfig
	}
	return r.cfg
}

// withRoot wraps a freshly built root, rebalancing it when it has grown
// past the height bound.
func (r Rope) withRoot(root *Node) Rope {
	cfg := r.config()
	if cfg.rebalance && !root.isBalanced() {
		root = rebuild(root, cfg.maxLeafSize)
	}
	return Rope{root: root, cfg: r.cfg}
}

// Len returns the total byte length.
func (r Rope) Len() ByteOffset {
	return r.root.Len()
}

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.root == nil
}

// String returns the full text as a string.
// Use sparingly for large ropes.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}

	var sb strings.Builder
	sb.Grow(int(r.Len()))
	r.root.appendTo(&sb)
	return sb.String()
}

// WriteTo writes the full text to w, one leaf at a time.
func (r Rope) WriteTo(w io.Writer) (int64, error) {
	var total int64
	it := r.Leaves()
	for it.Next() {
		n, err := io.WriteString(w, it.Text())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// At returns the byte at pos.
// Fails with ErrOutOfRange unless 0 <= pos < Len().
func (r Rope) At(pos ByteOffset) (byte, error) {
	if pos < 0 || pos >= r.Len() {
		return 0, fmt.Errorf("at %d (length %d): %w", pos, r.Len(), ErrOutOfRange)
	}
	return r.root.byteAt(pos), nil
}

// Substr returns up to n bytes starting at pos.
// A pos at or past the end yields "", and n is clamped to the end of the rope.
func (r Rope) Substr(pos, n ByteOffset) string {
	if pos < 0 || pos >= r.Len() || n <= 0 {
		return ""
	}
	if n > r.Len()-pos {
		n = r.Len() - pos
	}

	var sb strings.Builder
	sb.Grow(int(n))
	r.root.appendRange(&sb, pos, pos+n)
	return sb.String()
}

// Insert inserts text at pos.
// Returns a new rope; original is unchanged.
// Fails with ErrOutOfRange unless 0 <= pos <= Len().
func (r Rope) Insert(pos ByteOffset, text string) (Rope, error) {
	if pos < 0 || pos > r.Len() {
		return r, fmt.Errorf("insert at %d (length %d): %w", pos, r.Len(), ErrOutOfRange)
	}
	if len(text) == 0 {
		return r, nil
	}

	maxLeaf := r.config().maxLeafSize
	if r.root == nil {
		return r.withRoot(buildBalanced(splitFragments(text, maxLeaf))), nil
	}
	return r.withRoot(r.root.insert(pos, text, maxLeaf)), nil
}

// Erase removes up to n bytes starting at pos.
// Returns a new rope; original is unchanged.
// Fails with ErrOutOfRange unless 0 <= pos < Len(); n is clamped to the end.
func (r Rope) Erase(pos, n ByteOffset) (Rope, error) {
	if pos < 0 || pos >= r.Len() {
		return r, fmt.Errorf("erase at %d (length %d): %w", pos, r.Len(), ErrOutOfRange)
	}
	if n > r.Len()-pos {
		n = r.Len() - pos
	}
	if n <= 0 {
		return r, nil
	}

	return r.withRoot(r.root.erase(pos, n)), nil
}

// Replace removes up to n bytes at pos and inserts text in their place.
// Fails with ErrOutOfRange unless 0 <= pos < Len(), whatever n and text are.
func (r Rope) Replace(pos, n ByteOffset, text string) (Rope, error) {
	if pos < 0 || pos >= r.Len() {
		return r, fmt.Errorf("replace at %d (length %d): %w", pos, r.Len(), ErrOutOfRange)
	}
	if n <= 0 {
		return r.Insert(pos, text)
	}

	erased, err := r.Erase(pos, n)
	if err != nil {
		return r, err
	}
	return erased.Insert(pos, text)
}

// Rebalance returns a balanced copy of the rope with undersized
// neighbouring leaves merged.
func (r Rope) Rebalance() Rope {
	if r.root == nil {
		return r
	}
	return Rope{root: rebuild(r.root, r.config().maxLeafSize), cfg: r.cfg}
}

// rebuild collects the leaves under root, coalesces them and builds a
// balanced tree. Existing nodes are reused, never modified.
func rebuild(root *Node, maxLeaf int) *Node {
	leaves := make([]*Node, 0, root.leaves)
	it := leafIterator(root)
	for it.Next() {
		leaves = append(leaves, it.node)
	}
	return buildBalanced(coalesce(leaves, maxLeaf))
}

// Height returns the height of the rope tree.
// Useful for debugging and testing balance.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return r.root.height + 1
}

// LeafCount returns the number of leaves in the rope.
func (r Rope) LeafCount() int {
	if r.root == nil {
		return 0
	}
	return r.root.leaves
}

// Balanced reports whether the tree height is within the rebalancing bound.
func (r Rope) Balanced() bool {
	return r.root.isBalanced()
}

// Root returns the root node, or nil for an empty rope.
// Exposed so callers can observe structural sharing between versions.
func (r Rope) Root() *Node {
	return r.root
}

// Equals returns true if two ropes contain the same text.
// Note: This compares content, not structure.
func (r Rope) Equals(other Rope) bool {
	if r.Len() != other.Len() {
		return false
	}
	if r.root == other.root {
		return true
	}

	// Leaf boundaries differ between ropes, so compare overlapping prefixes
	iter1, iter2 := r.Leaves(), other.Leaves()
	var s1, s2 string
	for {
		for len(s1) == 0 && iter1.Next() {
			s1 = iter1.Text()
		}
		for len(s2) == 0 && iter2.Next() {
			s2 = iter2.Text()
		}
		if len(s1) == 0 || len(s2) == 0 {
			return len(s1) == len(s2)
		}

		n := min(len(s1), len(s2))
		if s1[:n] != s2[:n] {
			return false
		}
		s1, s2 = s1[n:], s2[n:]
	}
}
