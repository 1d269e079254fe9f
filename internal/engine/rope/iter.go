package rope

// LeafIterator iterates over the leaves of a rope in text order.
// It walks the tree with an explicit stack, so iteration depth is not
// limited by the goroutine stack.
type LeafIterator struct {
	stack  []*Node
	node   *Node
	offset ByteOffset
	next   ByteOffset
}

// Leaves returns an iterator over all leaf fragments in the rope.
func (r Rope) Leaves() *LeafIterator {
	return leafIterator(r.root)
}

func leafIterator(root *Node) *LeafIterator {
	it := &LeafIterator{
		stack: make([]*Node, 0, 16),
	}
	if root != nil {
		it.stack = append(it.stack, root)
	}
	return it
}

// Next advances to the next leaf.
// Returns true if there is a leaf, false if iteration is complete.
func (it *LeafIterator) Next() bool {
	for len(it.stack) > 0 {
		n := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]

		if n.IsLeaf() {
			it.node = n
			it.offset = it.next
			it.next += n.length
			return true
		}

		// Right first so the left child is popped next
		it.stack = append(it.stack, n.right, n.left)
	}

	it.node = nil
	return false
}

// Text returns the current leaf fragment.
func (it *LeafIterator) Text() string {
	if it.node == nil {
		return ""
	}
	return it.node.text
}

// Offset returns the byte offset of the start of the current leaf.
func (it *LeafIterator) Offset() ByteOffset {
	return it.offset
}
