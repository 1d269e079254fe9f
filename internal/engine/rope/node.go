package rope

import (
	"math/bits"
	"strings"
)

// Node represents a node in the rope tree.
// Leaf nodes hold a non-empty text fragment and no children.
// Internal nodes hold exactly two children and no text.
// A nil *Node is the empty tree. Nodes are never modified after construction,
// so a node may be shared by any number of rope versions.
type Node struct {
	left  *Node
	right *Node
	text  string // Leaf fragment

	weight ByteOffset // Length of the left subtree (internal nodes only)
	length ByteOffset // Length of the whole subtree
	height int        // 0 for leaves
	leaves int        // Number of leaves in the subtree
}

// newLeaf creates a leaf holding s. Returns nil for an empty fragment.
func newLeaf(s string) *Node {
	if len(s) == 0 {
		return nil
	}
	return &Node{
		text:   s,
		length: ByteOffset(len(s)),
		leaves: 1,
	}
}

// join creates an internal node over left and right.
// A missing child collapses the node to the surviving one.
func join(left, right *Node) *Node {
	if left == nil {
		return right
	}
	if right == nil {
		return left
	}

	height := left.height
	if right.height > height {
		height = right.height
	}

	return &Node{
		left:   left,
		right:  right,
		weight: left.length,
		length: left.length + right.length,
		height: height + 1,
		leaves: left.leaves + right.leaves,
	}
}

// IsLeaf returns true if this is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.left == nil && n.right == nil
}

// Len returns the byte length of text in this subtree.
func (n *Node) Len() ByteOffset {
	if n == nil {
		return 0
	}
	return n.length
}

// Weight returns the byte length of the left subtree.
// Leaves have no left subtree and report 0.
func (n *Node) Weight() ByteOffset {
	if n == nil {
		return 0
	}
	return n.weight
}

// Left returns the left child, or nil for a leaf.
func (n *Node) Left() *Node {
	return n.left
}

// Right returns the right child, or nil for a leaf.
func (n *Node) Right() *Node {
	return n.right
}

// Text returns the fragment held by a leaf, or "" for an internal node.
func (n *Node) Text() string {
	return n.text
}

// insert returns a new subtree with text inserted at pos.
// Only the path from n to the affected leaf is rebuilt.
func (n *Node) insert(pos ByteOffset, text string, maxLeaf int) *Node {
	if n.IsLeaf() {
		spliced := n.text[:pos] + text + n.text[pos:]
		if len(spliced) <= maxLeaf {
			return newLeaf(spliced)
		}
		return buildBalanced(splitFragments(spliced, maxLeaf))
	}

	if pos <= n.weight {
		return join(n.left.insert(pos, text, maxLeaf), n.right)
	}
	return join(n.left, n.right.insert(pos-n.weight, text, maxLeaf))
}

// erase returns a new subtree with count bytes removed starting at pos.
// The caller guarantees pos+count <= n.Len().
func (n *Node) erase(pos, count ByteOffset) *Node {
	if count <= 0 {
		return n
	}

	if n.IsLeaf() {
		end := pos + count
		if pos == 0 && end >= n.length {
			return nil
		}
		return newLeaf(n.text[:pos] + n.text[end:])
	}

	if pos < n.weight {
		leftCount := count
		if avail := n.weight - pos; leftCount > avail {
			leftCount = avail
		}
		left := n.left.erase(pos, leftCount)

		right := n.right
		if rest := count - leftCount; rest > 0 {
			right = n.right.erase(0, rest)
		}
		return join(left, right)
	}

	return join(n.left, n.right.erase(pos-n.weight, count))
}

// byteAt returns the byte at offset, which must be within the subtree.
func (n *Node) byteAt(offset ByteOffset) byte {
	for !n.IsLeaf() {
		if offset < n.weight {
			n = n.left
		} else {
			offset -= n.weight
			n = n.right
		}
	}
	return n.text[offset]
}

// appendTo appends all text in this subtree to the builder.
func (n *Node) appendTo(sb *strings.Builder) {
	if n.IsLeaf() {
		sb.WriteString(n.text)
		return
	}
	n.left.appendTo(sb)
	n.right.appendTo(sb)
}

// appendRange appends text in the byte range [start, end) to the builder.
func (n *Node) appendRange(sb *strings.Builder, start, end ByteOffset) {
	if start >= end {
		return
	}

	if n.IsLeaf() {
		sb.WriteString(n.text[start:end])
		return
	}

	if start < n.weight {
		leftEnd := end
		if leftEnd > n.weight {
			leftEnd = n.weight
		}
		n.left.appendRange(sb, start, leftEnd)
	}
	if end > n.weight {
		rightStart := ByteOffset(0)
		if start > n.weight {
			rightStart = start - n.weight
		}
		n.right.appendRange(sb, rightStart, end-n.weight)
	}
}

// buildBalanced creates a perfectly balanced tree over leaves, in order.
func buildBalanced(leaves []*Node) *Node {
	switch len(leaves) {
	case 0:
		return nil
	case 1:
		return leaves[0]
	}

	mid := len(leaves) / 2
	return join(buildBalanced(leaves[:mid]), buildBalanced(leaves[mid:]))
}

// maxBalancedHeight returns the tallest height tolerated for a tree with the
// given number of leaves before it is rebuilt.
func maxBalancedHeight(leaves int) int {
	return 2*bits.Len(uint(leaves)) + 2
}

// isBalanced reports whether the subtree is within the height bound.
func (n *Node) isBalanced() bool {
	if n == nil {
		return true
	}
	return n.height <= maxBalancedHeight(n.leaves)
}
