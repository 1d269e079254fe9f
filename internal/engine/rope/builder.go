package rope

// Builder provides efficient incremental construction of a rope.
// Written text is cut into leaves as it arrives; Build assembles the tree.
type Builder struct {
	cfg      *config
	leaves   []*Node
	pending  string
	totalLen int
}

// NewBuilder creates a new rope builder.
func NewBuilder(opts ...Option) *Builder {
	return &Builder{
		cfg:    newConfig(opts),
		leaves: make([]*Node, 0, 64),
	}
}

// WriteString appends a string to the builder.
func (b *Builder) WriteString(s string) (int, error) {
	if len(s) == 0 {
		return 0, nil
	}

	b.totalLen += len(s)
	b.pending += s
	b.flush()
	return len(s), nil
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (int, error) {
	return b.WriteString(string(p))
}

// flush moves full leaves out of the pending text, keeping the tail.
func (b *Builder) flush() {
	maxLeaf := b.cfg.maxLeafSize
	for len(b.pending) > maxLeaf {
		cut := findSplitPoint(b.pending, targetLeafSize(maxLeaf), maxLeaf)
		b.leaves = append(b.leaves, newLeaf(b.pending[:cut]))
		b.pending = b.pending[cut:]
	}
}

// Len returns the total number of bytes written.
func (b *Builder) Len() int {
	return b.totalLen
}

// Reset clears the builder for reuse.
func (b *Builder) Reset() {
	b.leaves = b.leaves[:0]
	b.pending = ""
	b.totalLen = 0
}

// Build returns the rope built from everything written so far.
// The builder may continue to be used afterwards.
func (b *Builder) Build() Rope {
	leaves := make([]*Node, len(b.leaves), len(b.leaves)+1)
	copy(leaves, b.leaves)
	if leaf := newLeaf(b.pending); leaf != nil {
		leaves = append(leaves, leaf)
	}
	return Rope{root: buildBalanced(leaves), cfg: b.cfg}
}
