package rope

// Leaf size constants control the granularity of text storage.
const (
	// DefaultMaxLeafSize is the maximum bytes per leaf before splitting.
	DefaultMaxLeafSize = 1024

	// MinMaxLeafSize is the smallest accepted leaf size limit.
	MinMaxLeafSize = 16
)

// targetLeafSize is the preferred leaf size when splitting text.
func targetLeafSize(maxLeaf int) int {
	return (maxLeaf/2 + maxLeaf) / 2
}

// splitFragments splits a string into leaves of at most maxLeaf bytes.
func splitFragments(s string, maxLeaf int) []*Node {
	if len(s) == 0 {
		return nil
	}
	if len(s) <= maxLeaf {
		return []*Node{newLeaf(s)}
	}

	leaves := make([]*Node, 0, len(s)/targetLeafSize(maxLeaf)+1)
	remaining := s

	for len(remaining) > maxLeaf {
		splitPoint := findSplitPoint(remaining, targetLeafSize(maxLeaf), maxLeaf)
		leaves = append(leaves, newLeaf(remaining[:splitPoint]))
		remaining = remaining[splitPoint:]
	}
	if len(remaining) > 0 {
		leaves = append(leaves, newLeaf(remaining))
	}

	return leaves
}

// findSplitPoint finds a cut near target, never beyond limit.
// It prefers splitting after a newline, then at a UTF-8 sequence start.
// Where the cut falls never affects offsets.
func findSplitPoint(s string, target, limit int) int {
	if target >= len(s) {
		return len(s)
	}

	window := target / 4
	searchStart := target - window
	searchEnd := target + window
	if searchEnd > limit {
		searchEnd = limit
	}
	if searchEnd > len(s) {
		searchEnd = len(s)
	}

	// Prefer splitting after a newline
	for i := target; i < searchEnd; i++ {
		if s[i] == '\n' {
			return i + 1
		}
	}
	for i := target - 1; i >= searchStart; i-- {
		if s[i] == '\n' {
			return i + 1
		}
	}

	// Back up to the start of a UTF-8 sequence, at most 3 bytes
	pos := target
	for pos > target-4 && pos > 1 && !isUTF8Start(s[pos]) {
		pos--
	}
	if !isUTF8Start(s[pos]) {
		return target
	}
	return pos
}

// isUTF8Start returns true if the byte is the start of a UTF-8 sequence.
func isUTF8Start(b byte) bool {
	// Continuation bytes are 10xxxxxx
	return b&0xC0 != 0x80
}

// coalesce merges runs of adjacent undersized leaves so that no two
// neighbours could share one leaf of at most maxLeaf bytes.
// Leaves that need no merging are reused as-is.
func coalesce(leaves []*Node, maxLeaf int) []*Node {
	if len(leaves) < 2 {
		return leaves
	}

	out := make([]*Node, 0, len(leaves))
	for _, leaf := range leaves {
		if n := len(out); n > 0 {
			prev := out[n-1]
			small := len(prev.text) < maxLeaf/2 || len(leaf.text) < maxLeaf/2
			if small && len(prev.text)+len(leaf.text) <= maxLeaf {
				out[n-1] = newLeaf(prev.text + leaf.text)
				continue
			}
		}
		out = append(out, leaf)
	}
	return out
}
