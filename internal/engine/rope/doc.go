// Package rope provides an immutable rope data structure for text storage and
// positional editing.
//
// A rope is a binary tree whose leaves hold contiguous text fragments and whose
// internal nodes cache the byte length of their left subtree (the weight).
// Lookups descend from the root comparing the target offset against each
// weight, so every positional operation costs O(depth).
//
// Key features:
//   - Immutable operations return new ropes; originals are never modified
//   - Edits rebuild only the root-to-leaf path and share every other subtree
//   - Automatic rebalancing keeps depth O(log n) under long edit sequences
//   - Positions are raw byte offsets; no decoding is performed
//   - Thread-safe for concurrent read access
//
// Basic usage:
//
//	r := rope.FromString("hello world")
//	r, _ = r.Insert(5, ",")  // "hello, world"
//	r, _ = r.Erase(0, 7)     // "world"
//	text := r.String()       // "world"
//
// Insert, Erase and At reject positions outside the rope with ErrOutOfRange.
// Substr never fails: spans starting past the end are empty and lengths are
// clamped.
package rope
