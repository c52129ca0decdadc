// SPDX-License-Identifier: MIT

// Package circuit holds the block diagram being reduced: transfer functions
// (Tf), summing junctions (Adder) and nested Blocks, connected by directed
// edges.
//
// What:
//
//   - Circuit is an arena: every element lives in one map keyed by a stable
//     ID, and elements refer to each other only by ID. Removing an element
//     removes its edges on both ends, so no dangling reference survives.
//   - Each element belongs to exactly one block (its owner); edges only join
//     elements of the same block.
//   - A Tf has a value (algebra.Ratio), at most one input and a set of
//     outputs ordered by ID. An Adder has an ordered list of inputs, all
//     summed with "+". A Block owns blocks, tfs and adders; once simplified
//     it carries the value of its single remaining element and behaves like
//     a Tf inside its own owner.
//   - An adder without inputs is an external source; a Tf without input is
//     driven by the external input.
//
// Concurrency:
//
//   - All methods are safe for concurrent use (one sync.RWMutex).
//   - Acquire serializes rewrites: a block, its ancestors and descendants
//     cannot be held by two writers at once (ErrBusy).
//
// Errors:
//
//	ErrElementNotFound  ID is not live
//	ErrBlockNotFound    ID is missing or not a block
//	ErrWrongOwner       edge across blocks
//	ErrInputOccupied    second input into a tf or block
//	ErrEdgeExists       duplicate edge
//	ErrEdgeNotFound     missing edge
//	ErrSelfLoop         edge from an element to itself
//	ErrRootBlock        removing the root block
//	ErrNotTransfer      value of an adder, or MarkSimplified on a block that
//	                    does not hold a single transfer element
//	ErrNotSimplified    value of a block that is not simplified
//	ErrBusy             conflicting Acquire
//	ErrKind             accessor does not apply to the element kind
//
// Complexity:
//
//   - Element lookup O(1); output-set edits O(log d); input-list edits O(d).
//   - Connections, Stats, Snapshot: O(V + E) over the block.
package circuit
