// SPDX-License-Identifier: MIT

// Package reduce collapses a block diagram into a single transfer function
// by applying six structural rewrites until nothing changes.
//
// What:
//
//   - Simplify walks the block tree in post-order (children first) and runs
//     a fixed-point loop per block. A child that reaches FullyDone acts as a
//     plain transfer element in its parent; one left PartiallyDone stays an
//     opaque element the parent cannot look into.
//   - Each loop pass tries phase one (serial tfs, serial adders, feedback,
//     unused adders) and, only if phase one changed nothing, phase two
//     (split, parallel, feedback, unused adders).
//   - A block is FullyDone once it holds exactly one transfer element; it is
//     marked simplified and takes that element's value.
//   - After MaxStall consecutive rule invocations without a rewrite (default
//     10) the block is left PartiallyDone.
//
// Rules:
//
//	unused-adders   delete or bypass adders with at most one input
//	split           give every output of a transfer element its own copy
//	parallel        T1 ∥ T2 between the same adders → T1 = simplify(v1 + v2)
//	feedback        A → T (→ H) → A → G/(1 - L), L = G or G·H
//	serial-tfs      T1 → T2 → T2 = simplify(v1 · v2)
//	serial-adders   A1 → A2 fused into A2
//
// Every rewrite leaves the graph consistent and calls the OnRewrite hook,
// which may stop the run. Element IDs are visited in ascending order, so a
// given circuit always reduces along the same sequence of rewrites.
//
// Observability:
//
//   - Logger (log/slog): Debug per rewrite, Info per finished block.
//   - Tracer (OpenTelemetry): one "reduce.Block" span per block.
//
// Errors:
//
//	ErrCircuitNil        nil circuit
//	ErrEmptyBlock        the requested block holds nothing
//	ErrOptionViolation   bad MaxStall or MaxRewrites
//	circuit.ErrBusy      the block (or a relative) is held by another run
//
// Complexity:
//
//   - One rule invocation is O(V·d) over the block, d the largest fan-out.
//   - Each rewrite removes an element or an edge except split and feedback
//     with interposition, which add one element; MaxRewrites bounds the run.
package reduce
