// SPDX-License-Identifier: MIT

// Package blockreduce computes the closed-form transfer function of a
// linear time-invariant control system drawn as a block diagram.
//
// What is blockreduce?
//
//	An exact, symbolic reduction engine:
//		• Algebra: reals, symbolic gains, polynomials and polynomial ratios
//		  behind one dispatch table (algebra.Engine)
//		• Diagram: transfer functions, summing junctions and nested blocks
//		  wired by directed edges (circuit.Circuit)
//		• Reduction: six structural rewrites driven to a fixed point, one
//		  block at a time, children first (reduce.Simplify)
//		• Numerics: evaluation, poles and zeros of the result
//
// Why blockreduce?
//
//   - Exact where possible: ratios are reduced by polynomial GCD, not by
//     floating-point curve fitting.
//   - Symbolic gains (Kp, Ki, Kd) travel through the reduction unharmed.
//   - Observable: every rewrite is an Event, logged with log/slog and
//     traced with OpenTelemetry.
//
// Packages:
//
//	algebra/   Value, Table, Engine, JSON codec, roots
//	circuit/   element arena, connections, block snapshots
//	reduce/    rewrite rules, fixed-point driver, nested-block walk
//
// Quick ASCII example:
//
//	 [In] ──▶ (Σ) ──▶ [1/(s+1)] ──▶ [Out]
//	           ▲          │
//	           └── [-1] ◀─┘
//
//	reduces to 1/(s+2). See examples/feedback for the runnable program.
//
//	go get github.com/katalvlaran/blockreduce
package blockreduce
