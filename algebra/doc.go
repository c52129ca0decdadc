// SPDX-License-Identifier: MIT

// Package algebra is the exact-arithmetic engine behind transfer-function
// reduction: reals, symbolic parameters, polynomials and polynomial ratios,
// combined through one operation table keyed by operation and operand kinds.
//
// What:
//
//   - Value: closed sum type implemented by Real, Symbolic, Polynomial, Ratio.
//   - Table: immutable map (operation, kinds...) → handler, built once by a
//     TableBuilder. StandardTable registers the four data-type modules.
//   - Engine: generic entry points Add, Subtract, Multiply, Divide, Negate,
//     IsZero, GCD, Simplify, Reduce (plus DivMod) that dispatch on the
//     operands' kinds, so call sites never branch on type.
//   - Codec: Marshal/Unmarshal of the tagged JSON shape used by exported
//     circuit state, e.g. ["ratio", [["polynomial", ["s", [1,-1]]], ...]].
//   - Numerics: Evaluate (Horner), Roots/Poles/Zeros (companion matrix
//     eigenvalues via gonum).
//
// Why:
//
//   - Polynomial coefficients are Values themselves, so a transfer function
//     with symbolic gains (PID Kp, Ki, Kd) composes with numeric ones.
//   - A missing (operation, kinds) rule is a hard *DispatchError, never a
//     silent fallback.
//
// Numeric policy:
//
//   - IsZero on reals is exact equality with 0.
//   - Simplify on a ratio is bypassed (returned unchanged) when any
//     coefficient is not a finite real; symbolic content counts as
//     non-finite.
//   - GCD keeps every remainder monic so coefficients stay bounded.
//     WithEpsilon sets the relative tolerance under which a remainder
//     coefficient is dropped. Default 1e-9; 0 means exact.
//   - Simplify divides by the GCD only when both remainders vanish within
//     that tolerance; otherwise it only makes the numerator monic, so the
//     value of the ratio never changes.
//
// Errors:
//
//	*DispatchError            no handler for (operation, kinds); Is ErrNoHandler
//	*ParameterMismatchError   polynomials over different symbols; Is ErrParameterMismatch
//	ErrDivisionByZero         division by the zero polynomial
//	ErrShapeMismatch          ratio parts of different shape
//	ErrEmptyPolynomial        no terms supplied
//	ErrEmptyParameter         empty parameter symbol
//	ErrNotNumeric             numeric routine on symbolic coefficients
//	ErrRootsFailed            eigen decomposition did not converge
//	ErrDecode                 malformed serialized value
//
// Complexity:
//
//   - Add/Subtract: O(n+m) coefficient operations.
//   - Multiply:     O(n·m).
//   - DivMod:       O((n-m+1)·m).
//   - GCD:          O(n·m) remainder steps worst case, each a DivMod.
package algebra
