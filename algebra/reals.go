// SPDX-License-Identifier: MIT

package algebra

import "math"

// registerReals installs native float handlers. No handler here fails:
// division by zero yields ±Inf or NaN per IEEE 754.
func registerReals(b *TableBuilder) {
	b.Binary(OpAdd, KindReal, KindReal, func(_ *Engine, x, y Value) (Value, error) {
		return x.(Real) + y.(Real), nil
	})
	b.Binary(OpSubtract, KindReal, KindReal, func(_ *Engine, x, y Value) (Value, error) {
		return x.(Real) - y.(Real), nil
	})
	b.Binary(OpMultiply, KindReal, KindReal, func(_ *Engine, x, y Value) (Value, error) {
		return x.(Real) * y.(Real), nil
	})
	b.Binary(OpDivide, KindReal, KindReal, func(_ *Engine, x, y Value) (Value, error) {
		return x.(Real) / y.(Real), nil
	})
	b.Binary(OpGCD, KindReal, KindReal, func(_ *Engine, x, y Value) (Value, error) {
		return Real(realGCD(float64(x.(Real)), float64(y.(Real)))), nil
	})
	b.Unary(OpNegate, KindReal, func(_ *Engine, x Value) (Value, error) {
		return -x.(Real), nil
	})
	b.Unary(OpSimplify, KindReal, identity)
	b.Unary(OpReduce, KindReal, identity)
	b.Predicate(OpIsZero, KindReal, func(_ *Engine, x Value) (bool, error) {
		return x.(Real) == 0, nil
	})
}

// realGCD runs Euclid's algorithm on doubles: repeated modulo until the
// remainder is zero. Non-finite operands give NaN.
func realGCD(a, b float64) float64 {
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return math.NaN()
	}
	a, b = math.Abs(a), math.Abs(b)
	for b != 0 {
		a, b = b, math.Mod(a, b)
	}

	return a
}

func identity(_ *Engine, x Value) (Value, error) { return x, nil }
