// SPDX-License-Identifier: MIT

package algebra_test

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/blockreduce/algebra"
)

const tol = 1e-9

// coeffs asserts v is a numeric polynomial and returns its coefficients.
func coeffs(t *testing.T, v algebra.Value) []float64 {
	t.Helper()
	p, ok := v.(algebra.Polynomial)
	require.True(t, ok, "want polynomial, got %s", v.Kind())
	cs, err := p.Coefficients()
	require.NoError(t, err)

	return cs
}

// ratioCoeffs asserts v is a ratio of numeric polynomials.
func ratioCoeffs(t *testing.T, v algebra.Value) (num, den []float64) {
	t.Helper()
	r, ok := v.(algebra.Ratio)
	require.True(t, ok, "want ratio, got %s", v.Kind())

	return coeffs(t, r.Num), coeffs(t, r.Den)
}

// containsRoot reports whether want is within tol of some root.
func containsRoot(roots []complex128, want complex128) bool {
	for _, r := range roots {
		if cmplx.Abs(r-want) < tol {
			return true
		}
	}

	return false
}

// fromRoots is k·(s - r1)(s - r2)... built by convolution.
func fromRoots(k float64, roots ...float64) algebra.Polynomial {
	cs := []float64{k}
	for _, r := range roots {
		next := make([]float64, len(cs)+1)
		for i, c := range cs {
			next[i] += c
			next[i+1] -= c * r
		}
		cs = next
	}

	return algebra.MustPolynomial("s", cs...)
}
