// SPDX-License-Identifier: MIT

package algebra_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/blockreduce/algebra"
)

func TestPolynomial_Evaluate(t *testing.T) {
	p := algebra.MustPolynomial("s", 1, 3, 2)
	v, err := p.Evaluate(1)
	require.NoError(t, err)
	assert.Equal(t, complex(6, 0), v)

	v, err = p.Evaluate(complex(0, 1))
	require.NoError(t, err)
	assert.Equal(t, complex(1, 3), v)

	sym := algebra.Polynomial{Param: "s", Terms: []algebra.Value{algebra.Sym("k")}}
	_, err = sym.Evaluate(0)
	assert.ErrorIs(t, err, algebra.ErrNotNumeric)
}

func TestRatio_Evaluate(t *testing.T) {
	g := algebra.MustTransferFunction("s", []float64{1}, []float64{1, 1})
	dc, err := g.Evaluate(0)
	require.NoError(t, err)
	assert.Equal(t, complex(1, 0), dc)

	v, err := g.Evaluate(complex(0, 1))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, real(v), tol)
	assert.InDelta(t, -0.5, imag(v), tol)
}

func TestPolynomial_RootsReal(t *testing.T) {
	roots, err := algebra.MustPolynomial("s", 1, 3, 2).Roots()
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.InDelta(t, -2, real(roots[0]), tol)
	assert.InDelta(t, -1, real(roots[1]), tol)
	assert.InDelta(t, 0, imag(roots[0]), tol)
}

func TestPolynomial_RootsComplexPair(t *testing.T) {
	// s^2 + 2s + 5 = (s+1)^2 + 4
	roots, err := algebra.MustPolynomial("s", 1, 2, 5).Roots()
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.True(t, containsRoot(roots, complex(-1, 2)), "%v", roots)
	assert.True(t, containsRoot(roots, complex(-1, -2)), "%v", roots)
}

func TestPolynomial_RootsAtOrigin(t *testing.T) {
	roots, err := algebra.MustPolynomial("s", 1, 1, 0).Roots()
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.InDelta(t, -1, real(roots[0]), tol)
	assert.Equal(t, complex(0, 0), roots[1])

	roots, err = algebra.MustPolynomial("s", 0, 4).Roots()
	require.NoError(t, err)
	assert.Empty(t, roots, "a non-zero constant has no roots")
}

func TestPolynomial_RootsFailures(t *testing.T) {
	_, err := algebra.MustPolynomial("s", 0, 0).Roots()
	assert.ErrorIs(t, err, algebra.ErrRootsFailed)

	_, err = algebra.MustPolynomial("s", 1, math.Inf(1)).Roots()
	assert.ErrorIs(t, err, algebra.ErrRootsFailed)
}

func TestRatio_PolesZeros(t *testing.T) {
	g := algebra.MustTransferFunction("s", []float64{1, 3}, []float64{1, 3, 2})

	zeros, err := g.Zeros()
	require.NoError(t, err)
	require.Len(t, zeros, 1)
	assert.InDelta(t, -3, real(zeros[0]), tol)

	poles, err := g.Poles()
	require.NoError(t, err)
	require.Len(t, poles, 2)
	assert.InDelta(t, -2, real(poles[0]), tol)
	assert.InDelta(t, -1, real(poles[1]), tol)

	constant := algebra.Ratio{Num: algebra.Real(1), Den: algebra.Real(2)}
	zeros, err = constant.Zeros()
	require.NoError(t, err)
	assert.Empty(t, zeros)
}
