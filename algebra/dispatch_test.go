// SPDX-License-Identifier: MIT

package algebra_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/blockreduce/algebra"
)

func TestEngine_MissingHandlerIsDispatchError(t *testing.T) {
	e := algebra.NewEngine(algebra.WithTable(algebra.NewTableBuilder().Build()))

	_, err := e.Add(algebra.Real(1), algebra.Real(2))
	require.Error(t, err)
	assert.ErrorIs(t, err, algebra.ErrNoHandler)

	var de *algebra.DispatchError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, algebra.OpAdd, de.Op)
	assert.Equal(t, []algebra.Kind{algebra.KindReal, algebra.KindReal}, de.Kinds)
	assert.Equal(t, "algebra: no handler for add(real, real)", err.Error())

	_, err = e.IsZero(algebra.Real(0))
	assert.ErrorIs(t, err, algebra.ErrNoHandler)
}

func TestEngine_UnsupportedKindPair(t *testing.T) {
	e := algebra.NewEngine()
	// a polynomial minus a real scalar is not a registered combination
	_, err := e.Subtract(algebra.MustPolynomial("s", 1, 1), algebra.Real(1))
	assert.ErrorIs(t, err, algebra.ErrNoHandler)

	_, err = e.GCD(algebra.Sym("a"), algebra.Sym("b"))
	assert.ErrorIs(t, err, algebra.ErrNoHandler)
}

func TestEngine_InvokeArity(t *testing.T) {
	e := algebra.NewEngine()
	_, err := e.Invoke(algebra.OpAdd, algebra.Real(1), algebra.Real(2), algebra.Real(3))
	assert.ErrorIs(t, err, algebra.ErrNoHandler)

	v, err := e.Invoke(algebra.OpNegate, algebra.Real(2))
	require.NoError(t, err)
	assert.Equal(t, algebra.Real(-2), v)
}

func TestTableBuilder_CustomTable(t *testing.T) {
	double := func(_ *algebra.Engine, a, b algebra.Value) (algebra.Value, error) {
		return 2 * (a.(algebra.Real) + b.(algebra.Real)), nil
	}
	tbl := algebra.NewTableBuilder().
		Binary(algebra.OpAdd, algebra.KindReal, algebra.KindReal, double).
		Build()

	assert.Equal(t, 1, tbl.Len())
	assert.True(t, tbl.Has(algebra.OpAdd, algebra.KindReal, algebra.KindReal))
	assert.False(t, tbl.Has(algebra.OpMultiply, algebra.KindReal, algebra.KindReal))

	e := algebra.NewEngine(algebra.WithTable(tbl))
	assert.Same(t, tbl, e.Table())
	got, err := e.Add(algebra.Real(1), algebra.Real(2))
	require.NoError(t, err)
	assert.Equal(t, algebra.Real(6), got)
}

func TestStandardTable_Completeness(t *testing.T) {
	tbl := algebra.StandardTable()
	e := algebra.NewEngine()
	sample := map[algebra.Kind]algebra.Value{
		algebra.KindReal:       algebra.Real(2),
		algebra.KindSymbol:     algebra.Sym("k"),
		algebra.KindPolynomial: algebra.MustPolynomial("s", 1, 1),
		algebra.KindRatio:      algebra.MustTransferFunction("s", []float64{1}, []float64{1, 2}),
	}

	arith := []algebra.Operation{algebra.OpAdd, algebra.OpSubtract, algebra.OpMultiply, algebra.OpDivide}
	pairs := [][2]algebra.Kind{
		{algebra.KindReal, algebra.KindReal},
		{algebra.KindSymbol, algebra.KindReal},
		{algebra.KindReal, algebra.KindSymbol},
		{algebra.KindSymbol, algebra.KindSymbol},
		{algebra.KindPolynomial, algebra.KindPolynomial},
		{algebra.KindRatio, algebra.KindRatio},
	}
	binary := func(op algebra.Operation, a, b algebra.Kind) {
		t.Helper()
		require.True(t, tbl.Has(op, a, b), "%s(%s, %s)", op, a, b)
		got, err := e.Invoke(op, sample[a], sample[b])
		require.NoError(t, err, "%s(%s, %s)", op, a, b)
		assert.NotNil(t, got, "%s(%s, %s)", op, a, b)
	}
	for _, op := range arith {
		for _, p := range pairs {
			binary(op, p[0], p[1])
		}
	}
	binary(algebra.OpGCD, algebra.KindReal, algebra.KindReal)
	binary(algebra.OpGCD, algebra.KindPolynomial, algebra.KindPolynomial)
	binary(algebra.OpMultiply, algebra.KindPolynomial, algebra.KindReal)
	binary(algebra.OpMultiply, algebra.KindSymbol, algebra.KindPolynomial)

	kinds := []algebra.Kind{algebra.KindReal, algebra.KindSymbol, algebra.KindPolynomial, algebra.KindRatio}
	for _, op := range []algebra.Operation{algebra.OpNegate, algebra.OpSimplify, algebra.OpReduce} {
		for _, k := range kinds {
			require.True(t, tbl.Has(op, k), "%s(%s)", op, k)
			got, err := e.Invoke(op, sample[k])
			require.NoError(t, err, "%s(%s)", op, k)
			assert.NotNil(t, got, "%s(%s)", op, k)
		}
	}
	for _, k := range kinds {
		require.True(t, tbl.Has(algebra.OpIsZero, k), "isZero(%s)", k)
		z, err := e.IsZero(sample[k])
		require.NoError(t, err, "isZero(%s)", k)
		assert.False(t, z, "isZero(%s)", k)
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "real", algebra.KindReal.String())
	assert.Equal(t, "symbol", algebra.KindSymbol.String())
	assert.Equal(t, "polynomial", algebra.KindPolynomial.String())
	assert.Equal(t, "ratio", algebra.KindRatio.String())
	assert.Equal(t, "kind(0)", algebra.Kind(0).String())
}
