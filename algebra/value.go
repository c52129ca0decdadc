// SPDX-License-Identifier: MIT

package algebra

import (
	"math"
	"strconv"
)

// Kind is the type tag the operation table dispatches on.
type Kind uint8

const (
	// KindReal tags a bare float64.
	KindReal Kind = iota + 1
	// KindSymbol tags a symbolic expression (a named parameter or a tree over it).
	KindSymbol
	// KindPolynomial tags a dense polynomial.
	KindPolynomial
	// KindRatio tags a numerator/denominator pair.
	KindRatio
)

// String returns the tag name used in error messages and the wire format.
func (k Kind) String() string {
	switch k {
	case KindReal:
		return "real"
	case KindSymbol:
		return "symbol"
	case KindPolynomial:
		return "polynomial"
	case KindRatio:
		return "ratio"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is an algebraic value. The set of implementations is closed:
// Real, Symbolic, Polynomial and Ratio.
type Value interface {
	// Kind reports the type tag used for dispatch.
	Kind() Kind
	// String renders the value for humans.
	String() string

	sealed()
}

// Real is a bare number; its arithmetic is IEEE float arithmetic.
type Real float64

// Kind implements Value.
func (Real) Kind() Kind { return KindReal }

// String implements Value.
func (r Real) String() string { return strconv.FormatFloat(float64(r), 'g', -1, 64) }

func (Real) sealed() {}

// finite reports whether v is a Real that is neither NaN nor ±Inf.
// Symbolic or composite content is never finite.
func finite(v Value) bool {
	r, ok := v.(Real)
	if !ok {
		return false
	}

	return !math.IsNaN(float64(r)) && !math.IsInf(float64(r), 0)
}

// isRealValue reports whether v is the Real x.
func isRealValue(v Value, x float64) bool {
	r, ok := v.(Real)

	return ok && float64(r) == x
}
