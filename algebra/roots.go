// SPDX-License-Identifier: MIT

package algebra

import (
	"cmp"
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// Evaluate computes p(x) by Horner's rule. Symbolic coefficients give
// ErrNotNumeric.
func (p Polynomial) Evaluate(x complex128) (complex128, error) {
	cs, err := p.Coefficients()
	if err != nil {
		return 0, err
	}
	var acc complex128
	for _, c := range cs {
		acc = acc*x + complex(c, 0)
	}

	return acc, nil
}

// Evaluate computes num(x)/den(x). A vanishing denominator yields complex
// infinity or NaN rather than an error.
func (r Ratio) Evaluate(x complex128) (complex128, error) {
	n, err := evalPart(r.Num, x)
	if err != nil {
		return 0, err
	}
	d, err := evalPart(r.Den, x)
	if err != nil {
		return 0, err
	}

	return n / d, nil
}

func evalPart(v Value, x complex128) (complex128, error) {
	switch p := v.(type) {
	case Real:
		return complex(float64(p), 0), nil
	case Polynomial:
		return p.Evaluate(x)
	default:
		return 0, ErrNotNumeric
	}
}

// Roots returns the complex roots of p, sorted by real then imaginary part.
// They are the eigenvalues of the companion matrix of the monic form of p;
// factors of the parameter itself contribute exact zero roots.
func (p Polynomial) Roots() ([]complex128, error) {
	cs, err := p.Coefficients()
	if err != nil {
		return nil, err
	}
	for len(cs) > 0 && cs[0] == 0 {
		cs = cs[1:]
	}
	if len(cs) == 0 {
		// every point is a root of the zero polynomial
		return nil, ErrRootsFailed
	}
	for _, c := range cs {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, ErrRootsFailed
		}
	}

	var out []complex128
	for len(cs) > 1 && cs[len(cs)-1] == 0 {
		cs = cs[:len(cs)-1]
		out = append(out, 0)
	}
	if n := len(cs) - 1; n > 0 {
		comp := mat.NewDense(n, n, nil)
		for j := 0; j < n; j++ {
			comp.Set(0, j, -cs[j+1]/cs[0])
		}
		for i := 1; i < n; i++ {
			comp.Set(i, i-1, 1)
		}
		var eig mat.Eigen
		if ok := eig.Factorize(comp, mat.EigenNone); !ok {
			return nil, ErrRootsFailed
		}
		out = append(out, eig.Values(nil)...)
	}
	slices.SortFunc(out, func(a, b complex128) int {
		if c := cmp.Compare(real(a), real(b)); c != 0 {
			return c
		}

		return cmp.Compare(imag(a), imag(b))
	})

	return out, nil
}

// Zeros returns the roots of the numerator.
func (r Ratio) Zeros() ([]complex128, error) { return rootsOf(r.Num) }

// Poles returns the roots of the denominator.
func (r Ratio) Poles() ([]complex128, error) { return rootsOf(r.Den) }

func rootsOf(v Value) ([]complex128, error) {
	switch p := v.(type) {
	case Polynomial:
		return p.Roots()
	case Real:
		if p == 0 {
			return nil, ErrRootsFailed
		}

		return nil, nil
	default:
		return nil, ErrNotNumeric
	}
}
