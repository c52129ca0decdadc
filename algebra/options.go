// SPDX-License-Identifier: MIT

package algebra

import "math"

// DefaultEpsilon is the relative GCD remainder tolerance; zero means exact
// arithmetic.
const DefaultEpsilon = 1e-9

const panicEpsilonInvalid = "algebra: WithEpsilon: eps must be finite, non-negative"

// Option configures an Engine.
type Option func(*Options)

// Options holds the effective engine configuration.
type Options struct {
	eps   float64
	table *Table
}

func defaultOptions() Options {
	return Options{eps: DefaultEpsilon}
}

// WithEpsilon sets the relative tolerance under which a remainder
// coefficient counts as zero while computing a polynomial GCD or checking
// that the GCD divides both parts of a ratio. A coefficient c is dropped when
// |c| <= eps times the largest coefficient magnitude of the step. It panics
// on a negative or non-finite eps.
func WithEpsilon(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithTable replaces the standard operation table. Useful for tests and for
// engines restricted to a subset of kinds.
func WithTable(t *Table) Option {
	return func(o *Options) {
		if t != nil {
			o.table = t
		}
	}
}
