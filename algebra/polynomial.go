// SPDX-License-Identifier: MIT

package algebra

import (
	"math"
	"strconv"
	"strings"
)

// Common domain parameters: continuous (Laplace) and discrete (z-transform).
const (
	DomainS = "s"
	DomainZ = "z"
)

// Polynomial is a dense polynomial in Param. Terms run from the highest
// degree down to the constant term, so Degree() == len(Terms)-1.
// Coefficients are Values: reals or symbolic expressions.
type Polynomial struct {
	Param string
	Terms []Value
}

// NewPolynomial validates and copies the given terms.
func NewPolynomial(param string, terms ...Value) (Polynomial, error) {
	if param == "" {
		return Polynomial{}, ErrEmptyParameter
	}
	if len(terms) == 0 {
		return Polynomial{}, ErrEmptyPolynomial
	}

	return Polynomial{Param: param, Terms: append([]Value(nil), terms...)}, nil
}

// NewRealPolynomial builds a polynomial with numeric coefficients,
// highest degree first.
func NewRealPolynomial(param string, coeffs ...float64) (Polynomial, error) {
	terms := make([]Value, len(coeffs))
	for i, c := range coeffs {
		terms[i] = Real(c)
	}

	return NewPolynomial(param, terms...)
}

// MustPolynomial is NewRealPolynomial that panics on error. Intended for
// tests and literal circuit definitions.
func MustPolynomial(param string, coeffs ...float64) Polynomial {
	p, err := NewRealPolynomial(param, coeffs...)
	if err != nil {
		panic(err)
	}

	return p
}

// Kind implements Value.
func (Polynomial) Kind() Kind { return KindPolynomial }

func (Polynomial) sealed() {}

// Degree returns len(Terms)-1 (the zero polynomial [0] has degree 0).
func (p Polynomial) Degree() int { return len(p.Terms) - 1 }

// Lead returns the highest-degree coefficient.
func (p Polynomial) Lead() Value { return p.Terms[0] }

// Coefficients returns the terms as float64, or ErrNotNumeric if any term
// is not a Real.
func (p Polynomial) Coefficients() ([]float64, error) {
	out := make([]float64, len(p.Terms))
	for i, t := range p.Terms {
		r, ok := t.(Real)
		if !ok {
			return nil, ErrNotNumeric
		}
		out[i] = float64(r)
	}

	return out, nil
}

// String renders e.g. "s^2 + 3s + 2" or "Kp*s + Ki".
func (p Polynomial) String() string {
	var sb strings.Builder
	deg := p.Degree()
	for i, c := range p.Terms {
		d := deg - i
		r, isReal := c.(Real)
		if isReal && r == 0 && deg > 0 {
			continue
		}
		neg := isReal && r < 0
		if neg {
			r = -r
		}
		switch {
		case sb.Len() > 0 && neg:
			sb.WriteString(" - ")
		case sb.Len() > 0:
			sb.WriteString(" + ")
		case neg:
			sb.WriteByte('-')
		}
		switch {
		case !isReal:
			sb.WriteString(c.String())
			if d > 0 {
				sb.WriteByte('*')
			}
		case r != 1 || d == 0:
			sb.WriteString(r.String())
		}
		switch d {
		case 0:
		case 1:
			sb.WriteString(p.Param)
		default:
			sb.WriteString(p.Param + "^" + strconv.Itoa(d))
		}
	}
	if sb.Len() == 0 {
		return "0"
	}

	return sb.String()
}

// registerPolynomials installs polynomial arithmetic, including scaling by
// a real or symbolic scalar on either side.
func registerPolynomials(b *TableBuilder) {
	b.Binary(OpAdd, KindPolynomial, KindPolynomial, func(e *Engine, x, y Value) (Value, error) {
		return e.addPoly(OpAdd, x.(Polynomial), y.(Polynomial))
	})
	b.Binary(OpSubtract, KindPolynomial, KindPolynomial, func(e *Engine, x, y Value) (Value, error) {
		return e.addPoly(OpSubtract, x.(Polynomial), y.(Polynomial))
	})
	b.Binary(OpMultiply, KindPolynomial, KindPolynomial, func(e *Engine, x, y Value) (Value, error) {
		return e.mulPoly(x.(Polynomial), y.(Polynomial))
	})
	b.Binary(OpDivide, KindPolynomial, KindPolynomial, func(e *Engine, x, y Value) (Value, error) {
		p, d := x.(Polynomial), y.(Polynomial)
		q, r, err := e.divModPoly(p, d)
		if err != nil {
			return nil, err
		}
		if exact, err := e.IsZero(r); err != nil {
			return nil, err
		} else if !exact {
			return Ratio{Num: p, Den: d}, nil
		}

		return q, nil
	})
	b.Binary(OpGCD, KindPolynomial, KindPolynomial, func(e *Engine, x, y Value) (Value, error) {
		return e.gcdPoly(x.(Polynomial), y.(Polynomial))
	})

	for _, k := range []Kind{KindReal, KindSymbol} {
		b.Binary(OpMultiply, KindPolynomial, k, func(e *Engine, x, y Value) (Value, error) {
			return e.scalePoly(x.(Polynomial), y, OpMultiply)
		})
		b.Binary(OpMultiply, k, KindPolynomial, func(e *Engine, x, y Value) (Value, error) {
			return e.scalePoly(y.(Polynomial), x, OpMultiply)
		})
		b.Binary(OpDivide, KindPolynomial, k, func(e *Engine, x, y Value) (Value, error) {
			return e.scalePoly(x.(Polynomial), y, OpDivide)
		})
	}

	b.Unary(OpNegate, KindPolynomial, func(e *Engine, x Value) (Value, error) {
		p := x.(Polynomial)
		out := make([]Value, len(p.Terms))
		for i, t := range p.Terms {
			n, err := e.Negate(t)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}

		return Polynomial{Param: p.Param, Terms: out}, nil
	})
	reduce := func(e *Engine, x Value) (Value, error) {
		p := x.(Polynomial)
		ts, err := e.trimLeading(p.Terms)
		if err != nil {
			return nil, err
		}

		return Polynomial{Param: p.Param, Terms: canon(ts)}, nil
	}
	b.Unary(OpSimplify, KindPolynomial, reduce)
	b.Unary(OpReduce, KindPolynomial, reduce)
	b.Predicate(OpIsZero, KindPolynomial, func(e *Engine, x Value) (bool, error) {
		ts, err := e.trimLeading(x.(Polynomial).Terms)

		return len(ts) == 0, err
	})
}

func checkParam(op Operation, a, b Polynomial) error {
	if a.Param != b.Param {
		return &ParameterMismatchError{Op: op, Left: a.Param, Right: b.Param}
	}

	return nil
}

// canon maps the internal empty term list to the zero polynomial [0].
func canon(ts []Value) []Value {
	if len(ts) == 0 {
		return []Value{Real(0)}
	}

	return ts
}

// trimLeading drops zero-valued leading terms. The result may be empty;
// it shares the backing array of ts.
func (e *Engine) trimLeading(ts []Value) ([]Value, error) {
	for len(ts) > 0 {
		z, err := e.IsZero(ts[0])
		if err != nil {
			return nil, err
		}
		if !z {
			break
		}
		ts = ts[1:]
	}

	return ts, nil
}

func (e *Engine) addPoly(op Operation, a, b Polynomial) (Value, error) {
	if err := checkParam(op, a, b); err != nil {
		return nil, err
	}
	ts, err := e.addTerms(a.Terms, b.Terms, op == OpSubtract)
	if err != nil {
		return nil, err
	}

	return Polynomial{Param: a.Param, Terms: canon(ts)}, nil
}

// addTerms merges two term lists by degree (aligned at the constant term),
// combining matching coefficients with Add or Subtract.
func (e *Engine) addTerms(a, b []Value, subtract bool) ([]Value, error) {
	n := max(len(a), len(b))
	out := make([]Value, n)
	for i := 0; i < n; i++ {
		var x, y Value = Real(0), Real(0)
		if ia := i - (n - len(a)); ia >= 0 {
			x = a[ia]
		}
		if ib := i - (n - len(b)); ib >= 0 {
			y = b[ib]
		}
		var (
			v   Value
			err error
		)
		if subtract {
			v, err = e.Subtract(x, y)
		} else {
			v, err = e.Add(x, y)
		}
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return e.trimLeading(out)
}

func (e *Engine) mulPoly(a, b Polynomial) (Value, error) {
	if err := checkParam(OpMultiply, a, b); err != nil {
		return nil, err
	}
	ts, err := e.mulTerms(a.Terms, b.Terms)
	if err != nil {
		return nil, err
	}

	return Polynomial{Param: a.Param, Terms: canon(ts)}, nil
}

// mulTerms is the convolution of a and b: term i of a times term j of b
// lands at degree offset i+j and is accumulated with Add.
func (e *Engine) mulTerms(a, b []Value) ([]Value, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, nil
	}
	out := make([]Value, len(a)+len(b)-1)
	for i := range out {
		out[i] = Real(0)
	}
	for i, x := range a {
		for j, y := range b {
			p, err := e.Multiply(x, y)
			if err != nil {
				return nil, err
			}
			s, err := e.Add(out[i+j], p)
			if err != nil {
				return nil, err
			}
			out[i+j] = s
		}
	}

	return e.trimLeading(out)
}

func (e *Engine) scalePoly(p Polynomial, k Value, op Operation) (Value, error) {
	out := make([]Value, len(p.Terms))
	for i, t := range p.Terms {
		v, err := e.Invoke(op, t, k)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	ts, err := e.trimLeading(out)
	if err != nil {
		return nil, err
	}

	return Polynomial{Param: p.Param, Terms: canon(ts)}, nil
}

func (e *Engine) scaleTerms(ts []Value, k Value) ([]Value, error) {
	out := make([]Value, len(ts))
	for i, t := range ts {
		v, err := e.Multiply(t, k)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

// power returns v^n by repeated multiplication (n >= 0).
func (e *Engine) power(v Value, n int) (Value, error) {
	var acc Value = Real(1)
	for i := 0; i < n; i++ {
		next, err := e.Multiply(acc, v)
		if err != nil {
			return nil, err
		}
		acc = next
	}

	return acc, nil
}

func (e *Engine) divModPoly(a, b Polynomial) (Polynomial, Polynomial, error) {
	if err := checkParam(OpDivide, a, b); err != nil {
		return Polynomial{}, Polynomial{}, err
	}
	den, err := e.trimLeading(b.Terms)
	if err != nil {
		return Polynomial{}, Polynomial{}, err
	}
	if len(den) == 0 {
		return Polynomial{}, Polynomial{}, ErrDivisionByZero
	}
	q, r, err := e.divModTerms(a.Terms, den)
	if err != nil {
		return Polynomial{}, Polynomial{}, err
	}

	return Polynomial{Param: a.Param, Terms: canon(q)}, Polynomial{Param: a.Param, Terms: canon(r)}, nil
}

// divModTerms is long division of num by den (den[0] must be non-zero).
// Each step cancels the dividend's leading term; that term is dropped
// explicitly so the loop terminates even when rounding leaves a residue.
// It stops once the remaining dividend has lower degree than den.
func (e *Engine) divModTerms(num, den []Value) (q, r []Value, err error) {
	r, err = e.trimLeading(append([]Value(nil), num...))
	if err != nil {
		return nil, nil, err
	}
	if len(r) < len(den) {
		return nil, r, nil
	}
	q = make([]Value, len(r)-len(den)+1)
	for i := range q {
		q[i] = Real(0)
	}
	for len(r) >= len(den) {
		coef, err := e.Divide(r[0], den[0])
		if err != nil {
			return nil, nil, err
		}
		shift := len(r) - len(den)
		q[len(q)-1-shift] = coef
		for j := 1; j < len(den); j++ {
			p, err := e.Multiply(coef, den[j])
			if err != nil {
				return nil, nil, err
			}
			if r[j], err = e.Subtract(r[j], p); err != nil {
				return nil, nil, err
			}
		}
		if r, err = e.trimLeading(r[1:]); err != nil {
			return nil, nil, err
		}
	}

	return q, r, nil
}

// gcdPoly runs the Euclidean algorithm on pseudo-remainders: before each
// division the dividend is scaled by lc(divisor)^(1+degree difference).
// Every remainder is divided by its leading coefficient before it becomes
// the next divisor, so coefficients stay bounded, and real coefficients
// within eps of the step's magnitude count as zero. The result is monic.
func (e *Engine) gcdPoly(a, b Polynomial) (Value, error) {
	if err := checkParam(OpGCD, a, b); err != nil {
		return nil, err
	}
	x, err := e.trimLeading(a.Terms)
	if err != nil {
		return nil, err
	}
	y, err := e.trimLeading(b.Terms)
	if err != nil {
		return nil, err
	}
	if len(x) < len(y) {
		x, y = y, x
	}
	if len(x) == 0 {
		return Polynomial{Param: a.Param, Terms: canon(nil)}, nil
	}
	if x, err = e.monicTerms(x); err != nil {
		return nil, err
	}
	if len(y) > 0 {
		if y, err = e.monicTerms(y); err != nil {
			return nil, err
		}
	}
	for len(y) > 0 {
		k, err := e.power(y[0], len(x)-len(y)+1)
		if err != nil {
			return nil, err
		}
		xs, err := e.scaleTerms(x, k)
		if err != nil {
			return nil, err
		}
		_, r, err := e.divModTerms(xs, y)
		if err != nil {
			return nil, err
		}
		if r, err = e.dropNegligible(r, max(maxAbs(xs), maxAbs(y))); err != nil {
			return nil, err
		}
		if len(r) > 0 {
			if r, err = e.monicTerms(r); err != nil {
				return nil, err
			}
		}
		x, y = y, r
	}

	return Polynomial{Param: a.Param, Terms: x}, nil
}

// monicTerms divides every term by the leading one (ts must be trimmed).
func (e *Engine) monicTerms(ts []Value) ([]Value, error) {
	out := make([]Value, len(ts))
	for i, t := range ts {
		v, err := e.Divide(t, ts[0])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

// dropNegligible zeroes real coefficients no larger than eps·scale and
// trims the result. With eps 0 only exact zeros are dropped.
func (e *Engine) dropNegligible(ts []Value, scale float64) ([]Value, error) {
	limit := e.eps * scale
	for i, t := range ts {
		if r, ok := t.(Real); ok && math.Abs(float64(r)) <= limit {
			ts[i] = Real(0)
		}
	}

	return e.trimLeading(ts)
}

// maxAbs is the largest magnitude among the real terms of ts.
func maxAbs(ts []Value) float64 {
	m := 0.0
	for _, t := range ts {
		if r, ok := t.(Real); ok {
			m = max(m, math.Abs(float64(r)))
		}
	}

	return m
}

// simplifyPolyRatio reduces num/den to coprime parts with a monic numerator.
// Non-finite or symbolic coefficients and a zero denominator leave the ratio
// untouched. A gcd that does not divide both parts (within eps) is treated
// as 1, so the result always has the input's value.
func (e *Engine) simplifyPolyRatio(r Ratio, num, den Polynomial) (Value, error) {
	if err := checkParam(OpSimplify, num, den); err != nil {
		return nil, err
	}
	if !allFinite(num.Terms) || !allFinite(den.Terms) {
		return r, nil
	}
	nt, err := e.trimLeading(num.Terms)
	if err != nil {
		return nil, err
	}
	dt, err := e.trimLeading(den.Terms)
	if err != nil {
		return nil, err
	}
	if len(dt) == 0 {
		return r, nil
	}
	if len(nt) == 0 {
		return Ratio{
			Num: Polynomial{Param: num.Param, Terms: canon(nil)},
			Den: Polynomial{Param: num.Param, Terms: []Value{Real(1)}},
		}, nil
	}

	gv, err := e.gcdPoly(Polynomial{Param: num.Param, Terms: nt}, Polynomial{Param: num.Param, Terms: dt})
	if err != nil {
		return nil, err
	}
	if g := gv.(Polynomial); len(g.Terms) > 1 && allFinite(g.Terms) {
		qn, qd, ok, err := e.cancel(nt, dt, g)
		if err != nil {
			return nil, err
		}
		if ok {
			nt, dt = qn, qd
		}
	}

	lead := nt[0]
	qn := make([]Value, len(nt))
	for i, t := range nt {
		if qn[i], err = e.Divide(t, lead); err != nil {
			return nil, err
		}
	}
	qd := make([]Value, len(dt))
	for i, t := range dt {
		if qd[i], err = e.Divide(t, lead); err != nil {
			return nil, err
		}
	}

	return Ratio{
		Num: Polynomial{Param: num.Param, Terms: canon(qn)},
		Den: Polynomial{Param: num.Param, Terms: canon(qd)},
	}, nil
}

// cancel divides nt and dt by g. Both parts are first scaled by
// lc(g)^k so the division is exact in exact arithmetic; ok is false when
// either remainder is not negligible, i.e. g is not a common factor.
func (e *Engine) cancel(nt, dt []Value, g Polynomial) (qn, qd []Value, ok bool, err error) {
	k, err := e.power(g.Lead(), max(len(nt), len(dt))-len(g.Terms)+1)
	if err != nil {
		return nil, nil, false, err
	}
	if nt, err = e.scaleTerms(nt, k); err != nil {
		return nil, nil, false, err
	}
	if dt, err = e.scaleTerms(dt, k); err != nil {
		return nil, nil, false, err
	}
	qn, rn, err := e.divModTerms(nt, g.Terms)
	if err != nil {
		return nil, nil, false, err
	}
	qd, rd, err := e.divModTerms(dt, g.Terms)
	if err != nil {
		return nil, nil, false, err
	}
	if rn, err = e.dropNegligible(rn, maxAbs(nt)); err != nil {
		return nil, nil, false, err
	}
	if rd, err = e.dropNegligible(rd, maxAbs(dt)); err != nil {
		return nil, nil, false, err
	}
	if len(rn) > 0 || len(rd) > 0 || len(qn) == 0 || len(qd) == 0 {
		return nil, nil, false, nil
	}

	return qn, qd, true, nil
}

func allFinite(ts []Value) bool {
	for _, t := range ts {
		if !finite(t) {
			return false
		}
	}

	return true
}
