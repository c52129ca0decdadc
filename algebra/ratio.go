// SPDX-License-Identifier: MIT

package algebra

// Ratio is Num/Den where both parts have the same shape: two reals, or two
// polynomials over the same parameter. Arithmetic never simplifies
// implicitly; call Simplify.
type Ratio struct {
	Num, Den Value
}

// NewRatio validates that num and den have the same shape.
func NewRatio(num, den Value) (Ratio, error) {
	if num == nil || den == nil || num.Kind() != den.Kind() {
		return Ratio{}, ErrShapeMismatch
	}
	switch n := num.(type) {
	case Real:
	case Polynomial:
		if err := checkParam(OpDivide, n, den.(Polynomial)); err != nil {
			return Ratio{}, err
		}
	default:
		return Ratio{}, ErrShapeMismatch
	}

	return Ratio{Num: num, Den: den}, nil
}

// NewTransferFunction builds num(param)/den(param) from coefficient lists
// ordered highest degree first. This is the construction input of a Tf.
func NewTransferFunction(param string, num, den []float64) (Ratio, error) {
	n, err := NewRealPolynomial(param, num...)
	if err != nil {
		return Ratio{}, err
	}
	d, err := NewRealPolynomial(param, den...)
	if err != nil {
		return Ratio{}, err
	}

	return Ratio{Num: n, Den: d}, nil
}

// MustTransferFunction is NewTransferFunction that panics on error.
func MustTransferFunction(param string, num, den []float64) Ratio {
	r, err := NewTransferFunction(param, num, den)
	if err != nil {
		panic(err)
	}

	return r
}

// Unity returns 1/1 over param.
func Unity(param string) Ratio {
	return Ratio{
		Num: Polynomial{Param: param, Terms: []Value{Real(1)}},
		Den: Polynomial{Param: param, Terms: []Value{Real(1)}},
	}
}

// Kind implements Value.
func (Ratio) Kind() Kind { return KindRatio }

func (Ratio) sealed() {}

// IsValid reports whether r has both parts set.
func (r Ratio) IsValid() bool { return r.Num != nil && r.Den != nil }

// String renders "(num)/(den)".
func (r Ratio) String() string {
	if !r.IsValid() {
		return "<nil ratio>"
	}

	return "(" + r.Num.String() + ")/(" + r.Den.String() + ")"
}

// registerRatios installs rational arithmetic. Every scalar step goes back
// through the engine, so the parts may be reals or polynomials.
func registerRatios(b *TableBuilder) {
	b.Binary(OpAdd, KindRatio, KindRatio, func(e *Engine, x, y Value) (Value, error) {
		return e.crossRatio(OpAdd, x.(Ratio), y.(Ratio))
	})
	b.Binary(OpSubtract, KindRatio, KindRatio, func(e *Engine, x, y Value) (Value, error) {
		return e.crossRatio(OpSubtract, x.(Ratio), y.(Ratio))
	})
	b.Binary(OpMultiply, KindRatio, KindRatio, func(e *Engine, x, y Value) (Value, error) {
		a, c := x.(Ratio), y.(Ratio)

		return e.ratioOf(a.Num, c.Num, a.Den, c.Den)
	})
	b.Binary(OpDivide, KindRatio, KindRatio, func(e *Engine, x, y Value) (Value, error) {
		a, c := x.(Ratio), y.(Ratio)

		return e.ratioOf(a.Num, c.Den, a.Den, c.Num)
	})
	b.Unary(OpNegate, KindRatio, func(e *Engine, x Value) (Value, error) {
		r := x.(Ratio)
		n, err := e.Negate(r.Num)
		if err != nil {
			return nil, err
		}

		return Ratio{Num: n, Den: r.Den}, nil
	})
	b.Unary(OpSimplify, KindRatio, func(e *Engine, x Value) (Value, error) {
		r := x.(Ratio)
		switch n := r.Num.(type) {
		case Polynomial:
			d, ok := r.Den.(Polynomial)
			if !ok {
				return nil, ErrShapeMismatch
			}

			return e.simplifyPolyRatio(r, n, d)
		case Real:
			d, ok := r.Den.(Real)
			if !ok {
				return nil, ErrShapeMismatch
			}

			return simplifyRealRatio(r, n, d), nil
		default:
			return r, nil
		}
	})
	b.Unary(OpReduce, KindRatio, func(e *Engine, x Value) (Value, error) {
		r := x.(Ratio)
		n, err := e.Reduce(r.Num)
		if err != nil {
			return nil, err
		}
		d, err := e.Reduce(r.Den)
		if err != nil {
			return nil, err
		}

		return Ratio{Num: n, Den: d}, nil
	})
	b.Predicate(OpIsZero, KindRatio, func(e *Engine, x Value) (bool, error) {
		return e.IsZero(x.(Ratio).Num)
	})
}

// crossRatio: a/b ± c/d = (a·d ± c·b) / (b·d).
func (e *Engine) crossRatio(op Operation, x, y Ratio) (Value, error) {
	ad, err := e.Multiply(x.Num, y.Den)
	if err != nil {
		return nil, err
	}
	cb, err := e.Multiply(y.Num, x.Den)
	if err != nil {
		return nil, err
	}
	num, err := e.Invoke(op, ad, cb)
	if err != nil {
		return nil, err
	}
	den, err := e.Multiply(x.Den, y.Den)
	if err != nil {
		return nil, err
	}

	return Ratio{Num: num, Den: den}, nil
}

// ratioOf returns (n1·n2)/(d1·d2).
func (e *Engine) ratioOf(n1, n2, d1, d2 Value) (Value, error) {
	num, err := e.Multiply(n1, n2)
	if err != nil {
		return nil, err
	}
	den, err := e.Multiply(d1, d2)
	if err != nil {
		return nil, err
	}

	return Ratio{Num: num, Den: den}, nil
}

// simplifyRealRatio divides both parts by their gcd; non-finite parts or a
// zero gcd leave r unchanged.
func simplifyRealRatio(r Ratio, n, d Real) Ratio {
	if !finite(n) || !finite(d) {
		return r
	}
	g := realGCD(float64(n), float64(d))
	if g == 0 {
		return r
	}

	return Ratio{Num: n / Real(g), Den: d / Real(g)}
}
