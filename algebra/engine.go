// SPDX-License-Identifier: MIT

package algebra

import "fmt"

// Engine dispatches generic operations to the handlers of its Table.
// An Engine is immutable after NewEngine and safe for concurrent use.
type Engine struct {
	table *Table
	eps   float64
}

// NewEngine builds an engine over StandardTable unless WithTable overrides it.
func NewEngine(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.table == nil {
		o.table = StandardTable()
	}

	return &Engine{table: o.table, eps: o.eps}
}

// Table exposes the engine's operation table (read-only).
func (e *Engine) Table() *Table { return e.table }

// Invoke looks up the handler for op over the operands' kinds and calls it.
// One operand selects a unary handler, two a binary one. Predicates are
// reached through IsZero, which returns a bool.
func (e *Engine) Invoke(op Operation, operands ...Value) (Value, error) {
	switch len(operands) {
	case 1:
		fn, ok := e.table.unary[unaryKey{op, operands[0].Kind()}]
		if !ok {
			return nil, &DispatchError{Op: op, Kinds: kindsOf(operands)}
		}

		return fn(e, operands[0])
	case 2:
		fn, ok := e.table.binary[binaryKey{op, operands[0].Kind(), operands[1].Kind()}]
		if !ok {
			return nil, &DispatchError{Op: op, Kinds: kindsOf(operands)}
		}

		return fn(e, operands[0], operands[1])
	default:
		return nil, &DispatchError{Op: op, Kinds: kindsOf(operands)}
	}
}

// Add returns a + b.
func (e *Engine) Add(a, b Value) (Value, error) { return e.Invoke(OpAdd, a, b) }

// Subtract returns a - b.
func (e *Engine) Subtract(a, b Value) (Value, error) { return e.Invoke(OpSubtract, a, b) }

// Multiply returns a * b.
func (e *Engine) Multiply(a, b Value) (Value, error) { return e.Invoke(OpMultiply, a, b) }

// Divide returns a / b. For two polynomials it returns the quotient when the
// division is exact, and the Ratio a/b otherwise. DivMod is the entry point
// for polynomial long division returning (quotient, remainder).
func (e *Engine) Divide(a, b Value) (Value, error) { return e.Invoke(OpDivide, a, b) }

// Negate returns -a.
func (e *Engine) Negate(a Value) (Value, error) { return e.Invoke(OpNegate, a) }

// GCD returns the greatest common divisor of a and b.
func (e *Engine) GCD(a, b Value) (Value, error) { return e.Invoke(OpGCD, a, b) }

// Simplify returns the canonical reduced form of a (ratios become coprime
// with a monic numerator).
func (e *Engine) Simplify(a Value) (Value, error) { return e.Invoke(OpSimplify, a) }

// Reduce normalizes the representation of a (leading zero terms dropped).
func (e *Engine) Reduce(a Value) (Value, error) { return e.Invoke(OpReduce, a) }

// IsZero reports whether a is the additive identity of its kind.
func (e *Engine) IsZero(a Value) (bool, error) {
	fn, ok := e.table.predicate[unaryKey{OpIsZero, a.Kind()}]
	if !ok {
		return false, &DispatchError{Op: OpIsZero, Kinds: []Kind{a.Kind()}}
	}

	return fn(e, a)
}

// DivMod divides a by b and returns quotient and remainder. Reals divide
// exactly (remainder 0); polynomials use long division.
func (e *Engine) DivMod(a, b Value) (q, r Value, err error) {
	switch x := a.(type) {
	case Real:
		y, ok := b.(Real)
		if !ok {
			return nil, nil, &DispatchError{Op: OpDivide, Kinds: []Kind{a.Kind(), b.Kind()}}
		}

		return x / y, Real(0), nil
	case Polynomial:
		y, ok := b.(Polynomial)
		if !ok {
			return nil, nil, &DispatchError{Op: OpDivide, Kinds: []Kind{a.Kind(), b.Kind()}}
		}
		pq, pr, err := e.divModPoly(x, y)
		if err != nil {
			return nil, nil, err
		}

		return pq, pr, nil
	default:
		return nil, nil, &DispatchError{Op: OpDivide, Kinds: []Kind{a.Kind(), b.Kind()}}
	}
}

// SimplifyRatio is Simplify narrowed to ratios.
func (e *Engine) SimplifyRatio(r Ratio) (Ratio, error) {
	v, err := e.Simplify(r)
	if err != nil {
		return Ratio{}, err
	}
	out, ok := v.(Ratio)
	if !ok {
		return Ratio{}, fmt.Errorf("algebra: simplify of ratio returned %s", v.Kind())
	}

	return out, nil
}

func kindsOf(vs []Value) []Kind {
	ks := make([]Kind, len(vs))
	for i, v := range vs {
		ks[i] = v.Kind()
	}

	return ks
}
