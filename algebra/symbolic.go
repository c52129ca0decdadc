// SPDX-License-Identifier: MIT

package algebra

import "strings"

// Operator symbols of a Symbolic node.
const (
	SymAdd byte = '+'
	SymSub byte = '-'
	SymMul byte = '*'
	SymDiv byte = '/'
)

// Symbolic is a prefix-notation expression over named parameters and reals.
// A leaf carries a name; an inner node carries an operator and its operands
// (one operand for unary minus, two otherwise). Values are immutable.
type Symbolic struct {
	name string
	op   byte
	args []Value
}

// Sym returns the leaf symbol name.
func Sym(name string) Symbolic { return Symbolic{name: name} }

// Kind implements Value.
func (Symbolic) Kind() Kind { return KindSymbol }

func (Symbolic) sealed() {}

// IsLeaf reports whether s is a bare symbol name.
func (s Symbolic) IsLeaf() bool { return s.op == 0 }

// Name returns the symbol name of a leaf, or "" for an inner node.
func (s Symbolic) Name() string { return s.name }

// Op returns the operator of an inner node, or 0 for a leaf.
func (s Symbolic) Op() byte { return s.op }

// Args returns a copy of an inner node's operands.
func (s Symbolic) Args() []Value { return append([]Value(nil), s.args...) }

// String renders prefix notation, e.g. "(* Kp (+ s 1))".
func (s Symbolic) String() string {
	if s.IsLeaf() {
		return s.name
	}
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteByte(s.op)
	for _, a := range s.args {
		sb.WriteByte(' ')
		sb.WriteString(a.String())
	}
	sb.WriteByte(')')

	return sb.String()
}

func node(op byte, args ...Value) Symbolic { return Symbolic{op: op, args: args} }

// registerSymbols installs the identities for symbol/real and symbol/symbol
// pairs. Nodes are only built when no identity applies.
func registerSymbols(b *TableBuilder) {
	pairs := [][2]Kind{
		{KindSymbol, KindReal},
		{KindReal, KindSymbol},
		{KindSymbol, KindSymbol},
	}
	for _, p := range pairs {
		b.Binary(OpAdd, p[0], p[1], symAdd)
		b.Binary(OpSubtract, p[0], p[1], symSubtract)
		b.Binary(OpMultiply, p[0], p[1], symMultiply)
		b.Binary(OpDivide, p[0], p[1], symDivide)
	}
	b.Unary(OpNegate, KindSymbol, func(_ *Engine, x Value) (Value, error) {
		return symNegate(x.(Symbolic)), nil
	})
	b.Unary(OpSimplify, KindSymbol, identity)
	b.Unary(OpReduce, KindSymbol, identity)
	// a symbol is never statically known to vanish
	b.Predicate(OpIsZero, KindSymbol, func(*Engine, Value) (bool, error) { return false, nil })
}

func symAdd(_ *Engine, a, b Value) (Value, error) {
	switch {
	case isRealValue(b, 0):
		return a, nil
	case isRealValue(a, 0):
		return b, nil
	}

	return node(SymAdd, a, b), nil
}

func symSubtract(_ *Engine, a, b Value) (Value, error) {
	switch {
	case isRealValue(b, 0):
		return a, nil
	case isRealValue(a, 0):
		// only (real, symbol) reaches here, so b is the symbol
		return symNegate(b.(Symbolic)), nil
	}

	return node(SymSub, a, b), nil
}

func symMultiply(_ *Engine, a, b Value) (Value, error) {
	switch {
	case isRealValue(a, 0), isRealValue(b, 0):
		return Real(0), nil
	case isRealValue(b, 1):
		return a, nil
	case isRealValue(a, 1):
		return b, nil
	}

	return node(SymMul, a, b), nil
}

func symDivide(_ *Engine, a, b Value) (Value, error) {
	switch {
	case isRealValue(b, 1):
		return a, nil
	case isRealValue(a, 0):
		return Real(0), nil
	}

	return node(SymDiv, a, b), nil
}

// symNegate wraps s in unary minus; a double negation collapses.
func symNegate(s Symbolic) Symbolic {
	if s.op == SymSub && len(s.args) == 1 {
		if inner, ok := s.args[0].(Symbolic); ok {
			return inner
		}
	}

	return node(SymSub, s)
}
