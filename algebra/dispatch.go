// SPDX-License-Identifier: MIT

package algebra

// Operation names a generic entry point of the engine.
type Operation string

// Operations known to the standard table.
const (
	OpAdd      Operation = "add"
	OpSubtract Operation = "subtract"
	OpMultiply Operation = "multiply"
	OpDivide   Operation = "divide"
	OpNegate   Operation = "negate"
	OpIsZero   Operation = "isZero"
	OpGCD      Operation = "gcd"
	OpSimplify Operation = "simplify"
	OpReduce   Operation = "reduce"
)

// BinaryFunc implements a two-operand operation for one kind pair.
type BinaryFunc func(e *Engine, a, b Value) (Value, error)

// UnaryFunc implements a one-operand operation for one kind.
type UnaryFunc func(e *Engine, a Value) (Value, error)

// PredicateFunc implements a boolean query for one kind.
type PredicateFunc func(e *Engine, a Value) (bool, error)

// binaryKey, unaryKey: lookup keys built from the operands' tags.
type binaryKey struct {
	op   Operation
	a, b Kind
}

type unaryKey struct {
	op Operation
	k  Kind
}

// Table is an immutable operation table. Build one with a TableBuilder;
// after Build nothing can register into it, so an Engine's behavior is
// fixed for its lifetime.
type Table struct {
	binary    map[binaryKey]BinaryFunc
	unary     map[unaryKey]UnaryFunc
	predicate map[unaryKey]PredicateFunc
}

// Has reports whether a handler exists for op over the given kinds.
// Arity is taken from len(kinds).
func (t *Table) Has(op Operation, kinds ...Kind) bool {
	switch len(kinds) {
	case 1:
		if _, ok := t.unary[unaryKey{op, kinds[0]}]; ok {
			return true
		}
		_, ok := t.predicate[unaryKey{op, kinds[0]}]

		return ok
	case 2:
		_, ok := t.binary[binaryKey{op, kinds[0], kinds[1]}]

		return ok
	default:
		return false
	}
}

// Len returns the number of registered handlers.
func (t *Table) Len() int { return len(t.binary) + len(t.unary) + len(t.predicate) }

// TableBuilder accumulates handlers. It is not safe for concurrent use;
// the built Table is read-only and safe to share.
type TableBuilder struct {
	t *Table
}

// NewTableBuilder returns an empty builder.
func NewTableBuilder() *TableBuilder {
	return &TableBuilder{t: &Table{
		binary:    make(map[binaryKey]BinaryFunc),
		unary:     make(map[unaryKey]UnaryFunc),
		predicate: make(map[unaryKey]PredicateFunc),
	}}
}

// Binary registers fn for op(a, b). A later registration for the same key wins.
func (b *TableBuilder) Binary(op Operation, ka, kb Kind, fn BinaryFunc) *TableBuilder {
	b.t.binary[binaryKey{op, ka, kb}] = fn

	return b
}

// Unary registers fn for op(k).
func (b *TableBuilder) Unary(op Operation, k Kind, fn UnaryFunc) *TableBuilder {
	b.t.unary[unaryKey{op, k}] = fn

	return b
}

// Predicate registers fn for the boolean query op(k).
func (b *TableBuilder) Predicate(op Operation, k Kind, fn PredicateFunc) *TableBuilder {
	b.t.predicate[unaryKey{op, k}] = fn

	return b
}

// Build freezes the builder into a Table. The builder must not be used afterwards.
func (b *TableBuilder) Build() *Table {
	t := b.t
	b.t = nil

	return t
}

// StandardTable registers the reals, symbolic parameters, polynomials and
// ratios modules.
func StandardTable() *Table {
	b := NewTableBuilder()
	registerReals(b)
	registerSymbols(b)
	registerPolynomials(b)
	registerRatios(b)

	return b.Build()
}
