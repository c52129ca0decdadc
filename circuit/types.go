// SPDX-License-Identifier: MIT

package circuit

import (
	"cmp"
	"strconv"
	"sync"

	"github.com/hashicorp/go-set/v3"

	"github.com/katalvlaran/blockreduce/algebra"
)

// ID identifies an element. IDs are positive, handed out in creation order
// and never reused within a Circuit.
type ID int

// NoID is the zero ID; it names no element (the root block has no owner).
const NoID ID = 0

// Kind is the element type.
type Kind uint8

const (
	// KindTf is a transfer function: one value, at most one input.
	KindTf Kind = iota + 1
	// KindAdder is a summing junction: any number of inputs, implicit "+".
	KindAdder
	// KindBlock is a nested sub-circuit. Once simplified it behaves like a Tf.
	KindBlock
)

// String returns "tf", "adder" or "block".
func (k Kind) String() string {
	switch k {
	case KindTf:
		return "tf"
	case KindAdder:
		return "adder"
	case KindBlock:
		return "block"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

func newIDSet() *set.TreeSet[ID] { return set.NewTreeSet[ID](cmp.Compare[ID]) }

// element is one arena slot. Edges are stored on both ends: to ∈ outputs(from)
// iff from ∈ inputs(to).
type element struct {
	id      ID
	kind    Kind
	owner   ID
	value   algebra.Ratio
	inputs  []ID
	outputs *set.TreeSet[ID]

	// block only
	blocks, tfs, adders *set.TreeSet[ID]
	simplified          bool
}

func (e *element) transfer() bool {
	return e.kind == KindTf || (e.kind == KindBlock && e.simplified)
}

func (e *element) members() int {
	return e.blocks.Size() + e.tfs.Size() + e.adders.Size()
}

// collection returns the owner-side set the element is registered in.
func (e *element) collection(k Kind) *set.TreeSet[ID] {
	switch k {
	case KindTf:
		return e.tfs
	case KindAdder:
		return e.adders
	default:
		return e.blocks
	}
}

// Circuit owns every element of a block tree. A single sync.RWMutex guards
// the arena; every exported method is safe for concurrent use, while
// structural rewrites of one block are serialized through Acquire.
type Circuit struct {
	mu       sync.RWMutex
	elements map[ID]*element
	nextID   ID
	root     ID
	busy     *set.Set[ID]
}

// New returns a circuit holding an empty root block.
func New() *Circuit {
	c := &Circuit{
		elements: make(map[ID]*element),
		busy:     set.New[ID](0),
	}
	c.root = c.alloc(KindBlock, NoID).id

	return c
}

// Root returns the ID of the top-level block.
func (c *Circuit) Root() ID { return c.root }

// Len returns the number of live elements, the root block included.
func (c *Circuit) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.elements)
}

// Stats summarizes one block's direct contents.
type Stats struct {
	Blocks      int
	Tfs         int
	Adders      int
	Connections int
}

// Elements returns Blocks + Tfs + Adders.
func (s Stats) Elements() int { return s.Blocks + s.Tfs + s.Adders }

func (c *Circuit) alloc(k Kind, owner ID) *element {
	c.nextID++
	e := &element{id: c.nextID, kind: k, owner: owner, outputs: newIDSet()}
	if k == KindBlock {
		e.blocks, e.tfs, e.adders = newIDSet(), newIDSet(), newIDSet()
	}
	c.elements[e.id] = e

	return e
}

func (c *Circuit) get(id ID) (*element, error) {
	e, ok := c.elements[id]
	if !ok {
		return nil, ErrElementNotFound
	}

	return e, nil
}

func (c *Circuit) getBlock(id ID) (*element, error) {
	e, ok := c.elements[id]
	if !ok || e.kind != KindBlock {
		return nil, ErrBlockNotFound
	}

	return e, nil
}
