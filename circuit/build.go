// SPDX-License-Identifier: MIT

package circuit

import (
	"fmt"

	"github.com/hashicorp/go-set/v3"

	"github.com/katalvlaran/blockreduce/algebra"
)

// AddBlock creates an empty nested block inside parent.
func (c *Circuit) AddBlock(parent ID) (ID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := c.getBlock(parent)
	if err != nil {
		return NoID, err
	}
	e := c.alloc(KindBlock, parent)
	p.blocks.Insert(e.id)

	return e.id, nil
}

// AddTf creates a transfer function with the given value inside block.
// The value must have both parts set.
func (c *Circuit) AddTf(block ID, value algebra.Ratio) (ID, error) {
	if !value.IsValid() {
		return NoID, fmt.Errorf("circuit: tf value: %w", algebra.ErrShapeMismatch)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	b, err := c.getBlock(block)
	if err != nil {
		return NoID, err
	}
	e := c.alloc(KindTf, block)
	e.value = value
	b.tfs.Insert(e.id)

	return e.id, nil
}

// AddAdder creates a summing junction inside block.
func (c *Circuit) AddAdder(block ID) (ID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, err := c.getBlock(block)
	if err != nil {
		return NoID, err
	}
	e := c.alloc(KindAdder, block)
	b.adders.Insert(e.id)

	return e.id, nil
}

// Remove deletes an element together with all of its connections.
// Removing a block removes its whole subtree.
//
// Errors:
//   - ErrElementNotFound: id is not live.
//   - ErrRootBlock: id is the root block.
func (c *Circuit) Remove(id ID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id == c.root {
		return ErrRootBlock
	}
	if _, err := c.get(id); err != nil {
		return err
	}
	c.remove(id)

	return nil
}

// remove assumes id is live and not the root.
func (c *Circuit) remove(id ID) {
	e := c.elements[id]
	for _, in := range e.inputs {
		c.elements[in].outputs.Remove(id)
	}
	for _, out := range e.outputs.Slice() {
		c.dropInput(c.elements[out], id)
	}
	if e.kind == KindBlock {
		for _, sub := range [...][]ID{e.blocks.Slice(), e.tfs.Slice(), e.adders.Slice()} {
			for _, m := range sub {
				c.remove(m)
			}
		}
	}
	if owner, ok := c.elements[e.owner]; ok {
		owner.collection(e.kind).Remove(id)
	}
	delete(c.elements, id)
}

// Clone returns a deep copy sharing no state with c. IDs are preserved and
// the copy continues numbering after the source. Busy marks are not copied.
func (c *Circuit) Clone() *Circuit {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := &Circuit{
		elements: make(map[ID]*element, len(c.elements)),
		nextID:   c.nextID,
		root:     c.root,
		busy:     set.New[ID](0),
	}
	for id, e := range c.elements {
		ne := &element{
			id:         e.id,
			kind:       e.kind,
			owner:      e.owner,
			value:      e.value,
			inputs:     append([]ID(nil), e.inputs...),
			outputs:    copyIDs(e.outputs.Slice()),
			simplified: e.simplified,
		}
		if e.kind == KindBlock {
			ne.blocks = copyIDs(e.blocks.Slice())
			ne.tfs = copyIDs(e.tfs.Slice())
			ne.adders = copyIDs(e.adders.Slice())
		}
		out.elements[id] = ne
	}

	return out
}
