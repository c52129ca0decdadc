// SPDX-License-Identifier: MIT

package circuit

import (
	"fmt"
	"slices"

	"github.com/hashicorp/go-set/v3"
)

// Tfs returns the transfer functions directly inside block, ordered by ID.
func (c *Circuit) Tfs(block ID) ([]ID, error) {
	return c.collect(block, func(b *element) *set.TreeSet[ID] { return b.tfs })
}

// Adders returns the adders directly inside block, ordered by ID.
func (c *Circuit) Adders(block ID) ([]ID, error) {
	return c.collect(block, func(b *element) *set.TreeSet[ID] { return b.adders })
}

// Blocks returns the blocks directly inside block, ordered by ID.
func (c *Circuit) Blocks(block ID) ([]ID, error) {
	return c.collect(block, func(b *element) *set.TreeSet[ID] { return b.blocks })
}

func (c *Circuit) collect(block ID, pick func(*element) *set.TreeSet[ID]) ([]ID, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	b, err := c.getBlock(block)
	if err != nil {
		return nil, err
	}

	return pick(b).Slice(), nil
}

// Elements returns every element directly inside block, ordered by ID.
func (c *Circuit) Elements(block ID) ([]ID, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	b, err := c.getBlock(block)
	if err != nil {
		return nil, err
	}

	return b.memberIDs(), nil
}

func (e *element) memberIDs() []ID {
	out := make([]ID, 0, e.members())
	out = append(out, e.blocks.Slice()...)
	out = append(out, e.tfs.Slice()...)
	out = append(out, e.adders.Slice()...)
	slices.Sort(out)

	return out
}

// Connections returns the [from, to] pairs between elements of block,
// ordered by from and then to.
func (c *Circuit) Connections(block ID) ([][2]ID, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	b, err := c.getBlock(block)
	if err != nil {
		return nil, err
	}

	return c.connections(b), nil
}

func (c *Circuit) connections(b *element) [][2]ID {
	var out [][2]ID
	for _, id := range b.memberIDs() {
		for _, to := range c.elements[id].outputs.Slice() {
			out = append(out, [2]ID{id, to})
		}
	}

	return out
}

// Stats counts the direct contents and internal connections of block.
func (c *Circuit) Stats(block ID) (Stats, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	b, err := c.getBlock(block)
	if err != nil {
		return Stats{}, err
	}
	s := Stats{Blocks: b.blocks.Size(), Tfs: b.tfs.Size(), Adders: b.adders.Size()}
	for _, id := range b.memberIDs() {
		s.Connections += c.elements[id].outputs.Size()
	}

	return s, nil
}

// Simplified reports whether block has been reduced to a single element.
func (c *Circuit) Simplified(block ID) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	b, err := c.getBlock(block)
	if err != nil {
		return false, err
	}

	return b.simplified, nil
}

// MarkSimplified flips block to simplified and takes the value of its only
// element. The block must hold exactly one transfer element.
func (c *Circuit) MarkSimplified(block ID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, err := c.getBlock(block)
	if err != nil {
		return err
	}
	if n := b.members(); n != 1 {
		return fmt.Errorf("circuit: block %d holds %d elements: %w", block, n, ErrNotTransfer)
	}
	sole := c.elements[b.memberIDs()[0]]
	if !sole.transfer() {
		return fmt.Errorf("circuit: block %d holds a %s: %w", block, sole.kind, ErrNotTransfer)
	}
	b.value = sole.value
	b.simplified = true

	return nil
}

// Acquire marks block as being rewritten and returns the release function.
// A block conflicts with itself, its ancestors and its descendants, so two
// writers never touch overlapping parts of the tree.
//
// Errors:
//   - ErrBlockNotFound: block is missing.
//   - ErrBusy: a conflicting block is held.
func (c *Circuit) Acquire(block ID) (release func(), err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.getBlock(block); err != nil {
		return nil, err
	}
	for _, held := range c.busy.Slice() {
		if c.encloses(held, block) || c.encloses(block, held) {
			return nil, ErrBusy
		}
	}
	c.busy.Insert(block)

	return func() {
		c.mu.Lock()
		c.busy.Remove(block)
		c.mu.Unlock()
	}, nil
}

// encloses reports whether outer is inner or one of its ancestors.
func (c *Circuit) encloses(outer, inner ID) bool {
	for id := inner; id != NoID; {
		if id == outer {
			return true
		}
		e, ok := c.elements[id]
		if !ok {
			return false
		}
		id = e.owner
	}

	return false
}

func first(c *Circuit, s *set.TreeSet[ID]) *element {
	if s.Empty() {
		return nil
	}

	return c.elements[s.Slice()[0]]
}
