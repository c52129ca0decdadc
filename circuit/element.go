// SPDX-License-Identifier: MIT

package circuit

import "github.com/katalvlaran/blockreduce/algebra"

// Has reports whether id names a live element.
func (c *Circuit) Has(id ID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.elements[id]

	return ok
}

// Kind returns the element kind of id.
func (c *Circuit) Kind(id ID) (Kind, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, err := c.get(id)
	if err != nil {
		return 0, err
	}

	return e.kind, nil
}

// Owner returns the block containing id (NoID for the root block).
func (c *Circuit) Owner(id ID) (ID, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, err := c.get(id)
	if err != nil {
		return NoID, err
	}

	return e.owner, nil
}

// IsTf reports whether id is a live transfer function.
func (c *Circuit) IsTf(id ID) bool { return c.is(id, KindTf) }

// IsAdder reports whether id is a live adder.
func (c *Circuit) IsAdder(id ID) bool { return c.is(id, KindAdder) }

// IsBlock reports whether id is a live block.
func (c *Circuit) IsBlock(id ID) bool { return c.is(id, KindBlock) }

// IsTransfer reports whether id carries a transfer function: a tf, or a
// simplified block.
func (c *Circuit) IsTransfer(id ID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.elements[id]

	return ok && e.transfer()
}

func (c *Circuit) is(id ID, k Kind) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.elements[id]

	return ok && e.kind == k
}

// Value returns the transfer function of a tf or simplified block.
//
// Errors:
//   - ErrElementNotFound: id is not live.
//   - ErrNotSimplified: id is a block that has not been simplified.
//   - ErrNotTransfer: id is an adder.
func (c *Circuit) Value(id ID) (algebra.Ratio, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, err := c.get(id)
	if err != nil {
		return algebra.Ratio{}, err
	}
	if err := checkTransfer(e); err != nil {
		return algebra.Ratio{}, err
	}

	return e.value, nil
}

// SetValue replaces the transfer function of a tf or simplified block.
// For a block the single inner element is updated too, so the block and its
// content never disagree.
func (c *Circuit) SetValue(id ID, v algebra.Ratio) error {
	if !v.IsValid() {
		return algebra.ErrShapeMismatch
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := c.get(id)
	if err != nil {
		return err
	}
	if err := checkTransfer(e); err != nil {
		return err
	}
	c.setValue(e, v)

	return nil
}

func (c *Circuit) setValue(e *element, v algebra.Ratio) {
	e.value = v
	if e.kind != KindBlock {
		return
	}
	for _, sub := range [...]*element{first(c, e.tfs), first(c, e.blocks)} {
		if sub != nil && sub.transfer() {
			c.setValue(sub, v)
		}
	}
}

func checkTransfer(e *element) error {
	switch {
	case e.kind == KindAdder:
		return ErrNotTransfer
	case e.kind == KindBlock && !e.simplified:
		return ErrNotSimplified
	default:
		return nil
	}
}
