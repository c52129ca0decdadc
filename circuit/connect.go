// SPDX-License-Identifier: MIT

package circuit

import (
	"slices"

	"github.com/hashicorp/go-set/v3"
)

// Connect adds the directed edge from → to.
//
// Implementation:
//   - Stage 1: Validate both ends exist, differ and share an owner block.
//   - Stage 2: Reject duplicates and a second input into a tf or block.
//   - Stage 3: Record the edge on both ends.
//
// Errors:
//   - ErrSelfLoop, ErrElementNotFound, ErrWrongOwner, ErrEdgeExists,
//     ErrInputOccupied.
//
// Complexity:
//   - Time O(log d) for the output set, O(1) amortized for the input list.
func (c *Circuit) Connect(from, to ID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.connect(from, to)
}

func (c *Circuit) connect(from, to ID) error {
	if from == to {
		return ErrSelfLoop
	}
	f, err := c.get(from)
	if err != nil {
		return err
	}
	t, err := c.get(to)
	if err != nil {
		return err
	}
	if f.owner != t.owner || f.owner == NoID {
		return ErrWrongOwner
	}
	if f.outputs.Contains(to) {
		return ErrEdgeExists
	}
	if t.kind != KindAdder && len(t.inputs) > 0 {
		return ErrInputOccupied
	}
	f.outputs.Insert(to)
	t.inputs = append(t.inputs, from)

	return nil
}

// Disconnect removes the edge from → to.
func (c *Circuit) Disconnect(from, to ID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.disconnect(from, to)
}

func (c *Circuit) disconnect(from, to ID) error {
	f, err := c.get(from)
	if err != nil {
		return err
	}
	t, err := c.get(to)
	if err != nil {
		return err
	}
	if !f.outputs.Remove(to) {
		return ErrEdgeNotFound
	}
	c.dropInput(t, from)

	return nil
}

func (c *Circuit) dropInput(e *element, from ID) {
	e.inputs = slices.DeleteFunc(e.inputs, func(id ID) bool { return id == from })
}

// HasInput reports whether id has at least one input.
func (c *Circuit) HasInput(id ID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.elements[id]

	return ok && len(e.inputs) > 0
}

// Input returns the single input of a tf or block, or NoID when unconnected.
// Adders have several inputs; use Inputs.
func (c *Circuit) Input(id ID) (ID, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, err := c.get(id)
	if err != nil {
		return NoID, err
	}
	if e.kind == KindAdder {
		return NoID, ErrKind
	}
	if len(e.inputs) == 0 {
		return NoID, nil
	}

	return e.inputs[0], nil
}

// Inputs returns the inputs of id in connection order.
func (c *Circuit) Inputs(id ID) ([]ID, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, err := c.get(id)
	if err != nil {
		return nil, err
	}

	return append([]ID(nil), e.inputs...), nil
}

// SetInput connects from → id. A tf or block has one input slot, so an
// existing input is disconnected first; an adder gains one more input.
func (c *Circuit) SetInput(id, from ID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := c.get(id)
	if err != nil {
		return err
	}
	if e.kind == KindAdder || len(e.inputs) == 0 {
		return c.connect(from, id)
	}
	old := e.inputs[0]
	if old == from {
		return nil
	}
	if err := c.disconnect(old, id); err != nil {
		return err
	}
	if err := c.connect(from, id); err != nil {
		// restore the previous edge
		_ = c.connect(old, id)

		return err
	}

	return nil
}

// RemoveInput removes the edge from → id.
func (c *Circuit) RemoveInput(id, from ID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.disconnect(from, id)
}

// HasOutputs reports whether id feeds at least one element.
func (c *Circuit) HasOutputs(id ID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.elements[id]

	return ok && !e.outputs.Empty()
}

// Outputs returns the elements fed by id, ordered by ID.
func (c *Circuit) Outputs(id ID) ([]ID, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, err := c.get(id)
	if err != nil {
		return nil, err
	}

	return e.outputs.Slice(), nil
}

// AddOutput connects id → to.
func (c *Circuit) AddOutput(id, to ID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.connect(id, to)
}

// RemoveOutput removes the edge id → to.
func (c *Circuit) RemoveOutput(id, to ID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.disconnect(id, to)
}

func copyIDs(ids []ID) *set.TreeSet[ID] {
	s := newIDSet()
	for _, id := range ids {
		s.Insert(id)
	}

	return s
}
