// SPDX-License-Identifier: MIT

package circuit

import (
	"encoding/json"
	"fmt"

	"github.com/katalvlaran/blockreduce/algebra"
)

// State is the exported shape of one block:
//
//	{"blocks": [...], "tfs": [{"value": ..., "elementId": 3}], "adders": [...],
//	 "connections": [[from, to], ...]}
//
// Tf values use the algebra tagged JSON encoding.
type State struct {
	Blocks      []BlockState `json:"blocks"`
	Tfs         []TfState    `json:"tfs"`
	Adders      []AdderState `json:"adders"`
	Connections [][2]ID      `json:"connections"`
}

// TfState is one transfer function of a State.
type TfState struct {
	Value     json.RawMessage `json:"value"`
	ElementID ID              `json:"elementId"`
}

// AdderState is one adder of a State.
type AdderState struct {
	ElementID ID `json:"elementId"`
}

// BlockState is one nested block of a State. Value is set once the block
// is simplified.
type BlockState struct {
	ElementID  ID              `json:"elementId"`
	Simplified bool            `json:"simplified"`
	Value      json.RawMessage `json:"value,omitempty"`
	State      *State          `json:"state"`
}

// Snapshot exports block and everything nested in it. The result shares no
// memory with the circuit.
func (c *Circuit) Snapshot(block ID) (*State, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	b, err := c.getBlock(block)
	if err != nil {
		return nil, err
	}

	return c.snapshot(b)
}

func (c *Circuit) snapshot(b *element) (*State, error) {
	st := &State{
		Blocks:      []BlockState{},
		Tfs:         []TfState{},
		Adders:      []AdderState{},
		Connections: c.connections(b),
	}
	if st.Connections == nil {
		st.Connections = [][2]ID{}
	}
	for _, id := range b.blocks.Slice() {
		sub := c.elements[id]
		inner, err := c.snapshot(sub)
		if err != nil {
			return nil, err
		}
		bs := BlockState{ElementID: id, Simplified: sub.simplified, State: inner}
		if sub.simplified {
			if bs.Value, err = algebra.Marshal(sub.value); err != nil {
				return nil, fmt.Errorf("circuit: block %d: %w", id, err)
			}
		}
		st.Blocks = append(st.Blocks, bs)
	}
	for _, id := range b.tfs.Slice() {
		raw, err := algebra.Marshal(c.elements[id].value)
		if err != nil {
			return nil, fmt.Errorf("circuit: tf %d: %w", id, err)
		}
		st.Tfs = append(st.Tfs, TfState{Value: raw, ElementID: id})
	}
	for _, id := range b.adders.Slice() {
		st.Adders = append(st.Adders, AdderState{ElementID: id})
	}

	return st, nil
}
