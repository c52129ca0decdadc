// SPDX-License-Identifier: MIT

package circuit_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/blockreduce/algebra"
	"github.com/katalvlaran/blockreduce/circuit"
)

func TestSnapshot_Shape(t *testing.T) {
	c := circuit.New()
	root := c.Root()
	a := mustAdder(t, c, root)
	tf := mustTf(t, c, root, algebra.MustTransferFunction("s", []float64{1, -1}, []float64{1, -2, 1}))
	require.NoError(t, c.Connect(a, tf))

	st, err := c.Snapshot(root)
	require.NoError(t, err)

	data, err := json.Marshal(st)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"blocks": [],
		"tfs": [{"value": ["ratio", [["polynomial", ["s", [1, -1]]], ["polynomial", ["s", [1, -2, 1]]]]], "elementId": 3}],
		"adders": [{"elementId": 2}],
		"connections": [[2, 3]]
	}`, string(data))
	assert.Equal(t, a, st.Adders[0].ElementID)

	v, err := algebra.Unmarshal(st.Tfs[0].Value)
	require.NoError(t, err)
	orig, err := c.Value(tf)
	require.NoError(t, err)
	assert.Equal(t, orig, v)
}

func TestSnapshot_NestedBlock(t *testing.T) {
	c := circuit.New()
	b, err := c.AddBlock(c.Root())
	require.NoError(t, err)
	mustTf(t, c, b, lag(1))
	require.NoError(t, c.MarkSimplified(b))

	st, err := c.Snapshot(c.Root())
	require.NoError(t, err)
	require.Len(t, st.Blocks, 1)

	bs := st.Blocks[0]
	assert.Equal(t, b, bs.ElementID)
	assert.True(t, bs.Simplified)
	assert.JSONEq(t, `["ratio",[["polynomial",["s",[1]]],["polynomial",["s",[1,1]]]]]`, string(bs.Value))
	require.NotNil(t, bs.State)
	assert.Len(t, bs.State.Tfs, 1)
	assert.Empty(t, bs.State.Connections)

	_, err = c.Snapshot(999)
	assert.ErrorIs(t, err, circuit.ErrBlockNotFound)
}
