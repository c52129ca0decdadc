// SPDX-License-Identifier: MIT

package circuit_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/blockreduce/algebra"
	"github.com/katalvlaran/blockreduce/circuit"
)

func lag(a float64) algebra.Ratio {
	return algebra.MustTransferFunction(algebra.DomainS, []float64{1}, []float64{1, a})
}

func mustTf(t *testing.T, c *circuit.Circuit, block circuit.ID, v algebra.Ratio) circuit.ID {
	t.Helper()
	id, err := c.AddTf(block, v)
	require.NoError(t, err)

	return id
}

func mustAdder(t *testing.T, c *circuit.Circuit, block circuit.ID) circuit.ID {
	t.Helper()
	id, err := c.AddAdder(block)
	require.NoError(t, err)

	return id
}

func TestNew_RootBlock(t *testing.T) {
	c := circuit.New()
	assert.NotEqual(t, circuit.NoID, c.Root())
	assert.True(t, c.IsBlock(c.Root()))
	assert.Equal(t, 1, c.Len())

	owner, err := c.Owner(c.Root())
	require.NoError(t, err)
	assert.Equal(t, circuit.NoID, owner)

	assert.ErrorIs(t, c.Remove(c.Root()), circuit.ErrRootBlock)
}

func TestAdd_CollectionsOrdered(t *testing.T) {
	c := circuit.New()
	root := c.Root()
	t1 := mustTf(t, c, root, lag(1))
	a1 := mustAdder(t, c, root)
	t2 := mustTf(t, c, root, lag(2))
	b1, err := c.AddBlock(root)
	require.NoError(t, err)

	tfs, err := c.Tfs(root)
	require.NoError(t, err)
	assert.Equal(t, []circuit.ID{t1, t2}, tfs)

	adders, err := c.Adders(root)
	require.NoError(t, err)
	assert.Equal(t, []circuit.ID{a1}, adders)

	blocks, err := c.Blocks(root)
	require.NoError(t, err)
	assert.Equal(t, []circuit.ID{b1}, blocks)

	all, err := c.Elements(root)
	require.NoError(t, err)
	assert.Equal(t, []circuit.ID{t1, a1, t2, b1}, all)

	k, err := c.Kind(a1)
	require.NoError(t, err)
	assert.Equal(t, circuit.KindAdder, k)
	assert.Equal(t, "adder", k.String())
}

func TestAdd_Errors(t *testing.T) {
	c := circuit.New()
	tf := mustTf(t, c, c.Root(), lag(1))

	_, err := c.AddTf(tf, lag(1))
	assert.ErrorIs(t, err, circuit.ErrBlockNotFound)

	_, err = c.AddAdder(999)
	assert.ErrorIs(t, err, circuit.ErrBlockNotFound)

	_, err = c.AddTf(c.Root(), algebra.Ratio{})
	assert.ErrorIs(t, err, algebra.ErrShapeMismatch)
}

func TestConnect_Rules(t *testing.T) {
	c := circuit.New()
	root := c.Root()
	a := mustAdder(t, c, root)
	t1 := mustTf(t, c, root, lag(1))
	t2 := mustTf(t, c, root, lag(2))
	inner, err := c.AddBlock(root)
	require.NoError(t, err)
	deep := mustTf(t, c, inner, lag(3))

	require.NoError(t, c.Connect(a, t1))
	assert.ErrorIs(t, c.Connect(a, t1), circuit.ErrEdgeExists)
	assert.ErrorIs(t, c.Connect(t2, t1), circuit.ErrInputOccupied)
	assert.ErrorIs(t, c.Connect(t1, t1), circuit.ErrSelfLoop)
	assert.ErrorIs(t, c.Connect(t1, deep), circuit.ErrWrongOwner)
	assert.ErrorIs(t, c.Connect(t1, 999), circuit.ErrElementNotFound)

	// adders take any number of inputs, in connection order
	require.NoError(t, c.Connect(t2, a))
	require.NoError(t, c.Connect(t1, a))
	ins, err := c.Inputs(a)
	require.NoError(t, err)
	assert.Equal(t, []circuit.ID{t2, t1}, ins)

	// a block is wired like a tf
	require.NoError(t, c.Connect(t2, inner))
	in, err := c.Input(inner)
	require.NoError(t, err)
	assert.Equal(t, t2, in)

	outs, err := c.Outputs(t2)
	require.NoError(t, err)
	assert.Equal(t, []circuit.ID{a, inner}, outs)
}

func TestDisconnect(t *testing.T) {
	c := circuit.New()
	a := mustAdder(t, c, c.Root())
	tf := mustTf(t, c, c.Root(), lag(1))
	require.NoError(t, c.Connect(a, tf))

	require.NoError(t, c.Disconnect(a, tf))
	assert.False(t, c.HasInput(tf))
	assert.False(t, c.HasOutputs(a))
	assert.ErrorIs(t, c.Disconnect(a, tf), circuit.ErrEdgeNotFound)
}

func TestAccessors_InputOutput(t *testing.T) {
	c := circuit.New()
	root := c.Root()
	a1 := mustAdder(t, c, root)
	a2 := mustAdder(t, c, root)
	tf := mustTf(t, c, root, lag(1))

	in, err := c.Input(tf)
	require.NoError(t, err)
	assert.Equal(t, circuit.NoID, in)

	require.NoError(t, c.SetInput(tf, a1))
	require.NoError(t, c.SetInput(tf, a2), "a tf input is replaced")
	in, err = c.Input(tf)
	require.NoError(t, err)
	assert.Equal(t, a2, in)
	assert.False(t, c.HasOutputs(a1))

	require.NoError(t, c.SetInput(tf, a2), "same input is a no-op")

	// a failed replacement keeps the old input
	assert.ErrorIs(t, c.SetInput(tf, tf), circuit.ErrSelfLoop)
	in, err = c.Input(tf)
	require.NoError(t, err)
	assert.Equal(t, a2, in)

	_, err = c.Input(a1)
	assert.ErrorIs(t, err, circuit.ErrKind)

	require.NoError(t, c.AddOutput(tf, a1))
	assert.True(t, c.HasOutputs(tf))
	require.NoError(t, c.RemoveOutput(tf, a1))
	assert.False(t, c.HasInput(a1))

	require.NoError(t, c.RemoveInput(tf, a2))
	assert.False(t, c.HasInput(tf))
}

func TestRemove_CleansEdges(t *testing.T) {
	c := circuit.New()
	root := c.Root()
	a := mustAdder(t, c, root)
	tf := mustTf(t, c, root, lag(1))
	out := mustAdder(t, c, root)
	require.NoError(t, c.Connect(a, tf))
	require.NoError(t, c.Connect(tf, out))

	require.NoError(t, c.Remove(tf))
	assert.False(t, c.Has(tf))
	assert.False(t, c.HasOutputs(a))
	assert.False(t, c.HasInput(out))

	tfs, err := c.Tfs(root)
	require.NoError(t, err)
	assert.Empty(t, tfs)
	assert.ErrorIs(t, c.Remove(tf), circuit.ErrElementNotFound)
}

func TestRemove_BlockSubtree(t *testing.T) {
	c := circuit.New()
	b, err := c.AddBlock(c.Root())
	require.NoError(t, err)
	inner, err := c.AddBlock(b)
	require.NoError(t, err)
	tf := mustTf(t, c, inner, lag(1))

	require.NoError(t, c.Remove(b))
	assert.False(t, c.Has(inner))
	assert.False(t, c.Has(tf))
	assert.Equal(t, 1, c.Len())
}

func TestValue_Kinds(t *testing.T) {
	c := circuit.New()
	root := c.Root()
	a := mustAdder(t, c, root)
	tf := mustTf(t, c, root, lag(1))
	b, err := c.AddBlock(root)
	require.NoError(t, err)

	v, err := c.Value(tf)
	require.NoError(t, err)
	assert.Equal(t, lag(1), v)

	_, err = c.Value(a)
	assert.ErrorIs(t, err, circuit.ErrNotTransfer)
	_, err = c.Value(b)
	assert.ErrorIs(t, err, circuit.ErrNotSimplified)

	require.NoError(t, c.SetValue(tf, lag(5)))
	v, err = c.Value(tf)
	require.NoError(t, err)
	assert.Equal(t, lag(5), v)
	assert.ErrorIs(t, c.SetValue(a, lag(5)), circuit.ErrNotTransfer)

	assert.True(t, c.IsTransfer(tf))
	assert.False(t, c.IsTransfer(a))
	assert.False(t, c.IsTransfer(b))
}

func TestMarkSimplified(t *testing.T) {
	c := circuit.New()
	b, err := c.AddBlock(c.Root())
	require.NoError(t, err)

	assert.ErrorIs(t, c.MarkSimplified(b), circuit.ErrNotTransfer, "empty block")

	a := mustAdder(t, c, b)
	assert.ErrorIs(t, c.MarkSimplified(b), circuit.ErrNotTransfer, "adder only")
	require.NoError(t, c.Remove(a))

	tf := mustTf(t, c, b, lag(2))
	require.NoError(t, c.MarkSimplified(b))
	ok, err := c.Simplified(b)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, c.IsTransfer(b))

	v, err := c.Value(b)
	require.NoError(t, err)
	assert.Equal(t, lag(2), v)

	// the block value and its inner tf stay in sync
	require.NoError(t, c.SetValue(b, lag(7)))
	v, err = c.Value(tf)
	require.NoError(t, err)
	assert.Equal(t, lag(7), v)
}

func TestConnections_Stats(t *testing.T) {
	c := circuit.New()
	root := c.Root()
	a := mustAdder(t, c, root)
	g := mustTf(t, c, root, lag(1))
	h := mustTf(t, c, root, lag(2))
	require.NoError(t, c.Connect(a, g))
	require.NoError(t, c.Connect(g, h))
	require.NoError(t, c.Connect(h, a))

	conns, err := c.Connections(root)
	require.NoError(t, err)
	assert.Equal(t, [][2]circuit.ID{{a, g}, {g, h}, {h, a}}, conns)

	st, err := c.Stats(root)
	require.NoError(t, err)
	assert.Equal(t, circuit.Stats{Tfs: 2, Adders: 1, Connections: 3}, st)
	assert.Equal(t, 3, st.Elements())
}

func TestAcquire_Conflicts(t *testing.T) {
	c := circuit.New()
	root := c.Root()
	left, err := c.AddBlock(root)
	require.NoError(t, err)
	right, err := c.AddBlock(root)
	require.NoError(t, err)
	leaf, err := c.AddBlock(left)
	require.NoError(t, err)

	release, err := c.Acquire(left)
	require.NoError(t, err)

	_, err = c.Acquire(left)
	assert.ErrorIs(t, err, circuit.ErrBusy)
	_, err = c.Acquire(leaf)
	assert.ErrorIs(t, err, circuit.ErrBusy, "descendant of a held block")
	_, err = c.Acquire(root)
	assert.ErrorIs(t, err, circuit.ErrBusy, "ancestor of a held block")

	releaseRight, err := c.Acquire(right)
	require.NoError(t, err, "siblings do not conflict")
	releaseRight()

	release()
	release2, err := c.Acquire(root)
	require.NoError(t, err)
	release2()

	_, err = c.Acquire(999)
	assert.ErrorIs(t, err, circuit.ErrBlockNotFound)
}

func TestClone_Independent(t *testing.T) {
	c := circuit.New()
	a := mustAdder(t, c, c.Root())
	tf := mustTf(t, c, c.Root(), lag(1))
	require.NoError(t, c.Connect(a, tf))

	cp := c.Clone()
	require.NoError(t, cp.Remove(tf))

	assert.True(t, c.Has(tf))
	assert.True(t, c.HasOutputs(a))
	assert.False(t, cp.HasOutputs(a))

	next, err := cp.AddAdder(cp.Root())
	require.NoError(t, err)
	assert.Greater(t, next, tf, "the copy keeps numbering after the source")
}

func TestCircuit_ConcurrentReads(t *testing.T) {
	c := circuit.New()
	root := c.Root()
	a := mustAdder(t, c, root)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := c.AddTf(root, lag(float64(i)))
			if err != nil {
				return
			}
			_ = c.Connect(a, id)
			_, _ = c.Connections(root)
		}(i)
	}
	wg.Wait()

	outs, err := c.Outputs(a)
	require.NoError(t, err)
	assert.Len(t, outs, 8)
}
