// SPDX-License-Identifier: MIT

package reduce_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/blockreduce/algebra"
	"github.com/katalvlaran/blockreduce/circuit"
	"github.com/katalvlaran/blockreduce/reduce"
)

const tol = 1e-9

// lag is 1/(s+a).
func lag(a float64) algebra.Ratio {
	return algebra.MustTransferFunction(algebra.DomainS, []float64{1}, []float64{1, a})
}

// gain is k/1.
func gain(k float64) algebra.Ratio {
	return algebra.MustTransferFunction(algebra.DomainS, []float64{k}, []float64{1})
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

func mustBlock(t *testing.T, c *circuit.Circuit, parent circuit.ID) circuit.ID {
	t.Helper()
	id, err := c.AddBlock(parent)
	require.NoError(t, err)

	return id
}

func wire(t *testing.T, c *circuit.Circuit, edges ...[2]circuit.ID) {
	t.Helper()
	for _, e := range edges {
		require.NoError(t, c.Connect(e[0], e[1]), "connect %d -> %d", e[0], e[1])
	}
}

// loop holds the IDs of feedbackLoop.
type loop struct {
	in, sum, g, out, h circuit.ID
}

// feedbackLoop builds In → Sum → G → Out with G → H → Sum, where
// G = 1/(s+1) and H = -1. The closed loop is 1/(s+2).
func feedbackLoop(t *testing.T) (*circuit.Circuit, loop) {
	t.Helper()
	c := circuit.New()
	root := c.Root()
	l := loop{
		in:  mustAdder(t, c, root),
		sum: mustAdder(t, c, root),
		g:   mustTf(t, c, root, lag(1)),
		out: mustAdder(t, c, root),
		h:   mustTf(t, c, root, gain(-1)),
	}
	wire(t, c,
		[2]circuit.ID{l.in, l.sum},
		[2]circuit.ID{l.sum, l.g},
		[2]circuit.ID{l.g, l.out},
		[2]circuit.ID{l.g, l.h},
		[2]circuit.ID{l.h, l.sum},
	)

	return c, l
}

// at evaluates r at a real point.
func at(t *testing.T, r algebra.Ratio, s float64) float64 {
	t.Helper()
	v, err := r.Evaluate(complex(s, 0))
	require.NoError(t, err)
	require.InDelta(t, 0, imag(v), tol)

	return real(v)
}

// recorder collects rewrite events.
type recorder struct {
	events []reduce.Event
}

func (r *recorder) hook(ev reduce.Event) error {
	r.events = append(r.events, ev)

	return nil
}

func (r *recorder) rules() []reduce.Rule {
	out := make([]reduce.Rule, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Rule
	}

	return out
}
