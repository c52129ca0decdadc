// SPDX-License-Identifier: MIT

package reduce

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-set/v3"

	"github.com/katalvlaran/blockreduce/circuit"
)

// blockWalker visits a block tree depth-first and calls onExit in
// post-order, so every nested block is handled before the block that
// contains it.
type blockWalker struct {
	c       *circuit.Circuit
	ctx     context.Context
	onExit  func(id circuit.ID, depth int) error
	visited *set.Set[circuit.ID]
}

func walkBlocks(ctx context.Context, c *circuit.Circuit, root circuit.ID, onExit func(circuit.ID, int) error) error {
	w := &blockWalker{c: c, ctx: ctx, onExit: onExit, visited: set.New[circuit.ID](0)}

	return w.traverse(root, 0)
}

func (w *blockWalker) traverse(id circuit.ID, depth int) error {
	select {
	case <-w.ctx.Done():
		return fmt.Errorf("reduce: %w", w.ctx.Err())
	default:
	}

	w.visited.Insert(id)
	children, err := w.c.Blocks(id)
	if err != nil {
		return fmt.Errorf("reduce: Blocks(%d): %w", id, err)
	}
	for _, child := range children {
		if w.visited.Contains(child) {
			continue
		}
		if err := w.traverse(child, depth+1); err != nil {
			return err
		}
	}

	return w.onExit(id, depth)
}
