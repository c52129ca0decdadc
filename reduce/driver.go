// SPDX-License-Identifier: MIT

package reduce

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/blockreduce/algebra"
	"github.com/katalvlaran/blockreduce/circuit"
)

// phases are tried in order; the second only runs when the first changed
// nothing.
var phases = [...][4]Rule{
	{RuleSerialTfs, RuleSerialAdders, RuleFeedback, RuleUnusedAdders},
	{RuleSplit, RuleParallel, RuleFeedback, RuleUnusedAdders},
}

// Simplify reduces block, and every block nested in it, towards a single
// transfer element.
//
// Implementation:
//   - Stage 1: Validate the circuit, options and block; hold the block with
//     circuit.Acquire for the whole run.
//   - Stage 2: Walk the block tree in post-order; each block runs the
//     two-phase rule loop until it holds one transfer element (FullyDone)
//     or stalls (PartiallyDone).
//   - Stage 3: Report the requested block's state and, when done, its value.
//
// A PartiallyDone child stays an opaque element of its parent. A block that
// is already simplified is reported FullyDone without rewriting.
//
// Errors:
//   - ErrCircuitNil, ErrOptionViolation, ErrEmptyBlock.
//   - circuit.ErrBlockNotFound, circuit.ErrBusy.
//   - context cancellation and OnRewrite errors, wrapped; the Result built
//     so far is returned with them.
//   - algebra errors (*algebra.DispatchError, *algebra.ParameterMismatchError).
func Simplify(c *circuit.Circuit, block circuit.ID, opts ...Option) (*Result, error) {
	if c == nil {
		return nil, ErrCircuitNil
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	st, err := c.Stats(block)
	if err != nil {
		return nil, err
	}
	if st.Elements() == 0 {
		return nil, ErrEmptyBlock
	}
	release, err := c.Acquire(block)
	if err != nil {
		return nil, err
	}
	defer release()

	id := uuid.New()
	r := &run{
		c:    c,
		opts: o,
		eng:  o.Engine,
		id:   id,
		log:  o.Logger.With(slog.String("component", "reduce"), slog.String("run_id", id.String())),
		res:  &Result{RunID: id, Blocks: make(map[circuit.ID]State)},
	}

	err = walkBlocks(o.Ctx, c, block, r.simplifyBlock)
	r.res.State = r.res.Blocks[block]
	if r.res.State == FullyDone {
		if v, verr := c.Value(block); verr == nil {
			r.res.Value = v
		}
	}

	return r.res, err
}

// simplifyBlock is the post-order visit of one block.
func (r *run) simplifyBlock(block circuit.ID, depth int) error {
	_, span := r.opts.Tracer.Start(r.opts.Ctx, "reduce.Block",
		trace.WithAttributes(
			attribute.String("run_id", r.id.String()),
			attribute.Int("block", int(block)),
			attribute.Int("depth", depth),
		),
	)
	defer span.End()

	r.block, r.stall = block, 0
	before, calls := r.res.Rewrites, r.res.Invocations
	state, err := r.iterate()
	r.res.Blocks[block] = state
	r.res.Order = append(r.res.Order, block)

	span.SetAttributes(
		attribute.String("state", state.String()),
		attribute.Int("rewrites", r.res.Rewrites-before),
		attribute.Int("invocations", r.res.Invocations-calls),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "block run failed")

		return err
	}

	r.log.Info("block finished",
		slog.Int("block", int(block)),
		slog.Int("depth", depth),
		slog.String("state", state.String()),
		slog.Int("rewrites", r.res.Rewrites-before),
		slog.Int("invocations", r.res.Invocations-calls),
	)

	return nil
}

// iterate is the fixed-point loop of one block.
func (r *run) iterate() (State, error) {
	if ok, err := r.c.Simplified(r.block); err != nil || ok {
		return FullyDone, err
	}
	if st, err := r.c.Stats(r.block); err != nil {
		return Iterating, err
	} else if st.Elements() == 0 {
		return PartiallyDone, nil
	}

	for {
		done, err := r.finish()
		if err != nil {
			return Iterating, err
		}
		if done {
			return FullyDone, nil
		}
		if r.res.Rewrites >= r.opts.MaxRewrites {
			return PartiallyDone, nil
		}

		progressed := false
		for _, phase := range phases {
			for _, rule := range phase {
				changed, err := r.apply(rule)
				if errors.Is(err, errRewriteLimit) {
					done, ferr := r.finish()
					switch {
					case ferr != nil:
						return Iterating, ferr
					case done:
						return FullyDone, nil
					default:
						return PartiallyDone, nil
					}
				}
				if err != nil {
					return Iterating, err
				}
				if changed {
					progressed = true
				} else if r.stall >= r.opts.MaxStall {
					return PartiallyDone, nil
				}
			}
			if progressed {
				break
			}
		}
	}
}

// finish marks the block simplified once it holds one transfer element.
func (r *run) finish() (bool, error) {
	ids, err := r.c.Elements(r.block)
	if err != nil {
		return false, err
	}
	if len(ids) != 1 || !r.c.IsTransfer(ids[0]) {
		return false, nil
	}
	if err := r.c.MarkSimplified(r.block); err != nil {
		return false, fmt.Errorf("reduce: %w", err)
	}

	return true, nil
}

// IsSimplified reports whether block has been reduced to one element.
func IsSimplified(c *circuit.Circuit, block circuit.ID) bool {
	if c == nil {
		return false
	}
	ok, err := c.Simplified(block)

	return err == nil && ok
}

// Value returns the transfer function of a simplified block.
func Value(c *circuit.Circuit, block circuit.ID) (algebra.Ratio, error) {
	if c == nil {
		return algebra.Ratio{}, ErrCircuitNil
	}
	if !c.IsBlock(block) {
		return algebra.Ratio{}, circuit.ErrBlockNotFound
	}

	return c.Value(block)
}
