// SPDX-License-Identifier: MIT

package reduce

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/hashicorp/go-set/v3"

	"github.com/katalvlaran/blockreduce/algebra"
	"github.com/katalvlaran/blockreduce/circuit"
)

// errRewriteLimit stops a block once MaxRewrites is reached; the driver
// turns it into PartiallyDone.
var errRewriteLimit = errors.New("reduce: rewrite limit reached")

// run carries the state of one Simplify call. block and stall describe the
// block currently being reduced.
type run struct {
	c    *circuit.Circuit
	opts Options
	eng  *algebra.Engine
	id   uuid.UUID
	log  *slog.Logger
	res  *Result

	block circuit.ID
	stall int
}

// worklist is a FIFO of element IDs without duplicates.
type worklist struct {
	q      []circuit.ID
	queued *set.Set[circuit.ID]
}

func newWorklist(ids []circuit.ID) *worklist {
	w := &worklist{queued: set.New[circuit.ID](len(ids))}
	for _, id := range ids {
		w.push(id)
	}

	return w
}

func (w *worklist) push(id circuit.ID) {
	if w.queued.Insert(id) {
		w.q = append(w.q, id)
	}
}

func (w *worklist) pop() (circuit.ID, bool) {
	if len(w.q) == 0 {
		return circuit.NoID, false
	}
	id := w.q[0]
	w.q = w.q[1:]
	w.queued.Remove(id)

	return id, true
}

// live reports whether id still exists inside the current block.
func (r *run) live(id circuit.ID) bool {
	owner, err := r.c.Owner(id)

	return err == nil && owner == r.block
}

// transfers lists the tfs and simplified blocks of the current block.
func (r *run) transfers() []circuit.ID {
	ids, _ := r.c.Elements(r.block)

	return slices.DeleteFunc(ids, func(id circuit.ID) bool { return !r.c.IsTransfer(id) })
}

func (r *run) adders() []circuit.ID {
	ids, _ := r.c.Adders(r.block)

	return ids
}

func (r *run) ins(id circuit.ID) []circuit.ID {
	ids, _ := r.c.Inputs(id)

	return ids
}

func (r *run) outs(id circuit.ID) []circuit.ID {
	ids, _ := r.c.Outputs(id)

	return ids
}

// input returns the single input of a transfer element, or NoID.
func (r *run) input(id circuit.ID) circuit.ID {
	if ins := r.ins(id); len(ins) > 0 {
		return ins[0]
	}

	return circuit.NoID
}

// combine returns simplify(op(a, b)).
func (r *run) combine(op algebra.Operation, a, b algebra.Ratio) (algebra.Ratio, error) {
	v, err := r.eng.Invoke(op, a, b)
	if err != nil {
		return algebra.Ratio{}, err
	}
	ratio, ok := v.(algebra.Ratio)
	if !ok {
		return algebra.Ratio{}, fmt.Errorf("reduce: %s of ratios returned %s", op, v.Kind())
	}

	return r.eng.SimplifyRatio(ratio)
}

// emit records a finished rewrite: counters, log, hook, cancellation and
// the rewrite limit, in that order.
func (r *run) emit(ev Event) error {
	r.res.Rewrites++
	r.stall = 0
	ev.RunID, ev.Block, ev.Rewrites = r.id, r.block, r.res.Rewrites

	r.log.Debug("rewrite applied",
		slog.String("rule", ev.Rule.String()),
		slog.Int("block", int(ev.Block)),
		slog.Int("survivor", int(ev.Survivor)),
		slog.Int("removed", len(ev.Removed)),
		slog.Int("added", len(ev.Added)),
	)

	if err := r.opts.OnRewrite(ev); err != nil {
		return fmt.Errorf("reduce: OnRewrite hook after %s: %w", ev.Rule, err)
	}
	if err := r.opts.Ctx.Err(); err != nil {
		return fmt.Errorf("reduce: %w", err)
	}
	if r.res.Rewrites >= r.opts.MaxRewrites {
		return errRewriteLimit
	}

	return nil
}

// apply runs one rule invocation over the current block.
func (r *run) apply(rule Rule) (bool, error) {
	r.res.Invocations++
	var fn func() (bool, error)
	switch rule {
	case RuleUnusedAdders:
		fn = r.unusedAdders
	case RuleSplit:
		fn = r.split
	case RuleParallel:
		fn = r.parallel
	case RuleFeedback:
		fn = r.feedback
	case RuleSerialTfs:
		fn = r.serialTfs
	case RuleSerialAdders:
		fn = r.serialAdders
	default:
		return false, fmt.Errorf("reduce: unknown %s", rule)
	}
	changed, err := fn()
	if !changed {
		r.stall++
	}

	return changed, err
}

func sameIDs(a []circuit.ID, b ...circuit.ID) bool { return slices.Equal(a, b) }

func overlaps(a, b []circuit.ID) bool {
	for _, x := range a {
		if slices.Contains(b, x) {
			return true
		}
	}

	return false
}

func without(ids []circuit.ID, drop circuit.ID) []circuit.ID {
	return slices.DeleteFunc(slices.Clone(ids), func(id circuit.ID) bool { return id == drop })
}
