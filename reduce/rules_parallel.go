// SPDX-License-Identifier: MIT

package reduce

import (
	"slices"

	"github.com/katalvlaran/blockreduce/algebra"
	"github.com/katalvlaran/blockreduce/circuit"
)

// parallel merges two single-output transfer elements that share their
// input adder (or are both driven by the external input) and feed the same
// output adder. The first keeps simplify(v1 + v2), the second is removed.
// If the output adder is then fed by the survivor alone it is folded away:
// the survivor takes over its outputs.
func (r *run) parallel() (bool, error) {
	changed := false
	w := newWorklist(r.transfers())
	for t1, ok := w.pop(); ok; t1, ok = w.pop() {
		if !r.live(t1) || !r.c.IsTransfer(t1) {
			continue
		}
		outs1 := r.outs(t1)
		if len(outs1) != 1 || !r.c.IsAdder(outs1[0]) {
			continue
		}
		out, in := outs1[0], r.input(t1)

		var siblings []circuit.ID
		switch {
		case in == circuit.NoID:
			siblings = r.transfers()
		case r.c.IsAdder(in):
			siblings = r.outs(in)
		default:
			continue
		}

		for _, t2 := range siblings {
			if t2 == t1 || !r.c.IsTransfer(t2) || r.input(t2) != in || !sameIDs(r.outs(t2), out) {
				continue
			}

			v1, err := r.c.Value(t1)
			if err != nil {
				return changed, err
			}
			v2, err := r.c.Value(t2)
			if err != nil {
				return changed, err
			}
			v, err := r.combine(algebra.OpAdd, v1, v2)
			if err != nil {
				return changed, err
			}
			next := r.outs(out)
			fold := len(r.ins(out)) == 2 && !slices.Contains(next, t1)

			removed := []circuit.ID{t2}
			if err := r.c.Remove(t2); err != nil {
				return changed, err
			}
			if err := r.c.SetValue(t1, v); err != nil {
				return changed, err
			}
			if fold {
				if err := r.c.Remove(out); err != nil {
					return changed, err
				}
				for _, o := range next {
					if err := r.c.Connect(t1, o); err != nil {
						return changed, err
					}
				}
				removed = append(removed, out)
			}
			changed = true
			w.push(t1)
			if err := r.emit(Event{Rule: RuleParallel, Survivor: t1, Removed: removed}); err != nil {
				return changed, err
			}

			break
		}
	}

	return changed, nil
}
