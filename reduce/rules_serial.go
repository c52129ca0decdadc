// SPDX-License-Identifier: MIT

package reduce

import (
	"github.com/katalvlaran/blockreduce/algebra"
	"github.com/katalvlaran/blockreduce/circuit"
)

// serialTfs merges T1 → T2 when T1 feeds nothing but T2 and T2 is a
// transfer element. T2 keeps its identity, takes T1's input and the value
// simplify(v1 · v2); T1 is removed.
func (r *run) serialTfs() (bool, error) {
	changed := false
	w := newWorklist(r.transfers())
	for t1, ok := w.pop(); ok; t1, ok = w.pop() {
		if !r.live(t1) || !r.c.IsTransfer(t1) {
			continue
		}
		outs := r.outs(t1)
		if len(outs) != 1 {
			continue
		}
		t2, in := outs[0], r.input(t1)
		// t2 == in closes a two-element ring
		if !r.c.IsTransfer(t2) || t2 == in {
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
		v, err := r.combine(algebra.OpMultiply, v1, v2)
		if err != nil {
			return changed, err
		}

		if err := r.c.Remove(t1); err != nil {
			return changed, err
		}
		if err := r.c.SetValue(t2, v); err != nil {
			return changed, err
		}
		if in != circuit.NoID {
			if err := r.c.Connect(in, t2); err != nil {
				return changed, err
			}
		}
		changed = true
		w.push(t2)
		if err := r.emit(Event{Rule: RuleSerialTfs, Survivor: t2, Removed: []circuit.ID{t1}}); err != nil {
			return changed, err
		}
	}

	return changed, nil
}
