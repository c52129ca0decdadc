// SPDX-License-Identifier: MIT

package reduce

import "github.com/katalvlaran/blockreduce/circuit"

// split gives each extra output of a multi-output transfer element its own
// copy: the element keeps its first output, and for every other output a
// new Tf with the same value is fed from the same input. An element driven
// by the external input first gets a source adder so the copies share it.
func (r *run) split() (bool, error) {
	changed := false
	w := newWorklist(r.transfers())
	for t, ok := w.pop(); ok; t, ok = w.pop() {
		if !r.live(t) || !r.c.IsTransfer(t) {
			continue
		}
		outs := r.outs(t)
		if len(outs) < 2 {
			continue
		}
		v, err := r.c.Value(t)
		if err != nil {
			return changed, err
		}

		var added []circuit.ID
		in := r.input(t)
		if in == circuit.NoID {
			if in, err = r.c.AddAdder(r.block); err != nil {
				return changed, err
			}
			if err := r.c.Connect(in, t); err != nil {
				return changed, err
			}
			added = append(added, in)
		}
		for _, o := range outs[1:] {
			cp, err := r.c.AddTf(r.block, v)
			if err != nil {
				return changed, err
			}
			if err := r.c.Disconnect(t, o); err != nil {
				return changed, err
			}
			if err := r.c.Connect(in, cp); err != nil {
				return changed, err
			}
			if err := r.c.Connect(cp, o); err != nil {
				return changed, err
			}
			added = append(added, cp)
		}
		changed = true
		if err := r.emit(Event{Rule: RuleSplit, Survivor: t, Added: added}); err != nil {
			return changed, err
		}
	}

	return changed, nil
}
