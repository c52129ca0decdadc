// SPDX-License-Identifier: MIT

package reduce

import (
	"slices"

	"github.com/katalvlaran/blockreduce/circuit"
)

// unusedAdders removes adders that sum nothing:
//   - no inputs and no outputs: deleted;
//   - no inputs, one output O whose only input it is: deleted (O becomes
//     driven by the external input);
//   - no outputs, one input I whose only output it is: deleted (I becomes
//     the sink);
//   - exactly one input I: bypassed, I feeds every output directly. Skipped
//     when I is among the outputs or already feeds one of them.
func (r *run) unusedAdders() (bool, error) {
	changed := false
	w := newWorklist(r.adders())
	for a, ok := w.pop(); ok; a, ok = w.pop() {
		if !r.live(a) || !r.c.IsAdder(a) {
			continue
		}
		ins, outs := r.ins(a), r.outs(a)

		var survivor circuit.ID
		switch {
		case len(ins) == 0 && len(outs) == 0:
		case len(ins) == 0 && len(outs) == 1 && sameIDs(r.ins(outs[0]), a):
			survivor = outs[0]
		case len(outs) == 0 && len(ins) == 1 && sameIDs(r.outs(ins[0]), a):
			survivor = ins[0]
		case len(ins) == 1 && len(outs) > 0:
			survivor = ins[0]
			if slices.Contains(outs, survivor) || overlaps(outs, r.outs(survivor)) {
				continue
			}
		default:
			continue
		}

		if err := r.c.Remove(a); err != nil {
			return changed, err
		}
		if len(ins) == 1 {
			for _, o := range outs {
				if err := r.c.Connect(survivor, o); err != nil {
					return changed, err
				}
			}
		}
		changed = true
		if r.c.IsAdder(survivor) {
			w.push(survivor)
		}
		if err := r.emit(Event{Rule: RuleUnusedAdders, Survivor: survivor, Removed: []circuit.ID{a}}); err != nil {
			return changed, err
		}
	}

	return changed, nil
}

// serialAdders fuses A1 → A2 into A2 when either
//   - A1 is A2's only input: A1's inputs and its other outputs move to A2, or
//   - A2 is A1's only output and A1 has inputs: A1's inputs move to A2.
//
// Rewrites that would merge two parallel edges into one (shared inputs or
// outputs) or that involve a two-adder ring are skipped.
func (r *run) serialAdders() (bool, error) {
	changed := false
	w := newWorklist(r.adders())
	for a1, ok := w.pop(); ok; a1, ok = w.pop() {
		if !r.live(a1) || !r.c.IsAdder(a1) {
			continue
		}
		ins1, outs1 := r.ins(a1), r.outs(a1)
		for _, a2 := range outs1 {
			if !r.c.IsAdder(a2) || slices.Contains(ins1, a2) {
				continue
			}
			ins2, outs2 := r.ins(a2), r.outs(a2)

			var moved []circuit.ID
			switch {
			case len(ins2) == 1:
				moved = without(outs1, a2)
				if overlaps(moved, outs2) {
					continue
				}
			case len(outs1) == 1 && len(ins1) > 0:
				if overlaps(ins1, ins2) {
					continue
				}
			default:
				continue
			}

			if err := r.c.Remove(a1); err != nil {
				return changed, err
			}
			for _, in := range ins1 {
				if err := r.c.Connect(in, a2); err != nil {
					return changed, err
				}
			}
			for _, o := range moved {
				if err := r.c.Connect(a2, o); err != nil {
					return changed, err
				}
			}
			changed = true
			w.push(a2)
			if err := r.emit(Event{Rule: RuleSerialAdders, Survivor: a2, Removed: []circuit.ID{a1}}); err != nil {
				return changed, err
			}

			break
		}
	}

	return changed, nil
}
