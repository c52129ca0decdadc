// SPDX-License-Identifier: MIT

package reduce

import (
	"slices"

	"github.com/katalvlaran/blockreduce/algebra"
	"github.com/katalvlaran/blockreduce/circuit"
)

// feedback closes a loop A → T → A or A → T → H → A, where A is T's input
// adder and H a transfer element feeding only A. The loop gain is L = G or
// L = simplify(G·H).
//
// When A feeds only T, T becomes G/(1-L) and the loop (edge or H) is
// removed. Otherwise the loop is removed and a new Tf 1/(1-L) is placed
// right after A, taking over all of A's outputs; T is dropped if the loop
// was its only output. A must keep at least one input from outside the loop.
func (r *run) feedback() (bool, error) {
	changed := false
	w := newWorklist(r.transfers())
	for t, ok := w.pop(); ok; t, ok = w.pop() {
		if !r.live(t) || !r.c.IsTransfer(t) {
			continue
		}
		a := r.input(t)
		if a == circuit.NoID || !r.c.IsAdder(a) {
			continue
		}
		back, h := r.loopBack(t, a)
		if back == circuit.NoID || len(without(r.ins(a), back)) == 0 {
			continue
		}

		g, err := r.c.Value(t)
		if err != nil {
			return changed, err
		}
		l := g
		if h != circuit.NoID {
			hv, err := r.c.Value(h)
			if err != nil {
				return changed, err
			}
			if l, err = r.combine(algebra.OpMultiply, g, hv); err != nil {
				return changed, err
			}
		}

		var ev Event
		if outsA := r.outs(a); sameIDs(outsA, t) {
			ev, err = r.closeInPlace(t, a, h, g, l)
		} else {
			ev, err = r.interpose(t, a, h, l, outsA)
		}
		if err != nil {
			return changed, err
		}
		changed = true
		if r.live(ev.Survivor) {
			w.push(ev.Survivor)
		}
		if err := r.emit(ev); err != nil {
			return changed, err
		}
	}

	return changed, nil
}

// loopBack finds the element closing a loop from t into a: t itself for a
// direct edge, or a transfer element h fed by t that feeds only a.
func (r *run) loopBack(t, a circuit.ID) (back, h circuit.ID) {
	outs := r.outs(t)
	if slices.Contains(outs, a) {
		return t, circuit.NoID
	}
	for _, x := range outs {
		if x != t && r.c.IsTransfer(x) && sameIDs(r.outs(x), a) {
			return x, x
		}
	}

	return circuit.NoID, circuit.NoID
}

func (r *run) openLoop(t, a, h circuit.ID) error {
	if h != circuit.NoID {
		return r.c.Remove(h)
	}

	return r.c.Disconnect(t, a)
}

// closeInPlace sets T = Ng·Dl / ((Dl - Nl)·Dg), i.e. G/(1-L).
func (r *run) closeInPlace(t, a, h circuit.ID, g, l algebra.Ratio) (Event, error) {
	num, err := r.eng.Multiply(g.Num, l.Den)
	if err != nil {
		return Event{}, err
	}
	diff, err := r.eng.Subtract(l.Den, l.Num)
	if err != nil {
		return Event{}, err
	}
	den, err := r.eng.Multiply(diff, g.Den)
	if err != nil {
		return Event{}, err
	}
	closed, err := r.eng.SimplifyRatio(algebra.Ratio{Num: num, Den: den})
	if err != nil {
		return Event{}, err
	}

	if err := r.openLoop(t, a, h); err != nil {
		return Event{}, err
	}
	if err := r.c.SetValue(t, closed); err != nil {
		return Event{}, err
	}
	ev := Event{Rule: RuleFeedback, Survivor: t}
	if h != circuit.NoID {
		ev.Removed = []circuit.ID{h}
	}

	return ev, nil
}

// interpose inserts F = Dl/(Dl - Nl) between a and its outputs.
func (r *run) interpose(t, a, h circuit.ID, l algebra.Ratio, outsA []circuit.ID) (Event, error) {
	diff, err := r.eng.Subtract(l.Den, l.Num)
	if err != nil {
		return Event{}, err
	}
	f, err := r.eng.SimplifyRatio(algebra.Ratio{Num: l.Den, Den: diff})
	if err != nil {
		return Event{}, err
	}

	if err := r.openLoop(t, a, h); err != nil {
		return Event{}, err
	}
	ev := Event{Rule: RuleFeedback}
	if h != circuit.NoID {
		ev.Removed = append(ev.Removed, h)
	}
	fid, err := r.c.AddTf(r.block, f)
	if err != nil {
		return Event{}, err
	}
	ev.Survivor, ev.Added = fid, []circuit.ID{fid}
	for _, o := range outsA {
		if err := r.c.Disconnect(a, o); err != nil {
			return Event{}, err
		}
		if err := r.c.Connect(fid, o); err != nil {
			return Event{}, err
		}
	}
	if err := r.c.Connect(a, fid); err != nil {
		return Event{}, err
	}
	if !r.c.HasOutputs(t) {
		if err := r.c.Remove(t); err != nil {
			return Event{}, err
		}
		ev.Removed = append(ev.Removed, t)
	}

	return ev, nil
}
