// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fsm

// pair is a (p, q) state pair used by the simulation worklist.
type pair struct {
	p, q StateID
}

// Simulate computes the maximal simulation preorder ⊑ over n's states
// using the Henzinger-Henzinger-Kopke counter algorithm: (p,q) ∈ ⊑ iff
// p final implies q final, and every a-successor of p is matched by some
// a-successor of q that itself simulates it.
//
// The algorithm tracks the complement of ⊑ (pairs known not to simulate)
// plus, per symbol, a counter cnt[a][p][q] = |delta(q,a)|, decremented as
// q's a-successors are ruled out; when it hits zero, q has no remaining
// a-successor able to simulate p, so no a-predecessor of p is simulated
// by q.
func Simulate(n *NFA) *Relation {
	size := n.Size()
	sim := NewRelation(size, false) // accumulates the complement, inverted at the end
	if size == 0 {
		return sim
	}

	states := n.States()
	symbols := n.Symbols()
	rev := n.Reverse()

	// cnt[a][p][q] flattened as (a*size+p)*size+q, per the design note on
	// counter-array dimensionality.
	cnt := make([]int, len(symbols)*size*size)
	idx := func(a, p, q int) int { return (a*size+p)*size + q }

	var worklist []pair
	inComplement := func(p, q StateID) bool { return sim.Get(p, q) }
	addToComplement := func(p, q StateID) {
		if !inComplement(p, q) {
			sim.Set(p, q, true)
			worklist = append(worklist, pair{p, q})
		}
	}

	// Final-state compatibility is independent of the alphabet, so it is
	// seeded in its own pass: an empty alphabet must not skip it (property
	// 2, §8 -- p final ⇒ q final for every (p,q) ∈ ⊑).
	for _, p := range states {
		for _, q := range states {
			if n.IsFinal(p) && !n.IsFinal(q) {
				addToComplement(p, q)
			}
		}
	}

	for ai, a := range symbols {
		for _, p := range states {
			for _, q := range states {
				cnt[idx(ai, int(p), int(q))] = len(n.Post(q, a))

				succMismatch := len(n.Post(p, a)) > 0 && len(n.Post(q, a)) == 0
				if succMismatch {
					addToComplement(p, q)
				}
			}
		}
	}

	for len(worklist) > 0 {
		cur := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		for ai, a := range symbols {
			for _, q := range rev.Post(cur.q, a) {
				i := idx(ai, int(cur.p), int(q))
				if cnt[i] <= 0 {
					continue
				}
				cnt[i]--
				if cnt[i] == 0 {
					for _, p := range rev.Post(cur.p, a) {
						addToComplement(p, q)
					}
				}
			}
		}
	}

	sim.Complement()
	return sim
}
