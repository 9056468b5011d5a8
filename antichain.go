// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fsm

// post computes post(M, a) = union of delta(m, a) over m in M.
func post(n *NFA, macro []StateID, a SymbolID) []StateID {
	var out stateSet
	for _, m := range macro {
		out = unionSets(out, n.Post(m, a))
	}
	return out
}

// macroAccepting reports whether macro contains a final state.
func macroAccepting(n *NFA, macro []StateID) bool {
	for _, m := range macro {
		if n.IsFinal(m) {
			return true
		}
	}
	return false
}

// macroSet is a set of macro-states keyed by their sorted-id string
// representation, used for the `processed`/`next` worklists of
// IsUniversal.
type macroSet map[string][]StateID

func (s macroSet) add(m []StateID)      { s[stateSet(m).key()] = m }
func (s macroSet) remove(m []StateID)   { delete(s, stateSet(m).key()) }
func (s macroSet) values() [][]StateID {
	out := make([][]StateID, 0, len(s))
	for _, v := range s {
		out = append(out, v)
	}
	return out
}

// IsUniversal decides whether n accepts every finite word over its
// alphabet, using relation as the subsumption quasi-order over macro-
// states. Pass Identity(n.Size()) for plain subset-construction pruning, or
// Simulate(n) for simulation-based subsumption.
func IsUniversal(n *NFA, relation *Relation) bool {
	if relation.Size() < n.Size() {
		panic("fsm: relation smaller than the NFA it subsumes")
	}

	init := n.Initial()
	if !macroAccepting(n, init) {
		return false
	}

	processed := macroSet{}
	next := macroSet{}
	next.add(relation.Minimize(init))

	for len(next) > 0 {
		var r []StateID
		for _, v := range next {
			r = v
			break
		}
		next.remove(r)
		processed.add(r)

		for _, a := range n.Symbols() {
			p := relation.Minimize(post(n, r, a))

			if !macroAccepting(n, p) {
				return false
			}

			// Skip P when some existing S already subsumes it (S ≼ P).
			subsumed := false
			for _, s := range processed.values() {
				if Subsumes(relation, s, p) {
					subsumed = true
					break
				}
			}
			if !subsumed {
				for _, s := range next.values() {
					if Subsumes(relation, s, p) {
						subsumed = true
						break
					}
				}
			}
			if subsumed {
				continue
			}

			// Otherwise P is new information: retire every S it subsumes
			// (P ≼ S) and add P to the frontier.
			for _, s := range processed.values() {
				if Subsumes(relation, p, s) {
					processed.remove(s)
				}
			}
			for _, s := range next.values() {
				if Subsumes(relation, p, s) {
					next.remove(s)
				}
			}
			next.add(p)
		}
	}

	return true
}

// productState is a pair <p, M>: a state of the left automaton and a
// macro-state over the (renamed) right automaton.
type productState struct {
	p StateID
	m []StateID
}

func (ps productState) key() string {
	return stateSet{ps.p}.key() + "|" + stateSet(ps.m).key()
}

type productSet map[string]productState

func (s productSet) add(p productState)    { s[p.key()] = p }
func (s productSet) remove(p productState) { delete(s, p.key()) }
func (s productSet) values() []productState {
	out := make([]productState, 0, len(s))
	for _, v := range s {
		out = append(out, v)
	}
	return out
}

// productSubsumes reports <p,M> ≼ <p',M'>: p ⊑ p' and M' ≼ M (note the
// inversion on the right side, §4.D).
func productSubsumes(relation *Relation, left, right productState) bool {
	return relation.Get(left.p, right.p) && Subsumes(relation, right.m, left.m)
}

// IsIncluded decides whether L(a) ⊆ L(b), renaming b disjoint from a and
// computing relation over the resulting union automaton (the
// MakeDifferent-then-union preparation spec.md standardizes on). Pass
// Identity(union-size) or Simulate(union) as the subsumption order.
func IsIncluded(a, b *NFA, relation *Relation) bool {
	union, renamed := a.Union(b)
	if relation.Size() < union.Size() {
		panic("fsm: relation smaller than the union automaton it subsumes")
	}

	bInit := renameMacro(b.Initial(), renamed)
	bFinal := renameMacro(b.Final(), renamed)

	m0 := relation.Minimize(bInit)

	// r is always a union id of one of a's states, so union.IsFinal(r)
	// is a's own finality.
	isAcceptingProduct := func(r StateID, m []StateID) bool {
		if !union.IsFinal(r) {
			return false
		}
		for _, s := range m {
			if isRenamedFinal(s, bFinal) {
				return false
			}
		}
		return true
	}

	processed := productSet{}
	next := productSet{}
	for _, p := range a.Initial() {
		r := union.stateName[a.StateName(p)]
		if isAcceptingProduct(r, m0) {
			return false // the empty word is in L(a) but not in L(b)
		}
		next.add(productState{p: r, m: m0})
	}
	filterSeed(next, relation)

	for len(next) > 0 {
		var cur productState
		for _, v := range next {
			cur = v
			break
		}
		next.remove(cur)
		processed.add(cur)

		for _, sym := range union.Symbols() {
			rNext := union.Post(cur.p, sym)
			mNext := relation.Minimize(post(union, cur.m, sym))

			for _, rPrime := range rNext {
				candidate := productState{p: rPrime, m: mNext}

				if isAcceptingProduct(rPrime, mNext) {
					return false
				}

				selfSubsumed := false
				for _, mState := range mNext {
					if relation.Get(rPrime, mState) {
						selfSubsumed = true
						break
					}
				}
				if selfSubsumed {
					continue
				}

				// Skip candidate when some existing <s,S> already
				// subsumes it: <s,S> ≼ <candidate> in the product order.
				externallySubsumed := false
				for _, s := range processed.values() {
					if productSubsumes(relation, s, candidate) {
						externallySubsumed = true
						break
					}
				}
				if !externallySubsumed {
					for _, s := range next.values() {
						if productSubsumes(relation, s, candidate) {
							externallySubsumed = true
							break
						}
					}
				}
				if externallySubsumed {
					continue
				}

				// Otherwise candidate subsumes every <s,S> with
				// <candidate> ≼ <s,S>; retire those and add candidate.
				for _, s := range processed.values() {
					if productSubsumes(relation, candidate, s) {
						processed.remove(s)
					}
				}
				for _, s := range next.values() {
					if productSubsumes(relation, candidate, s) {
						next.remove(s)
					}
				}
				next.add(candidate)
			}
		}
	}

	return true
}

// renameMacro maps each id in macro through renamed and returns the result
// as a sorted macro-state. stateSet.key is order-sensitive and does not
// sort, so the sorted-slice invariant has to hold here for set membership
// to work.
func renameMacro(macro []StateID, renamed map[StateID]StateID) []StateID {
	out := make(stateSet, 0, len(macro))
	for _, s := range macro {
		out = out.insert(renamed[s])
	}
	return out
}

func isRenamedFinal(s StateID, finals []StateID) bool {
	for _, f := range finals {
		if f == s {
			return true
		}
	}
	return false
}

// filterSeed applies the two antichain filters to Seed before the main
// inclusion loop: self-subsumed product-states are dropped (Optimization
// 2 in the original), then any product-state subsumed by another seed
// product-state is dropped (Optimization 1). A product-state already dropped
// does not drop others, so of two mutually subsuming seeds one is kept.
func filterSeed(seed productSet, relation *Relation) {
	for _, ps := range seed.values() {
		for _, p1 := range ps.m {
			if relation.Get(ps.p, p1) {
				seed.remove(ps)
				break
			}
		}
	}

	for _, cur := range seed.values() {
		for _, other := range seed.values() {
			if other.key() == cur.key() {
				continue
			}
			if _, kept := seed[other.key()]; !kept {
				continue
			}
			if productSubsumes(relation, cur, other) {
				seed.remove(cur)
				break
			}
		}
	}
}
