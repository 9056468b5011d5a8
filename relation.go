// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fsm

import "github.com/bits-and-blooms/bitset"

// Relation is a dense n x n boolean matrix with O(1) get/set, backed by one
// bitset per row. It is the owned-matrix replacement for the original
// bool** relation (§9): allocated once at construction and never resized.
type Relation struct {
	n    int
	rows []*bitset.BitSet
}

// NewRelation returns an n x n relation with every entry set to def.
func NewRelation(n int, def bool) *Relation {
	r := &Relation{n: n, rows: make([]*bitset.BitSet, n)}
	for i := range r.rows {
		r.rows[i] = bitset.New(uint(n))
		if def {
			for j := 0; j < n; j++ {
				r.rows[i].Set(uint(j))
			}
		}
	}
	return r
}

// Identity returns the n x n relation that is true exactly on the
// diagonal, the degenerate subsumption order used when simulation is not
// requested.
func Identity(n int) *Relation {
	r := NewRelation(n, false)
	for i := 0; i < n; i++ {
		r.Set(i, i, true)
	}
	return r
}

// Size returns n, the relation's row/column count.
func (r *Relation) Size() int { return r.n }

// Get returns whether (i, j) holds. Out-of-range accesses return false.
func (r *Relation) Get(i, j StateID) bool {
	if int(i) < 0 || int(i) >= r.n || int(j) < 0 || int(j) >= r.n {
		return false
	}
	return r.rows[i].Test(uint(j))
}

// Set records (i, j) as v. Out-of-range accesses are a no-op.
func (r *Relation) Set(i, j StateID, v bool) {
	if int(i) < 0 || int(i) >= r.n || int(j) < 0 || int(j) >= r.n {
		return
	}
	if v {
		r.rows[i].Set(uint(j))
	} else {
		r.rows[i].Clear(uint(j))
	}
}

// Complement negates every entry in place.
func (r *Relation) Complement() {
	for i := range r.rows {
		for j := 0; j < r.n; j++ {
			r.rows[i].Flip(uint(j))
		}
	}
}

// Minimize reduces macro, a sorted macro-state, by removing every element m
// for which some distinct m' in macro has m ⊑ m' (r.Get(m, m')). The result
// preserves the language recognized from macro and subsumption comparisons
// against it (§4.D).
// Domination is checked against the original macro, not a shrinking working
// set: when m and m' simulate each other mutually (m ⊑ m' and m' ⊑ m), only
// the lower-index element survives, so exactly one representative of each
// equivalence class is kept regardless of iteration order.
func (r *Relation) Minimize(macro []StateID) []StateID {
	drop := make([]bool, len(macro))
	for i, m := range macro {
		for j, mp := range macro {
			if i == j {
				continue
			}
			if !r.Get(m, mp) {
				continue
			}
			if r.Get(mp, m) && j >= i {
				continue // mutual: tie-break keeps the lower index
			}
			drop[i] = true
			break
		}
	}

	out := make(stateSet, 0, len(macro))
	for i, m := range macro {
		if !drop[i] {
			out = out.insert(m)
		}
	}
	return out
}

// Subsumes reports whether M ≼ M' under r: every m in m has some m' in
// other with m ⊑ m'.
func Subsumes(r *Relation, m, other []StateID) bool {
	for _, p := range m {
		found := false
		for _, q := range other {
			if r.Get(p, q) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
