// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelationGetSetOutOfRange(t *testing.T) {
	r := NewRelation(3, false)
	assert.False(t, r.Get(-1, 0))
	assert.False(t, r.Get(0, 5))

	r.Set(0, 5, true) // no-op
	r.Set(-1, 0, true)
	assert.False(t, r.Get(0, 1))

	r.Set(0, 1, true)
	assert.True(t, r.Get(0, 1))
}

func TestIdentityIsDiagonal(t *testing.T) {
	r := Identity(3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, i == j, r.Get(StateID(i), StateID(j)))
		}
	}
}

// Property 10: complement is its own inverse.
func TestComplementInvolution(t *testing.T) {
	r := NewRelation(4, false)
	r.Set(0, 1, true)
	r.Set(2, 3, true)

	before := snapshot(r, 4)
	r.Complement()
	r.Complement()
	after := snapshot(r, 4)
	assert.Equal(t, before, after)
}

func snapshot(r *Relation, n int) [][]bool {
	out := make([][]bool, n)
	for i := range out {
		out[i] = make([]bool, n)
		for j := range out[i] {
			out[i][j] = r.Get(StateID(i), StateID(j))
		}
	}
	return out
}

func TestMinimizeDropsDominatedElements(t *testing.T) {
	// 0 <= 1 strictly (0 simulated by 1, not vice versa): 0 is redundant.
	r := NewRelation(3, false)
	r.Set(0, 0, true)
	r.Set(1, 1, true)
	r.Set(2, 2, true)
	r.Set(0, 1, true)

	assert.Equal(t, []StateID{1, 2}, r.Minimize([]StateID{0, 1, 2}))
}

func TestMinimizeKeepsExactlyOneOfMutuallyEquivalentPair(t *testing.T) {
	// 0 and 1 mutually simulate each other; the lower id survives.
	r := NewRelation(2, false)
	r.Set(0, 0, true)
	r.Set(1, 1, true)
	r.Set(0, 1, true)
	r.Set(1, 0, true)

	got := r.Minimize([]StateID{0, 1})
	assert.Len(t, got, 1)
	assert.Equal(t, StateID(0), got[0])
}

func TestSubsumes(t *testing.T) {
	r := NewRelation(3, false)
	r.Set(0, 1, true)
	r.Set(1, 1, true)

	assert.True(t, Subsumes(r, []StateID{0}, []StateID{1}))
	assert.False(t, Subsumes(r, []StateID{0}, []StateID{2}))
	assert.True(t, Subsumes(r, []StateID{}, []StateID{2}), "empty M is vacuously subsumed")
}
