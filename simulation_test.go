// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Property 1: simulation is reflexive and transitive.
func TestSimulateIsPreorder(t *testing.T) {
	n := NewNFA()
	n.InsertTransition("p", "a", "q")
	n.InsertTransition("q", "a", "r")
	n.InsertTransition("r", "a", "r")
	n.MarkInitial("p")
	n.MarkFinal("r")

	sim := Simulate(n)
	for _, s := range n.States() {
		assert.True(t, sim.Get(s, s), "reflexive at %d", s)
	}

	states := n.States()
	for _, p := range states {
		for _, q := range states {
			for _, r := range states {
				if sim.Get(p, q) && sim.Get(q, r) {
					assert.True(t, sim.Get(p, r), "transitivity: %d<=%d<=%d", p, q, r)
				}
			}
		}
	}
}

// Property 2: simulation refines final compatibility.
func TestSimulateRefinesFinalCompatibility(t *testing.T) {
	n := NewNFA()
	n.InsertTransition("p", "a", "q")
	n.MarkInitial("p")
	n.MarkFinal("p") // p final, q not

	sim := Simulate(n)
	p, q := n.stateName["p"], n.stateName["q"]
	assert.False(t, sim.Get(p, q), "final p cannot be simulated by non-final q")
}

// The engine must handle an empty alphabet without skipping the
// final-compatibility pass (see simulation.go's deviation from the
// original nested-loop structure).
func TestSimulateEmptyAlphabet(t *testing.T) {
	n := NewNFA()
	n.InsertState("p")
	n.InsertState("q")
	n.MarkFinal("p")

	sim := Simulate(n)
	p, q := n.stateName["p"], n.stateName["q"]
	assert.False(t, sim.Get(p, q))
	assert.True(t, sim.Get(q, p), "non-final simulated by final is fine")
}

func TestSimulateEmptyNFA(t *testing.T) {
	n := NewNFA()
	sim := Simulate(n)
	assert.Equal(t, 0, sim.Size())
}

// S5: q and r mutually simulate each other, so the single a-successor of
// q (or of r) matches both of p's a-successors; p is therefore simulated
// by q and by r as well. The assertions check reflexivity and the q/r pair.
func TestSimulateS5(t *testing.T) {
	n := NewNFA()
	n.InsertTransition("p", "a", "q")
	n.InsertTransition("p", "a", "r")
	n.InsertTransition("q", "a", "q")
	n.InsertTransition("r", "a", "r")
	n.MarkFinal("q")
	n.MarkFinal("r")

	sim := Simulate(n)
	p, q, r := n.stateName["p"], n.stateName["q"], n.stateName["r"]

	assert.True(t, sim.Get(p, p))
	assert.True(t, sim.Get(q, q))
	assert.True(t, sim.Get(r, r))
	assert.True(t, sim.Get(q, r))
	assert.True(t, sim.Get(r, q))
}
