// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertTransitionAutoDeclares(t *testing.T) {
	n := NewNFA()
	require.True(t, n.InsertTransition("q0", "a", "q1"))
	assert.ElementsMatch(t, []string{"q0", "q1"}, []string{n.StateName(0), n.StateName(1)})
	assert.Equal(t, "a", n.SymbolName(0))
	assert.False(t, n.InsertTransition("q0", "a", "q1"), "duplicate arc is not newly inserted")
}

func TestMarkInitialFinalAutoDeclare(t *testing.T) {
	n := NewNFA()
	n.MarkInitial("q0")
	n.MarkFinal("q1")
	assert.True(t, n.IsInitial(n.States()[0]))
	require.Len(t, n.States(), 2)
}

func TestDeleteStateRemovesAllReferences(t *testing.T) {
	n := NewNFA()
	n.InsertTransition("q0", "a", "q1")
	n.InsertTransition("q1", "a", "q0")
	n.MarkInitial("q0")
	n.MarkFinal("q1")

	require.True(t, n.DeleteState("q1"))

	q0 := n.stateName["q0"]
	assert.Empty(t, n.Post(q0, n.symName["a"]), "outgoing arc to deleted state must be gone")
	assert.Len(t, n.States(), 1)
	assert.False(t, n.IsFinal(q0))
	assert.False(t, n.DeleteState("q1"), "second delete reports it no longer exists")
}

// Property 9: reverse(reverse(N)) == N up to delta equality.
func TestReverseInvolution(t *testing.T) {
	n := NewNFA()
	n.InsertTransition("p", "a", "q")
	n.InsertTransition("q", "a", "q")
	n.InsertTransition("q", "b", "p")
	n.MarkInitial("p")
	n.MarkFinal("q")

	twice := n.Reverse().Reverse()
	assert.Equal(t, n.String(), twice.String())
}

func TestUnionCombinesStatesAlphabetsAndSets(t *testing.T) {
	a := NewNFA()
	a.InsertTransition("q0", "a", "q0")
	a.MarkInitial("q0")
	a.MarkFinal("q0")

	b := NewNFA()
	b.InsertTransition("q0", "b", "q0") // name clash with a's q0
	b.MarkInitial("q0")
	b.MarkFinal("q0")

	union, renamed := a.Union(b)
	require.Len(t, union.States(), 2)
	assert.ElementsMatch(t, []SymbolID{union.symName["a"], union.symName["b"]}, union.Symbols())

	bq0, ok := renamed[b.stateName["q0"]]
	require.True(t, ok)
	assert.NotEqual(t, a.stateName["q0"], bq0)
	assert.True(t, union.IsInitial(bq0))
	assert.True(t, union.IsFinal(bq0))
}

// Union must not assume n's live ids are already the dense 0..k-1 sequence
// it assigns them: pruning a middle state leaves a gap that Union has to
// rename through just like it already does for other's states.
func TestUnionAfterPruneRemapsGappedIDs(t *testing.T) {
	n := NewNFA()
	n.InsertTransition("q0", "a", "q0") // q0 = 0
	n.InsertState("q1")                 // q1 = 1, dead: unreachable and non-coreachable
	n.InsertTransition("q0", "a", "q2") // q2 = 2
	n.MarkInitial("q0")
	n.MarkFinal("q0")
	n.MarkFinal("q2")

	require.Equal(t, 1, n.Prune())
	require.Len(t, n.States(), 2)

	b := NewNFA()
	b.InsertTransition("r0", "a", "r0")
	b.MarkInitial("r0")
	b.MarkFinal("r0")

	union, _ := n.Union(b)
	q0, q2 := union.stateName["q0"], union.stateName["q2"]
	assert.Contains(t, union.Post(q0, union.symName["a"]), q2,
		"q0's transition to q2 must survive Union after q2's id shifted down")
	assert.True(t, union.IsInitial(q0))
	assert.True(t, union.IsFinal(q0))
	assert.True(t, union.IsFinal(q2))
}

// S6: a dead state unreachable from I and not co-reachable to F is pruned.
func TestPruneRemovesDeadState(t *testing.T) {
	n := NewNFA()
	n.InsertTransition("q0", "a", "q1")
	n.InsertTransition("q2", "a", "q2")
	n.MarkInitial("q0")
	n.MarkFinal("q1")

	require.Equal(t, 1, n.Prune())
	assert.Len(t, n.States(), 2)
	_, stillThere := n.stateName["q2"]
	assert.False(t, stillThere)
}

// Property 6: a second prune removes nothing further.
func TestPruneIdempotent(t *testing.T) {
	n := NewNFA()
	n.InsertTransition("q0", "a", "q1")
	n.InsertTransition("q2", "a", "q2")
	n.MarkInitial("q0")
	n.MarkFinal("q1")

	n.Prune()
	assert.Equal(t, 0, n.Prune())
}

// S1: a single-state NFA is universal over {a}; pruning removes nothing.
func TestPruneS1KeepsLoopingAcceptor(t *testing.T) {
	n := NewNFA()
	n.InsertTransition("q0", "a", "q0")
	n.MarkInitial("q0")
	n.MarkFinal("q0")
	assert.Equal(t, 0, n.Prune())
}
