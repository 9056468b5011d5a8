// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fsm implements the antichain-with-simulation decision procedures
// for NFA universality and language inclusion, and the Henzinger-Henzinger-
// Kopke maximal simulation preorder that supplies their subsumption order.
package fsm

import (
	"bytes"
	"fmt"
	"sort"
)

// StateID is the dense, stable identifier of a state. Ids are never reused
// or renumbered for the lifetime of an NFA, even across deletions.
type StateID int

// SymbolID is the dense identifier of an alphabet symbol, assigned in
// insertion order starting at 0.
type SymbolID int

// stateSet is a sorted, de-duplicated slice of StateID, the representation
// used for a single delta(state, symbol) cell and for macro-states.
type stateSet []StateID

func (s stateSet) has(id StateID) bool {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= id })
	return i < len(s) && s[i] == id
}

// insert returns s with id inserted, preserving sort order and uniqueness.
// It does not mutate s in place: macro-states are value objects (§3).
func (s stateSet) insert(id StateID) stateSet {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= id })
	if i < len(s) && s[i] == id {
		return s
	}
	out := make(stateSet, len(s)+1)
	copy(out, s[:i])
	out[i] = id
	copy(out[i+1:], s[i:])
	return out
}

func (s stateSet) remove(id StateID) stateSet {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= id })
	if i >= len(s) || s[i] != id {
		return s
	}
	out := make(stateSet, 0, len(s)-1)
	out = append(out, s[:i]...)
	out = append(out, s[i+1:]...)
	return out
}

func (s stateSet) key() string {
	var b bytes.Buffer
	for _, id := range s {
		fmt.Fprintf(&b, "%d,", id)
	}
	return b.String()
}

// unionSets returns the sorted merge of a and b, deduplicated.
func unionSets(a, b stateSet) stateSet {
	out := make(stateSet, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// NFA is a nondeterministic finite automaton over a dense state/symbol id
// space: name<->id dictionaries for states and symbols, a transition table
// delta, and the initial/final state sets.
type NFA struct {
	Name string

	stateName map[string]StateID
	stateID   map[StateID]string
	live      map[StateID]struct{}

	symName map[string]SymbolID
	symID   map[SymbolID]string

	// delta[s][a] is the sorted set of successor states. Rows/columns are
	// allocated lazily, matching the total-function-with-default-empty
	// contract of the transition table.
	delta map[StateID]map[SymbolID]stateSet

	initial map[StateID]struct{}
	final   map[StateID]struct{}

	nextState StateID
	nextSym   SymbolID
}

// NewNFA returns an empty, mutable NFA ready for incremental construction.
func NewNFA() *NFA {
	return &NFA{
		stateName: map[string]StateID{},
		stateID:   map[StateID]string{},
		live:      map[StateID]struct{}{},
		symName:   map[string]SymbolID{},
		symID:     map[SymbolID]string{},
		delta:     map[StateID]map[SymbolID]stateSet{},
		initial:   map[StateID]struct{}{},
		final:     map[StateID]struct{}{},
	}
}

// InsertState adds a new state named name, returning true iff it was not
// already present. The state is live afterwards either way.
func (n *NFA) InsertState(name string) bool {
	if _, ok := n.stateName[name]; ok {
		return false
	}
	id := n.nextState
	n.nextState++
	n.stateName[name] = id
	n.stateID[id] = name
	n.live[id] = struct{}{}
	return true
}

// InsertSymbol adds a new alphabet symbol named name, returning true iff it
// was not already present.
func (n *NFA) InsertSymbol(name string) bool {
	if _, ok := n.symName[name]; ok {
		return false
	}
	id := n.nextSym
	n.nextSym++
	n.symName[name] = id
	n.symID[id] = name
	return true
}

// InsertTransition auto-inserts s1, a, s2 as needed and adds the arc
// s1 -a-> s2 to delta. Returns true iff the arc was not already present.
func (n *NFA) InsertTransition(s1, a, s2 string) bool {
	n.InsertState(s1)
	n.InsertState(s2)
	n.InsertSymbol(a)

	id1, id2, sym := n.stateName[s1], n.stateName[s2], n.symName[a]
	return n.insertByID(id1, sym, id2)
}

func (n *NFA) insertByID(s1 StateID, a SymbolID, s2 StateID) bool {
	row, ok := n.delta[s1]
	if !ok {
		row = map[SymbolID]stateSet{}
		n.delta[s1] = row
	}
	cell := row[a]
	if cell.has(s2) {
		return false
	}
	row[a] = cell.insert(s2)
	return true
}

// MarkInitial adds name to the initial set, auto-inserting it if needed.
func (n *NFA) MarkInitial(name string) {
	n.InsertState(name)
	n.initial[n.stateName[name]] = struct{}{}
}

// MarkFinal adds name to the final set, auto-inserting it if needed.
func (n *NFA) MarkFinal(name string) {
	n.InsertState(name)
	n.final[n.stateName[name]] = struct{}{}
}

// DeleteState removes name from the live state set and the name
// dictionaries, along with every reference to it in I, F, and delta (both
// outgoing and incoming arcs). Its id is not reused. Returns true iff the
// state existed.
func (n *NFA) DeleteState(name string) bool {
	id, ok := n.stateName[name]
	if !ok {
		return false
	}
	if _, alive := n.live[id]; !alive {
		return false
	}

	delete(n.initial, id)
	delete(n.final, id)
	delete(n.delta, id)
	for _, row := range n.delta {
		for sym, cell := range row {
			row[sym] = cell.remove(id)
		}
	}
	delete(n.live, id)
	delete(n.stateName, name)
	delete(n.stateID, id)
	return true
}

// States returns the live state ids in ascending order.
func (n *NFA) States() []StateID {
	out := make([]StateID, 0, len(n.live))
	for id := range n.live {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Symbols returns all alphabet symbol ids in ascending (insertion) order.
func (n *NFA) Symbols() []SymbolID {
	out := make([]SymbolID, 0, len(n.symID))
	for id := range n.symID {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Post returns delta(s, a), the sorted successor set (possibly empty).
func (n *NFA) Post(s StateID, a SymbolID) []StateID {
	row, ok := n.delta[s]
	if !ok {
		return nil
	}
	return append([]StateID(nil), row[a]...)
}

// IsFinal reports whether s is a final state.
func (n *NFA) IsFinal(s StateID) bool {
	_, ok := n.final[s]
	return ok
}

// IsInitial reports whether s is an initial state.
func (n *NFA) IsInitial(s StateID) bool {
	_, ok := n.initial[s]
	return ok
}

// Initial returns the initial set as a sorted macro-state.
func (n *NFA) Initial() []StateID {
	out := make([]StateID, 0, len(n.initial))
	for id := range n.initial {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Final returns the final set as a sorted macro-state.
func (n *NFA) Final() []StateID {
	out := make([]StateID, 0, len(n.final))
	for id := range n.final {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// StateName returns the external name of id, or "" if unknown.
func (n *NFA) StateName(id StateID) string { return n.stateID[id] }

// SymbolName returns the external name of id, or "" if unknown.
func (n *NFA) SymbolName(id SymbolID) string { return n.symID[id] }

// MaxID returns the maximum state id assigned so far, or -1 if none: the
// value a Relation over this NFA must be sized max_id+1 to cover.
func (n *NFA) MaxID() StateID {
	return n.nextState - 1
}

// Size returns max state id + 1, the size a Relation over this NFA needs.
func (n *NFA) Size() int {
	return int(n.nextState)
}

// Reverse returns a new NFA with every delta arc flipped; I, F, and the
// name dictionaries are carried over unchanged (callers -- pruning,
// simulation -- interpret the reversed delta against the original I/F as
// needed), matching the original TransitionFunction::Revert.
func (n *NFA) Reverse() *NFA {
	out := NewNFA()
	out.Name = n.Name
	out.stateName = cloneStateNames(n.stateName)
	out.stateID = cloneStateIDs(n.stateID)
	out.live = cloneIDSet(n.live)
	out.symName = cloneSymNames(n.symName)
	out.symID = cloneSymIDs(n.symID)
	out.nextState = n.nextState
	out.nextSym = n.nextSym
	out.initial = cloneIDSet(n.initial)
	out.final = cloneIDSet(n.final)
	out.delta = map[StateID]map[SymbolID]stateSet{}

	for s1, row := range n.delta {
		for a, cell := range row {
			for _, s2 := range cell {
				out.insertByID(s2, a, s1)
			}
		}
	}
	return out
}

// Union returns the union automaton of n and other. Both operands' states
// are renamed to the union's dense id space (collisions get a trailing
// prime appended to the name) -- n's live ids are not assumed to already be
// the dense 0..k-1 sequence union.InsertState assigns them, since Prune
// leaves gaps in the live id set without renumbering (§3). I = I_n ∪
// I_other, F = F_n ∪ F_other, Sigma = Sigma_n ∪ Sigma_other, delta =
// delta_n ⊎ delta_other. renamed maps other's original ids to their id in
// the union, for callers that need to translate a macro-state of other
// into the union's id space.
func (n *NFA) Union(other *NFA) (union *NFA, renamed map[StateID]StateID) {
	union = NewNFA()

	renamedN := map[StateID]StateID{}
	for _, id := range n.States() {
		union.InsertState(n.StateName(id))
		renamedN[id] = union.stateName[n.StateName(id)]
	}

	renamed = map[StateID]StateID{}
	for _, id := range other.States() {
		name := other.StateName(id)
		for hasStateName(union.stateName, name) {
			name += "'"
		}
		union.InsertState(name)
		renamed[id] = union.stateName[name]
	}

	for _, sym := range n.Symbols() {
		union.InsertSymbol(n.SymbolName(sym))
	}
	for _, sym := range other.Symbols() {
		union.InsertSymbol(other.SymbolName(sym))
	}

	for s1, row := range n.delta {
		for a, cell := range row {
			for _, s2 := range cell {
				union.insertByID(renamedN[s1], union.symName[n.SymbolName(a)], renamedN[s2])
			}
		}
	}
	for s1, row := range other.delta {
		for a, cell := range row {
			for _, s2 := range cell {
				union.insertByID(renamed[s1], union.symName[other.SymbolName(a)], renamed[s2])
			}
		}
	}

	for id := range n.initial {
		union.initial[renamedN[id]] = struct{}{}
	}
	for id := range other.initial {
		union.initial[renamed[id]] = struct{}{}
	}
	for id := range n.final {
		union.final[renamedN[id]] = struct{}{}
	}
	for id := range other.final {
		union.final[renamed[id]] = struct{}{}
	}

	return union, renamed
}

func hasStateName(m map[string]StateID, name string) bool {
	_, ok := m[name]
	return ok
}

// Prune removes states that are not reachable from I, or not co-reachable
// to F, via two fixpoint sweeps. Semantics-preserving for universality and
// inclusion. Returns the number of states removed.
func (n *NFA) Prune() int {
	reachable := n.closureFrom(n.Initial(), n)
	coreachable := n.closureFrom(n.Final(), n.Reverse())

	var dead []StateID
	for _, id := range n.States() {
		_, fwd := reachable[id]
		_, bwd := coreachable[id]
		if !fwd || !bwd {
			dead = append(dead, id)
		}
	}
	for _, id := range dead {
		n.DeleteState(n.StateName(id))
	}
	return len(dead)
}

// closureFrom computes the set of states reachable from seed by following
// src's delta, used for both the forward (src == n) and backward
// (src == n.Reverse()) sweeps of Prune.
func (n *NFA) closureFrom(seed []StateID, src *NFA) map[StateID]struct{} {
	visited := map[StateID]struct{}{}
	var stack []StateID
	for _, id := range seed {
		if _, ok := visited[id]; !ok {
			visited[id] = struct{}{}
			stack = append(stack, id)
		}
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, a := range src.Symbols() {
			for _, s2 := range src.Post(s, a) {
				if _, ok := visited[s2]; !ok {
					visited[s2] = struct{}{}
					stack = append(stack, s2)
				}
			}
		}
	}
	return visited
}

// String renders the NFA in the VTF-like textual format (see format.go).
func (n *NFA) String() string {
	return Print(n)
}

func cloneStateNames(m map[string]StateID) map[string]StateID {
	out := make(map[string]StateID, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneStateIDs(m map[StateID]string) map[StateID]string {
	out := make(map[StateID]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneSymNames(m map[string]SymbolID) map[string]SymbolID {
	out := make(map[string]SymbolID, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneSymIDs(m map[SymbolID]string) map[SymbolID]string {
	out := make(map[SymbolID]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneIDSet(m map[StateID]struct{}) map[StateID]struct{} {
	out := make(map[StateID]struct{}, len(m))
	for k := range m {
		out[k] = struct{}{}
	}
	return out
}
