// SPDX-License-Identifier: MIT
//
// File: methods_queries.go
// Role: Read-only queries served from lazily built caches.
//
// Determinism:
//   - States() and FinalStates() are sorted by id ascending.
//   - Transitions() lists outgoing transitions state by state (id ascending),
//     each state's list in insertion order.
//   - TransitionsFrom/To keep insertion order; ReplaceTransition keeps position.
//
// AI-HINT (file):
//   - Returned slices are shared with the cache; never modify them.
//   - A cache is rebuilt on the first read after the mutation that dropped it.

package automaton

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// States returns every state ordered by id ascending.
// Complexity: O(V log V) on rebuild, O(1) when cached.
func (a *Automaton) States() []*State {
	if a.cachedStates == nil {
		a.cachedStates = sortedStates(a.states)
	}

	return slices.Clip(a.cachedStates)
}

// FinalStates returns the final states ordered by id ascending.
// Complexity: O(F log F) on rebuild, O(1) when cached.
func (a *Automaton) FinalStates() []*State {
	if a.cachedFinals == nil {
		a.cachedFinals = sortedStates(a.finalStates)
	}

	return slices.Clip(a.cachedFinals)
}

// Transitions returns every transition.
// Complexity: O(V log V + E) on rebuild, O(1) when cached.
func (a *Automaton) Transitions() []Transition {
	if a.cachedTransitions == nil {
		out := make([]Transition, 0, a.nTrans)
		for _, s := range a.States() {
			out = append(out, a.fromIndex[s]...)
		}
		a.cachedTransitions = out
	}

	return slices.Clip(a.cachedTransitions)
}

// TransitionsFrom returns the transitions leaving s (empty for a foreign state).
// Complexity: O(out-degree) on rebuild, O(1) when cached.
func (a *Automaton) TransitionsFrom(s *State) []Transition {
	return a.cachedAdjacency(a.fromCache, a.fromIndex, s)
}

// TransitionsTo returns the transitions entering s (empty for a foreign state).
// Complexity: O(in-degree) on rebuild, O(1) when cached.
func (a *Automaton) TransitionsTo(s *State) []Transition {
	return a.cachedAdjacency(a.toCache, a.toIndex, s)
}

// TransitionsBetween returns the transitions from→to.
// There is no pair index: this scans the outgoing list of from.
// Complexity: O(out-degree(from)).
func (a *Automaton) TransitionsBetween(from, to *State) []Transition {
	out := make([]Transition, 0)
	for _, t := range a.TransitionsFrom(from) {
		if t.To() == to {
			out = append(out, t)
		}
	}

	return out
}

// StateWithID returns the state with the given id, or nil.
// Complexity: O(log V) once States() is cached.
func (a *Automaton) StateWithID(id int) *State {
	states := a.States()
	i, found := slices.BinarySearchFunc(states, id, func(s *State, id int) int {
		return cmp.Compare(s.id, id)
	})
	if !found {
		return nil
	}

	return states[i]
}

// IsState reports whether s is a live state of this automaton.
func (a *Automaton) IsState(s *State) bool {
	_, ok := a.states[s]
	return ok
}

// IsFinalState reports whether s is marked final.
func (a *Automaton) IsFinalState(s *State) bool {
	_, ok := a.finalStates[s]
	return ok
}

// StateCount returns the number of states.
func (a *Automaton) StateCount() int { return len(a.states) }

// TransitionCount returns the number of transitions.
func (a *Automaton) TransitionCount() int { return a.nTrans }

// String renders the automaton one state per line (id order). The initial
// state is prefixed with "--> ", final states are suffixed with " **FINAL**",
// and each outgoing transition follows on its own tab-indented line.
func (a *Automaton) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s automaton %s\n", a.machine.Name(), a.id)
	for _, s := range a.States() {
		if a.initial == s {
			b.WriteString("--> ")
		}
		b.WriteString(s.String())
		if a.IsFinalState(s) {
			b.WriteString(" **FINAL**")
		}
		b.WriteByte('\n')
		for _, t := range a.TransitionsFrom(s) {
			b.WriteByte('\t')
			b.WriteString(t.String())
			b.WriteByte('\n')
		}
	}

	return b.String()
}

// cachedAdjacency serves one per-state array, rebuilding it from the index when absent.
func (a *Automaton) cachedAdjacency(cache, index map[*State][]Transition, s *State) []Transition {
	if ts, ok := cache[s]; ok {
		return slices.Clip(ts)
	}
	list, ok := index[s]
	if !ok {
		return []Transition{}
	}
	ts := make([]Transition, len(list))
	copy(ts, list)
	cache[s] = ts

	return slices.Clip(ts)
}

func sortedStates(set map[*State]struct{}) []*State {
	out := make([]*State, 0, len(set))
	for s := range set {
		if s != nil {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, func(x, y *State) int { return cmp.Compare(x.id, y.id) })

	return out
}
