// SPDX-License-Identifier: MIT
//
// File: methods_states.go
// Role: State lifecycle: CreateState, RestoreState, RemoveState, initial/final marks
//       and attribute changes (SetPoint/SetLabel).
//
// Determinism:
//   - CreateState always picks the smallest free non-negative id.
//   - RemoveState removes outgoing transitions, then incoming ones, then the state.
//
// AI-HINT (file):
//   - SetInitialState/AddFinalState do NOT check membership; callers pass live states.
//   - RemoveState on a foreign or already removed state is a no-op.

package automaton

import (
	"fmt"
	"math"
)

// MaxStateID is the largest state id; persisted records rely on it.
const MaxStateID = math.MaxInt32

// CreateState mints a new state at p and inserts it into the automaton.
//
// Implementation:
//   - Stage 1: Collect the ids in use and pick the smallest free non-negative id.
//   - Stage 2: Build the state bound to this automaton.
//   - Stage 3: Insert it through addState (empty index entries, state cache dropped, StateAdded emitted).
//
// Returns:
//   - *State: the new state; never nil.
//
// Complexity:
//   - Time O(V), Space O(V) for the id scan. State creation is not a hot path.
//
// Notes:
//   - Ids freed by RemoveState are reused, lowest first.
func (a *Automaton) CreateState(p Point) *State {
	a.guard()

	used := make(map[int]struct{}, len(a.states))
	for s := range a.states {
		used[s.id] = struct{}{}
	}
	id := 0
	for {
		if _, taken := used[id]; !taken {
			break
		}
		id++
	}

	s := &State{id: id, point: p, owner: a}
	a.addState(s)

	return s
}

// RestoreState inserts a state with a caller-chosen id, point and label.
// It is the reconstruction path used by Clone and by decoders; editors should
// use CreateState.
//
// Errors:
//   - ErrNegativeStateID: id < 0.
//   - ErrStateIDRange: id > MaxStateID.
//   - ErrDuplicateStateID: a live state already uses id.
//
// Complexity: O(V) for the duplicate check.
func (a *Automaton) RestoreState(id int, p Point, label string) (*State, error) {
	a.guard()
	if id < 0 {
		return nil, ErrNegativeStateID
	}
	if id > MaxStateID {
		return nil, fmt.Errorf("%w: %d > %d", ErrStateIDRange, id, MaxStateID)
	}
	if a.StateWithID(id) != nil {
		return nil, ErrDuplicateStateID
	}

	s := &State{id: id, point: p, label: label, owner: a}
	a.addState(s)

	return s, nil
}

// addState is the single insertion path for states.
func (a *Automaton) addState(s *State) {
	a.states[s] = struct{}{}
	a.fromIndex[s] = nil
	a.toIndex[s] = nil
	a.cachedStates = nil

	a.logger.Debug("automaton: state added", "automaton", a.id, "state", s.id)
	a.emitState(s, StateAdded)
}

// RemoveState deletes s and every transition touching it.
//
// Implementation:
//   - Stage 1: Ignore states that are not members (no error, no event).
//   - Stage 2: RemoveTransition every outgoing transition, then every incoming one;
//     each emits its own TransitionRemoved.
//   - Stage 3: Emit StateRemoved while s is still a member, so listeners can read it.
//   - Stage 4: Drop s from states, final states, initial state, indices and caches.
//
// Behavior highlights:
//   - Transition events precede the state event: editors detach edge visuals first.
//   - A self-loop is removed once and announced once.
//
// Complexity:
//   - Time O(deg(s)·d) where d is the out-degree of the neighbouring states.
//
// AI-Hints:
//   - The removed state keeps its id/point/label but reports Automaton() == nil.
func (a *Automaton) RemoveState(s *State) {
	a.guard()
	if !a.IsState(s) {
		return
	}

	// Cached slices are snapshots; removing while ranging over them is safe.
	for _, t := range a.TransitionsFrom(s) {
		a.RemoveTransition(t)
	}
	for _, t := range a.TransitionsTo(s) {
		a.RemoveTransition(t)
	}

	a.emitState(s, StateRemoved)

	delete(a.states, s)
	if _, final := a.finalStates[s]; final {
		delete(a.finalStates, s)
		a.cachedFinals = nil
	}
	if a.initial == s {
		a.initial = nil
	}
	delete(a.fromIndex, s)
	delete(a.toIndex, s)
	delete(a.fromCache, s)
	delete(a.toCache, s)
	a.cachedStates = nil
	s.owner = nil

	a.logger.Debug("automaton: state removed", "automaton", a.id, "state", s.id)
}

// SetInitialState makes s the initial state and returns the previous one (nil if none).
// The write is unchecked: s is trusted to be a member of this automaton (or nil to clear).
func (a *Automaton) SetInitialState(s *State) *State {
	a.guard()
	prev := a.initial
	a.initial = s

	return prev
}

// InitialState returns the initial state, or nil.
func (a *Automaton) InitialState() *State { return a.initial }

// AddFinalState marks s as final. Unchecked against membership; only the final-state cache is dropped.
func (a *Automaton) AddFinalState(s *State) {
	a.guard()
	a.cachedFinals = nil
	a.finalStates[s] = struct{}{}
}

// RemoveFinalState clears the final mark of s. Unmarked states are a no-op.
func (a *Automaton) RemoveFinalState(s *State) {
	a.guard()
	a.cachedFinals = nil
	delete(a.finalStates, s)
}

// SetPoint moves s and emits StateMoved when s is a live state.
func (s *State) SetPoint(p Point) {
	if s.owner == nil {
		s.point = p
		return
	}
	s.owner.guard()
	s.point = p
	s.owner.emitState(s, StateMoved)
}

// SetLabel relabels s and emits StateRelabeled when s is a live state.
func (s *State) SetLabel(label string) {
	if s.owner == nil {
		s.label = label
		return
	}
	s.owner.guard()
	s.label = label
	s.owner.emitState(s, StateRelabeled)
}
