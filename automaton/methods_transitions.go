// SPDX-License-Identifier: MIT
//
// File: methods_transitions.go
// Role: Transition lifecycle: AddTransition, ReplaceTransition, RemoveTransition.
//
// Invariants kept here:
//   - fromIndex[q] / toIndex[q] hold exactly the transitions leaving / entering q.
//   - No two Equal transitions are stored.
//   - Every mutation drops the from/to arrays of the touched endpoints and the
//     global transition array, nothing more.
//
// AI-HINT (file):
//   - Add of an Equal transition is a silent no-op; Replace of an absent one is ErrInvalidReplace.
//   - Remove of an absent transition is a silent no-op and emits nothing.

package automaton

import (
	"fmt"
	"slices"
)

// AddTransition inserts t into the automaton.
//
// Implementation:
//   - Stage 1: admit(t): reject nil, kinds the machine does not accept, and foreign endpoints.
//   - Stage 2: Return silently if an Equal transition is already stored.
//   - Stage 3: Append t to fromIndex[from] and toIndex[to].
//   - Stage 4: Drop the two endpoint arrays and the global array; emit TransitionAdded.
//
// Errors:
//   - ErrNilTransition: t == nil.
//   - ErrIncompatibleTransition: t.Kind() is not the machine's kind (or the machine's validator refused it).
//   - ErrStateNotFound: an endpoint is not a live state of this automaton.
//
// Complexity:
//   - Time O(out-degree(from)) for the duplicate scan, Space O(1) amortized.
//
// AI-Hints:
//   - Build transitions from states returned by this automaton; states of a clone are not interchangeable.
func (a *Automaton) AddTransition(t Transition) error {
	a.guard()
	if err := a.admit(t); err != nil {
		return err
	}
	from, to := t.From(), t.To()
	if indexOf(a.fromIndex[from], t) >= 0 {
		return nil
	}

	a.fromIndex[from] = append(a.fromIndex[from], t)
	a.toIndex[to] = append(a.toIndex[to], t)
	a.nTrans++
	a.invalidateTransitions(from, to)

	a.logger.Debug("automaton: transition added", "automaton", a.id, "transition", t.String())
	a.emitTransition(t, TransitionAdded)

	return nil
}

// ReplaceTransition swaps old for repl, keeping its position in the adjacency lists.
//
// Implementation:
//   - Stage 1: admit(repl) exactly like AddTransition.
//   - Stage 2: old Equal repl → no-op.
//   - Stage 3: repl already stored → behaves as RemoveTransition(old).
//   - Stage 4: old absent → ErrInvalidReplace.
//   - Stage 5: Overwrite old in place in both lists. If an endpoint differs, old
//     leaves that endpoint's list and repl is appended to the new endpoint's list.
//   - Stage 6: Drop arrays of every touched endpoint plus the global array; emit
//     TransitionChanged carrying repl.
//
// Errors:
//   - ErrNilTransition, ErrIncompatibleTransition, ErrStateNotFound: see AddTransition.
//   - ErrInvalidReplace: old is not stored.
//
// Complexity:
//   - Time O(deg(from)+deg(to)), Space O(1).
func (a *Automaton) ReplaceTransition(old, repl Transition) error {
	a.guard()
	if err := a.admit(repl); err != nil {
		return err
	}
	if old == nil {
		return fmt.Errorf("%w: old transition is nil", ErrInvalidReplace)
	}
	if old.Equal(repl) {
		return nil
	}
	if indexOf(a.fromIndex[repl.From()], repl) >= 0 {
		a.RemoveTransition(old)
		return nil
	}
	oldFrom, oldTo := old.From(), old.To()
	fi := indexOf(a.fromIndex[oldFrom], old)
	if fi < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidReplace, old)
	}
	ti := indexOf(a.toIndex[oldTo], old)

	newFrom, newTo := repl.From(), repl.To()
	if newFrom == oldFrom {
		a.fromIndex[oldFrom][fi] = repl
	} else {
		a.fromIndex[oldFrom] = deleteAt(a.fromIndex[oldFrom], fi)
		a.fromIndex[newFrom] = append(a.fromIndex[newFrom], repl)
	}
	if newTo == oldTo {
		a.toIndex[oldTo][ti] = repl
	} else {
		a.toIndex[oldTo] = deleteAt(a.toIndex[oldTo], ti)
		a.toIndex[newTo] = append(a.toIndex[newTo], repl)
	}
	a.invalidateTransitions(oldFrom, oldTo)
	a.invalidateTransitions(newFrom, newTo)

	a.logger.Debug("automaton: transition replaced", "automaton", a.id,
		"old", old.String(), "new", repl.String())
	a.emitTransition(repl, TransitionChanged)

	return nil
}

// RemoveTransition deletes the stored transition Equal to t.
// Absent (or nil) transitions are ignored: no error, no event.
// The TransitionRemoved event carries the stored instance.
//
// Complexity: O(deg(from)+deg(to)).
func (a *Automaton) RemoveTransition(t Transition) {
	a.guard()
	if t == nil {
		return
	}
	from, to := t.From(), t.To()
	fi := indexOf(a.fromIndex[from], t)
	if fi < 0 {
		return
	}
	stored := a.fromIndex[from][fi]
	a.fromIndex[from] = deleteAt(a.fromIndex[from], fi)
	if ti := indexOf(a.toIndex[to], t); ti >= 0 {
		a.toIndex[to] = deleteAt(a.toIndex[to], ti)
	}
	a.nTrans--
	a.invalidateTransitions(from, to)

	a.logger.Debug("automaton: transition removed", "automaton", a.id, "transition", stored.String())
	a.emitTransition(stored, TransitionRemoved)
}

// admit validates a transition before it may enter the automaton.
func (a *Automaton) admit(t Transition) error {
	if t == nil {
		return ErrNilTransition
	}
	want := a.machine.TransitionKind()
	if want != AnyTransition && t.Kind() != want {
		return fmt.Errorf("%w: %s transition on %s machine", ErrIncompatibleTransition, t.Kind(), a.machine.Name())
	}
	if v, ok := a.machine.(TransitionValidator); ok {
		if err := v.ValidateTransition(t); err != nil {
			return err
		}
	}
	if !a.IsState(t.From()) || !a.IsState(t.To()) {
		return fmt.Errorf("%w: endpoint of %s", ErrStateNotFound, t)
	}

	return nil
}

// invalidateTransitions drops every cache a change to from→to can affect.
func (a *Automaton) invalidateTransitions(from, to *State) {
	delete(a.fromCache, from)
	delete(a.toCache, to)
	a.cachedTransitions = nil
}

// indexOf returns the position of the transition Equal to t, or -1.
func indexOf(list []Transition, t Transition) int {
	return slices.IndexFunc(list, func(x Transition) bool { return x.Equal(t) })
}

// deleteAt removes list[i] preserving order.
func deleteAt(list []Transition, i int) []Transition {
	return slices.Delete(list, i, i+1)
}
