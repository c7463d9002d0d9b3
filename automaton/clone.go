// SPDX-License-Identifier: MIT
//
// File: clone.go
// Role: Deep copy of an automaton into an independent instance of the same kind.
//
// Determinism:
//   - States are restored in id order; transitions are copied state by state in
//     the source's outgoing order, so the clone's adjacency order matches.
//
// AI-HINT (file):
//   - The clone gets a fresh ID and no listeners; the logger is shared.

package automaton

import "fmt"

// Clone returns an independent, structurally identical automaton of the same kind.
//
// Implementation:
//   - Stage 1: Rebuild the machine through the registry from Machine().Name() and
//     Machine().Params() (e.g. a Turing machine keeps its tape count).
//   - Stage 2: RestoreState every source state (id, point, label), recording source→clone.
//   - Stage 3: Re-create final marks and the initial state through the mapping.
//   - Stage 4: For every state, copy each outgoing transition with WithEndpoints
//     over the mapped states and AddTransition it.
//
// Returns:
//   - *Automaton: the clone; nil on failure.
//
// Errors:
//   - ErrCloneFailed, wrapping the cause (ErrUnknownMachine, a factory error, ...).
//
// Complexity:
//   - Time O(V log V + E·d), Space O(V + E).
//
// Notes:
//   - Failure is recoverable: the source is not touched and nothing partial escapes.
//   - Final marks or an initial state pointing outside the automaton (both are
//     unchecked writes) do not survive the copy.
func (a *Automaton) Clone() (*Automaton, error) {
	c, err := a.clone()
	if err != nil {
		a.logger.Warn("automaton: clone failed", "automaton", a.id, "machine", a.machine.Name(), "error", err)
		return nil, fmt.Errorf("%w: %w", ErrCloneFailed, err)
	}

	return c, nil
}

func (a *Automaton) clone() (*Automaton, error) {
	c, err := NewFromParams(a.machine.Name(), a.machine.Params(), WithLogger(a.logger))
	if err != nil {
		return nil, err
	}

	mapping := make(map[*State]*State, len(a.states))
	for _, s := range a.States() {
		ns, err := c.RestoreState(s.id, s.point, s.label)
		if err != nil {
			return nil, err
		}
		mapping[s] = ns
	}

	for _, s := range a.FinalStates() {
		if ns, ok := mapping[s]; ok {
			c.AddFinalState(ns)
		}
	}
	if ns, ok := mapping[a.initial]; ok {
		c.SetInitialState(ns)
	}

	for _, s := range a.States() {
		from := mapping[s]
		for _, t := range a.TransitionsFrom(s) {
			if err = c.AddTransition(t.WithEndpoints(from, mapping[t.To()])); err != nil {
				return nil, err
			}
		}
	}

	return c, nil
}
