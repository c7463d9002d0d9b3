// SPDX-License-Identifier: MIT
//
// File: errors.go
// Role: sentinel errors for the automaton package.
//
// Error policy:
//   - Only package-level sentinels are exposed; branch with errors.Is.
//   - Context is attached with fmt.Errorf("...: %w", ErrX) at the call site.
//   - Removing absent items, toggling final membership of a non-member and
//     setting an unchecked initial state are no-ops or plain writes, not errors.

package automaton

import "errors"

var (
	// ErrNilTransition indicates a nil Transition was passed to AddTransition or ReplaceTransition.
	ErrNilTransition = errors.New("automaton: transition is nil")

	// ErrStateNotFound indicates a transition endpoint is not a live state of the automaton.
	ErrStateNotFound = errors.New("automaton: state not found")

	// ErrIncompatibleTransition indicates the transition kind is not accepted by the machine.
	ErrIncompatibleTransition = errors.New("automaton: incompatible transition kind")

	// ErrInvalidReplace indicates ReplaceTransition was asked to replace an absent transition.
	ErrInvalidReplace = errors.New("automaton: replaced transition is not present")

	// ErrCloneFailed indicates Clone could not construct a target of the source's kind.
	// The source is left untouched and no partial automaton is returned.
	ErrCloneFailed = errors.New("automaton: clone failed")

	// ErrUnknownMachine indicates a machine kind with no registered MachineInfo.
	ErrUnknownMachine = errors.New("automaton: unknown machine kind")

	// ErrDuplicateStateID indicates RestoreState was given an id that is already in use.
	ErrDuplicateStateID = errors.New("automaton: duplicate state id")

	// ErrNegativeStateID indicates RestoreState was given a negative id.
	ErrNegativeStateID = errors.New("automaton: negative state id")

	// ErrStateIDRange indicates RestoreState was given an id above MaxStateID.
	ErrStateIDRange = errors.New("automaton: state id out of range")

	// ErrReentrantMutation is the panic value raised when a listener callback
	// mutates the automaton that is delivering the event.
	ErrReentrantMutation = errors.New("automaton: mutation from inside a listener callback")
)
