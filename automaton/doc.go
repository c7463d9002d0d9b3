// SPDX-License-Identifier: MIT
//
// Package automaton provides the structural container for state-machine graphs:
// finite automata, pushdown automata, Turing machines and anything else that can
// be described as states joined by directed, kind-specific transitions.
//
// The container does NOT simulate machines. It keeps a consistent, queryable and
// mutable graph G = (Q, q0, F, δ) that simulators, editors and renderers observe
// and modify:
//
//   - Q : states, minted only by the container (CreateState / RestoreState)
//   - q0: at most one initial state (SetInitialState)
//   - F : final states, a subset of Q (AddFinalState / RemoveFinalState)
//   - δ : transitions, unique by Transition.Equal (AddTransition / ReplaceTransition / RemoveTransition)
//
// Indexing:
//
//	fromIndex[q] = ordered outgoing transitions of q
//	toIndex[q]   = ordered incoming transitions of q
//
// Every live state owns an entry in both indices for its whole life. Removing a
// state first removes every incident transition (outgoing, then incoming), then
// announces the state removal, then drops it from Q, F and q0.
//
// Caching:
//
// States(), FinalStates(), Transitions(), TransitionsFrom() and TransitionsTo()
// are served from lazily built arrays. Each mutation invalidates exactly the
// arrays it can change: a new transition q→p drops the cached from-array of q,
// the cached to-array of p and the global transition array, and nothing else.
// Returned slices are shared with the cache and MUST be treated as read-only.
//
// Machine kinds:
//
// An Automaton is bound to a Machine at construction. The Machine names the
// transition kind it accepts (AnyTransition for the generic container) and the
// construction parameters needed to rebuild it (a Turing machine's tape count).
// Kind packages (fsa, pda, turing) register a MachineInfo and a PayloadDecoder,
// so Clone and the codec package can rebuild any kind without inspecting it.
//
// Notifications:
//
//	AddStateListener(l)      // StateAdded, StateRemoved, StateMoved, StateRelabeled
//	AddTransitionListener(l) // TransitionAdded, TransitionRemoved, TransitionChanged
//
// Delivery is synchronous, in registration order, before the mutating call
// returns. Listeners may read the automaton; mutating it from inside a callback
// panics with ErrReentrantMutation.
//
// Concurrency:
//
// None. An Automaton assumes a single goroutine; wrap it if you need sharing.
//
// Errors:
//
//	ErrNilTransition          - nil transition passed to Add/Replace.
//	ErrStateNotFound          - transition endpoint is not a live state of this automaton.
//	ErrIncompatibleTransition - transition kind rejected by the machine.
//	ErrInvalidReplace         - ReplaceTransition on a transition that is not present.
//	ErrCloneFailed            - Clone could not rebuild the machine kind.
//	ErrUnknownMachine         - machine kind is not registered.
//	ErrDuplicateStateID       - RestoreState with an id already in use.
//	ErrNegativeStateID        - RestoreState with id < 0.
//	ErrStateIDRange           - RestoreState with id > MaxStateID.
//	ErrReentrantMutation      - mutation attempted from inside a listener callback.
package automaton
