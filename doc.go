// SPDX-License-Identifier: MIT
//
// Package automata is the module root of an in-memory container for
// automaton graphs: states, an initial state, final states and typed
// transitions, kept consistent under editing and observable by listeners.
//
// Subpackages:
//
//	automaton/  the container: indices, caches, listeners, Clone, kind registry
//	fsa/        finite-state automata (label transitions)
//	pda/        pushdown automata (input, pop, push)
//	turing/     multi-tape Turing machines (read, write, move per tape)
//	codec/      versioned binary record: Marshal/Unmarshal, Encode/Decode
//	traverse/   breadth-first reachability from a state or the initial state
//	observe/    slog and Prometheus listeners, fan-out
//
// Quick example:
//
//	a := fsa.New()
//	q0 := a.CreateState(automaton.Point{})
//	q1 := a.CreateState(automaton.Point{X: 120})
//	a.SetInitialState(q0)
//	a.AddFinalState(q1)
//	_ = a.AddTransition(fsa.NewTransition(q0, q1, "a"))
//
//	b, _ := codec.Marshal(a)
//	restored, _ := codec.Unmarshal(b)
//
// Simulation, layout and editors live outside this module; they read the
// container and subscribe to its events.
package automata
