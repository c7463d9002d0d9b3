// SPDX-License-Identifier: MIT
// Package automaton_test contains shared fixtures for the automaton tests.
//
// Purpose:
//   - Build small deterministic graphs with the fsa kind.
//   - Record listener events in delivery order.

package automaton_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/automata/automaton"
	"github.com/katalvlaran/automata/fsa"
)

// Common labels used across tests.
const (
	LabelA = "a"
	LabelB = "b"
)

// chain builds an fsa automaton q0 -a-> q1 -b-> q2 with q0 initial and q2 final.
func chain(t *testing.T) (*automaton.Automaton, []*automaton.State) {
	t.Helper()
	a := fsa.New()
	qs := []*automaton.State{
		a.CreateState(automaton.Point{X: 0}),
		a.CreateState(automaton.Point{X: 100}),
		a.CreateState(automaton.Point{X: 200}),
	}
	require.NoError(t, a.AddTransition(fsa.NewTransition(qs[0], qs[1], LabelA)))
	require.NoError(t, a.AddTransition(fsa.NewTransition(qs[1], qs[2], LabelB)))
	a.SetInitialState(qs[0])
	a.AddFinalState(qs[2])

	return a, qs
}

// recorder captures events as short strings ("state:added:0", "transition:removed:q0 -a-> q1").
type recorder struct {
	events []string
}

func (r *recorder) StateChanged(e automaton.StateEvent) {
	r.events = append(r.events, "state:"+e.Change.String()+":"+e.State.String())
}

func (r *recorder) TransitionChanged(e automaton.TransitionEvent) {
	r.events = append(r.events, "transition:"+e.Change.String()+":"+e.Transition.String())
}

// attach registers r for both families.
func (r *recorder) attach(a *automaton.Automaton) {
	a.AddStateListener(r)
	a.AddTransitionListener(r)
}

// unregisteredMachine has no MachineInfo, so it cannot be cloned or decoded.
type unregisteredMachine struct{}

func (unregisteredMachine) Name() string                             { return "unregistered" }
func (unregisteredMachine) TransitionKind() automaton.TransitionKind { return automaton.AnyTransition }
func (unregisteredMachine) Params() automaton.Params                 { return nil }
