// SPDX-License-Identifier: MIT

package automaton_test

import (
	"fmt"

	"github.com/katalvlaran/automata/automaton"
	"github.com/katalvlaran/automata/fsa"
)

// ExampleAutomaton builds a two-state recognizer for "ab*" and edits it.
func ExampleAutomaton() {
	a := fsa.New()
	q0 := a.CreateState(automaton.Point{X: 0, Y: 0})
	q1 := a.CreateState(automaton.Point{X: 120, Y: 0})
	a.SetInitialState(q0)
	a.AddFinalState(q1)

	_ = a.AddTransition(fsa.NewTransition(q0, q1, "a"))
	_ = a.AddTransition(fsa.NewTransition(q1, q1, "b"))

	fmt.Println("states:", a.StateCount(), "transitions:", a.TransitionCount())
	for _, t := range a.TransitionsFrom(q1) {
		fmt.Println("from q1:", t)
	}

	a.RemoveState(q1)
	fmt.Println("after removing q1:", a.StateCount(), a.TransitionCount(), len(a.FinalStates()))

	// Output:
	// states: 2 transitions: 2
	// from q1: q1 -b-> q1
	// after removing q1: 1 0 0
}

// ExampleAutomaton_AddStateListener prints structural events as they happen.
func ExampleAutomaton_AddStateListener() {
	a := fsa.New()
	remove := a.AddStateListener(automaton.StateListenerFunc(func(e automaton.StateEvent) {
		fmt.Println(e.Change, e.State)
	}))
	a.AddTransitionListener(automaton.TransitionListenerFunc(func(e automaton.TransitionEvent) {
		fmt.Println(e.Change, e.Transition)
	}))

	q0 := a.CreateState(automaton.Point{})
	_ = a.AddTransition(fsa.NewTransition(q0, q0, "x"))
	q0.SetLabel("start")
	remove()
	a.RemoveState(q0)

	// Output:
	// added q0
	// added q0 -x-> q0
	// relabeled q0 "start"
	// removed q0 "start" -x-> q0 "start"
}

// ExampleAutomaton_Clone copies an automaton; the copy evolves independently.
func ExampleAutomaton_Clone() {
	a := fsa.New()
	q0 := a.CreateState(automaton.Point{})
	_ = a.AddTransition(fsa.NewTransition(q0, q0, "a"))

	c, err := a.Clone()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	c.CreateState(automaton.Point{})

	fmt.Println(a.StateCount(), c.StateCount(), c.TransitionCount())
	fmt.Println(c.StateWithID(0) == q0)

	// Output:
	// 1 2 1
	// false
}
