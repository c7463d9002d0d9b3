// SPDX-License-Identifier: MIT

package automaton_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/automata/automaton"
	"github.com/katalvlaran/automata/fsa"
)

func TestListeners_EventOrder(t *testing.T) {
	a := fsa.New()
	rec := &recorder{}
	rec.attach(a)

	q0 := a.CreateState(automaton.Point{})
	q1 := a.CreateState(automaton.Point{})
	require.NoError(t, a.AddTransition(fsa.NewTransition(q0, q1, LabelA)))
	require.NoError(t, a.AddTransition(fsa.NewTransition(q1, q1, LabelB)))
	q1.SetPoint(automaton.Point{X: 1})
	q1.SetLabel("end")
	a.RemoveState(q1)

	assert.Equal(t, []string{
		"state:added:q0",
		"state:added:q1",
		"transition:added:q0 -a-> q1",
		"transition:added:q1 -b-> q1",
		`state:moved:q1`,
		`state:relabeled:q1 "end"`,
		// Outgoing first (the self-loop, announced once), then incoming, then the state.
		`transition:removed:q1 "end" -b-> q1 "end"`,
		`transition:removed:q0 -a-> q1 "end"`,
		`state:removed:q1 "end"`,
	}, rec.events)
}

func TestListeners_StateStillReadableOnRemove(t *testing.T) {
	a, qs := chain(t)
	var member, final bool
	a.AddStateListener(automaton.StateListenerFunc(func(e automaton.StateEvent) {
		if e.IsRemove() {
			member = e.Automaton.IsState(e.State)
			final = e.Automaton.IsFinalState(e.State)
		}
	}))
	a.RemoveState(qs[2])
	assert.True(t, member)
	assert.True(t, final)
	assert.False(t, a.IsFinalState(qs[2]))
}

func TestListeners_RegistrationOrderAndRemove(t *testing.T) {
	a := fsa.New()
	var got []string
	removeFirst := a.AddStateListener(automaton.StateListenerFunc(func(automaton.StateEvent) { got = append(got, "first") }))
	a.AddStateListener(automaton.StateListenerFunc(func(automaton.StateEvent) { got = append(got, "second") }))
	a.AddStateListener(nil)
	require.Equal(t, 2, a.StateListenerCount())

	a.CreateState(automaton.Point{})
	assert.Equal(t, []string{"first", "second"}, got)

	removeFirst()
	removeFirst() // harmless
	assert.Equal(t, 1, a.StateListenerCount())

	got = nil
	a.CreateState(automaton.Point{})
	assert.Equal(t, []string{"second"}, got)
}

func TestListeners_DuplicateRegistrationDeliversTwice(t *testing.T) {
	a := fsa.New()
	rec := &recorder{}
	a.AddTransitionListener(rec)
	a.AddTransitionListener(rec)
	require.Equal(t, 2, a.TransitionListenerCount())

	q0 := a.CreateState(automaton.Point{})
	require.NoError(t, a.AddTransition(fsa.NewTransition(q0, q0, LabelA)))
	assert.Len(t, rec.events, 2)
}

// TestListeners_RemoveDuringDispatch removes the second listener from inside the
// first: the in-flight event still reaches it, later events do not.
func TestListeners_RemoveDuringDispatch(t *testing.T) {
	a := fsa.New()
	calls := 0
	var removeSecond func()
	a.AddStateListener(automaton.StateListenerFunc(func(automaton.StateEvent) { removeSecond() }))
	removeSecond = a.AddStateListener(automaton.StateListenerFunc(func(automaton.StateEvent) { calls++ }))

	a.CreateState(automaton.Point{})
	a.CreateState(automaton.Point{})
	assert.Equal(t, 1, calls)
}

func TestListeners_ReentrantMutationPanics(t *testing.T) {
	a := fsa.New()
	a.AddStateListener(automaton.StateListenerFunc(func(e automaton.StateEvent) {
		// Reads are allowed.
		_ = e.Automaton.States()
		_ = e.Automaton.TransitionsFrom(e.State)
		if e.IsAdd() && e.State.ID() == 0 {
			e.Automaton.CreateState(automaton.Point{})
		}
	}))

	assert.PanicsWithValue(t, automaton.ErrReentrantMutation, func() {
		a.CreateState(automaton.Point{})
	})

	// The dispatch counter unwinds with the panic: the container is usable again.
	assert.NotPanics(t, func() { a.RemoveFinalState(nil) })
}

func TestEvent_Predicates(t *testing.T) {
	assert.True(t, automaton.StateEvent{Change: automaton.StateAdded}.IsAdd())
	assert.True(t, automaton.StateEvent{Change: automaton.StateRemoved}.IsRemove())
	assert.True(t, automaton.StateEvent{Change: automaton.StateMoved}.IsAttributeChange())
	assert.True(t, automaton.StateEvent{Change: automaton.StateRelabeled}.IsAttributeChange())
	assert.False(t, automaton.StateEvent{Change: automaton.StateAdded}.IsAttributeChange())
	assert.True(t, automaton.TransitionEvent{Change: automaton.TransitionAdded}.IsAdd())
	assert.True(t, automaton.TransitionEvent{Change: automaton.TransitionRemoved}.IsRemove())
	assert.Equal(t, "changed", automaton.TransitionChanged.String())
	assert.Equal(t, "unknown", automaton.StateChange(0).String())
}
