// SPDX-License-Identifier: MIT

package traverse_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/automata/automaton"
	"github.com/katalvlaran/automata/fsa"
	"github.com/katalvlaran/automata/traverse"
)

// diamond builds q0→q1, q0→q2, q1→q3, q2→q3, q3→q0 plus an isolated q4.
func diamond(t *testing.T) (*automaton.Automaton, []*automaton.State) {
	t.Helper()
	a := fsa.New()
	qs := make([]*automaton.State, 5)
	for i := range qs {
		qs[i] = a.CreateState(automaton.Point{})
	}
	for _, e := range [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}, {3, 0}} {
		require.NoError(t, a.AddTransition(fsa.NewTransition(qs[e[0]], qs[e[1]], "x")))
	}
	a.SetInitialState(qs[0])

	return a, qs
}

func TestReachable_Errors(t *testing.T) {
	_, err := traverse.Reachable(nil, nil)
	assert.ErrorIs(t, err, traverse.ErrAutomatonNil)

	a, _ := diamond(t)
	foreign := fsa.New().CreateState(automaton.Point{})
	_, err = traverse.Reachable(a, foreign)
	assert.ErrorIs(t, err, traverse.ErrStartNotFound)

	_, err = traverse.Reachable(a, a.InitialState(), traverse.WithMaxDepth(-1))
	assert.ErrorIs(t, err, traverse.ErrOptionViolation)

	_, err = traverse.FromInitial(fsa.New())
	assert.ErrorIs(t, err, traverse.ErrNoInitialState)
	_, err = traverse.FromInitial(nil)
	assert.ErrorIs(t, err, traverse.ErrAutomatonNil)
}

func TestFromInitial_OrderAndDepth(t *testing.T) {
	a, qs := diamond(t)
	res, err := traverse.FromInitial(a)
	require.NoError(t, err)

	assert.Equal(t, []*automaton.State{qs[0], qs[1], qs[2], qs[3]}, res.Order)
	assert.Equal(t, 0, res.Depth[qs[0]])
	assert.Equal(t, 1, res.Depth[qs[2]])
	assert.Equal(t, 2, res.Depth[qs[3]])
	assert.Same(t, qs[1], res.Parent[qs[3]])
	assert.False(t, res.Reached(qs[4]))

	path, err := res.PathTo(qs[3])
	require.NoError(t, err)
	require.Len(t, path, 2)
	assert.Equal(t, "q0 -x-> q1", path[0].String())
	assert.Equal(t, "q1 -x-> q3", path[1].String())

	path, err = res.PathTo(qs[0])
	require.NoError(t, err)
	assert.Empty(t, path)

	_, err = res.PathTo(qs[4])
	assert.ErrorIs(t, err, traverse.ErrNotReached)
}

func TestUnreachable(t *testing.T) {
	a, qs := diamond(t)
	got, err := traverse.Unreachable(a)
	require.NoError(t, err)
	assert.Equal(t, []*automaton.State{qs[4]}, got)

	a.RemoveTransition(fsa.NewTransition(qs[0], qs[2], "x"))
	got, err = traverse.Unreachable(a)
	require.NoError(t, err)
	assert.Equal(t, []*automaton.State{qs[2], qs[4]}, got)
}

func TestOptions(t *testing.T) {
	a, qs := diamond(t)

	t.Run("max depth", func(t *testing.T) {
		res, err := traverse.FromInitial(a, traverse.WithMaxDepth(1))
		require.NoError(t, err)
		assert.Len(t, res.Order, 3)
		assert.False(t, res.Reached(qs[3]))
	})

	t.Run("filter", func(t *testing.T) {
		res, err := traverse.FromInitial(a, traverse.WithFilter(func(tr automaton.Transition) bool {
			return tr.To() != qs[1]
		}))
		require.NoError(t, err)
		assert.Equal(t, []*automaton.State{qs[0], qs[2], qs[3]}, res.Order)
	})

	t.Run("on visit error", func(t *testing.T) {
		stop := errors.New("stop")
		visited := 0
		_, err := traverse.FromInitial(a, traverse.WithOnVisit(func(s *automaton.State, _ int) error {
			visited++
			if s == qs[2] {
				return stop
			}
			return nil
		}))
		assert.ErrorIs(t, err, stop)
		assert.Equal(t, 3, visited)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := traverse.FromInitial(a, traverse.WithContext(ctx))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

// TestInsideListener walks the graph from a listener callback (reads only).
func TestInsideListener(t *testing.T) {
	a, qs := diamond(t)
	var reached int
	a.AddTransitionListener(automaton.TransitionListenerFunc(func(e automaton.TransitionEvent) {
		res, err := traverse.FromInitial(e.Automaton)
		if err == nil {
			reached = len(res.Order)
		}
	}))
	require.NoError(t, a.AddTransition(fsa.NewTransition(qs[3], qs[4], "y")))
	assert.Equal(t, 5, reached)
}
