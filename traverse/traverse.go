// SPDX-License-Identifier: MIT
//
// File: traverse.go
// Role: breadth-first walker over TransitionsFrom.
//
// Determinism:
//   - Neighbours are expanded in TransitionsFrom order, so Order is stable for a
//     given automaton state.

package traverse

import (
	"fmt"

	"github.com/katalvlaran/automata/automaton"
)

type queueItem struct {
	state *automaton.State
	depth int
}

// walker encapsulates mutable traversal state.
type walker struct {
	a     *automaton.Automaton
	opts  Options
	queue []queueItem
	res   *Result
}

// Reachable walks a breadth-first from start.
//
// Errors:
//   - ErrAutomatonNil, ErrStartNotFound, ErrOptionViolation for invalid input.
//   - ctx.Err() on cancellation, or the OnVisit error (wrapped).
//
// Complexity: O(V + E).
func Reachable(a *automaton.Automaton, start *automaton.State, opts ...Option) (*Result, error) {
	if a == nil {
		return nil, ErrAutomatonNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !a.IsState(start) {
		return nil, ErrStartNotFound
	}

	n := a.StateCount()
	w := &walker{
		a:     a,
		opts:  o,
		queue: make([]queueItem, 0, n),
		res: &Result{
			Start:  start,
			Order:  make([]*automaton.State, 0, n),
			Depth:  make(map[*automaton.State]int, n),
			Parent: make(map[*automaton.State]*automaton.State, n),
			Via:    make(map[*automaton.State]automaton.Transition, n),
		},
	}
	w.enqueue(start, 0, nil)

	return w.res, w.loop()
}

// FromInitial walks from the initial state.
func FromInitial(a *automaton.Automaton, opts ...Option) (*Result, error) {
	if a == nil {
		return nil, ErrAutomatonNil
	}
	q0 := a.InitialState()
	if q0 == nil {
		return nil, ErrNoInitialState
	}

	return Reachable(a, q0, opts...)
}

// Unreachable returns the states not reachable from the initial state, id ascending.
func Unreachable(a *automaton.Automaton) ([]*automaton.State, error) {
	res, err := FromInitial(a)
	if err != nil {
		return nil, err
	}
	out := make([]*automaton.State, 0)
	for _, s := range a.States() {
		if !res.Reached(s) {
			out = append(out, s)
		}
	}

	return out, nil
}

func (w *walker) enqueue(s *automaton.State, depth int, via automaton.Transition) {
	w.res.Depth[s] = depth
	if via != nil {
		w.res.Parent[s] = via.From()
		w.res.Via[s] = via
	}
	w.queue = append(w.queue, queueItem{state: s, depth: depth})
}

func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, item.state)
		if err := w.opts.OnVisit(item.state, item.depth); err != nil {
			return fmt.Errorf("traverse: OnVisit error at %s: %w", item.state, err)
		}
		if w.opts.MaxDepth > 0 && item.depth >= w.opts.MaxDepth {
			continue
		}
		for _, t := range w.a.TransitionsFrom(item.state) {
			if !w.opts.Filter(t) {
				continue
			}
			if _, seen := w.res.Depth[t.To()]; seen {
				continue
			}
			w.enqueue(t.To(), item.depth+1, t)
		}
	}

	return nil
}
