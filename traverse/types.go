// SPDX-License-Identifier: MIT
//
// Package traverse provides breadth-first reachability over an automaton.
//
// It uses only the read-only surface a simulator is expected to use
// (InitialState, TransitionsFrom, IsState), so it never mutates the graph and
// is safe to call from inside a listener callback.
package traverse

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/automata/automaton"
)

// Sentinel errors for traversal.
var (
	// ErrAutomatonNil is returned if a nil automaton is passed.
	ErrAutomatonNil = errors.New("traverse: automaton is nil")

	// ErrStartNotFound is returned when the start state is not a live state of the automaton.
	ErrStartNotFound = errors.New("traverse: start state not found")

	// ErrNoInitialState is returned by FromInitial and Unreachable when no initial state is set.
	ErrNoInitialState = errors.New("traverse: automaton has no initial state")

	// ErrNotReached is returned by PathTo for a state the traversal never reached.
	ErrNotReached = errors.New("traverse: state not reached")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("traverse: invalid option supplied")
)

// Option configures a traversal.
// Invalid options are recorded and surfaced as ErrOptionViolation when the traversal starts.
type Option func(*Options)

// Options holds traversal parameters and hooks.
type Options struct {
	// Ctx allows cancellation; checked once per dequeued state.
	Ctx context.Context

	// MaxDepth, if > 0, stops expanding states at this depth.
	MaxDepth int

	// OnVisit runs for every visited state; a non-nil error aborts the traversal.
	OnVisit func(s *automaton.State, depth int) error

	// Filter can skip transitions by returning false.
	Filter func(t automaton.Transition) bool

	err error
}

// DefaultOptions returns background context, no depth limit, no-op hooks and no filtering.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		OnVisit: func(*automaton.State, int) error { return nil },
		Filter:  func(automaton.Transition) bool { return true },
	}
}

// WithContext sets a context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxDepth limits expansion to depth d (d == 0 means no limit, d < 0 is invalid).
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithOnVisit registers a visit hook.
func WithOnVisit(fn func(s *automaton.State, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithFilter skips transitions for which fn returns false.
func WithFilter(fn func(t automaton.Transition) bool) Option {
	return func(o *Options) {
		if fn != nil {
			o.Filter = fn
		}
	}
}

// Result holds the outcome of a traversal:
//   - Order: states in visit order.
//   - Depth: transitions needed to reach each state from the start.
//   - Parent: predecessor of each reached state (the start has none).
//   - Via: the transition used to reach each state from its parent.
type Result struct {
	Start  *automaton.State
	Order  []*automaton.State
	Depth  map[*automaton.State]int
	Parent map[*automaton.State]*automaton.State
	Via    map[*automaton.State]automaton.Transition
}

// Reached reports whether s was visited.
func (r *Result) Reached(s *automaton.State) bool {
	_, ok := r.Depth[s]
	return ok
}

// PathTo returns the transitions leading from the start to dest, in order.
// The path to the start itself is empty.
func (r *Result) PathTo(dest *automaton.State) ([]automaton.Transition, error) {
	if !r.Reached(dest) {
		return nil, fmt.Errorf("%w: %s", ErrNotReached, dest)
	}
	path := make([]automaton.Transition, r.Depth[dest])
	for cur, i := dest, len(path)-1; cur != r.Start; cur, i = r.Parent[cur], i-1 {
		path[i] = r.Via[cur]
	}

	return path, nil
}
