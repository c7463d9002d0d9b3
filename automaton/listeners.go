// SPDX-License-Identifier: MIT
//
// File: listeners.go
// Role: Change-notification registry: two listener lists, one dispatch point per family.
//
// Delivery:
//   - Synchronous, on the caller's goroutine, in registration order.
//   - No buffering, coalescing or cancellation.
//   - Listeners may read the automaton; mutating it panics with ErrReentrantMutation.
//
// AI-HINT (file):
//   - Registration returns a remove func; calling it twice is harmless.
//   - Removing a listener from inside a callback is allowed: dispatch iterates a snapshot.

package automaton

// StateChange says what happened to a state.
type StateChange uint8

const (
	// StateAdded is emitted by CreateState and RestoreState.
	StateAdded StateChange = iota + 1
	// StateRemoved is emitted by RemoveState, after the incident transitions are gone.
	StateRemoved
	// StateMoved is emitted by State.SetPoint.
	StateMoved
	// StateRelabeled is emitted by State.SetLabel.
	StateRelabeled
)

// String returns the change name.
func (c StateChange) String() string {
	switch c {
	case StateAdded:
		return "added"
	case StateRemoved:
		return "removed"
	case StateMoved:
		return "moved"
	case StateRelabeled:
		return "relabeled"
	default:
		return "unknown"
	}
}

// TransitionChange says what happened to a transition.
type TransitionChange uint8

const (
	// TransitionAdded is emitted by AddTransition.
	TransitionAdded TransitionChange = iota + 1
	// TransitionRemoved is emitted by RemoveTransition (and the RemoveState cascade).
	TransitionRemoved
	// TransitionChanged is emitted by ReplaceTransition; the event carries the replacement.
	TransitionChanged
)

// String returns the change name.
func (c TransitionChange) String() string {
	switch c {
	case TransitionAdded:
		return "added"
	case TransitionRemoved:
		return "removed"
	case TransitionChanged:
		return "changed"
	default:
		return "unknown"
	}
}

// StateEvent describes one structural change to a state.
type StateEvent struct {
	Automaton *Automaton
	State     *State
	Change    StateChange
}

// IsAdd reports a StateAdded event.
func (e StateEvent) IsAdd() bool { return e.Change == StateAdded }

// IsRemove reports a StateRemoved event.
func (e StateEvent) IsRemove() bool { return e.Change == StateRemoved }

// IsAttributeChange reports a move or relabel.
func (e StateEvent) IsAttributeChange() bool {
	return e.Change == StateMoved || e.Change == StateRelabeled
}

// TransitionEvent describes one structural change to a transition.
type TransitionEvent struct {
	Automaton  *Automaton
	Transition Transition
	Change     TransitionChange
}

// IsAdd reports a TransitionAdded event.
func (e TransitionEvent) IsAdd() bool { return e.Change == TransitionAdded }

// IsRemove reports a TransitionRemoved event.
func (e TransitionEvent) IsRemove() bool { return e.Change == TransitionRemoved }

// StateListener observes state events.
type StateListener interface {
	StateChanged(e StateEvent)
}

// TransitionListener observes transition events.
type TransitionListener interface {
	TransitionChanged(e TransitionEvent)
}

// StateListenerFunc adapts a function to StateListener.
type StateListenerFunc func(e StateEvent)

// StateChanged calls f(e).
func (f StateListenerFunc) StateChanged(e StateEvent) { f(e) }

// TransitionListenerFunc adapts a function to TransitionListener.
type TransitionListenerFunc func(e TransitionEvent)

// TransitionChanged calls f(e).
func (f TransitionListenerFunc) TransitionChanged(e TransitionEvent) { f(e) }

type stateSub struct {
	id uint64
	l  StateListener
}

type transitionSub struct {
	id uint64
	l  TransitionListener
}

// AddStateListener registers l and returns a func that unregisters it.
// Registering the same listener twice delivers every event twice. Nil is ignored.
func (a *Automaton) AddStateListener(l StateListener) (remove func()) {
	if l == nil {
		return func() {}
	}
	a.nextSubID++
	id := a.nextSubID
	a.stateSubs = append(a.stateSubs, stateSub{id: id, l: l})

	return func() {
		for i, sub := range a.stateSubs {
			if sub.id == id {
				// Fresh backing array: an in-flight dispatch keeps its snapshot intact.
				a.stateSubs = append(a.stateSubs[:i:i], a.stateSubs[i+1:]...)
				return
			}
		}
	}
}

// AddTransitionListener registers l and returns a func that unregisters it.
// Registering the same listener twice delivers every event twice. Nil is ignored.
func (a *Automaton) AddTransitionListener(l TransitionListener) (remove func()) {
	if l == nil {
		return func() {}
	}
	a.nextSubID++
	id := a.nextSubID
	a.transitionSubs = append(a.transitionSubs, transitionSub{id: id, l: l})

	return func() {
		for i, sub := range a.transitionSubs {
			if sub.id == id {
				a.transitionSubs = append(a.transitionSubs[:i:i], a.transitionSubs[i+1:]...)
				return
			}
		}
	}
}

// StateListenerCount returns the number of registered state listeners.
func (a *Automaton) StateListenerCount() int { return len(a.stateSubs) }

// TransitionListenerCount returns the number of registered transition listeners.
func (a *Automaton) TransitionListenerCount() int { return len(a.transitionSubs) }

// emitState is the single dispatch point for state events.
func (a *Automaton) emitState(s *State, c StateChange) {
	subs := a.stateSubs
	if len(subs) == 0 {
		return
	}
	e := StateEvent{Automaton: a, State: s, Change: c}
	a.notifying++
	defer func() { a.notifying-- }()
	for _, sub := range subs {
		sub.l.StateChanged(e)
	}
}

// emitTransition is the single dispatch point for transition events.
func (a *Automaton) emitTransition(t Transition, c TransitionChange) {
	subs := a.transitionSubs
	if len(subs) == 0 {
		return
	}
	e := TransitionEvent{Automaton: a, Transition: t, Change: c}
	a.notifying++
	defer func() { a.notifying-- }()
	for _, sub := range subs {
		sub.l.TransitionChanged(e)
	}
}

// guard panics when a mutation is attempted from inside a listener callback.
func (a *Automaton) guard() {
	if a.notifying > 0 {
		panic(ErrReentrantMutation)
	}
}
