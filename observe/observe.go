// SPDX-License-Identifier: MIT
//
// Package observe provides ready-made automaton listeners: structured logging
// through log/slog, Prometheus counters, and a fan-out combinator.
//
//	logger := observe.NewSlogListener(slog.Default())
//	metrics, _ := observe.NewMetrics(observe.WithRegisterer(reg))
//	detach := observe.Attach(a, observe.Multi(logger, metrics))
//	defer detach()
//
// All listeners are synchronous and read-only: they never mutate the automaton
// delivering the event.
package observe

import "github.com/katalvlaran/automata/automaton"

// Listener observes both event families of an automaton.
type Listener interface {
	automaton.StateListener
	automaton.TransitionListener
}

// Attach registers l for state and transition events of a and returns a func
// that unregisters both.
func Attach(a *automaton.Automaton, l Listener) (detach func()) {
	rs := a.AddStateListener(l)
	rt := a.AddTransitionListener(l)

	return func() {
		rs()
		rt()
	}
}

// MultiListener fans events out to several listeners in order.
type MultiListener struct {
	listeners []Listener
}

// Multi returns a MultiListener over the non-nil listeners.
func Multi(listeners ...Listener) *MultiListener {
	filtered := make([]Listener, 0, len(listeners))
	for _, l := range listeners {
		if l != nil {
			filtered = append(filtered, l)
		}
	}

	return &MultiListener{listeners: filtered}
}

// StateChanged forwards e to every listener.
func (m *MultiListener) StateChanged(e automaton.StateEvent) {
	for _, l := range m.listeners {
		l.StateChanged(e)
	}
}

// TransitionChanged forwards e to every listener.
func (m *MultiListener) TransitionChanged(e automaton.TransitionEvent) {
	for _, l := range m.listeners {
		l.TransitionChanged(e)
	}
}
