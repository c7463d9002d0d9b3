// SPDX-License-Identifier: MIT

package observe

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/automata/automaton"
)

// Metrics counts structural events with Prometheus counters:
//
//	<ns>_state_events_total{machine, change}
//	<ns>_transition_events_total{machine, kind, change}
type Metrics struct {
	stateEvents      *prometheus.CounterVec
	transitionEvents *prometheus.CounterVec
}

type metricsConfig struct {
	namespace  string
	registerer prometheus.Registerer
}

// MetricsOption configures NewMetrics.
type MetricsOption func(*metricsConfig)

// WithNamespace sets the metric namespace (default "automata").
func WithNamespace(ns string) MetricsOption {
	return func(c *metricsConfig) { c.namespace = ns }
}

// WithRegisterer sets where collectors are registered (default prometheus.DefaultRegisterer).
func WithRegisterer(r prometheus.Registerer) MetricsOption {
	return func(c *metricsConfig) {
		if r != nil {
			c.registerer = r
		}
	}
}

// NewMetrics builds and registers the counters. Registering twice on the same
// registerer reuses the existing collectors.
func NewMetrics(opts ...MetricsOption) (*Metrics, error) {
	cfg := metricsConfig{namespace: "automata", registerer: prometheus.DefaultRegisterer}
	for _, opt := range opts {
		opt(&cfg)
	}

	states := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.namespace,
		Name:      "state_events_total",
		Help:      "State events delivered by automata, by machine and change.",
	}, []string{"machine", "change"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.namespace,
		Name:      "transition_events_total",
		Help:      "Transition events delivered by automata, by machine, transition kind and change.",
	}, []string{"machine", "kind", "change"})

	var err error
	if states, err = register(cfg.registerer, states); err != nil {
		return nil, err
	}
	if transitions, err = register(cfg.registerer, transitions); err != nil {
		return nil, err
	}

	return &Metrics{stateEvents: states, transitionEvents: transitions}, nil
}

func register(r prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := r.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("observe: register metrics: %w", err)
	}

	return c, nil
}

// StateEvents exposes the state counter (for scraping in tests and dashboards).
func (m *Metrics) StateEvents() *prometheus.CounterVec { return m.stateEvents }

// TransitionEvents exposes the transition counter.
func (m *Metrics) TransitionEvents() *prometheus.CounterVec { return m.transitionEvents }

// StateChanged counts e.
func (m *Metrics) StateChanged(e automaton.StateEvent) {
	m.stateEvents.WithLabelValues(e.Automaton.Machine().Name(), e.Change.String()).Inc()
}

// TransitionChanged counts e.
func (m *Metrics) TransitionChanged(e automaton.TransitionEvent) {
	m.transitionEvents.WithLabelValues(e.Automaton.Machine().Name(), e.Transition.Kind().String(), e.Change.String()).Inc()
}
