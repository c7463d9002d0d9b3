// SPDX-License-Identifier: MIT

package observe_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/automata/automaton"
	"github.com/katalvlaran/automata/fsa"
	"github.com/katalvlaran/automata/observe"
)

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		out = append(out, m)
	}

	return out
}

func TestSlogListener(t *testing.T) {
	var buf bytes.Buffer
	l := observe.NewSlogListener(slog.New(slog.NewJSONHandler(&buf, nil)))
	a := fsa.New()
	detach := observe.Attach(a, l)

	q0 := a.CreateState(automaton.Point{})
	require.NoError(t, a.AddTransition(fsa.NewTransition(q0, q0, "a")))
	detach()
	a.CreateState(automaton.Point{})

	lines := logLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "automaton.state.added", lines[0]["msg"])
	assert.Equal(t, a.ID().String(), lines[0]["automaton"])
	assert.Equal(t, fsa.Name, lines[0]["machine"])
	assert.EqualValues(t, 0, lines[0]["state"])
	assert.Equal(t, "automaton.transition.added", lines[1]["msg"])
	assert.Equal(t, "q0 -a-> q0", lines[1]["transition"])
	assert.Equal(t, "fsa", lines[1]["kind"])
	assert.Equal(t, "INFO", lines[1]["level"])
}

func TestSlogListener_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	a := fsa.New()
	observe.Attach(a, observe.NewSlogListener(logger).WithLevel(slog.LevelDebug))
	a.CreateState(automaton.Point{})
	assert.Zero(t, buf.Len())
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observe.NewMetrics(observe.WithRegisterer(reg), observe.WithNamespace("test"))
	require.NoError(t, err)

	a := fsa.New()
	observe.Attach(a, m)
	q0 := a.CreateState(automaton.Point{})
	q1 := a.CreateState(automaton.Point{})
	require.NoError(t, a.AddTransition(fsa.NewTransition(q0, q1, "a")))
	a.RemoveState(q1)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.StateEvents().WithLabelValues("fsa", "added")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StateEvents().WithLabelValues("fsa", "removed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TransitionEvents().WithLabelValues("fsa", "fsa", "added")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TransitionEvents().WithLabelValues("fsa", "fsa", "removed")))

	// A second NewMetrics on the same registry shares the collectors.
	m2, err := observe.NewMetrics(observe.WithRegisterer(reg), observe.WithNamespace("test"))
	require.NoError(t, err)
	assert.Same(t, m.StateEvents(), m2.StateEvents())

	n, err := testutil.GatherAndCount(reg, "test_state_events_total", "test_transition_events_total")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestMulti(t *testing.T) {
	var buf bytes.Buffer
	reg := prometheus.NewRegistry()
	m, err := observe.NewMetrics(observe.WithRegisterer(reg))
	require.NoError(t, err)
	l := observe.NewSlogListener(slog.New(slog.NewJSONHandler(&buf, nil)))

	a := fsa.New()
	detach := observe.Attach(a, observe.Multi(l, nil, m))
	assert.Equal(t, 1, a.StateListenerCount())
	assert.Equal(t, 1, a.TransitionListenerCount())

	q0 := a.CreateState(automaton.Point{})
	q0.SetLabel("start")
	detach()
	assert.Zero(t, a.StateListenerCount())
	assert.Zero(t, a.TransitionListenerCount())

	assert.Len(t, logLines(t, &buf), 2)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StateEvents().WithLabelValues("fsa", "relabeled")))
}
