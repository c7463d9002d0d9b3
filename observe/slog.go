// SPDX-License-Identifier: MIT

package observe

import (
	"context"
	"log/slog"

	"github.com/katalvlaran/automata/automaton"
)

// SlogListener logs every event to a slog.Logger. The message is
// "automaton.state.<change>" or "automaton.transition.<change>"; the automaton
// id, machine and the state or transition are attached as attributes.
type SlogListener struct {
	logger *slog.Logger
	level  slog.Level
}

// NewSlogListener creates a SlogListener emitting at Info (slog.Default when logger is nil).
func NewSlogListener(logger *slog.Logger) *SlogListener {
	if logger == nil {
		logger = slog.Default()
	}

	return &SlogListener{logger: logger, level: slog.LevelInfo}
}

// WithLevel returns a copy emitting at level.
func (l *SlogListener) WithLevel(level slog.Level) *SlogListener {
	c := *l
	c.level = level

	return &c
}

// StateChanged logs e.
func (l *SlogListener) StateChanged(e automaton.StateEvent) {
	l.logger.LogAttrs(context.Background(), l.level, "automaton.state."+e.Change.String(),
		slog.String("automaton", e.Automaton.ID().String()),
		slog.String("machine", e.Automaton.Machine().Name()),
		slog.Int("state", e.State.ID()),
		slog.String("label", e.State.Label()),
	)
}

// TransitionChanged logs e.
func (l *SlogListener) TransitionChanged(e automaton.TransitionEvent) {
	l.logger.LogAttrs(context.Background(), l.level, "automaton.transition."+e.Change.String(),
		slog.String("automaton", e.Automaton.ID().String()),
		slog.String("machine", e.Automaton.Machine().Name()),
		slog.String("kind", e.Transition.Kind().String()),
		slog.String("transition", e.Transition.String()),
	)
}
