// SPDX-License-Identifier: MIT
//
// Package fsa is the finite-state automaton kind: a Machine that accepts only
// FSA transitions and a Transition whose payload is an input label.
//
// Importing the package registers the "fsa" machine and the FSA payload decoder.
//
//	a := fsa.New()
//	q0 := a.CreateState(automaton.Point{})
//	q1 := a.CreateState(automaton.Point{X: 80})
//	_ = a.AddTransition(fsa.NewTransition(q0, q1, "a"))
//
// The label is opaque here; reading symbols is the simulator's business.
package fsa

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/katalvlaran/automata/automaton"
)

// Name is the registered machine name.
const Name = "fsa"

// ErrPayload indicates an FSA payload that cannot be decoded.
var ErrPayload = errors.New("fsa: malformed transition payload")

// payload field numbers
const fieldLabel protowire.Number = 1

func init() {
	automaton.RegisterMachine(automaton.MachineInfo{
		Name: Name,
		New:  func(automaton.Params) (automaton.Machine, error) { return Machine{}, nil },
	})
	automaton.RegisterTransition(automaton.FSATransition, decode)
}

// Machine is the finite-state automaton kind.
type Machine struct{}

// Name returns "fsa".
func (Machine) Name() string { return Name }

// TransitionKind returns automaton.FSATransition.
func (Machine) TransitionKind() automaton.TransitionKind { return automaton.FSATransition }

// Params returns nil: the kind has no construction parameters.
func (Machine) Params() automaton.Params { return nil }

// New returns an empty finite-state automaton.
func New(opts ...automaton.Option) *automaton.Automaton {
	return automaton.New(Machine{}, opts...)
}

// Transition is a finite-state transition from→to on Label.
type Transition struct {
	automaton.Endpoints
	label string
}

// NewTransition builds from→to reading label ("" for a λ-transition).
func NewTransition(from, to *automaton.State, label string) *Transition {
	return &Transition{Endpoints: automaton.NewEndpoints(from, to), label: label}
}

// Label returns the input label.
func (t *Transition) Label() string { return t.label }

// Kind returns automaton.FSATransition.
func (t *Transition) Kind() automaton.TransitionKind { return automaton.FSATransition }

// Equal reports same endpoints and same label.
func (t *Transition) Equal(other automaton.Transition) bool {
	o, ok := other.(*Transition)
	if !ok || o == nil {
		return false
	}

	return t.SameEndpoints(o) && t.label == o.label
}

// WithEndpoints copies t onto from→to.
func (t *Transition) WithEndpoints(from, to *automaton.State) automaton.Transition {
	return NewTransition(from, to, t.label)
}

// MarshalPayload encodes the label as field 1.
func (t *Transition) MarshalPayload() ([]byte, error) {
	b := protowire.AppendTag(nil, fieldLabel, protowire.BytesType)
	b = protowire.AppendString(b, t.label)

	return b, nil
}

// String renders "q0 -a-> q1" (λ for an empty label).
func (t *Transition) String() string {
	label := t.label
	if label == "" {
		label = "λ"
	}

	return fmt.Sprintf("%s -%s-> %s", t.From(), label, t.To())
}

// decode is the registered PayloadDecoder. Unknown fields are skipped.
func decode(from, to *automaton.State, b []byte) (automaton.Transition, error) {
	var label string
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %w", ErrPayload, protowire.ParseError(n))
		}
		b = b[n:]
		if num == fieldLabel && typ == protowire.BytesType {
			v, m := protowire.ConsumeString(b)
			if m < 0 {
				return nil, fmt.Errorf("%w: %w", ErrPayload, protowire.ParseError(m))
			}
			label = v
			b = b[m:]
			continue
		}
		m := protowire.ConsumeFieldValue(num, typ, b)
		if m < 0 {
			return nil, fmt.Errorf("%w: %w", ErrPayload, protowire.ParseError(m))
		}
		b = b[m:]
	}

	return NewTransition(from, to, label), nil
}
