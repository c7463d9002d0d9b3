// SPDX-License-Identifier: MIT
//
// Package pda is the pushdown automaton kind. Its transitions read an input
// string, pop a string off the stack and push a replacement; the container
// stores the three strings without interpreting them.
//
// Importing the package registers the "pda" machine and the PDA payload decoder.
package pda

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/katalvlaran/automata/automaton"
)

// Name is the registered machine name.
const Name = "pda"

// ErrPayload indicates a PDA payload that cannot be decoded.
var ErrPayload = errors.New("pda: malformed transition payload")

const (
	fieldInput protowire.Number = 1
	fieldPop   protowire.Number = 2
	fieldPush  protowire.Number = 3
)

func init() {
	automaton.RegisterMachine(automaton.MachineInfo{
		Name: Name,
		New:  func(automaton.Params) (automaton.Machine, error) { return Machine{}, nil },
	})
	automaton.RegisterTransition(automaton.PDATransition, decode)
}

// Machine is the pushdown automaton kind.
type Machine struct{}

// Name returns "pda".
func (Machine) Name() string { return Name }

// TransitionKind returns automaton.PDATransition.
func (Machine) TransitionKind() automaton.TransitionKind { return automaton.PDATransition }

// Params returns nil: the kind has no construction parameters.
func (Machine) Params() automaton.Params { return nil }

// New returns an empty pushdown automaton.
func New(opts ...automaton.Option) *automaton.Automaton {
	return automaton.New(Machine{}, opts...)
}

// Transition is a pushdown transition from→to.
type Transition struct {
	automaton.Endpoints
	input string
	pop   string
	push  string
}

// NewTransition builds from→to reading input, popping pop and pushing push.
func NewTransition(from, to *automaton.State, input, pop, push string) *Transition {
	return &Transition{Endpoints: automaton.NewEndpoints(from, to), input: input, pop: pop, push: push}
}

// Input returns the input string read.
func (t *Transition) Input() string { return t.input }

// Pop returns the string popped from the stack.
func (t *Transition) Pop() string { return t.pop }

// Push returns the string pushed onto the stack.
func (t *Transition) Push() string { return t.push }

// Kind returns automaton.PDATransition.
func (t *Transition) Kind() automaton.TransitionKind { return automaton.PDATransition }

// Equal reports same endpoints, input, pop and push.
func (t *Transition) Equal(other automaton.Transition) bool {
	o, ok := other.(*Transition)
	if !ok || o == nil {
		return false
	}

	return t.SameEndpoints(o) && t.input == o.input && t.pop == o.pop && t.push == o.push
}

// WithEndpoints copies t onto from→to.
func (t *Transition) WithEndpoints(from, to *automaton.State) automaton.Transition {
	return NewTransition(from, to, t.input, t.pop, t.push)
}

// MarshalPayload encodes input, pop and push as fields 1..3.
func (t *Transition) MarshalPayload() ([]byte, error) {
	var b []byte
	for _, f := range []struct {
		num protowire.Number
		v   string
	}{{fieldInput, t.input}, {fieldPop, t.pop}, {fieldPush, t.push}} {
		b = protowire.AppendTag(b, f.num, protowire.BytesType)
		b = protowire.AppendString(b, f.v)
	}

	return b, nil
}

// String renders "q0 -a,Z;AZ-> q1".
func (t *Transition) String() string {
	return fmt.Sprintf("%s -%s,%s;%s-> %s", t.From(), orLambda(t.input), orLambda(t.pop), orLambda(t.push), t.To())
}

func orLambda(s string) string {
	if s == "" {
		return "λ"
	}

	return s
}

func decode(from, to *automaton.State, b []byte) (automaton.Transition, error) {
	t := NewTransition(from, to, "", "", "")
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %w", ErrPayload, protowire.ParseError(n))
		}
		b = b[n:]
		if typ != protowire.BytesType || num < fieldInput || num > fieldPush {
			m := protowire.ConsumeFieldValue(num, typ, b)
			if m < 0 {
				return nil, fmt.Errorf("%w: %w", ErrPayload, protowire.ParseError(m))
			}
			b = b[m:]
			continue
		}
		v, m := protowire.ConsumeString(b)
		if m < 0 {
			return nil, fmt.Errorf("%w: %w", ErrPayload, protowire.ParseError(m))
		}
		b = b[m:]
		switch num {
		case fieldInput:
			t.input = v
		case fieldPop:
			t.pop = v
		case fieldPush:
			t.push = v
		}
	}

	return t, nil
}
