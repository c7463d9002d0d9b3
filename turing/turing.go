// SPDX-License-Identifier: MIT
//
// Package turing is the multi-tape Turing machine kind.
//
// Unlike fsa and pda, the machine has a construction parameter, the tape count,
// which is exported through Machine.Params as "tapes". Clone and the codec
// package use it to rebuild the machine; nothing outside this package needs to
// know it exists.
//
// Every transition carries one TapeOp per tape; the machine rejects transitions
// whose tape count differs from its own with automaton.ErrIncompatibleTransition.
package turing

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/katalvlaran/automata/automaton"
)

// Name is the registered machine name.
const Name = "turing"

// ParamTapes is the construction parameter holding the tape count.
const ParamTapes = "tapes"

var (
	// ErrTapes indicates a tape count below one.
	ErrTapes = errors.New("turing: tape count must be >= 1")

	// ErrPayload indicates a Turing payload that cannot be decoded.
	ErrPayload = errors.New("turing: malformed transition payload")
)

const (
	fieldTapeOp protowire.Number = 1 // repeated, one per tape

	fieldRead  protowire.Number = 1
	fieldWrite protowire.Number = 2
	fieldMove  protowire.Number = 3
)

func init() {
	automaton.RegisterMachine(automaton.MachineInfo{
		Name:   Name,
		Params: []string{ParamTapes},
		New: func(p automaton.Params) (automaton.Machine, error) {
			n, ok := p.Int(ParamTapes)
			if !ok {
				return nil, fmt.Errorf("%w: missing %q parameter", ErrTapes, ParamTapes)
			}
			return NewMachine(int(n))
		},
	})
	automaton.RegisterTransition(automaton.TuringTransition, decode)
}

// Direction is the head movement of one tape.
type Direction uint8

const (
	// Stay keeps the head in place.
	Stay Direction = iota
	// Left moves the head one cell left.
	Left
	// Right moves the head one cell right.
	Right
)

// String returns "S", "L" or "R".
func (d Direction) String() string {
	switch d {
	case Left:
		return "L"
	case Right:
		return "R"
	default:
		return "S"
	}
}

// TapeOp is the read/write/move triple for one tape.
type TapeOp struct {
	Read  string
	Write string
	Move  Direction
}

// Machine is a Turing machine kind with a fixed number of tapes.
// The zero value is a single-tape machine.
type Machine struct {
	extraTapes int // tapes beyond the first
}

// NewMachine returns a machine with the given number of tapes (>= 1).
func NewMachine(tapes int) (Machine, error) {
	if tapes < 1 {
		return Machine{}, fmt.Errorf("%w: got %d", ErrTapes, tapes)
	}

	return Machine{extraTapes: tapes - 1}, nil
}

// New returns an empty Turing machine automaton with the given number of tapes.
func New(tapes int, opts ...automaton.Option) (*automaton.Automaton, error) {
	m, err := NewMachine(tapes)
	if err != nil {
		return nil, err
	}

	return automaton.New(m, opts...), nil
}

// Tapes returns the tape count.
func (m Machine) Tapes() int { return m.extraTapes + 1 }

// Name returns "turing".
func (Machine) Name() string { return Name }

// TransitionKind returns automaton.TuringTransition.
func (Machine) TransitionKind() automaton.TransitionKind { return automaton.TuringTransition }

// Params returns {"tapes": n}.
func (m Machine) Params() automaton.Params {
	return automaton.Params{ParamTapes: int64(m.Tapes())}
}

// ValidateTransition rejects transitions whose tape count differs from the machine's.
func (m Machine) ValidateTransition(t automaton.Transition) error {
	tt, ok := t.(*Transition)
	if !ok {
		return nil // kind mismatch is reported by the container
	}
	if len(tt.ops) != m.Tapes() {
		return fmt.Errorf("%w: transition has %d tapes, machine has %d",
			automaton.ErrIncompatibleTransition, len(tt.ops), m.Tapes())
	}

	return nil
}

// Transition is a Turing transition from→to with one TapeOp per tape.
type Transition struct {
	automaton.Endpoints
	ops []TapeOp
}

// NewTransition builds from→to; ops is copied.
func NewTransition(from, to *automaton.State, ops ...TapeOp) *Transition {
	return &Transition{Endpoints: automaton.NewEndpoints(from, to), ops: slices.Clone(ops)}
}

// Ops returns a copy of the per-tape operations.
func (t *Transition) Ops() []TapeOp { return slices.Clone(t.ops) }

// Tapes returns the number of tapes the transition addresses.
func (t *Transition) Tapes() int { return len(t.ops) }

// Kind returns automaton.TuringTransition.
func (t *Transition) Kind() automaton.TransitionKind { return automaton.TuringTransition }

// Equal reports same endpoints and identical per-tape operations.
func (t *Transition) Equal(other automaton.Transition) bool {
	o, ok := other.(*Transition)
	if !ok || o == nil {
		return false
	}

	return t.SameEndpoints(o) && slices.Equal(t.ops, o.ops)
}

// WithEndpoints copies t onto from→to.
func (t *Transition) WithEndpoints(from, to *automaton.State) automaton.Transition {
	return NewTransition(from, to, t.ops...)
}

// MarshalPayload encodes each TapeOp as an embedded message in field 1.
func (t *Transition) MarshalPayload() ([]byte, error) {
	var b []byte
	for _, op := range t.ops {
		var m []byte
		m = protowire.AppendTag(m, fieldRead, protowire.BytesType)
		m = protowire.AppendString(m, op.Read)
		m = protowire.AppendTag(m, fieldWrite, protowire.BytesType)
		m = protowire.AppendString(m, op.Write)
		m = protowire.AppendTag(m, fieldMove, protowire.VarintType)
		m = protowire.AppendVarint(m, uint64(op.Move))

		b = protowire.AppendTag(b, fieldTapeOp, protowire.BytesType)
		b = protowire.AppendBytes(b, m)
	}

	return b, nil
}

// String renders "q0 -a;b,R|□;□,S-> q1" (one read;write,move group per tape).
func (t *Transition) String() string {
	groups := make([]string, len(t.ops))
	for i, op := range t.ops {
		groups[i] = fmt.Sprintf("%s;%s,%s", blank(op.Read), blank(op.Write), op.Move)
	}

	return fmt.Sprintf("%s -%s-> %s", t.From(), strings.Join(groups, "|"), t.To())
}

func blank(s string) string {
	if s == "" {
		return "□"
	}

	return s
}

func decode(from, to *automaton.State, b []byte) (automaton.Transition, error) {
	var ops []TapeOp
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %w", ErrPayload, protowire.ParseError(n))
		}
		b = b[n:]
		if num != fieldTapeOp || typ != protowire.BytesType {
			m := protowire.ConsumeFieldValue(num, typ, b)
			if m < 0 {
				return nil, fmt.Errorf("%w: %w", ErrPayload, protowire.ParseError(m))
			}
			b = b[m:]
			continue
		}
		msg, m := protowire.ConsumeBytes(b)
		if m < 0 {
			return nil, fmt.Errorf("%w: %w", ErrPayload, protowire.ParseError(m))
		}
		b = b[m:]
		op, err := decodeOp(msg)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}

	return NewTransition(from, to, ops...), nil
}

func decodeOp(b []byte) (TapeOp, error) {
	var op TapeOp
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return op, fmt.Errorf("%w: %w", ErrPayload, protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == fieldRead && typ == protowire.BytesType,
			num == fieldWrite && typ == protowire.BytesType:
			v, m := protowire.ConsumeString(b)
			if m < 0 {
				return op, fmt.Errorf("%w: %w", ErrPayload, protowire.ParseError(m))
			}
			b = b[m:]
			if num == fieldRead {
				op.Read = v
			} else {
				op.Write = v
			}
		case num == fieldMove && typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return op, fmt.Errorf("%w: %w", ErrPayload, protowire.ParseError(m))
			}
			b = b[m:]
			if v > uint64(Right) {
				return op, fmt.Errorf("%w: direction %d", ErrPayload, v)
			}
			op.Move = Direction(v)
		default:
			m := protowire.ConsumeFieldValue(num, typ, b)
			if m < 0 {
				return op, fmt.Errorf("%w: %w", ErrPayload, protowire.ParseError(m))
			}
			b = b[m:]
		}
	}

	return op, nil
}
