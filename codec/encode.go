// SPDX-License-Identifier: MIT
//
// File: encode.go
// Role: Marshal / Encode: automaton → record bytes.
//
// Determinism:
//   - States and final states are written id ascending, transitions in
//     Automaton.Transitions() order; equal automata produce equal bytes.

package codec

import (
	"fmt"
	"io"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/katalvlaran/automata/automaton"
)

// Marshal encodes a as a CurrentVersion record.
//
// Implementation:
//   - Stage 1: Resolve the machine kind in the registry (parameter order for extras).
//   - Stage 2: Append header, states, initial state, finals, transitions.
//   - Stage 3: Append one zig-zag varint per declared construction parameter.
//   - Stage 4: Append the sentinel.
//
// Errors:
//   - ErrAutomatonNil: a == nil.
//   - automaton.ErrUnknownMachine: the machine kind is not registered.
//   - a transition's MarshalPayload error, wrapped.
//
// Notes:
//   - An initial state or final mark that points outside a (unchecked writes) is not written.
func Marshal(a *automaton.Automaton) ([]byte, error) {
	if a == nil {
		return nil, ErrAutomatonNil
	}
	m := a.Machine()
	info, ok := automaton.LookupMachine(m.Name())
	if !ok {
		return nil, fmt.Errorf("codec: marshal: %w: %q", automaton.ErrUnknownMachine, m.Name())
	}

	b := protowire.AppendVarint(nil, CurrentVersion)
	b = protowire.AppendString(b, info.Name)

	// Version 0 block.
	states := a.States()
	b = protowire.AppendVarint(b, uint64(len(states)))
	for _, s := range states {
		p := s.Point()
		b = protowire.AppendVarint(b, uint64(s.ID()))
		b = protowire.AppendFixed64(b, math.Float64bits(p.X))
		b = protowire.AppendFixed64(b, math.Float64bits(p.Y))
		b = protowire.AppendString(b, s.Label())
	}

	var initial uint64
	if q0 := a.InitialState(); q0 != nil && a.IsState(q0) {
		initial = uint64(q0.ID()) + 1
	}
	b = protowire.AppendVarint(b, initial)

	finals := make([]*automaton.State, 0, len(states))
	for _, s := range a.FinalStates() {
		if a.IsState(s) {
			finals = append(finals, s)
		}
	}
	b = protowire.AppendVarint(b, uint64(len(finals)))
	for _, s := range finals {
		b = protowire.AppendVarint(b, uint64(s.ID()))
	}

	transitions := a.Transitions()
	b = protowire.AppendVarint(b, uint64(len(transitions)))
	for _, t := range transitions {
		payload, err := t.MarshalPayload()
		if err != nil {
			return nil, fmt.Errorf("codec: marshal %s: %w", t, err)
		}
		b = protowire.AppendVarint(b, uint64(t.Kind()))
		b = protowire.AppendVarint(b, uint64(t.From().ID()))
		b = protowire.AppendVarint(b, uint64(t.To().ID()))
		b = protowire.AppendBytes(b, payload)
	}

	params := m.Params()
	for _, name := range info.Params {
		v, _ := params.Int(name)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(v))
	}

	b = protowire.AppendString(b, Sentinel)

	return b, nil
}

// Encode writes the Marshal record of a to w.
func Encode(w io.Writer, a *automaton.Automaton) error {
	b, err := Marshal(a)
	if err != nil {
		return err
	}
	if _, err = w.Write(b); err != nil {
		return fmt.Errorf("codec: write record: %w", err)
	}

	return nil
}
