// SPDX-License-Identifier: MIT
//
// File: decode.go
// Role: Unmarshal / Decode: record bytes → automaton.
//
// Policy:
//   - The whole record is parsed and checked (version, sentinel, trailing bytes)
//     before the automaton is built; on any error nothing is returned.
//   - The graph is rebuilt through RestoreState and AddTransition only.

package codec

import (
	"fmt"
	"io"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/katalvlaran/automata/automaton"
)

type stateRecord struct {
	id    int
	point automaton.Point
	label string
}

type transitionRecord struct {
	kind     automaton.TransitionKind
	from, to int
	payload  []byte
}

// record is the parsed, not yet materialized, content of a persisted automaton.
type record struct {
	version     uint64
	info        automaton.MachineInfo
	states      []stateRecord
	initial     int // -1 when absent
	finals      []int
	transitions []transitionRecord
	params      automaton.Params
}

// Unmarshal decodes a record produced by Marshal. opts configure the new automaton.
//
// Implementation:
//   - Stage 1: Parse version and machine name; refuse newer versions and unknown machines.
//   - Stage 2: Parse every block the version carries, then the declared extras.
//   - Stage 3: Require the sentinel and the end of input.
//   - Stage 4: Build the machine from its parameters, restore states, initial
//     state, final marks, then decode and add each transition.
//
// Errors:
//   - Every failure matches errors.Is(err, ErrFormat); see package doc for the specific sentinels.
//
// Complexity:
//   - Time O(V + E·d), Space O(V + E).
func Unmarshal(b []byte, opts ...automaton.Option) (*automaton.Automaton, error) {
	rec, err := parse(&reader{buf: b})
	if err != nil {
		return nil, err
	}

	return rec.build(opts...)
}

// Decode reads r to EOF and unmarshals the record.
func Decode(r io.Reader, opts ...automaton.Option) (*automaton.Automaton, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("codec: read record: %w", err)
	}

	return Unmarshal(b, opts...)
}

func parse(r *reader) (*record, error) {
	rec := &record{initial: -1}

	var err error
	if rec.version, err = r.varint("version"); err != nil {
		return nil, err
	}
	if rec.version > CurrentVersion {
		return nil, fmt.Errorf("%w: %d (reader supports <= %d)", ErrUnsupportedVersion, rec.version, CurrentVersion)
	}
	name, err := r.str("machine name")
	if err != nil {
		return nil, err
	}
	info, ok := automaton.LookupMachine(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMachine, name)
	}
	rec.info = info

	if rec.version >= Version0 {
		if err = rec.parseV0(r); err != nil {
			return nil, err
		}
	}
	// Later versions append their blocks here, gated on rec.version.

	if err = rec.parseParams(r); err != nil {
		return nil, err
	}

	sent, err := r.str("sentinel")
	if err != nil || sent != Sentinel {
		return nil, fmt.Errorf("%w: got %q", ErrSentinel, sent)
	}
	if r.off != len(r.buf) {
		return nil, fmt.Errorf("%w: %d bytes", ErrTrailingData, len(r.buf)-r.off)
	}

	return rec, nil
}

func (rec *record) parseV0(r *reader) error {
	n, err := r.count("state count")
	if err != nil {
		return err
	}
	rec.states = make([]stateRecord, 0, n)
	for i := 0; i < n; i++ {
		var s stateRecord
		if s.id, err = r.id("state id"); err != nil {
			return err
		}
		x, err := r.fixed64("state x")
		if err != nil {
			return err
		}
		y, err := r.fixed64("state y")
		if err != nil {
			return err
		}
		s.point = automaton.Point{X: math.Float64frombits(x), Y: math.Float64frombits(y)}
		if s.label, err = r.str("state label"); err != nil {
			return err
		}
		rec.states = append(rec.states, s)
	}

	initial, err := r.varint("initial state")
	if err != nil {
		return err
	}
	if initial > 0 {
		if initial-1 > automaton.MaxStateID {
			return fmt.Errorf("%w: initial state id %d out of range", ErrFormat, initial-1)
		}
		rec.initial = int(initial - 1)
	}

	if n, err = r.count("final count"); err != nil {
		return err
	}
	rec.finals = make([]int, 0, n)
	for i := 0; i < n; i++ {
		id, err := r.id("final state id")
		if err != nil {
			return err
		}
		rec.finals = append(rec.finals, id)
	}

	if n, err = r.count("transition count"); err != nil {
		return err
	}
	rec.transitions = make([]transitionRecord, 0, n)
	for i := 0; i < n; i++ {
		var t transitionRecord
		kind, err := r.varint("transition kind")
		if err != nil {
			return err
		}
		if kind > math.MaxUint8 {
			return fmt.Errorf("%w: %d", ErrUnknownTransition, kind)
		}
		t.kind = automaton.TransitionKind(kind)
		if t.from, err = r.id("transition from"); err != nil {
			return err
		}
		if t.to, err = r.id("transition to"); err != nil {
			return err
		}
		if t.payload, err = r.bytes("transition payload"); err != nil {
			return err
		}
		rec.transitions = append(rec.transitions, t)
	}

	return nil
}

func (rec *record) parseParams(r *reader) error {
	if len(rec.info.Params) == 0 {
		return nil
	}
	rec.params = make(automaton.Params, len(rec.info.Params))
	for _, name := range rec.info.Params {
		v, err := r.varint("parameter " + name)
		if err != nil {
			return err
		}
		rec.params[name] = protowire.DecodeZigZag(v)
	}

	return nil
}

// build materializes the record through the live mutation paths.
func (rec *record) build(opts ...automaton.Option) (*automaton.Automaton, error) {
	m, err := rec.info.New(rec.params)
	if err != nil {
		return nil, fmt.Errorf("%w: machine %q: %w", ErrFormat, rec.info.Name, err)
	}
	a := automaton.New(m, opts...)

	byID := make(map[int]*automaton.State, len(rec.states))
	for _, s := range rec.states {
		st, err := a.RestoreState(s.id, s.point, s.label)
		if err != nil {
			return nil, fmt.Errorf("%w: state %d: %w", ErrFormat, s.id, err)
		}
		byID[s.id] = st
	}
	lookup := func(what string, id int) (*automaton.State, error) {
		if s, ok := byID[id]; ok {
			return s, nil
		}
		return nil, fmt.Errorf("%w: %s references unknown state %d", ErrFormat, what, id)
	}

	if rec.initial >= 0 {
		s, err := lookup("initial state", rec.initial)
		if err != nil {
			return nil, err
		}
		a.SetInitialState(s)
	}
	for _, id := range rec.finals {
		s, err := lookup("final state", id)
		if err != nil {
			return nil, err
		}
		a.AddFinalState(s)
	}

	for _, t := range rec.transitions {
		decode, ok := automaton.LookupTransition(t.kind)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTransition, t.kind)
		}
		from, err := lookup("transition", t.from)
		if err != nil {
			return nil, err
		}
		to, err := lookup("transition", t.to)
		if err != nil {
			return nil, err
		}
		tr, err := decode(from, to, t.payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFormat, err)
		}
		if err = a.AddTransition(tr); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFormat, err)
		}
	}

	return a, nil
}

// reader walks a record with protowire primitives, mapping short reads to ErrTruncated.
type reader struct {
	buf []byte
	off int
}

func (r *reader) varint(field string) (uint64, error) {
	v, n := protowire.ConsumeVarint(r.buf[r.off:])
	if n < 0 {
		return 0, r.fail(field, n)
	}
	r.off += n

	return v, nil
}

func (r *reader) fixed64(field string) (uint64, error) {
	v, n := protowire.ConsumeFixed64(r.buf[r.off:])
	if n < 0 {
		return 0, r.fail(field, n)
	}
	r.off += n

	return v, nil
}

func (r *reader) bytes(field string) ([]byte, error) {
	v, n := protowire.ConsumeBytes(r.buf[r.off:])
	if n < 0 {
		return nil, r.fail(field, n)
	}
	r.off += n

	return v, nil
}

func (r *reader) str(field string) (string, error) {
	v, err := r.bytes(field)
	return string(v), err
}

// id reads a state id and bounds it to a non-negative int.
func (r *reader) id(field string) (int, error) {
	v, err := r.varint(field)
	if err != nil {
		return 0, err
	}
	if v > automaton.MaxStateID {
		return 0, fmt.Errorf("%w: %s %d out of range", ErrFormat, field, v)
	}

	return int(v), nil
}

// count reads an element count and rejects counts the remaining bytes cannot hold.
func (r *reader) count(field string) (int, error) {
	v, err := r.varint(field)
	if err != nil {
		return 0, err
	}
	if v > uint64(len(r.buf)-r.off) {
		return 0, fmt.Errorf("%w: %s %d exceeds record size", ErrTruncated, field, v)
	}

	return int(v), nil
}

func (r *reader) fail(field string, n int) error {
	return fmt.Errorf("%w: %s at offset %d: %w", ErrTruncated, field, r.off, protowire.ParseError(n))
}
