// SPDX-License-Identifier: MIT
//
// File: registry.go
// Role: Kind registry: machine factories and transition payload decoders.
//
// Each kind package registers itself from init, the way database/sql drivers do:
//
//	automaton.RegisterMachine(automaton.MachineInfo{Name: "turing", Params: []string{"tapes"}, New: ...})
//	automaton.RegisterTransition(automaton.TuringTransition, decode)
//
// Clone and the codec package resolve kinds only through this registry.

package automaton

import (
	"fmt"
	"sync"
)

// MachineFactory builds a machine from its construction parameters.
type MachineFactory func(p Params) (Machine, error)

// MachineInfo describes how to rebuild a machine kind.
type MachineInfo struct {
	// Name matches Machine.Name().
	Name string

	// Params lists the construction parameters in wire order. Empty for kinds
	// that need none; persisted records then carry no extra fields.
	Params []string

	// New constructs the machine.
	New MachineFactory
}

// PayloadDecoder rebuilds a transition of one kind from its endpoints and the
// bytes produced by Transition.MarshalPayload.
type PayloadDecoder func(from, to *State, payload []byte) (Transition, error)

var (
	registryMu sync.RWMutex
	machines   = map[string]MachineInfo{
		GenericName: {Name: GenericName, New: func(Params) (Machine, error) { return Generic, nil }},
	}
	decoders = map[TransitionKind]PayloadDecoder{}
)

// RegisterMachine adds a machine kind. It panics on an empty name, a nil
// factory or a duplicate name: those are wiring bugs caught at init.
func RegisterMachine(info MachineInfo) {
	if info.Name == "" || info.New == nil {
		panic("automaton: RegisterMachine with empty name or nil factory")
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := machines[info.Name]; dup {
		panic(fmt.Sprintf("automaton: RegisterMachine called twice for %q", info.Name))
	}
	machines[info.Name] = info
}

// LookupMachine returns the registered info for name.
func LookupMachine(name string) (MachineInfo, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	info, ok := machines[name]

	return info, ok
}

// RegisterTransition adds the payload decoder for kind. It panics on
// AnyTransition, a nil decoder or a duplicate kind.
func RegisterTransition(kind TransitionKind, d PayloadDecoder) {
	if kind == AnyTransition || d == nil {
		panic("automaton: RegisterTransition with AnyTransition or nil decoder")
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := decoders[kind]; dup {
		panic(fmt.Sprintf("automaton: RegisterTransition called twice for %s", kind))
	}
	decoders[kind] = d
}

// LookupTransition returns the payload decoder for kind.
func LookupTransition(kind TransitionKind) (PayloadDecoder, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	d, ok := decoders[kind]

	return d, ok
}

// NewFromParams builds an empty automaton of the named kind.
//
// Errors:
//   - ErrUnknownMachine: name is not registered.
//   - any error of the kind's factory.
func NewFromParams(name string, p Params, opts ...Option) (*Automaton, error) {
	info, ok := LookupMachine(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMachine, name)
	}
	m, err := info.New(p)
	if err != nil {
		return nil, fmt.Errorf("automaton: build %q: %w", name, err)
	}

	return New(m, opts...), nil
}
