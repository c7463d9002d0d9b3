// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: State, Transition, Machine and Automaton declarations plus the New constructor.
//
// Identity:
//   - A State is identified by its pointer; its integer id is unique within the owner.
//   - A Transition is identified structurally (Transition.Equal).
//   - An Automaton carries a uuid so logs and metrics can tell instances apart.

package automaton

import (
	"io"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
)

// Point is the display position of a State. The container never interprets it;
// it is carried only so copies and persisted records keep the editor layout.
type Point struct {
	X float64
	Y float64
}

// State is a vertex of an Automaton.
//
// States are created only through the owning container (CreateState or
// RestoreState) and stay bound to it until RemoveState detaches them.
type State struct {
	id    int
	point Point
	label string
	owner *Automaton // nil once removed
}

// ID returns the container-assigned identifier (unique, non-negative).
func (s *State) ID() int { return s.id }

// Point returns the display position.
func (s *State) Point() Point { return s.point }

// Label returns the free-form state label ("" when unset).
func (s *State) Label() string { return s.label }

// Automaton returns the owning container, or nil for a removed state.
func (s *State) Automaton() *Automaton { return s.owner }

// String renders the state as "q<id>", followed by the quoted label if one is set.
func (s *State) String() string {
	if s == nil {
		return "<nil>"
	}
	name := "q" + strconv.Itoa(s.id)
	if s.label == "" {
		return name
	}

	return name + " " + strconv.Quote(s.label)
}

// TransitionKind is the variant tag of a Transition. The set is closed: each
// concrete machine kind owns exactly one tag.
type TransitionKind uint8

const (
	// AnyTransition is accepted by the generic container only; no transition reports it.
	AnyTransition TransitionKind = iota
	// FSATransition tags finite-state transitions (package fsa).
	FSATransition
	// PDATransition tags pushdown transitions (package pda).
	PDATransition
	// TuringTransition tags Turing-machine transitions (package turing).
	TuringTransition
)

// String returns the lower-case kind name.
func (k TransitionKind) String() string {
	switch k {
	case AnyTransition:
		return "any"
	case FSATransition:
		return "fsa"
	case PDATransition:
		return "pda"
	case TuringTransition:
		return "turing"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Transition is a directed edge between two states of the same Automaton,
// carrying a kind-specific payload the container never interprets.
//
// Contract for implementations:
//   - Equal is structural and implies identical endpoints (pointer equality).
//   - WithEndpoints returns a fresh transition with the same payload; the receiver is not mutated.
//   - MarshalPayload returns the payload bytes decoded by the PayloadDecoder
//     registered for Kind().
//   - Values are immutable once constructed.
//
// Implementations embed Endpoints, which seals the interface to the kinds built
// on this package.
type Transition interface {
	From() *State
	To() *State
	Kind() TransitionKind
	Equal(other Transition) bool
	WithEndpoints(from, to *State) Transition
	MarshalPayload() ([]byte, error)
	String() string

	sealed()
}

// Endpoints holds the from/to states of a Transition. Concrete transition types
// embed it to satisfy the endpoint half of the Transition interface.
type Endpoints struct {
	from *State
	to   *State
}

// NewEndpoints pairs from→to for embedding in a concrete transition.
func NewEndpoints(from, to *State) Endpoints { return Endpoints{from: from, to: to} }

// From returns the source state.
func (e Endpoints) From() *State { return e.from }

// To returns the destination state.
func (e Endpoints) To() *State { return e.to }

// SameEndpoints reports whether other connects the same two states in the same direction.
func (e Endpoints) SameEndpoints(other Transition) bool {
	return other != nil && e.from == other.From() && e.to == other.To()
}

func (Endpoints) sealed() {}

// Params are the construction parameters of a machine kind (e.g. "tapes" for a
// Turing machine). Kinds without parameters return nil.
type Params map[string]int64

// Int returns the named parameter and whether it was present.
func (p Params) Int(name string) (int64, bool) {
	v, ok := p[name]
	return v, ok
}

// Machine describes the concrete kind an Automaton represents.
//
// It is the explicit capability generic code uses instead of inspecting types:
// TransitionKind narrows what AddTransition accepts, and Name + Params are enough
// for the registered MachineInfo to construct an equivalent machine.
type Machine interface {
	Name() string
	TransitionKind() TransitionKind
	Params() Params
}

// TransitionValidator is an optional Machine capability for checks finer than
// the kind tag (a Turing machine rejects transitions with the wrong tape count).
// Returned errors should wrap ErrIncompatibleTransition.
type TransitionValidator interface {
	ValidateTransition(t Transition) error
}

// GenericName is the registered name of the generic machine.
const GenericName = "automaton"

type genericMachine struct{}

func (genericMachine) Name() string                   { return GenericName }
func (genericMachine) TransitionKind() TransitionKind { return AnyTransition }
func (genericMachine) Params() Params                 { return nil }

// Generic is the machine of the plain container: it accepts every transition kind.
var Generic Machine = genericMachine{}

// Option configures an Automaton at construction.
type Option func(a *Automaton)

// WithLogger attaches a structured logger. Mutations log at Debug, clone
// failures at Warn. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(a *Automaton) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithID overrides the randomly generated instance identifier.
func WithID(id uuid.UUID) Option {
	return func(a *Automaton) { a.id = id }
}

// Automaton is the graph container: states, initial state, final states,
// transitions, the bidirectional adjacency indices and the derived caches.
//
// A nil cache means "absent"; a built cache is never nil (possibly empty).
type Automaton struct {
	id      uuid.UUID
	machine Machine
	logger  *slog.Logger

	// Storage
	states      map[*State]struct{}
	finalStates map[*State]struct{}
	initial     *State
	nTrans      int                     // number of distinct transitions
	fromIndex   map[*State][]Transition // outgoing, insertion order
	toIndex     map[*State][]Transition // incoming, insertion order

	// Caches
	cachedStates      []*State
	cachedFinals      []*State
	cachedTransitions []Transition
	fromCache         map[*State][]Transition
	toCache           map[*State][]Transition

	// Listeners
	stateSubs      []stateSub
	transitionSubs []transitionSub
	nextSubID      uint64
	notifying      int // >0 while a listener callback runs
}

// New creates an empty Automaton bound to machine m (Generic when m is nil).
// Complexity: O(1).
func New(m Machine, opts ...Option) *Automaton {
	if m == nil {
		m = Generic
	}
	a := &Automaton{
		id:          uuid.New(),
		machine:     m,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		states:      make(map[*State]struct{}),
		finalStates: make(map[*State]struct{}),
		fromIndex:   make(map[*State][]Transition),
		toIndex:     make(map[*State][]Transition),
		fromCache:   make(map[*State][]Transition),
		toCache:     make(map[*State][]Transition),
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// ID returns the instance identifier.
func (a *Automaton) ID() uuid.UUID { return a.id }

// Machine returns the machine kind this automaton was built for.
func (a *Automaton) Machine() Machine { return a.machine }

// Logger returns the attached logger (a discard logger by default).
func (a *Automaton) Logger() *slog.Logger { return a.logger }
