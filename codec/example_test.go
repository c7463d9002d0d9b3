// SPDX-License-Identifier: MIT

package codec_test

import (
	"bytes"
	"fmt"

	"github.com/katalvlaran/automata/automaton"
	"github.com/katalvlaran/automata/codec"
	"github.com/katalvlaran/automata/turing"
)

// ExampleEncode persists a two-tape Turing machine and reads it back.
func ExampleEncode() {
	a, _ := turing.New(2)
	q0 := a.CreateState(automaton.Point{})
	q1 := a.CreateState(automaton.Point{X: 80})
	a.SetInitialState(q0)
	a.AddFinalState(q1)
	_ = a.AddTransition(turing.NewTransition(q0, q1,
		turing.TapeOp{Read: "1", Write: "0", Move: turing.Right},
		turing.TapeOp{Move: turing.Stay}))

	var buf bytes.Buffer
	if err := codec.Encode(&buf, a); err != nil {
		fmt.Println("encode:", err)
		return
	}
	got, err := codec.Decode(&buf)
	if err != nil {
		fmt.Println("decode:", err)
		return
	}

	fmt.Println(got.Machine().Params())
	fmt.Println(got.InitialState(), got.FinalStates())
	fmt.Println(got.Transitions()[0])

	// Output:
	// map[tapes:2]
	// q0 [q1]
	// q0 -1;0,R|□;□,S-> q1
}
