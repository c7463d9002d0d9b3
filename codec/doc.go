// SPDX-License-Identifier: MIT
//
// Package codec persists a whole automaton as a version-tagged, field-ordered,
// sentinel-terminated record built from protobuf wire primitives (protowire).
//
// Record layout, version 0:
//
//	varint   version
//	bytes    machine name                   (MachineInfo.Name)
//	varint   state count
//	           varint id, fixed64 x, fixed64 y, bytes label   (per state, id ascending)
//	varint   initial state                  (0 = none, otherwise id+1)
//	varint   final count
//	           varint id                    (per final state, ascending)
//	varint   transition count
//	           varint kind, varint from id, varint to id, bytes payload
//	zigzag   one value per MachineInfo.Params entry (only for kinds that declare parameters)
//	bytes    sentinel "SENT"
//
// Versions are additive: a reader for version N reads every block introduced up
// to N and refuses anything newer with ErrUnsupportedVersion. A missing or wrong
// sentinel is fatal (ErrSentinel); so are trailing bytes.
//
// Decoding rebuilds the graph through the live mutation paths
// (automaton.RestoreState, automaton.AddTransition), so indices and caches start
// consistent. Listeners are never persisted: a decoded automaton has none.
//
// Errors (all match errors.Is(err, ErrFormat) except ErrAutomatonNil):
//
//	ErrFormat              - root of every decoding failure.
//	ErrUnsupportedVersion  - version newer than CurrentVersion.
//	ErrSentinel            - sentinel missing or mismatched.
//	ErrTruncated           - record ends inside a field.
//	ErrTrailingData        - bytes after the sentinel.
//	ErrUnknownMachine      - machine name not registered.
//	ErrUnknownTransition   - transition kind without a registered decoder.
//	ErrAutomatonNil        - Marshal/Encode given a nil automaton.
//
// Marshal of an unregistered machine fails with automaton.ErrUnknownMachine,
// which is not a format error.
package codec
