// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: record constants and sentinel errors.

package codec

import (
	"errors"
	"fmt"
)

const (
	// Version0 is the first record layout.
	Version0 uint64 = 0

	// CurrentVersion is the layout Marshal writes.
	CurrentVersion = Version0

	// Sentinel closes every record.
	Sentinel = "SENT"
)

var (
	// ErrFormat is the root of every decoding failure.
	ErrFormat = errors.New("codec: malformed record")

	// ErrUnsupportedVersion indicates a record newer than this reader.
	ErrUnsupportedVersion = fmt.Errorf("%w: unsupported version", ErrFormat)

	// ErrSentinel indicates a missing or mismatched sentinel.
	ErrSentinel = fmt.Errorf("%w: missing or mismatched sentinel", ErrFormat)

	// ErrTruncated indicates a record that ends inside a field.
	ErrTruncated = fmt.Errorf("%w: truncated", ErrFormat)

	// ErrTrailingData indicates bytes after the sentinel.
	ErrTrailingData = fmt.Errorf("%w: trailing data after sentinel", ErrFormat)

	// ErrUnknownMachine indicates a record naming a machine with no registered kind.
	ErrUnknownMachine = fmt.Errorf("%w: unknown machine", ErrFormat)

	// ErrUnknownTransition indicates a transition kind with no registered decoder.
	ErrUnknownTransition = fmt.Errorf("%w: unknown transition kind", ErrFormat)

	// ErrAutomatonNil indicates Marshal or Encode was given nil.
	ErrAutomatonNil = errors.New("codec: automaton is nil")
)
