// SPDX-License-Identifier: MPL-2.0

// Package offset parses the directional count arguments accepted by
// tail-like utilities ("+5", "-5", "5").
package offset

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// FromStart anchors the count at the beginning of the stream.
	FromStart Direction = iota + 1
	// FromEnd anchors the count at the end of the stream.
	FromEnd
)

// ErrInvalidOffset is the sentinel wrapped by InvalidOffsetError.
var ErrInvalidOffset = errors.New("invalid offset")

type (
	// Direction tells which end of the stream an Offset is counted from.
	Direction int

	// Offset is a line or byte count anchored at one end of a stream.
	// The zero value is not a valid Offset; use Parse, Start or End.
	Offset struct {
		dir Direction
		n   int64
	}

	// InvalidOffsetError is returned by Parse for malformed input.
	// It wraps ErrInvalidOffset for errors.Is() compatibility.
	InvalidOffsetError struct {
		Value string
	}
)

// Start returns an Offset that skips n units from the beginning.
func Start(n int64) Offset {
	return Offset{dir: FromStart, n: n}
}

// End returns an Offset that keeps the last n units.
func End(n int64) Offset {
	return Offset{dir: FromEnd, n: n}
}

// Parse converts s, matching [+-]?[0-9]+, into an Offset. A leading '+'
// counts from the start; a leading '-' or no sign counts from the end.
func Parse(s string) (Offset, error) {
	digits := s
	dir := FromEnd
	if s != "" {
		switch s[0] {
		case '+':
			dir = FromStart
			digits = s[1:]
		case '-':
			digits = s[1:]
		}
	}

	if digits == "" {
		return Offset{}, &InvalidOffsetError{Value: s}
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return Offset{}, &InvalidOffsetError{Value: s}
		}
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		// only reachable on overflow
		return Offset{}, &InvalidOffsetError{Value: s}
	}

	return Offset{dir: dir, n: n}, nil
}

// Direction returns the anchor of the offset.
func (o Offset) Direction() Direction {
	return o.dir
}

// N returns the magnitude of the offset.
func (o Offset) N() int64 {
	return o.n
}

// IsFromStart reports whether the offset counts from the beginning.
func (o Offset) IsFromStart() bool {
	return o.dir == FromStart
}

// String renders the offset so that Parse(o.String()) yields o.
func (o Offset) String() string {
	if o.dir == FromStart {
		return fmt.Sprintf("+%d", o.n)
	}
	return strconv.FormatInt(o.n, 10)
}

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case FromStart:
		return "from-start"
	case FromEnd:
		return "from-end"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Error implements the error interface.
func (e *InvalidOffsetError) Error() string {
	return "illegal offset -- " + e.Value
}

// Unwrap returns ErrInvalidOffset so callers can use errors.Is.
func (e *InvalidOffsetError) Unwrap() error {
	return ErrInvalidOffset
}
