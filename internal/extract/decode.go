// SPDX-License-Identifier: MPL-2.0

package extract

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

const (
	// InvalidLineBlank emits a line that is not valid UTF-8 as an empty line.
	InvalidLineBlank InvalidLinePolicy = "blank"
	// InvalidLineReplace emits the line with each malformed sequence replaced
	// by U+FFFD.
	InvalidLineReplace InvalidLinePolicy = "replace"
)

// ErrInvalidLinePolicy is returned when an InvalidLinePolicy value is not recognized.
var ErrInvalidLinePolicy = errors.New("invalid line decoding policy")

// InvalidLinePolicy selects how the line extractor treats lines that are not
// valid UTF-8.
type InvalidLinePolicy string

// Validate returns an error wrapping ErrInvalidLinePolicy for unknown values.
func (p InvalidLinePolicy) Validate() error {
	switch p {
	case InvalidLineBlank, InvalidLineReplace:
		return nil
	default:
		return fmt.Errorf("%w: %q (expected %q or %q)", ErrInvalidLinePolicy, string(p), InvalidLineBlank, InvalidLineReplace)
	}
}

// decodeLine applies the policy to a raw line.
func (p InvalidLinePolicy) decodeLine(line []byte) []byte {
	if utf8.Valid(line) {
		return line
	}
	if p == InvalidLineReplace {
		return Lossy(line)
	}
	return nil
}

// Lossy returns b with every ill-formed UTF-8 sequence replaced by U+FFFD.
func Lossy(b []byte) []byte {
	if utf8.Valid(b) {
		return b
	}
	out, _, err := transform.Bytes(runes.ReplaceIllFormed(), b)
	if err != nil {
		return []byte(string([]rune(string(b))))
	}
	return out
}

// LossyReader wraps r so that ill-formed UTF-8 read through it is replaced by
// U+FFFD.
func LossyReader(r io.Reader) io.Reader {
	return transform.NewReader(r, runes.ReplaceIllFormed())
}
