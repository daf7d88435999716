// SPDX-License-Identifier: MPL-2.0

package extract

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lineutils/lineutils/internal/offset"
)

// ErrSeekOutOfRange is the sentinel wrapped by SeekOutOfRangeError.
var ErrSeekOutOfRange = errors.New("seek out of range")

// SeekOutOfRangeError is returned when an end-relative byte offset reaches
// past the beginning of the input. Byte mode never clamps to zero.
type SeekOutOfRangeError struct {
	// Offset is the requested distance from the end, in bytes.
	Offset int64
	// Size is the length of the input, in bytes.
	Size int64
}

// Error implements the error interface.
func (e *SeekOutOfRangeError) Error() string {
	return fmt.Sprintf("cannot seek %d bytes before the end of a %d-byte input", e.Offset, e.Size)
}

// Unwrap returns ErrSeekOutOfRange so callers can use errors.Is.
func (e *SeekOutOfRangeError) Unwrap() error {
	return ErrSeekOutOfRange
}

// Bytes returns the content of src from the byte position described by off
// to the end of the input, decoded leniently.
func Bytes(src Source, off offset.Offset) (string, error) {
	var sb strings.Builder
	if _, err := WriteBytes(&sb, src, off); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// WriteBytes is the streaming form of Bytes. It returns the number of bytes
// written to w.
//
// FromStart(n) positions the cursor at byte n; a position past the end reads
// nothing. FromEnd(n) positions the cursor n bytes before the end and fails
// with SeekOutOfRangeError when n exceeds the input length.
func WriteBytes(w io.Writer, src Source, off offset.Offset) (int64, error) {
	if err := seekBytes(src, off); err != nil {
		return 0, err
	}

	n, err := io.Copy(w, LossyReader(src))
	if err != nil {
		return n, fmt.Errorf("reading input: %w", err)
	}
	return n, nil
}

func seekBytes(src Source, off offset.Offset) error {
	size, err := src.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("measuring input: %w", err)
	}

	if off.IsFromStart() {
		// past the end: stay at EOF, some files fail reads beyond it
		if off.N() >= size {
			return nil
		}
		if _, err := src.Seek(off.N(), io.SeekStart); err != nil {
			return fmt.Errorf("seeking to byte %d: %w", off.N(), err)
		}
		return nil
	}

	if off.N() > size {
		return &SeekOutOfRangeError{Offset: off.N(), Size: size}
	}
	if _, err := src.Seek(size-off.N(), io.SeekStart); err != nil {
		return fmt.Errorf("seeking to byte %d: %w", size-off.N(), err)
	}
	return nil
}
