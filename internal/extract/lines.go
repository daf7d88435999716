// SPDX-License-Identifier: MPL-2.0

package extract

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lineutils/lineutils/internal/offset"
)

// Lines returns the lines of src selected by off, joined by a single '\n'
// with no trailing separator.
func Lines(src Source, off offset.Offset, policy InvalidLinePolicy) (string, error) {
	var sb strings.Builder
	if _, err := WriteLines(&sb, src, off, policy); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// WriteLines is the streaming form of Lines. It returns the number of lines
// written to w.
//
// FromStart(n) skips the first n lines. FromEnd(n) first counts every line of
// the input, rewinds, and skips all but the last n; when n is at least the
// line count every line is emitted.
func WriteLines(w io.Writer, src Source, off offset.Offset, policy InvalidLinePolicy) (int64, error) {
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("rewinding input: %w", err)
	}

	skip := off.N()
	if !off.IsFromStart() {
		total, err := CountLines(src)
		if err != nil {
			return 0, err
		}
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return 0, fmt.Errorf("rewinding input: %w", err)
		}
		skip = SkipCount(off, total)
	}

	var emitted int64
	_, err := walkLines(src, skip, func(line []byte) error {
		if emitted > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := w.Write(policy.decodeLine(line)); err != nil {
			return err
		}
		emitted++
		return nil
	})
	return emitted, err
}

// SkipCount resolves off against a stream of total lines and returns how many
// leading lines to discard.
func SkipCount(off offset.Offset, total int64) int64 {
	if off.IsFromStart() {
		return off.N()
	}
	if off.N() >= total {
		return 0
	}
	return total - off.N()
}

// CountLines reads r to the end and returns its line count. A trailing line
// without a newline counts as a line. Line content is not retained.
func CountLines(r io.Reader) (int64, error) {
	return walkLines(r, 0, nil)
}

// walkLines reads r line by line and calls fn with every line after the first
// skip ones, stripped of its "\n" or "\r\n" terminator. A nil fn only counts.
// It returns the number of lines seen, skipped ones included.
func walkLines(r io.Reader, skip int64, fn func(line []byte) error) (int64, error) {
	br := bufio.NewReader(r)

	var (
		total   int64
		pending bool
		line    []byte
	)

	finish := func() error {
		defer func() {
			total++
			pending = false
			line = line[:0]
		}()
		if fn == nil || total < skip {
			return nil
		}
		return fn(trimEOL(line))
	}

	for {
		chunk, err := br.ReadSlice('\n')
		if len(chunk) > 0 {
			pending = true
			if fn != nil && total >= skip {
				line = append(line, chunk...)
			}
		}

		switch {
		case err == nil:
			if ferr := finish(); ferr != nil {
				return total, ferr
			}
		case errors.Is(err, bufio.ErrBufferFull):
			// the line continues past the buffer
		case errors.Is(err, io.EOF):
			if pending {
				if ferr := finish(); ferr != nil {
					return total, ferr
				}
			}
			return total, nil
		default:
			return total, fmt.Errorf("reading input: %w", err)
		}
	}
}

func trimEOL(line []byte) []byte {
	n := len(line)
	if n > 0 && line[n-1] == '\n' {
		n--
		if n > 0 && line[n-1] == '\r' {
			n--
		}
	}
	return line[:n]
}
