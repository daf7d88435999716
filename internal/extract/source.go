// SPDX-License-Identifier: MPL-2.0

package extract

import (
	"bytes"
	"fmt"
	"io"
)

// Source is a seekable input that can be read sequentially (and therefore
// line by line) and repositioned absolutely. *os.File, afero.File and
// *bytes.Reader all satisfy it.
type Source interface {
	io.Reader
	io.Seeker
}

// Seekable returns r as a Source when it supports seeking, otherwise it reads
// r to completion and returns an in-memory Source over the data. Pipes and
// terminals report themselves as io.Seeker but fail to seek; they are spooled
// as well. The returned bool reports whether spooling happened.
func Seekable(r io.Reader) (Source, bool, error) {
	if s, ok := r.(Source); ok {
		if _, err := s.Seek(0, io.SeekCurrent); err == nil {
			return s, false, nil
		}
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, false, fmt.Errorf("reading input: %w", err)
	}
	return bytes.NewReader(data), true, nil
}
