// SPDX-License-Identifier: MPL-2.0

package textutil

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrCommandNotFound is returned by Registry.Run for unknown command names.
	ErrCommandNotFound = errors.New("command not found")

	// ErrIsDirectory is reported for directory operands a utility cannot read.
	ErrIsDirectory = errors.New("Is a directory")
)

// StatusError carries a non-zero exit status for a run whose failures were
// already reported on the command's stderr. Callers should exit with Code
// without printing Err again.
type StatusError struct {
	Code int
	Err  error
}

// Error returns the error message for StatusError.
func (e *StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *StatusError) Unwrap() error {
	return e.Err
}

// exitStatus returns a *StatusError for code, or nil when code is zero.
func exitStatus(code int, err error) error {
	if code == 0 {
		return nil
	}
	return &StatusError{Code: code, Err: err}
}

// wrapError wraps an error with the "<cmd>:" prefix used for every
// diagnostic. Returns nil if err is nil.
func wrapError(cmdName string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", cmdName, err)
}

// fileError prefixes err with the path it concerns, keeping only the
// operating system message of a *fs.PathError so that diagnostics read
// "<path>: no such file or directory".
func fileError(path string, err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return fmt.Errorf("%s: %w", path, pe.Err)
	}
	return fmt.Errorf("%s: %w", path, err)
}
