// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

var (
	// ErrFileTooLarge is returned when a document exceeds the size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrSchema is returned when the embedded schema itself is unusable.
	ErrSchema = errors.New("invalid schema")
)

// ValidationError is a single schema violation.
type ValidationError struct {
	// FilePath is the document being validated.
	FilePath string
	// Path is the JSON-path style location of the offending value (e.g. "tail.lines").
	Path string
	// Message is the CUE diagnostic without its location.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.FilePath, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// ValidationErrors collects every violation reported for one document.
type ValidationErrors []*ValidationError

// Error implements the error interface.
func (es ValidationErrors) Error() string {
	if len(es) == 1 {
		return es[0].Error()
	}
	lines := make([]string, 0, len(es))
	for _, e := range es {
		if e.Path != "" {
			lines = append(lines, e.Path+": "+e.Message)
		} else {
			lines = append(lines, e.Message)
		}
	}
	return fmt.Sprintf("%s: validation failed:\n  %s", es[0].FilePath, strings.Join(lines, "\n  "))
}

// FormatError converts a CUE error into ValidationErrors rooted at filePath.
// Non-CUE errors are wrapped with the file path.
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	var ce cueerrors.Error
	if !errors.As(err, &ce) {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	list := cueerrors.Errors(err)

	out := make(ValidationErrors, 0, len(list))
	for _, e := range list {
		format, args := e.Msg()
		out = append(out, &ValidationError{
			FilePath: filePath,
			Path:     formatPath(cueerrors.Path(e)),
			Message:  fmt.Sprintf(format, args...),
		})
	}
	return out
}

// formatPath renders ["files", "0", "name"] as "files[0].name". A leading
// schema definition such as "#Config" is dropped.
func formatPath(path []string) string {
	if len(path) > 0 && strings.HasPrefix(path[0], "#") {
		path = path[1:]
	}
	var b strings.Builder
	for i, part := range path {
		switch {
		case i > 0 && isIndex(part):
			b.WriteString("[" + part + "]")
		case i > 0:
			b.WriteString("." + part)
		default:
			b.WriteString(part)
		}
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CheckFileSize fails when data is larger than maxSize bytes.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: %w: %d bytes exceeds the %d-byte limit",
			filename, ErrFileTooLarge, len(data), maxSize)
	}
	return nil
}
