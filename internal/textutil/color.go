// SPDX-License-Identifier: MPL-2.0

package textutil

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

const (
	// ColorAuto colors output only when it goes to a terminal and NO_COLOR is unset.
	ColorAuto ColorMode = "auto"
	// ColorAlways always colors output.
	ColorAlways ColorMode = "always"
	// ColorNever never colors output.
	ColorNever ColorMode = "never"
)

// ErrInvalidColorMode is returned when a ColorMode value is not recognized.
var ErrInvalidColorMode = errors.New("invalid color mode")

// ColorMode controls match highlighting.
type ColorMode string

// ParseColorMode validates s as a ColorMode.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q (expected auto, always or never)", ErrInvalidColorMode, s)
	}
}

// Enabled resolves the mode for output written to w.
func (m ColorMode) Enabled(w io.Writer, lookupEnv func(string) (string, bool)) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorAuto:
		if lookupEnv != nil {
			if v, ok := lookupEnv("NO_COLOR"); ok && v != "" {
				return false
			}
		}
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	default:
		return false
	}
}
