// SPDX-License-Identifier: MPL-2.0

package textutil

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/lineutils/lineutils/internal/extract"
)

type (
	// HandlerContext provides execution context for utility commands.
	HandlerContext struct {
		// Stdin is the input stream for the command.
		Stdin io.Reader
		// Stdout is the output stream for the command.
		Stdout io.Writer
		// Stderr is the error output stream for the command.
		Stderr io.Writer
		// Dir is the current working directory. Relative paths are resolved
		// against it.
		Dir string
		// LookupEnv retrieves environment variables.
		LookupEnv func(string) (string, bool)
		// Fs is the filesystem files are opened from.
		Fs afero.Fs
		// Logger receives debug diagnostics. It never carries user-facing output.
		Logger *log.Logger
		// Settings holds configurable defaults.
		Settings Settings
	}

	// Settings holds the configurable defaults consulted by the utilities.
	Settings struct {
		// HeadLines is the line count head prints when -n is absent.
		HeadLines int
		// TailLines is the offset tail uses when neither -n nor -c is given.
		TailLines string
		// InvalidLines decides how tail's line mode treats non-UTF-8 lines.
		InvalidLines extract.InvalidLinePolicy
		// Color decides whether grep highlights matches when --color is absent.
		Color ColorMode
	}

	// handlerContextKey is the context key for storing HandlerContext.
	handlerContextKey struct{}
)

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		HeadLines:    10,
		TailLines:    "10",
		InvalidLines: extract.InvalidLineBlank,
		Color:        ColorNever,
	}
}

// OSHandlerContext returns a HandlerContext bound to the process stdio, the
// working directory and the host filesystem.
func OSHandlerContext() *HandlerContext {
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}
	return &HandlerContext{
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Dir:       dir,
		LookupEnv: os.LookupEnv,
		Fs:        afero.NewOsFs(),
		Logger:    log.Default(),
		Settings:  DefaultSettings(),
	}
}

// WithHandlerContext stores a HandlerContext in the context.
func WithHandlerContext(ctx context.Context, hc *HandlerContext) context.Context {
	return context.WithValue(ctx, handlerContextKey{}, hc)
}

// GetHandlerContext retrieves the HandlerContext from the context.
// If the context carries none, it returns OSHandlerContext(). Missing fields
// of a stored HandlerContext are filled with their OS defaults on a copy.
func GetHandlerContext(ctx context.Context) *HandlerContext {
	hc, ok := ctx.Value(handlerContextKey{}).(*HandlerContext)
	if !ok || hc == nil {
		return OSHandlerContext()
	}
	if hc.complete() {
		return hc
	}

	filled := *hc
	if filled.Stdin == nil {
		filled.Stdin = os.Stdin
	}
	if filled.Stdout == nil {
		filled.Stdout = os.Stdout
	}
	if filled.Stderr == nil {
		filled.Stderr = os.Stderr
	}
	if filled.LookupEnv == nil {
		filled.LookupEnv = os.LookupEnv
	}
	if filled.Fs == nil {
		filled.Fs = afero.NewOsFs()
	}
	if filled.Logger == nil {
		filled.Logger = log.New(io.Discard)
	}
	if filled.Settings == (Settings{}) {
		filled.Settings = DefaultSettings()
	}
	return &filled
}

func (hc *HandlerContext) complete() bool {
	return hc.Stdin != nil && hc.Stdout != nil && hc.Stderr != nil &&
		hc.LookupEnv != nil && hc.Fs != nil && hc.Logger != nil &&
		hc.Settings != (Settings{})
}
