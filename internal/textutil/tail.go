// SPDX-License-Identifier: MPL-2.0

package textutil

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/lineutils/lineutils/internal/extract"
	"github.com/lineutils/lineutils/internal/offset"
)

type (
	// tailCommand implements the tail utility.
	tailCommand struct {
		name  string
		flags []FlagInfo
	}

	tailOptions struct {
		lines string
		bytes string
		quiet bool
	}
)

func init() {
	RegisterDefault(newTailCommand())
}

// newTailCommand creates a new tail command.
func newTailCommand() *tailCommand {
	c := &tailCommand{name: "tail"}
	c.flags = describeFlags(c.flagSet(&tailOptions{}, DefaultSettings().TailLines))
	return c
}

// Name returns the command name.
func (c *tailCommand) Name() string {
	return c.name
}

// SupportedFlags returns the flags supported by this command.
func (c *tailCommand) SupportedFlags() []FlagInfo {
	return c.flags
}

func (c *tailCommand) flagSet(o *tailOptions, defaultLines string) *pflag.FlagSet {
	fs := newFlagSet(c.name)
	fs.StringVarP(&o.lines, "lines", "n", defaultLines, "output lines from OFFSET: N (last N), -N (last N) or +N (skip N)")
	fs.StringVarP(&o.bytes, "bytes", "c", "", "output bytes from OFFSET, same syntax as -n")
	fs.BoolVarP(&o.quiet, "quiet", "q", false, "never print headers giving file names")
	return fs
}

// Run executes the tail command.
func (c *tailCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	var opts tailOptions
	fs := c.flagSet(&opts, hc.Settings.TailLines)
	if ok, err := parseFlags(hc, fs, args); !ok {
		return err
	}

	byteMode := fs.Changed("bytes")
	if byteMode && fs.Changed("lines") {
		return wrapError(c.name, errors.New("options -n and -c are mutually exclusive"))
	}

	spec := opts.lines
	if byteMode {
		spec = opts.bytes
	}
	off, err := offset.Parse(spec)
	if err != nil {
		return wrapError(c.name, err)
	}
	hc.Logger.Debug("resolved offset", "cmd", c.name, "offset", off.String(), "direction", off.Direction(), "bytes", byteMode)

	files := fs.Args()
	showHeaders := len(files) > 1 && !opts.quiet

	return ProcessFilesOrStdin(hc, c.name, files,
		func(r io.Reader, filename string, index, _ int) error {
			src, spooled, err := extract.Seekable(r)
			if err != nil {
				return err
			}
			if spooled {
				hc.Logger.Debug("spooled non-seekable input", "cmd", c.name, "file", filename)
			}

			if showHeaders {
				printHeader(hc.Stdout, filename, index)
			}
			if byteMode {
				_, err := extract.WriteBytes(hc.Stdout, src, off)
				return err
			}
			return c.writeLines(hc, src, off)
		})
}

// writeLines emits the selected lines followed by a single newline when at
// least one line was written.
func (c *tailCommand) writeLines(hc *HandlerContext, src extract.Source, off offset.Offset) error {
	n, err := extract.WriteLines(hc.Stdout, src, off, hc.Settings.InvalidLines)
	if err != nil {
		return err
	}
	if n > 0 {
		fmt.Fprintln(hc.Stdout)
	}
	return nil
}
