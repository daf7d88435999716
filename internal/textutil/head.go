// SPDX-License-Identifier: MPL-2.0

package textutil

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/lineutils/lineutils/internal/extract"
)

type (
	// headCommand implements the head utility.
	headCommand struct {
		name  string
		flags []FlagInfo
	}

	headOptions struct {
		lines int
		bytes int
	}
)

func init() {
	RegisterDefault(newHeadCommand())
}

// newHeadCommand creates a new head command.
func newHeadCommand() *headCommand {
	c := &headCommand{name: "head"}
	c.flags = describeFlags(c.flagSet(&headOptions{}, DefaultSettings().HeadLines))
	return c
}

// Name returns the command name.
func (c *headCommand) Name() string {
	return c.name
}

// SupportedFlags returns the flags supported by this command.
func (c *headCommand) SupportedFlags() []FlagInfo {
	return c.flags
}

func (c *headCommand) flagSet(o *headOptions, defaultLines int) *pflag.FlagSet {
	fs := newFlagSet(c.name)
	fs.IntVarP(&o.lines, "lines", "n", defaultLines, "print the first N lines")
	fs.IntVarP(&o.bytes, "bytes", "c", 0, "print the first N bytes")
	return fs
}

// Run executes the head command.
func (c *headCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	var opts headOptions
	fs := c.flagSet(&opts, hc.Settings.HeadLines)
	if ok, err := parseFlags(hc, fs, args); !ok {
		return err
	}

	byteMode := fs.Changed("bytes")
	if byteMode && fs.Changed("lines") {
		return wrapError(c.name, errors.New("options -n and -c are mutually exclusive"))
	}
	if opts.lines < 0 {
		return wrapError(c.name, fmt.Errorf("illegal line count -- %d", opts.lines))
	}
	if opts.bytes < 0 {
		return wrapError(c.name, fmt.Errorf("illegal byte count -- %d", opts.bytes))
	}

	return ProcessFilesOrStdin(hc, c.name, fs.Args(),
		func(r io.Reader, filename string, index, total int) error {
			// Print header for multiple files
			if total > 1 {
				printHeader(hc.Stdout, filename, index)
			}
			if byteMode {
				return c.processBytes(hc.Stdout, r, int64(opts.bytes))
			}
			return c.processReader(hc.Stdout, r, opts.lines)
		})
}

// processReader copies the first n lines from a reader, terminators included,
// without reading past them.
func (c *headCommand) processReader(out io.Writer, in io.Reader, n int) error {
	reader := bufio.NewReader(in)

	for count := 0; count < n; {
		chunk, err := reader.ReadSlice('\n')
		if len(chunk) > 0 {
			if _, werr := out.Write(chunk); werr != nil {
				return werr
			}
		}

		switch {
		case err == nil:
			count++
		case errors.Is(err, bufio.ErrBufferFull):
			// same line continues
		case errors.Is(err, io.EOF):
			return nil
		default:
			return fmt.Errorf("reading input: %w", err)
		}
	}
	return nil
}

// processBytes copies the first n bytes, replacing malformed UTF-8 (including
// a rune cut in half at the limit) with U+FFFD.
func (c *headCommand) processBytes(out io.Writer, in io.Reader, n int64) error {
	if _, err := io.Copy(out, extract.LossyReader(io.LimitReader(in, n))); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}
