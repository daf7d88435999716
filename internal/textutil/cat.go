// SPDX-License-Identifier: MPL-2.0

package textutil

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

type (
	// catCommand implements the cat utility.
	catCommand struct {
		name  string
		flags []FlagInfo
	}

	catOptions struct {
		number         bool
		numberNonblank bool
	}
)

func init() {
	RegisterDefault(newCatCommand())
}

// newCatCommand creates a new cat command.
func newCatCommand() *catCommand {
	c := &catCommand{name: "cat"}
	c.flags = describeFlags(c.flagSet(&catOptions{}))
	return c
}

// Name returns the command name.
func (c *catCommand) Name() string {
	return c.name
}

// SupportedFlags returns the flags supported by this command.
func (c *catCommand) SupportedFlags() []FlagInfo {
	return c.flags
}

func (c *catCommand) flagSet(o *catOptions) *pflag.FlagSet {
	fs := newFlagSet(c.name)
	fs.BoolVarP(&o.number, "number", "n", false, "number all output lines, starting at 1")
	fs.BoolVarP(&o.numberNonblank, "number-nonblank", "b", false, "number non-blank output lines, overrides -n")
	return fs
}

// Run executes the cat command.
func (c *catCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	var opts catOptions
	fs := c.flagSet(&opts)
	if ok, err := parseFlags(hc, fs, args); !ok {
		return err
	}

	return ProcessFilesOrStdin(hc, c.name, fs.Args(),
		func(r io.Reader, _ string, _, _ int) error {
			if !opts.number && !opts.numberNonblank {
				if _, err := io.Copy(hc.Stdout, r); err != nil {
					return fmt.Errorf("reading input: %w", err)
				}
				return nil
			}
			return c.numberLines(hc.Stdout, r, opts.numberNonblank)
		})
}

// numberLines copies in to out prefixing lines with "%6d\t". Numbering
// restarts at 1 for every input. With nonblankOnly, empty lines are copied
// unnumbered.
func (c *catCommand) numberLines(out io.Writer, in io.Reader, nonblankOnly bool) error {
	reader := bufio.NewReader(in)
	lineNo := 0

	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			blank := bytes.Equal(line, []byte("\n"))
			if !nonblankOnly || !blank {
				lineNo++
				fmt.Fprintf(out, "%6d\t", lineNo)
			}
			if _, werr := out.Write(line); werr != nil {
				return werr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}
	}
}
