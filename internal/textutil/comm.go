// SPDX-License-Identifier: MPL-2.0

package textutil

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
)

type (
	// commCommand implements the comm utility.
	commCommand struct {
		name  string
		flags []FlagInfo
	}

	commOptions struct {
		suppress1 bool
		suppress2 bool
		suppress3 bool
	}

	// commReader yields the lines of one sorted input without terminators.
	commReader struct {
		r    *bufio.Reader
		line string
		ok   bool
		err  error
	}
)

func init() {
	RegisterDefault(newCommCommand())
}

// newCommCommand creates a new comm command.
func newCommCommand() *commCommand {
	c := &commCommand{name: "comm"}
	c.flags = describeFlags(c.flagSet(&commOptions{}))
	return c
}

// Name returns the command name.
func (c *commCommand) Name() string {
	return c.name
}

// SupportedFlags returns the flags supported by this command.
func (c *commCommand) SupportedFlags() []FlagInfo {
	return c.flags
}

func (c *commCommand) flagSet(o *commOptions) *pflag.FlagSet {
	fs := newFlagSet(c.name)
	fs.BoolVarP(&o.suppress1, "suppress-1", "1", false, "suppress lines unique to FILE1")
	fs.BoolVarP(&o.suppress2, "suppress-2", "2", false, "suppress lines unique to FILE2")
	fs.BoolVarP(&o.suppress3, "suppress-3", "3", false, "suppress lines that appear in both files")
	return fs
}

// Run executes the comm command. Usage: comm [-123] file1 file2.
func (c *commCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	var opts commOptions
	fs := c.flagSet(&opts)
	if ok, err := parseFlags(hc, fs, args); !ok {
		return err
	}

	operands := fs.Args()
	if len(operands) != 2 {
		return wrapError(c.name, fmt.Errorf("expected 2 file operands, got %d", len(operands)))
	}
	if operands[0] == stdinName && operands[1] == stdinName {
		return wrapError(c.name, errors.New("both files cannot be standard input"))
	}

	var readers [2]io.Reader
	for i, path := range operands {
		r, closeFn, err := openFile(hc, path)
		if err != nil {
			reportError(hc, c.name, err)
			return exitStatus(1, wrapError(c.name, err))
		}
		defer closeFn() //nolint:errcheck // read-only input
		readers[i] = r
	}

	if err := c.compare(hc.Stdout, readers[0], readers[1], opts); err != nil {
		reportError(hc, c.name, err)
		return exitStatus(1, wrapError(c.name, err))
	}
	return nil
}

// compare merges two sorted inputs with a two-pointer walk and writes each
// line in its column: unique to the first, unique to the second, or common.
func (c *commCommand) compare(out io.Writer, in1, in2 io.Reader, opts commOptions) error {
	a := newCommReader(in1)
	b := newCommReader(in2)

	col2 := ""
	if !opts.suppress1 {
		col2 = "\t"
	}
	col3 := col2
	if !opts.suppress2 {
		col3 += "\t"
	}

	emit := func(suppressed bool, prefix, line string) {
		if !suppressed {
			fmt.Fprintf(out, "%s%s\n", prefix, line)
		}
	}

	for a.ok || b.ok {
		switch {
		case !b.ok || (a.ok && a.line < b.line):
			emit(opts.suppress1, "", a.line)
			a.next()
		case !a.ok || b.line < a.line:
			emit(opts.suppress2, col2, b.line)
			b.next()
		default:
			emit(opts.suppress3, col3, a.line)
			a.next()
			b.next()
		}
	}

	return errors.Join(a.err, b.err)
}

func newCommReader(r io.Reader) *commReader {
	cr := &commReader{r: bufio.NewReader(r)}
	cr.next()
	return cr
}

// next advances to the following line; ok is false once input is exhausted.
func (cr *commReader) next() {
	line, err := cr.r.ReadString('\n')
	cr.ok = line != ""
	if l, found := strings.CutSuffix(line, "\n"); found {
		line = strings.TrimSuffix(l, "\r")
	}
	cr.line = line
	if err != nil && !errors.Is(err, io.EOF) {
		cr.err = fmt.Errorf("reading input: %w", err)
		cr.ok = false
	}
}
