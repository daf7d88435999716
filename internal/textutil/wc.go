// SPDX-License-Identifier: MPL-2.0

package textutil

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/spf13/pflag"
)

type (
	// wcCommand implements the wc (word count) utility.
	wcCommand struct {
		name  string
		flags []FlagInfo
	}

	wcOptions struct {
		lines bool
		words bool
		bytes bool
		chars bool
	}

	// wcCounts holds the counts for a file.
	wcCounts struct {
		lines int64
		words int64
		bytes int64
		chars int64
	}
)

func init() {
	RegisterDefault(newWcCommand())
}

// newWcCommand creates a new wc command.
func newWcCommand() *wcCommand {
	c := &wcCommand{name: "wc"}
	c.flags = describeFlags(c.flagSet(&wcOptions{}))
	return c
}

// Name returns the command name.
func (c *wcCommand) Name() string {
	return c.name
}

// SupportedFlags returns the flags supported by this command.
func (c *wcCommand) SupportedFlags() []FlagInfo {
	return c.flags
}

func (c *wcCommand) flagSet(o *wcOptions) *pflag.FlagSet {
	fs := newFlagSet(c.name)
	fs.BoolVarP(&o.lines, "lines", "l", false, "print line count")
	fs.BoolVarP(&o.words, "words", "w", false, "print word count")
	fs.BoolVarP(&o.bytes, "bytes", "c", false, "print byte count, conflicts with -m")
	fs.BoolVarP(&o.chars, "chars", "m", false, "print character count, conflicts with -c")
	return fs
}

// Run executes the wc command.
func (c *wcCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	var opts wcOptions
	fs := c.flagSet(&opts)
	if ok, err := parseFlags(hc, fs, args); !ok {
		return err
	}

	if opts.bytes && opts.chars {
		return wrapError(c.name, errors.New("options -c and -m are mutually exclusive"))
	}
	// If no flags specified, show lines, words, and bytes
	if !opts.lines && !opts.words && !opts.bytes && !opts.chars {
		opts.lines, opts.words, opts.bytes = true, true, true
	}

	files := fs.Args()
	var total wcCounts

	err := ProcessFilesOrStdin(hc, c.name, files,
		func(r io.Reader, filename string, _, _ int) error {
			counts, err := c.count(r)
			if err != nil {
				return err
			}

			// For stdin, use empty name
			name := filename
			if filename == stdinName {
				name = ""
			}
			c.printCounts(hc.Stdout, counts, name, opts)

			total.lines += counts.lines
			total.words += counts.words
			total.bytes += counts.bytes
			total.chars += counts.chars
			return nil
		})

	// Print total if multiple files, even when some of them failed
	if len(files) > 1 {
		c.printCounts(hc.Stdout, total, "total", opts)
	}
	return err
}

// count reads from r and returns the counts using streaming I/O. A malformed
// UTF-8 byte counts as one character.
func (c *wcCommand) count(r io.Reader) (wcCounts, error) {
	var counts wcCounts
	reader := bufio.NewReader(r)
	inWord := false

	for {
		ru, size, err := reader.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return counts, fmt.Errorf("reading input: %w", err)
		}

		counts.bytes += int64(size)
		counts.chars++

		if ru == '\n' {
			counts.lines++
		}

		if unicode.IsSpace(ru) {
			inWord = false
		} else if !inWord {
			inWord = true
			counts.words++
		}
	}

	return counts, nil
}

// printCounts writes the selected counts as right-aligned %8d columns in the
// order lines, words, bytes, chars, followed by " name" when name is set.
func (c *wcCommand) printCounts(out io.Writer, counts wcCounts, name string, opts wcOptions) {
	var sb strings.Builder

	if opts.lines {
		fmt.Fprintf(&sb, "%8d", counts.lines)
	}
	if opts.words {
		fmt.Fprintf(&sb, "%8d", counts.words)
	}
	if opts.bytes {
		fmt.Fprintf(&sb, "%8d", counts.bytes)
	}
	if opts.chars {
		fmt.Fprintf(&sb, "%8d", counts.chars)
	}
	if name != "" {
		sb.WriteString(" " + name)
	}

	fmt.Fprintln(out, sb.String())
}
