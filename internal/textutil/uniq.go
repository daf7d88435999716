// SPDX-License-Identifier: MPL-2.0

package textutil

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

type (
	// uniqCommand implements the uniq utility.
	uniqCommand struct {
		name  string
		flags []FlagInfo
	}

	uniqOptions struct {
		count          bool
		duplicatesOnly bool
		uniqueOnly     bool
		ignoreCase     bool
	}
)

// errUniqSameFile rejects an output operand naming the input, which would be
// truncated before it is read.
var errUniqSameFile = errors.New("input and output are the same file")

func init() {
	RegisterDefault(newUniqCommand())
}

// newUniqCommand creates a new uniq command.
func newUniqCommand() *uniqCommand {
	c := &uniqCommand{name: "uniq"}
	c.flags = describeFlags(c.flagSet(&uniqOptions{}))
	return c
}

// Name returns the command name.
func (c *uniqCommand) Name() string {
	return c.name
}

// SupportedFlags returns the flags supported by this command.
func (c *uniqCommand) SupportedFlags() []FlagInfo {
	return c.flags
}

func (c *uniqCommand) flagSet(o *uniqOptions) *pflag.FlagSet {
	fs := newFlagSet(c.name)
	fs.BoolVarP(&o.count, "count", "c", false, "prefix lines by the number of occurrences")
	fs.BoolVarP(&o.duplicatesOnly, "repeated", "d", false, "only print duplicate lines, one for each group")
	fs.BoolVarP(&o.uniqueOnly, "unique", "u", false, "only print unique lines")
	fs.BoolVarP(&o.ignoreCase, "ignore-case", "i", false, "ignore differences in case when comparing")
	return fs
}

// Run executes the uniq command. Usage: uniq [flags] [input [output]].
func (c *uniqCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	var opts uniqOptions
	fs := c.flagSet(&opts)
	if ok, err := parseFlags(hc, fs, args); !ok {
		return err
	}

	operands := fs.Args()
	if len(operands) > 2 {
		return wrapError(c.name, fmt.Errorf("extra operand %q", operands[2]))
	}

	input := stdinName
	if len(operands) > 0 {
		input = operands[0]
	}
	if len(operands) == 2 && input != stdinName &&
		resolvePath(hc.Dir, input) == resolvePath(hc.Dir, operands[1]) {
		return c.fail(hc, fileError(operands[1], errUniqSameFile))
	}
	in, closeIn, err := openFile(hc, input)
	if err != nil {
		return c.fail(hc, err)
	}
	defer closeIn() //nolint:errcheck // read-only input

	if len(operands) < 2 || operands[1] == stdinName {
		if err := c.processInput(hc.Stdout, in, opts); err != nil {
			return c.fail(hc, fileError(input, err))
		}
		return nil
	}

	output := operands[1]
	if err := c.processToFile(hc, in, output, opts); err != nil {
		return c.fail(hc, fileError(output, err))
	}
	return nil
}

// processToFile creates or truncates path and writes the result into it.
func (c *uniqCommand) processToFile(hc *HandlerContext, in io.Reader, path string, opts uniqOptions) (err error) {
	f, err := hc.Fs.OpenFile(resolvePath(hc.Dir, path), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return c.processInput(f, in, opts)
}

// fail reports err on stderr and returns exit status 1.
func (c *uniqCommand) fail(hc *HandlerContext, err error) error {
	reportError(hc, c.name, err)
	return exitStatus(1, wrapError(c.name, err))
}

// processInput writes one line per group of adjacent equal lines. Lines are
// compared without their terminator and always written newline-terminated.
func (c *uniqCommand) processInput(out io.Writer, in io.Reader, opts uniqOptions) error {
	reader := bufio.NewReader(in)

	var prevKey, prevLine string
	count := 0

	outputLine := func(line string, cnt int) error {
		if opts.duplicatesOnly && cnt <= 1 {
			return nil
		}
		if opts.uniqueOnly && cnt > 1 {
			return nil
		}

		var err error
		if opts.count {
			_, err = fmt.Fprintf(out, "%4d %s\n", cnt, line)
		} else {
			_, err = fmt.Fprintln(out, line)
		}
		return err
	}

	for {
		raw, readErr := reader.ReadString('\n')
		if raw != "" {
			line := strings.TrimSuffix(raw, "\n")
			key := line
			if opts.ignoreCase {
				key = strings.ToLower(line)
			}

			switch {
			case count > 0 && key == prevKey:
				count++
			default:
				if count > 0 {
					if err := outputLine(prevLine, count); err != nil {
						return err
					}
				}
				prevKey, prevLine, count = key, line, 1
			}
		}
		if readErr != nil {
			if !errors.Is(readErr, io.EOF) {
				return fmt.Errorf("reading input: %w", readErr)
			}
			break
		}
	}

	// Output the last group
	if count > 0 {
		return outputLine(prevLine, count)
	}
	return nil
}
