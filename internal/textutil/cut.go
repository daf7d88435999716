// SPDX-License-Identifier: MPL-2.0

package textutil

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/pflag"

	"github.com/lineutils/lineutils/internal/extract"
)

const (
	cutBytes cutMode = iota + 1
	cutChars
	cutFields
)

var (
	// ErrCutListZero is returned when a cut list names position 0.
	ErrCutListZero = errors.New("list: value may not contain 0's")
	// ErrCutListInvalid is returned for a malformed cut list entry.
	ErrCutListInvalid = errors.New("list: invalid input")
)

type (
	// cutCommand implements the cut utility.
	cutCommand struct {
		name  string
		flags []FlagInfo
	}

	cutMode int

	cutOptions struct {
		bytes         string
		chars         string
		fields        string
		delimiter     string
		onlyDelimited bool
	}

	// cutRange represents a range specification (1-based indexing).
	cutRange struct {
		start int // 1-based start
		end   int // 1-based end, -1 means to end of line
	}

	// cutList is a set of 1-based positions sorted by start.
	cutList []cutRange
)

func init() {
	RegisterDefault(newCutCommand())
}

// newCutCommand creates a new cut command.
func newCutCommand() *cutCommand {
	c := &cutCommand{name: "cut"}
	c.flags = describeFlags(c.flagSet(&cutOptions{}))
	return c
}

// Name returns the command name.
func (c *cutCommand) Name() string {
	return c.name
}

// SupportedFlags returns the flags supported by this command.
func (c *cutCommand) SupportedFlags() []FlagInfo {
	return c.flags
}

func (c *cutCommand) flagSet(o *cutOptions) *pflag.FlagSet {
	fs := newFlagSet(c.name)
	fs.StringVarP(&o.bytes, "bytes", "b", "", "select only these bytes")
	fs.StringVarP(&o.chars, "characters", "c", "", "select only these characters")
	fs.StringVarP(&o.fields, "fields", "f", "", "select only these fields")
	fs.StringVarP(&o.delimiter, "delimiter", "d", "\t", "use DELIM instead of TAB for field delimiter")
	fs.BoolVarP(&o.onlyDelimited, "only-delimited", "s", false, "do not print lines not containing delimiters")
	return fs
}

// Run executes the cut command.
func (c *cutCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	var opts cutOptions
	fs := c.flagSet(&opts)
	if ok, err := parseFlags(hc, fs, args); !ok {
		return err
	}

	mode, spec, err := c.selectMode(fs)
	if err != nil {
		return wrapError(c.name, err)
	}
	list, err := parseCutList(spec)
	if err != nil {
		return wrapError(c.name, err)
	}
	if utf8.RuneCountInString(opts.delimiter) != 1 {
		return wrapError(c.name, errors.New("the delimiter must be a single character"))
	}

	return ProcessFilesOrStdin(hc, c.name, fs.Args(),
		func(r io.Reader, _ string, _, _ int) error {
			return c.processReader(hc.Stdout, r, mode, list, opts)
		})
}

// selectMode returns the single cut mode requested and its list.
func (c *cutCommand) selectMode(fs *pflag.FlagSet) (cutMode, string, error) {
	var (
		mode  cutMode
		spec  string
		count int
	)
	for _, m := range []struct {
		flag string
		mode cutMode
	}{{"bytes", cutBytes}, {"characters", cutChars}, {"fields", cutFields}} {
		if fs.Changed(m.flag) {
			count++
			mode = m.mode
			spec, _ = fs.GetString(m.flag)
		}
	}

	switch count {
	case 0:
		return 0, "", errors.New("you must specify a list of bytes, characters, or fields")
	case 1:
		return mode, spec, nil
	default:
		return 0, "", errors.New("only one type of list may be specified")
	}
}

// parseCutList parses a list like "1,3-5,7-,-2".
func parseCutList(spec string) (cutList, error) {
	var list cutList

	for part := range strings.SplitSeq(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("%w: empty element in %q", ErrCutListInvalid, spec)
		}

		before, after, found := strings.Cut(part, "-")
		if !found {
			n, err := parseCutPosition(part)
			if err != nil {
				return nil, err
			}
			list = append(list, cutRange{start: n, end: n})
			continue
		}

		// Range: "3-5", "3-" or "-5"
		r := cutRange{start: 1, end: -1}
		if before == "" && after == "" {
			return nil, fmt.Errorf("%w: %q", ErrCutListInvalid, part)
		}
		if before != "" {
			n, err := parseCutPosition(before)
			if err != nil {
				return nil, err
			}
			r.start = n
		}
		if after != "" {
			n, err := parseCutPosition(after)
			if err != nil {
				return nil, err
			}
			r.end = n
		}
		if r.end != -1 && r.end < r.start {
			return nil, fmt.Errorf("%w: decreasing range %q", ErrCutListInvalid, part)
		}
		list = append(list, r)
	}

	sort.SliceStable(list, func(i, j int) bool { return list[i].start < list[j].start })
	return list, nil
}

func parseCutPosition(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrCutListInvalid, s)
	}
	if n == 0 {
		return 0, ErrCutListZero
	}
	return n, nil
}

// contains reports whether the 1-based position pos is selected.
func (l cutList) contains(pos int) bool {
	for _, r := range l {
		if r.start > pos {
			return false
		}
		if r.end == -1 || pos <= r.end {
			return true
		}
	}
	return false
}

// processReader processes input line by line.
func (c *cutCommand) processReader(out io.Writer, in io.Reader, mode cutMode, list cutList, opts cutOptions) error {
	reader := bufio.NewReader(in)

	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			switch mode {
			case cutBytes:
				fmt.Fprintln(out, c.cutBytes(line, list))
			case cutChars:
				fmt.Fprintln(out, c.cutChars(line, list))
			case cutFields:
				if selected, ok := c.cutFields(line, list, opts.delimiter, opts.onlyDelimited); ok {
					fmt.Fprintln(out, selected)
				}
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

// cutBytes selects bytes; a multi-byte character split by the selection is
// replaced by U+FFFD.
func (c *cutCommand) cutBytes(line string, list cutList) string {
	selected := make([]byte, 0, len(line))
	for i := 0; i < len(line); i++ {
		if list.contains(i + 1) {
			selected = append(selected, line[i])
		}
	}
	return string(extract.Lossy(selected))
}

// cutChars cuts by characters.
func (c *cutCommand) cutChars(line string, list cutList) string {
	var sb strings.Builder
	pos := 0
	for _, r := range line {
		pos++
		if list.contains(pos) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// cutFields cuts by fields. A line without the delimiter is passed through
// unless onlyDelimited is set, in which case ok is false.
func (c *cutCommand) cutFields(line string, list cutList, delimiter string, onlyDelimited bool) (string, bool) {
	fields := strings.Split(line, delimiter)

	if len(fields) == 1 {
		return line, !onlyDelimited
	}

	var selected []string
	for i, f := range fields {
		if list.contains(i + 1) {
			selected = append(selected, f)
		}
	}
	return strings.Join(selected, delimiter), true
}
