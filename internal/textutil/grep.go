// SPDX-License-Identifier: MPL-2.0

package textutil

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
)

const (
	grepExitMatch   = 0
	grepExitNoMatch = 1
	grepExitError   = 2
)

type (
	// grepCommand implements the grep utility.
	grepCommand struct {
		name  string
		flags []FlagInfo
	}

	grepOptions struct {
		count            bool
		invertMatch      bool
		ignoreCase       bool
		recursive        bool
		lineNumbers      bool
		filesWithMatches bool
		noFilename       bool
		withFilename     bool
		perl             bool
		color            string
	}

	// grepMatcher abstracts the two regular expression engines.
	grepMatcher interface {
		MatchString(s string) (bool, error)
		// FindAll returns the byte ranges of every match in s.
		FindAll(s string) ([][2]int, error)
	}

	// re2Matcher matches with the standard library (RE2 syntax).
	re2Matcher struct {
		re *regexp.Regexp
	}

	// perlMatcher matches with regexp2 (Perl/.NET syntax with backtracking).
	perlMatcher struct {
		re *regexp2.Regexp
	}

	// grepTarget is a file to search, or stdin.
	grepTarget struct {
		display string
		path    string
	}

	// grepPrinter formats matches for one invocation.
	grepPrinter struct {
		out       io.Writer
		opts      grepOptions
		showNames bool
		colored   bool
		fileColor *color.Color
		lineColor *color.Color
		sepColor  *color.Color
		hitColor  *color.Color
	}
)

func init() {
	RegisterDefault(newGrepCommand())
}

// newGrepCommand creates a new grep command.
func newGrepCommand() *grepCommand {
	c := &grepCommand{name: "grep"}
	c.flags = describeFlags(c.flagSet(&grepOptions{}))
	return c
}

// Name returns the command name.
func (c *grepCommand) Name() string {
	return c.name
}

// SupportedFlags returns the flags supported by this command.
func (c *grepCommand) SupportedFlags() []FlagInfo {
	return c.flags
}

func (c *grepCommand) flagSet(o *grepOptions) *pflag.FlagSet {
	fs := newFlagSet(c.name)
	fs.BoolVarP(&o.count, "count", "c", false, "print only a count of selected lines per file")
	fs.BoolVarP(&o.invertMatch, "invert-match", "v", false, "select non-matching lines")
	fs.BoolVarP(&o.ignoreCase, "ignore-case", "i", false, "ignore case distinctions")
	fs.BoolVarP(&o.recursive, "recursive", "r", false, "search directories recursively")
	fs.BoolVarP(&o.lineNumbers, "line-number", "n", false, "prefix each line with its line number")
	fs.BoolVarP(&o.filesWithMatches, "files-with-matches", "l", false, "print only names of files with selected lines")
	fs.BoolVarP(&o.noFilename, "no-filename", "h", false, "suppress the file name prefix")
	fs.BoolVarP(&o.withFilename, "with-filename", "H", false, "print the file name for each match")
	fs.BoolVarP(&o.perl, "perl-regexp", "P", false, "PATTERN is a Perl regular expression")
	fs.StringVar(&o.color, "color", "", "highlight matches: auto, always or never")
	fs.Lookup("color").NoOptDefVal = string(ColorAuto)
	return fs
}

// Run executes the grep command. It exits 0 when a line was selected, 1 when
// none was and 2 when an error occurred.
func (c *grepCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	var opts grepOptions
	fs := c.flagSet(&opts)
	if ok, err := parseFlags(hc, fs, args); !ok {
		if err != nil {
			return c.usageError(hc, err)
		}
		return nil
	}

	operands := fs.Args()
	if len(operands) == 0 {
		return c.usageError(hc, wrapError(c.name, errors.New("missing pattern")))
	}
	pattern, paths := operands[0], operands[1:]

	matcher, err := compileGrepPattern(pattern, opts.ignoreCase, opts.perl)
	if err != nil {
		return c.usageError(hc, wrapError(c.name, err))
	}

	mode := hc.Settings.Color
	if fs.Changed("color") {
		if mode, err = ParseColorMode(opts.color); err != nil {
			return c.usageError(hc, wrapError(c.name, err))
		}
	}

	targets, failures := c.collectTargets(hc, paths, opts.recursive)
	printer := newGrepPrinter(hc.Stdout, opts, len(targets) > 1, mode.Enabled(hc.Stdout, hc.LookupEnv))
	hc.Logger.Debug("searching", "cmd", c.name, "pattern", pattern, "perl", opts.perl, "files", len(targets))

	matched := false
	for _, t := range targets {
		found, err := c.searchTarget(hc, t, matcher, printer)
		if err != nil {
			failures = c.fail(hc, failures, fileError(t.display, err))
		}
		matched = matched || found
	}

	switch {
	case failures.ErrorOrNil() != nil:
		return exitStatus(grepExitError, wrapError(c.name, failures))
	case matched:
		return nil
	default:
		return exitStatus(grepExitNoMatch, nil)
	}
}

// usageError reports err on stderr and returns exit status 2.
func (c *grepCommand) usageError(hc *HandlerContext, err error) error {
	fmt.Fprintln(hc.Stderr, err)
	return exitStatus(grepExitError, err)
}

// fail reports err on stderr and appends it to failures.
func (c *grepCommand) fail(hc *HandlerContext, failures *multierror.Error, err error) *multierror.Error {
	reportError(hc, c.name, err)
	return multierror.Append(failures, err)
}

// collectTargets expands paths into the files to search. Without paths it
// searches stdin. Unreadable paths and directories (without recursive) are
// reported and skipped.
func (c *grepCommand) collectTargets(hc *HandlerContext, paths []string, recursive bool) ([]grepTarget, *multierror.Error) {
	if len(paths) == 0 {
		return []grepTarget{{display: stdinName, path: stdinName}}, nil
	}

	var targets []grepTarget
	var failures *multierror.Error
	for _, p := range paths {
		if p == stdinName {
			targets = append(targets, grepTarget{display: p, path: p})
			continue
		}

		resolved := resolvePath(hc.Dir, p)
		info, err := hc.Fs.Stat(resolved)
		if err != nil {
			failures = c.fail(hc, failures, fileError(p, err))
			continue
		}
		if !info.IsDir() {
			targets = append(targets, grepTarget{display: p, path: resolved})
			continue
		}
		if !recursive {
			failures = c.fail(hc, failures, fmt.Errorf("%s: %w", p, ErrIsDirectory))
			continue
		}

		walkErr := afero.Walk(hc.Fs, resolved, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				rel, _ := filepath.Rel(resolved, path)
				failures = c.fail(hc, failures, fileError(filepath.Join(p, rel), err))
				return nil
			}
			if !info.Mode().IsRegular() {
				return nil
			}
			rel, err := filepath.Rel(resolved, path)
			if err != nil {
				return err
			}
			targets = append(targets, grepTarget{display: filepath.Join(p, rel), path: path})
			return nil
		})
		if walkErr != nil {
			failures = c.fail(hc, failures, fileError(p, walkErr))
		}
	}
	return targets, failures
}

// searchTarget opens and searches a single target.
func (c *grepCommand) searchTarget(hc *HandlerContext, t grepTarget, m grepMatcher, p *grepPrinter) (found bool, err error) {
	if t.path == stdinName {
		return p.search(hc.Stdin, t.display, m)
	}
	f, err := hc.Fs.Open(t.path)
	if err != nil {
		return false, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return p.search(f, t.display, m)
}

// compileGrepPattern compiles pattern with the selected engine.
func compileGrepPattern(pattern string, ignoreCase, perl bool) (grepMatcher, error) {
	if perl {
		opts := regexp2.None
		if ignoreCase {
			opts |= regexp2.IgnoreCase
		}
		re, err := regexp2.Compile(pattern, opts)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern: %w", err)
		}
		return &perlMatcher{re: re}, nil
	}

	if ignoreCase {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	return &re2Matcher{re: re}, nil
}

func (m *re2Matcher) MatchString(s string) (bool, error) {
	return m.re.MatchString(s), nil
}

func (m *re2Matcher) FindAll(s string) ([][2]int, error) {
	var ranges [][2]int
	for _, loc := range m.re.FindAllStringIndex(s, -1) {
		ranges = append(ranges, [2]int{loc[0], loc[1]})
	}
	return ranges, nil
}

func (m *perlMatcher) MatchString(s string) (bool, error) {
	return m.re.MatchString(s)
}

// FindAll converts regexp2's rune offsets into byte offsets.
func (m *perlMatcher) FindAll(s string) ([][2]int, error) {
	offsets := make([]int, 0, len(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(s))

	var ranges [][2]int
	match, err := m.re.FindStringMatch(s)
	for match != nil && err == nil {
		ranges = append(ranges, [2]int{offsets[match.Index], offsets[match.Index+match.Length]})
		match, err = m.re.FindNextMatch(match)
	}
	return ranges, err
}

func newGrepPrinter(out io.Writer, opts grepOptions, multiple, colored bool) *grepPrinter {
	p := &grepPrinter{
		out:       out,
		opts:      opts,
		showNames: (multiple || opts.withFilename) && !opts.noFilename,
		colored:   colored,
		fileColor: color.New(color.FgMagenta),
		lineColor: color.New(color.FgGreen),
		sepColor:  color.New(color.FgCyan),
		hitColor:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.fileColor, p.lineColor, p.sepColor, p.hitColor} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// search scans r line by line and prints the selected lines. It reports
// whether any line was selected.
func (p *grepPrinter) search(r io.Reader, name string, m grepMatcher) (bool, error) {
	reader := bufio.NewReader(r)
	lineNo, count := 0, 0

	for {
		raw, readErr := reader.ReadString('\n')
		if raw != "" {
			lineNo++
			line := strings.TrimSuffix(raw, "\n")

			hit, err := m.MatchString(line)
			if err != nil {
				return count > 0, fmt.Errorf("matching line %d: %w", lineNo, err)
			}
			if hit != p.opts.invertMatch {
				count++
				if p.opts.filesWithMatches {
					break
				}
				if !p.opts.count {
					if err := p.printLine(name, lineNo, line, m); err != nil {
						return true, err
					}
				}
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return count > 0, fmt.Errorf("reading input: %w", readErr)
		}
	}

	switch {
	case p.opts.filesWithMatches:
		if count > 0 {
			fmt.Fprintln(p.out, p.fileColor.Sprint(displayName(name)))
		}
	case p.opts.count:
		if p.showNames {
			fmt.Fprint(p.out, p.prefix(name))
		}
		fmt.Fprintln(p.out, count)
	}
	return count > 0, nil
}

// printLine writes one selected line with its optional prefixes.
func (p *grepPrinter) printLine(name string, lineNo int, line string, m grepMatcher) error {
	var sb strings.Builder
	if p.showNames {
		sb.WriteString(p.prefix(name))
	}
	if p.opts.lineNumbers {
		sb.WriteString(p.lineColor.Sprint(lineNo))
		sb.WriteString(p.sepColor.Sprint(":"))
	}

	body := line
	if p.colored && !p.opts.invertMatch {
		ranges, err := m.FindAll(line)
		if err != nil {
			return fmt.Errorf("matching line %d: %w", lineNo, err)
		}
		body = p.highlight(line, ranges)
	}
	sb.WriteString(body)

	_, err := fmt.Fprintln(p.out, sb.String())
	return err
}

// highlight colors the non-empty match ranges of line.
func (p *grepPrinter) highlight(line string, ranges [][2]int) string {
	var sb strings.Builder
	last := 0
	for _, r := range ranges {
		if r[0] == r[1] || r[0] < last {
			continue
		}
		sb.WriteString(line[last:r[0]])
		sb.WriteString(p.hitColor.Sprint(line[r[0]:r[1]]))
		last = r[1]
	}
	sb.WriteString(line[last:])
	return sb.String()
}

func (p *grepPrinter) prefix(name string) string {
	return p.fileColor.Sprint(displayName(name)) + p.sepColor.Sprint(":")
}

// displayName maps the stdin marker to the name shown in output.
func displayName(name string) string {
	if name == stdinName {
		return "(standard input)"
	}
	return name
}
