// SPDX-License-Identifier: MPL-2.0

package textutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
)

type (
	// findCommand implements the find utility.
	findCommand struct {
		name  string
		flags []FlagInfo
	}

	findOptions struct {
		types   []string
		regexes []string
		names   []string
	}

	// findPredicates holds the compiled predicates. An entry is printed when
	// any predicate matches, or always when there are none.
	findPredicates struct {
		types   []string
		regexes []*regexp.Regexp
		names   []string
	}
)

// findLongPredicates are the predicates also accepted with a single dash.
var findLongPredicates = []string{"type", "regex", "name"}

func init() {
	RegisterDefault(newFindCommand())
}

// newFindCommand creates a new find command.
func newFindCommand() *findCommand {
	c := &findCommand{name: "find"}
	c.flags = describeFlags(c.flagSet(&findOptions{}))
	return c
}

// Name returns the command name.
func (c *findCommand) Name() string {
	return c.name
}

// SupportedFlags returns the flags supported by this command.
func (c *findCommand) SupportedFlags() []FlagInfo {
	return c.flags
}

func (c *findCommand) flagSet(o *findOptions) *pflag.FlagSet {
	fs := newFlagSet(c.name)
	fs.StringArrayVar(&o.types, "type", nil, "match entries of type f (file), d (directory) or l (symlink)")
	fs.StringArrayVar(&o.regexes, "regex", nil, "match entries whose path matches the regular expression")
	fs.StringArrayVar(&o.names, "name", nil, "match entries whose base name matches the shell glob")
	return fs
}

// Run executes the find command. Usage: find [path...] [predicates].
func (c *findCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	var opts findOptions
	fs := c.flagSet(&opts)
	if ok, err := parseFlags(hc, fs, normalizeFindArgs(args)); !ok {
		return err
	}

	preds, err := compileFindPredicates(opts)
	if err != nil {
		return wrapError(c.name, err)
	}

	roots := fs.Args()
	if len(roots) == 0 {
		roots = []string{"."}
	}

	var failures *multierror.Error
	for _, root := range roots {
		if err := c.walk(hc, root, preds); err != nil {
			failures = multierror.Append(failures, err)
		}
	}
	if err := failures.ErrorOrNil(); err != nil {
		return exitStatus(1, wrapError(c.name, err))
	}
	return nil
}

// normalizeFindArgs rewrites "-type" style predicates to "--type" so that
// both the classic and the GNU long spelling parse.
func normalizeFindArgs(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	for i := 1; i < len(out); i++ {
		for _, p := range findLongPredicates {
			if out[i] == "-"+p || strings.HasPrefix(out[i], "-"+p+"=") {
				out[i] = "-" + out[i]
			}
		}
	}
	return out
}

func compileFindPredicates(opts findOptions) (*findPredicates, error) {
	preds := &findPredicates{names: opts.names}

	for _, t := range opts.types {
		switch t {
		case "f", "d", "l":
			preds.types = append(preds.types, t)
		default:
			return nil, fmt.Errorf("invalid --type %q (expected f, d or l)", t)
		}
	}
	for _, expr := range opts.regexes {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid --regex %q: %w", expr, err)
		}
		preds.regexes = append(preds.regexes, re)
	}
	for _, glob := range opts.names {
		if _, err := filepath.Match(glob, ""); err != nil {
			return nil, fmt.Errorf("invalid --name %q: %w", glob, err)
		}
	}
	return preds, nil
}

// walk prints the matching entries under root. Entries that cannot be read
// are reported on stderr and the walk continues.
func (c *findCommand) walk(hc *HandlerContext, root string, preds *findPredicates) error {
	resolved := resolvePath(hc.Dir, root)

	var failures *multierror.Error
	walkErr := afero.Walk(hc.Fs, resolved, func(path string, info os.FileInfo, err error) error {
		display := findDisplayPath(root, resolved, path)
		if err != nil {
			err = fileError(display, err)
			reportError(hc, c.name, err)
			failures = multierror.Append(failures, err)
			return nil
		}
		if preds.match(display, info) {
			fmt.Fprintln(hc.Stdout, display)
		}
		return nil
	})
	if walkErr != nil {
		walkErr = fileError(root, walkErr)
		reportError(hc, c.name, walkErr)
		failures = multierror.Append(failures, walkErr)
	}
	return failures.ErrorOrNil()
}

// findDisplayPath spells path relative to the root as the user gave it.
func findDisplayPath(root, resolved, path string) string {
	rel, err := filepath.Rel(resolved, path)
	if err != nil || rel == "." {
		return root
	}
	if strings.HasSuffix(root, string(filepath.Separator)) {
		return root + rel
	}
	return root + string(filepath.Separator) + rel
}

func (p *findPredicates) match(path string, info os.FileInfo) bool {
	if len(p.types) == 0 && len(p.regexes) == 0 && len(p.names) == 0 {
		return true
	}

	for _, t := range p.types {
		switch {
		case t == "f" && info.Mode().IsRegular(),
			t == "d" && info.IsDir(),
			t == "l" && info.Mode()&os.ModeSymlink != 0:
			return true
		}
	}
	for _, re := range p.regexes {
		if re.MatchString(path) {
			return true
		}
	}
	for _, glob := range p.names {
		if ok, _ := filepath.Match(glob, info.Name()); ok {
			return true
		}
	}
	return false
}
