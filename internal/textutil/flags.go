// SPDX-License-Identifier: MPL-2.0

package textutil

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// newFlagSet returns a POSIX-style flag set for a utility. Combined short
// flags ("-vi") and attached values ("-n5") are handled by pflag.
func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	return fs
}

// parseFlags parses args[1:] into fs. It returns false when the command
// should stop: either help was requested (printed to stdout, err is nil) or
// the arguments are malformed (err is a usage error prefixed with the
// command name).
func parseFlags(hc *HandlerContext, fs *pflag.FlagSet, args []string) (bool, error) {
	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}
	if err := fs.Parse(rest); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printUsage(hc.Stdout, fs)
			return false, nil
		}
		return false, wrapError(fs.Name(), err)
	}
	return true, nil
}

// printUsage writes the flag summary for fs.
func printUsage(out io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintf(out, "Usage of %s:\n%s", fs.Name(), fs.FlagUsages())
}

// describeFlags derives FlagInfo entries from a flag set so that the
// introspection data never drifts from what Run actually parses.
func describeFlags(fs *pflag.FlagSet) []FlagInfo {
	var infos []FlagInfo
	fs.VisitAll(func(f *pflag.Flag) {
		infos = append(infos, FlagInfo{
			Name:        f.Name,
			ShortName:   f.Shorthand,
			Description: f.Usage,
			TakesValue:  f.Value.Type() != "bool",
		})
	})
	return infos
}
