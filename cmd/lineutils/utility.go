// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lineutils/lineutils/internal/textutil"

	"github.com/spf13/cobra"
)

// utilitySummaries are the one-line descriptions shown in help and list output.
var utilitySummaries = map[string]string{
	"cat":   "Concatenate files to standard output",
	"comm":  "Compare two sorted files line by line",
	"cut":   "Select bytes, characters or fields from each line",
	"echo":  "Print arguments separated by spaces",
	"false": "Exit with status 1",
	"find":  "Walk directory trees and print matching entries",
	"grep":  "Print lines matching a pattern",
	"head":  "Print the first lines or bytes of files",
	"tail":  "Print the last lines or bytes of files",
	"true":  "Exit with status 0",
	"uniq":  "Collapse adjacent duplicate lines",
	"wc":    "Count lines, words, bytes and characters",
}

// utilitySummary returns the summary for name, or a generic one.
func utilitySummary(name string) string {
	if s, ok := utilitySummaries[name]; ok {
		return s
	}
	return "Run the " + name + " utility"
}

// newUtilityCommand wraps a registered utility. Flag parsing is left to the
// utility, so every argument after the name reaches it untouched except the
// global flags leading the argument list.
func newUtilityCommand(app *App, opts *globalOptions, name string) *cobra.Command {
	return &cobra.Command{
		Use:                name + " [flags] [args...]",
		Short:              utilitySummary(name),
		DisableFlagParsing: true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			args, err := opts.consumeLeading(args)
			if err != nil {
				return err
			}
			return app.runUtility(cmd.Context(), opts, name, args)
		},
	}
}

// consumeLeading strips the global flags (--verbose, --config FILE,
// --config=FILE) from the front of args and applies them to o.
func (o *globalOptions) consumeLeading(args []string) ([]string, error) {
	for len(args) > 0 {
		switch arg := args[0]; {
		case arg == "--verbose":
			o.verbose = true
			args = args[1:]
		case arg == "--config":
			if len(args) < 2 {
				return nil, errors.New("flag needs an argument: --config")
			}
			o.configPath = args[1]
			args = args[2:]
		case strings.HasPrefix(arg, "--config="):
			o.configPath = strings.TrimPrefix(arg, "--config=")
			args = args[1:]
		default:
			return args, nil
		}
	}
	return args, nil
}

// runUtility runs name with args under the loaded configuration.
func (a *App) runUtility(ctx context.Context, opts *globalOptions, name string, args []string) error {
	cfg := a.loadConfig(ctx, opts)
	verbose := opts.verbose || cfg.UI.Verbose

	logger := newLogger(a.Stderr, verbose)
	hc := &textutil.HandlerContext{
		Stdin:     a.Stdin,
		Stdout:    a.Stdout,
		Stderr:    a.Stderr,
		Dir:       a.Dir,
		LookupEnv: a.LookupEnv,
		Fs:        a.Fs,
		Logger:    logger,
		Settings:  cfg.Settings(),
	}
	logger.Debug("running utility", "name", name, "args", args)

	err := a.Registry.Run(textutil.WithHandlerContext(ctx, hc), name, append([]string{name}, args...))
	return a.utilityExit(err, verbose)
}

// utilityExit converts a utility error into an ExitError. Failures the
// utility already reported are not printed again; other errors are usage
// errors, printed here with exit status 1.
func (a *App) utilityExit(err error, verbose bool) error {
	if err == nil {
		return nil
	}

	var statusErr *textutil.StatusError
	if errors.As(err, &statusErr) {
		if verbose {
			a.renderIssue(statusErr.Err)
		}
		return &ExitError{Code: statusErr.Code}
	}

	fmt.Fprintln(a.Stderr, err)
	if verbose {
		a.renderIssue(err)
	}
	return &ExitError{Code: 1}
}
