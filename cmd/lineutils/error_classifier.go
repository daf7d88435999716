// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"syscall"

	"github.com/lineutils/lineutils/internal/extract"
	"github.com/lineutils/lineutils/internal/issue"
	"github.com/lineutils/lineutils/internal/offset"
	"github.com/lineutils/lineutils/internal/textutil"

	"github.com/charmbracelet/fang"
	"golang.org/x/term"
)

// classifyError maps a failure to the issue catalog entry that explains it.
// It returns 0 when no entry applies.
func classifyError(err error) issue.Id {
	var ae *issue.ActionableError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &ae) && ae.CatalogIssue() != nil:
		return ae.Issue
	case errors.Is(err, offset.ErrInvalidOffset):
		return issue.InvalidOffsetId
	case errors.Is(err, extract.ErrSeekOutOfRange):
		return issue.SeekOutOfRangeId
	case errors.Is(err, textutil.ErrIsDirectory), errors.Is(err, syscall.EISDIR):
		return issue.IsDirectoryId
	case errors.Is(err, fs.ErrPermission):
		return issue.PermissionDeniedId
	case errors.Is(err, fs.ErrNotExist):
		return issue.FileNotFoundId
	case errors.Is(err, textutil.ErrCommandNotFound), strings.HasPrefix(err.Error(), "unknown command"):
		return issue.UnknownUtilityId
	default:
		return 0
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// renderIssue writes the catalog entry for err to stderr, if there is one.
func (a *App) renderIssue(err error) {
	id := classifyError(err)
	if id == 0 {
		return
	}
	rendered, renderErr := issue.Get(id).Render(glamourStyle(a.Stderr))
	if renderErr != nil {
		return
	}
	fmt.Fprint(a.Stderr, rendered)
}

// glamourStyle picks "auto" for terminals and "notty" otherwise.
func glamourStyle(w io.Writer) string {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "auto"
	}
	return "notty"
}

// errorHandler prints errors that reach fang. Exit errors without a cause
// were already reported by the utility and stay silent.
func (a *App) errorHandler(opts *globalOptions) fang.ErrorHandler {
	return func(w io.Writer, _ fang.Styles, err error) {
		var exitErr *ExitError
		if errors.As(err, &exitErr) && exitErr.Err == nil {
			return
		}
		fmt.Fprintln(w, ErrorStyle.Render("Error:")+" "+formatErrorForDisplay(err, opts.verbose))
		if opts.verbose {
			a.renderIssue(err)
		}
	}
}
