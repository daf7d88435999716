// SPDX-License-Identifier: MPL-2.0

package textutil

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
)

// stdinName is the reserved path argument that selects standard input.
const stdinName = "-"

// FileProcessor processes a single reader with file context.
// Parameters:
//   - r: the input stream to process (an afero.File for named files)
//   - filename: the original filename argument (or "-" for stdin)
//   - index: 0-based index of current file (0 for stdin)
//   - total: total number of files being processed (0 for implicit stdin)
type FileProcessor func(r io.Reader, filename string, index, total int) error

// ProcessFilesOrStdin processes files from args or stdin if no files given.
// A "-" argument also selects stdin. Named files are resolved against hc.Dir
// and opened through hc.Fs.
//
// A file that cannot be opened, or whose processor fails, is reported on
// hc.Stderr as "<cmd>: <path>: <error>" and the remaining files are still
// processed. When any file failed, the returned *StatusError (exit status 1)
// aggregates every failure.
//
// Example usage (head command):
//
//	return ProcessFilesOrStdin(hc, c.name, fs.Args(),
//	    func(r io.Reader, filename string, index, total int) error {
//	        if total > 1 {
//	            printHeader(hc.Stdout, filename, index)
//	        }
//	        return c.processReader(hc.Stdout, r, numLines)
//	    })
func ProcessFilesOrStdin(hc *HandlerContext, cmdName string, args []string, processor FileProcessor) error {
	if len(args) == 0 {
		if err := processor(hc.Stdin, stdinName, 0, 0); err != nil {
			err = fileError(stdinName, err)
			reportError(hc, cmdName, err)
			return exitStatus(1, wrapError(cmdName, err))
		}
		return nil
	}

	var failures *multierror.Error
	total := len(args)
	for i, file := range args {
		var err error
		if file == stdinName {
			err = processor(hc.Stdin, file, i, total)
		} else {
			err = processFile(hc.Fs, resolvePath(hc.Dir, file), func(f afero.File) error {
				return processor(f, file, i, total)
			})
		}
		if err != nil {
			err = fileError(file, err)
			reportError(hc, cmdName, err)
			failures = multierror.Append(failures, err)
		}
	}

	if err := failures.ErrorOrNil(); err != nil {
		return exitStatus(1, wrapError(cmdName, err))
	}
	return nil
}

// processFile opens a file and calls the processor, aggregating the close
// error via named return.
func processFile(fsys afero.Fs, path string, processor func(f afero.File) error) (err error) {
	f, err := fsys.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return processor(f)
}

// openFile opens path (relative to hc.Dir) through hc.Fs, or returns stdin
// for "-". The returned close function is a no-op for stdin.
func openFile(hc *HandlerContext, path string) (io.Reader, func() error, error) {
	if path == stdinName || path == "" {
		return hc.Stdin, func() error { return nil }, nil
	}
	f, err := hc.Fs.Open(resolvePath(hc.Dir, path))
	if err != nil {
		return nil, nil, fileError(path, err)
	}
	return f, f.Close, nil
}

// resolvePath makes a relative path absolute against dir.
func resolvePath(dir, path string) string {
	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}

// reportError writes "<cmd>: <err>" to the command's stderr.
func reportError(hc *HandlerContext, cmdName string, err error) {
	fmt.Fprintf(hc.Stderr, "%s: %v\n", cmdName, err)
}

// printHeader writes the "==> name <==" banner used by head and tail,
// preceded by a blank line for every file but the first.
func printHeader(out io.Writer, name string, index int) {
	if index > 0 {
		fmt.Fprintln(out)
	}
	if name == stdinName {
		name = "standard input"
	}
	fmt.Fprintf(out, "==> %s <==\n", name)
}
