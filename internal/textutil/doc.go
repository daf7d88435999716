// SPDX-License-Identifier: MPL-2.0

// Package textutil implements the lineutils text utilities.
//
// Each utility is a single-pass stream processor: it reads files or standard
// input, applies a transformation or filter, writes the result and reports an
// exit status. Utilities register themselves in DefaultRegistry from init()
// and are dispatched by name.
//
// # Supported Commands
//
//   - cat: Concatenate files, optionally numbering lines
//   - comm: Compare two sorted files line by line
//   - cut: Select bytes, characters or fields of each line
//   - echo: Print arguments
//   - false: Exit with status 1
//   - find: Walk directory trees and print matching entries
//   - grep: Print lines matching a pattern
//   - head: Output the first N lines or bytes
//   - tail: Output lines or bytes from an offset, counted from the start or end
//   - true: Exit with status 0
//   - uniq: Collapse adjacent duplicate lines
//   - wc: Count lines, words, bytes and characters
//
// # Execution Context
//
// Commands read their streams, working directory, filesystem and settings from
// the HandlerContext stored in the context.Context passed to Run. Files are
// opened through an afero.Fs, so tests run against afero.NewMemMapFs.
//
// # Error Format
//
// Diagnostics are prefixed with the command name, and per-file failures with
// the path as well:
//
//	tail: missing.txt: no such file or directory
//	cut: list: value may not contain 0's
//
// A failure on one file is reported and the remaining files are still
// processed; Run then returns a *StatusError carrying exit status 1. grep
// follows its own convention: 1 when nothing matched, 2 on error.
//
// # Flags
//
// Flags are parsed with spf13/pflag, so combined short flags ("-vi") and
// attached values ("-n5") work. Unknown flags are usage errors.
package textutil
