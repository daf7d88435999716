// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the lineutils command line: one cobra subcommand per
// registered utility, busybox-style dispatch on the program name, and the
// list and config commands.
package cmd
