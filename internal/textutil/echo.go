// SPDX-License-Identifier: MPL-2.0

package textutil

import (
	"context"
	"fmt"
	"strings"
)

// echoCommand implements the echo utility.
type echoCommand struct {
	name  string
	flags []FlagInfo
}

func init() {
	RegisterDefault(newEchoCommand())
}

// newEchoCommand creates a new echo command.
func newEchoCommand() *echoCommand {
	return &echoCommand{
		name: "echo",
		flags: []FlagInfo{
			{Name: "n", ShortName: "n", Description: "do not output the trailing newline"},
		},
	}
}

// Name returns the command name.
func (c *echoCommand) Name() string {
	return c.name
}

// SupportedFlags returns the flags supported by this command.
func (c *echoCommand) SupportedFlags() []FlagInfo {
	return c.flags
}

// Run executes the echo command. Only leading "-n" arguments are options;
// everything else, including other dash-prefixed words, is printed.
func (c *echoCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	var words []string
	if len(args) > 1 {
		words = args[1:]
	}
	newline := true
	for len(words) > 0 && words[0] == "-n" {
		newline = false
		words = words[1:]
	}

	out := strings.Join(words, " ")
	if newline {
		out += "\n"
	}
	if _, err := fmt.Fprint(hc.Stdout, out); err != nil {
		return wrapError(c.name, err)
	}
	return nil
}
