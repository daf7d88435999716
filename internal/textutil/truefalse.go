// SPDX-License-Identifier: MPL-2.0

package textutil

import "context"

// statusCommand implements true and false: it ignores its arguments and
// exits with a fixed status.
type statusCommand struct {
	name string
	code int
}

func init() {
	RegisterDefault(newStatusCommand("true", 0))
	RegisterDefault(newStatusCommand("false", 1))
}

func newStatusCommand(name string, code int) *statusCommand {
	return &statusCommand{name: name, code: code}
}

// Name returns the command name.
func (c *statusCommand) Name() string {
	return c.name
}

// SupportedFlags returns nil; arguments are ignored.
func (c *statusCommand) SupportedFlags() []FlagInfo {
	return nil
}

// Run returns the fixed status.
func (c *statusCommand) Run(context.Context, []string) error {
	return exitStatus(c.code, nil)
}
