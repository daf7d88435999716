// SPDX-License-Identifier: MPL-2.0

// Package cli contains CLI integration tests using testscript.
//
// The test binary doubles as the lineutils executable: testscript installs
// it into $PATH under every name in the command map, so the scripts exercise
// both subcommand and multi-call dispatch exactly as an installed binary.
package cli

import (
	"path/filepath"
	"testing"

	"github.com/lineutils/lineutils/cmd/lineutils"

	"github.com/rogpeppe/go-internal/testscript"
)

// multiCallNames are the utility links installed next to lineutils.
var multiCallNames = []string{"cat", "head", "tail", "grep", "wc"}

func TestMain(m *testing.M) {
	commands := map[string]func(){"lineutils": cmd.Execute}
	for _, name := range multiCallNames {
		commands[name] = cmd.Execute
	}
	testscript.Main(m, commands)
}

// TestCLI runs all testscript tests in the testdata directory.
func TestCLI(t *testing.T) {
	t.Parallel()

	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			// Keep the user's configuration and environment out of the scripts.
			env.Setenv("XDG_CONFIG_HOME", filepath.Join(env.WorkDir, ".config"))
			env.Setenv("HOME", env.WorkDir)
			env.Setenv("NO_COLOR", "1")
			return nil
		},
		// Continue running all tests even if one fails
		ContinueOnError: true,
	})
}
