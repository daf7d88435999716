// SPDX-License-Identifier: MPL-2.0

package textutil

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// mockCommand is a test implementation of Command.
type mockCommand struct {
	name   string
	flags  []FlagInfo
	runFn  func(ctx context.Context, args []string) error
	called bool
	args   []string
}

func (m *mockCommand) Name() string { return m.name }

func (m *mockCommand) SupportedFlags() []FlagInfo { return m.flags }

func (m *mockCommand) Run(ctx context.Context, args []string) error {
	m.called = true
	m.args = args
	if m.runFn != nil {
		return m.runFn(ctx, args)
	}
	return nil
}

func newMockCommand(name string) *mockCommand {
	return &mockCommand{name: name}
}

func TestRegistry_Register_Multiple(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register(newMockCommand("cat"))
	r.Register(newMockCommand("wc"))
	r.Register(newMockCommand("cut"))

	if names := r.Names(); len(names) != 3 {
		t.Errorf("expected 3 commands, got %v", names)
	}
}

func TestRegistry_Register_PanicOnDuplicate(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register(newMockCommand("test"))

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()

	r.Register(newMockCommand("test"))
}

func TestRegistry_Register_PanicOnEmptyName(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	defer func() {
		if recover() == nil {
			t.Error("expected panic on empty name registration")
		}
	}()

	r.Register(newMockCommand(""))
}

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	cmd := newMockCommand("test")
	r.Register(cmd)

	found, ok := r.Lookup("test")
	if !ok {
		t.Error("Lookup should find registered command")
	}
	if found != cmd {
		t.Error("Lookup returned wrong command")
	}

	if _, ok := r.Lookup("nonexistent"); ok {
		t.Error("Lookup should return false for unregistered command")
	}
}

func TestRegistry_Names(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register(newMockCommand("tail"))
	r.Register(newMockCommand("cat"))
	r.Register(newMockCommand("grep"))

	names := r.Names()
	expected := []string{"cat", "grep", "tail"}
	if len(names) != len(expected) {
		t.Fatalf("expected %d names, got %d", len(expected), len(names))
	}
	// Names should be sorted
	for i, name := range names {
		if name != expected[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, name, expected[i])
		}
	}
}

func TestRegistry_Run(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	cmd := newMockCommand("echo")
	r.Register(cmd)

	if err := r.Run(t.Context(), "echo", []string{"echo", "hello", "world"}); err != nil {
		t.Errorf("Run returned unexpected error: %v", err)
	}
	if !cmd.called {
		t.Error("command was not called")
	}
	if len(cmd.args) != 3 || cmd.args[0] != "echo" || cmd.args[1] != "hello" || cmd.args[2] != "world" {
		t.Errorf("command received wrong args: %v", cmd.args)
	}
}

func TestRegistry_Run_DefaultsArgs(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	cmd := newMockCommand("true")
	r.Register(cmd)

	if err := r.Run(t.Context(), "true", nil); err != nil {
		t.Fatalf("Run returned unexpected error: %v", err)
	}
	if len(cmd.args) != 1 || cmd.args[0] != "true" {
		t.Errorf("command received args %v, want [true]", cmd.args)
	}
}

func TestRegistry_Run_NotFound(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	err := r.Run(t.Context(), "nonexistent", []string{"nonexistent"})

	if !errors.Is(err, ErrCommandNotFound) {
		t.Errorf("Run error = %v, want ErrCommandNotFound", err)
	}
}

func TestRegistry_Run_CommandError(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	expectedErr := errors.New("test: something went wrong")
	r.Register(&mockCommand{
		name: "test",
		runFn: func(context.Context, []string) error {
			return expectedErr
		},
	})

	if err := r.Run(t.Context(), "test", []string{"test"}); !errors.Is(err, expectedErr) {
		t.Errorf("Run should propagate command error, got: %v", err)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	for i := range 10 {
		r.Register(newMockCommand(fmt.Sprintf("cmd%d", i)))
	}

	// Concurrent reads
	done := make(chan bool)
	for range 10 {
		go func() {
			for range 100 {
				r.Lookup("cmd5")
				r.Names()
			}
			done <- true
		}()
	}

	for range 10 {
		<-done
	}
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	want := []string{"cat", "comm", "cut", "echo", "false", "find", "grep", "head", "tail", "true", "uniq", "wc"}
	names := DefaultRegistry.Names()
	if len(names) != len(want) {
		t.Fatalf("DefaultRegistry has %d commands %v, want %d", len(names), names, len(want))
	}
	for i, name := range names {
		if name != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, name, want[i])
		}
	}
}

func TestSupportedFlags_MatchParsedFlags(t *testing.T) {
	t.Parallel()

	for _, name := range DefaultRegistry.Names() {
		cmd, _ := DefaultRegistry.Lookup(name)
		for _, f := range cmd.SupportedFlags() {
			if f.Name == "" {
				t.Errorf("%s: flag with empty name", name)
			}
			if f.Description == "" {
				t.Errorf("%s: flag %q has no description", name, f.Name)
			}
		}
	}
}
