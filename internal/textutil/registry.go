// SPDX-License-Identifier: MPL-2.0

package textutil

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// DefaultRegistry holds every utility shipped in the lineutils binary. Each
// utility file adds itself from init().
var DefaultRegistry = NewRegistry()

// Registry maps utility names to their implementations. It is safe for
// concurrent use.
type Registry struct {
	mu    sync.RWMutex
	utils map[string]Command
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{utils: make(map[string]Command)}
}

// Register adds cmd under cmd.Name(). It panics on an empty or duplicate
// name, since both are programming errors caught at init time.
func (r *Registry) Register(cmd Command) {
	name := cmd.Name()
	if name == "" {
		panic("textutil: cannot register a utility without a name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.utils[name]; dup {
		panic(fmt.Sprintf("textutil: utility %q registered twice", name))
	}
	r.utils[name] = cmd
}

// Lookup returns the utility registered as name.
func (r *Registry) Lookup(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.utils[name]
	return cmd, ok
}

// Names returns the registered utility names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.utils))
}

// Run looks up name and runs it with args, where args[0] is the utility
// name. An empty args is treated as the bare name. Unknown names yield an
// error wrapping ErrCommandNotFound.
func (r *Registry) Run(ctx context.Context, name string, args []string) error {
	cmd, ok := r.Lookup(name)
	if !ok {
		return fmt.Errorf("%s: %w", name, ErrCommandNotFound)
	}
	if len(args) == 0 {
		args = []string{name}
	}
	return cmd.Run(ctx, args)
}

// RegisterDefault adds cmd to DefaultRegistry.
func RegisterDefault(cmd Command) {
	DefaultRegistry.Register(cmd)
}
