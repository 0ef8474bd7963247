package commands

import (
	"fmt"
	"sort"
	"sync"
)

// Registry resolves command names and aliases. Commands in this
// package add themselves to DefaultRegistry at init time, so the set
// is fixed once the package is loaded.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Command // primary names and aliases
	primary []Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Command)}
}

// Register adds a command under its name and every alias. A name or
// alias that is already taken is an error.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := append([]string{c.Name()}, c.Aliases()...)
	for _, n := range names {
		if _, taken := r.entries[n]; taken {
			return fmt.Errorf("duplicate command name: %s", n)
		}
	}
	for _, n := range names {
		r.entries[n] = c
	}
	r.primary = append(r.primary, c)
	return nil
}

// Find looks up a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.entries[name]
	return cmd, ok
}

// All returns the registered commands sorted by primary name, each
// exactly once regardless of aliases.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]Command, len(r.primary))
	copy(all, r.primary)
	sort.Slice(all, func(i, j int) bool { return all[i].Name() < all[j].Name() })
	return all
}

// DefaultRegistry holds every command this package defines.
var DefaultRegistry = NewRegistry()

// Register adds a command to DefaultRegistry and panics on a name
// collision, which can only be a programming error at init time.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
