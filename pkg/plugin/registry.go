package plugin

import (
	"context"
	"sort"
	"sync"

	"github.com/arthur-debert/gardener/pkg/errors"
	"github.com/arthur-debert/gardener/pkg/logging"
)

// Command is an invocable action exposed by the plugin
type Command struct {
	// ID is the stable identifier hosts bind to
	ID string
	// Name is the label shown in command palettes
	Name string
	// Callback runs the command
	Callback func(ctx context.Context) error
}

// Registry maps command IDs to commands
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds a command. IDs are unique.
func (r *Registry) Register(cmd Command) error {
	if cmd.ID == "" {
		return errors.New(errors.ErrInvalidInput, "command id is required")
	}
	if cmd.Callback == nil {
		return errors.Newf(errors.ErrInvalidInput, "command %s has no callback", cmd.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.commands[cmd.ID]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "command %s is already registered", cmd.ID).
			WithDetail("id", cmd.ID)
	}
	r.commands[cmd.ID] = cmd
	return nil
}

// Unregister removes a command, reporting whether it was present
func (r *Registry) Unregister(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.commands[id]
	delete(r.commands, id)
	return ok
}

// Lookup returns the command registered under id
func (r *Registry) Lookup(id string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[id]
	return cmd, ok
}

// Execute runs a registered command by ID
func (r *Registry) Execute(ctx context.Context, id string) error {
	logger := logging.GetLogger("plugin.registry")
	logger.Debug().Str("command", id).Msg("Executing registered command")

	cmd, ok := r.Lookup(id)
	if !ok {
		return errors.Newf(errors.ErrNotFound, "unknown command: %s", id).WithDetail("id", id)
	}
	return cmd.Callback(ctx)
}

// Commands lists every registered command sorted by ID
func (r *Registry) Commands() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		out = append(out, cmd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
