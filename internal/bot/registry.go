package bot

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/sglre6355/emotebot/internal/command"
)

// Registry holds registered modules in registration order.
type Registry struct {
	mu      sync.RWMutex
	modules []Module
}

// NewRegistry creates a new module registry.
func NewRegistry() *Registry {
	return &Registry{
		modules: make([]Module, 0),
	}
}

// Register adds a module to the registry. A module whose name is already
// registered replaces nothing and is ignored.
func (r *Registry) Register(m Module) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if slices.ContainsFunc(r.modules, func(e Module) bool { return e.Name() == m.Name() }) {
		return
	}
	r.modules = append(r.modules, m)
}

// Modules returns a snapshot of all registered modules.
func (r *Registry) Modules() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.modules)
}

// Global registry instance for module self-registration via init()
var globalRegistry = NewRegistry()

// Register adds a module to the global registry.
// This is typically called from module init() functions.
func Register(m Module) {
	globalRegistry.Register(m)
}

// Modules returns all modules from the global registry.
func Modules() []Module {
	return globalRegistry.Modules()
}

// ResetGlobalRegistry resets the global registry.
// This is intended for testing purposes only.
func ResetGlobalRegistry() {
	globalRegistry = NewRegistry()
}

// BuildSchema merges the command trees of modules into one schema.
func BuildSchema(modules []Module) (*command.Schema, error) {
	var roots []*command.Node
	for _, mod := range modules {
		roots = append(roots, mod.Commands()...)
	}

	schema, err := command.NewSchema(roots...)
	if err != nil {
		return nil, fmt.Errorf("failed to build command schema: %w", err)
	}
	return schema, nil
}

// CollectHandlers merges the handler tables of modules. Two modules claiming
// the same handler key is an error.
func CollectHandlers(modules []Module) (map[string]InteractionHandler, error) {
	handlers := make(map[string]InteractionHandler)
	owner := make(map[string]string)

	for _, mod := range modules {
		modHandlers := mod.CommandHandlers()
		for _, key := range slices.Sorted(maps.Keys(modHandlers)) {
			if prev, ok := owner[key]; ok {
				return nil, fmt.Errorf("%w: %s (modules %s and %s)",
					ErrDuplicateHandler, key, prev, mod.Name())
			}
			handlers[key] = modHandlers[key]
			owner[key] = mod.Name()
		}
	}

	return handlers, nil
}
