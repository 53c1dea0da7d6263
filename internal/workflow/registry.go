// Package workflow provides workflow registration and management.
package workflow

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages workflow handlers keyed by output target.
type Registry struct {
	handlers map[string]Handler
	mu       sync.RWMutex
}

// NewRegistry creates a new workflow registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
	}
}

// Register registers a workflow handler under its target.
func (r *Registry) Register(handler Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := handler.Target()
	if _, exists := r.handlers[key]; exists {
		return fmt.Errorf("workflow handler for %s already registered", key)
	}

	r.handlers[key] = handler
	return nil
}

// Get retrieves the workflow handler for the given target.
func (r *Registry) Get(target string) (Handler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handler, exists := r.handlers[target]
	if !exists {
		return nil, fmt.Errorf("no workflow handler registered for %s", target)
	}

	return handler, nil
}

// Targets returns the registered targets in sorted order.
func (r *Registry) Targets() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	targets := make([]string, 0, len(r.handlers))
	for target := range r.handlers {
		targets = append(targets, target)
	}
	sort.Strings(targets)
	return targets
}

// List returns all registered workflow handlers.
func (r *Registry) List() []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handlers := make([]Handler, 0, len(r.handlers))
	for _, handler := range r.handlers {
		handlers = append(handlers, handler)
	}
	return handlers
}
