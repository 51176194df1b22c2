package render

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownRenderer is returned by Get for unregistered names.
var ErrUnknownRenderer = errors.New("render: renderer not found")

// Registry holds renderers by name in registration order.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Renderer
	order  []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: map[string]Renderer{}}
}

// Register adds renderer under its Name. Names must be unique and
// non-empty.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return errors.New("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byName[name]; dup {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.byName[name] = renderer
	r.order = append(r.order, name)
	return nil
}

// Get returns the renderer registered as name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if renderer, ok := r.byName[name]; ok {
		return renderer, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownRenderer, name)
}

// First returns the earliest registered renderer.
func (r *Registry) First() (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.order) == 0 {
		return nil, false
	}
	return r.byName[r.order[0]], true
}

// Names lists renderer names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}
