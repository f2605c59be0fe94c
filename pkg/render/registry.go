package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrRendererNotFound is returned when no renderer answers to a name.
var ErrRendererNotFound = errors.New("render: renderer not found")

// Registry maps renderer names (case-insensitive) to renderers.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]Renderer
	ordered []string
}

// NewRegistry creates an empty registry.
func NewRegistry(renderers ...Renderer) *Registry {
	r := &Registry{byName: make(map[string]Renderer)}
	for _, renderer := range renderers {
		r.MustRegister(renderer)
	}
	return r
}

// Register adds renderer under its Name(). Duplicates are rejected.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: renderer is required")
	}
	key := rendererKey(renderer.Name())
	if key == "" {
		return errors.New("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byName[key]; taken {
		return fmt.Errorf("render: renderer %q already registered", key)
	}
	r.byName[key] = renderer
	r.ordered = append(r.ordered, key)
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get looks a renderer up by name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	renderer, ok := r.byName[rendererKey(name)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRendererNotFound, name)
	}
	return renderer, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, err := r.Get(name)
	return err == nil
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	names := append([]string(nil), r.ordered...)
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Resolve picks the renderer for a request. An explicit name must exist.
// An empty name tries fallback, then the first renderer registered.
func (r *Registry) Resolve(name, fallback string) (Renderer, error) {
	if strings.TrimSpace(name) != "" {
		return r.Get(name)
	}
	if strings.TrimSpace(fallback) != "" {
		if renderer, err := r.Get(fallback); err == nil {
			return renderer, nil
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.ordered) == 0 {
		return nil, fmt.Errorf("%w: registry is empty", ErrRendererNotFound)
	}
	return r.byName[r.ordered[0]], nil
}

func rendererKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
