package core

import (
	"fmt"
	"sync"
)

// Registry holds the registered search providers in registration order.
// Registration order is significant: it becomes provider invocation order
// and therefore result ordering in the final batch.
//
// Providers are registered explicitly at startup (see pkg/providers) rather
// than discovered by naming convention, keeping the provider set statically
// verifiable.
type Registry struct {
	mu        sync.RWMutex
	order     []string
	providers map[string]Provider
}

func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
	}
}

// Register adds a provider to the registry. Provider names must be unique;
// registering a duplicate name is a programming error and is rejected.
func (r *Registry) Register(p Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := p.Descriptor().Name
	if name == "" {
		return fmt.Errorf("provider has empty name")
	}
	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("provider %s already registered", name)
	}

	r.providers[name] = p
	r.order = append(r.order, name)
	return nil
}

// All returns every registered provider in registration order.
func (r *Registry) All() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providers := make([]Provider, 0, len(r.order))
	for _, name := range r.order {
		providers = append(providers, r.providers[name])
	}
	return providers
}

// Enabled returns the registered providers whose names are not in the
// disabled set, preserving registration order.
func (r *Registry) Enabled(disabled []string) []Provider {
	disabledSet := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		disabledSet[name] = true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	providers := make([]Provider, 0, len(r.order))
	for _, name := range r.order {
		if !disabledSet[name] {
			providers = append(providers, r.providers[name])
		}
	}
	return providers
}

// Descriptors returns the descriptors of all registered providers in
// registration order.
func (r *Registry) Descriptors() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	descriptors := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		descriptors = append(descriptors, r.providers[name].Descriptor())
	}
	return descriptors
}

// Get returns the provider registered under name.
func (r *Registry) Get(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.providers[name]
	if !exists {
		return nil, fmt.Errorf("provider %s not found", name)
	}
	return p, nil
}
