package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	ErrUnknownFrontend   = errors.New("render: frontend not registered")
	ErrDuplicateFrontend = errors.New("render: frontend already registered")
)

// Registry stores frontends by name. The first frontend registered becomes
// the default unless SetDefault picks another.
type Registry struct {
	mu         sync.RWMutex
	frontends  map[string]Frontend
	defaultKey string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{frontends: make(map[string]Frontend)}
}

// Register adds a frontend under its Name().
func (r *Registry) Register(frontend Frontend) error {
	if frontend == nil {
		return fmt.Errorf("render: frontend is required")
	}
	name := strings.TrimSpace(frontend.Name())
	if name == "" {
		return fmt.Errorf("render: frontend name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.frontends[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateFrontend, name)
	}
	r.frontends[name] = frontend
	if r.defaultKey == "" {
		r.defaultKey = name
	}
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(frontend Frontend) {
	if err := r.Register(frontend); err != nil {
		panic(err)
	}
}

// SetDefault selects the frontend Resolve returns for an empty name.
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.frontends[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFrontend, name)
	}
	r.defaultKey = name
	return nil
}

// Get retrieves a frontend by name.
func (r *Registry) Get(name string) (Frontend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	frontend, ok := r.frontends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownFrontend, name, strings.Join(r.namesLocked(), ", "))
	}
	return frontend, nil
}

// Resolve is Get with an empty name meaning the default frontend.
func (r *Registry) Resolve(name string) (Frontend, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		r.mu.RLock()
		name = r.defaultKey
		r.mu.RUnlock()
	}
	return r.Get(name)
}

// List returns the registered names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.frontends))
	for name := range r.frontends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a frontend is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.frontends[name]
	return ok
}
