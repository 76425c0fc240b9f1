package schema

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry stores schemas keyed by operation name. Lookup is
// case-insensitive.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]Schema
}

// NewRegistry creates an empty schema registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]Schema)}
}

// Register adds a schema after checking its invariants. Duplicate operation
// names return an error.
func (r *Registry) Register(s Schema) error {
	name := normalizeOperation(s.Operation)
	if name == "" {
		return fmt.Errorf("schema: operation name is required")
	}
	if err := s.Check(); err != nil {
		return fmt.Errorf("schema: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schemas[name]; exists {
		return fmt.Errorf("schema: operation %q already registered", name)
	}
	r.schemas[name] = s
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(s Schema) {
	if err := r.Register(s); err != nil {
		panic(err)
	}
}

// Get retrieves a schema by operation name.
func (r *Registry) Get(operation string) (Schema, error) {
	key := normalizeOperation(operation)
	if key == "" {
		return Schema{}, fmt.Errorf("schema: operation name is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schemas[key]
	if !ok {
		return Schema{}, fmt.Errorf("schema: operation %q not found", key)
	}
	return s, nil
}

// Has reports whether an operation is registered.
func (r *Registry) Has(operation string) bool {
	key := normalizeOperation(operation)
	if key == "" {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.schemas[key]
	return ok
}

// List returns the registered operation names sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeOperation(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
