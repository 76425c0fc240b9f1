// Package resolve turns free-text type names into cached type descriptors.
// Lookups are case-insensitive, tolerate a configurable alias table, and on a
// miss return a NotFoundError carrying the closest known names ranked by edit
// distance.
package resolve

import (
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-propbind/internal/match"
	"github.com/goliatone/go-propbind/pkg/model"
)

// DefaultSuggestions is how many candidate names a NotFoundError carries.
const DefaultSuggestions = 3

// NotFoundError reports a failed resolution along with the closest known
// names, best match first.
type NotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("resolve: unknown type %q", e.Name)
	}
	return fmt.Sprintf("resolve: unknown type %q (did you mean %s?)", e.Name, strings.Join(e.Suggestions, ", "))
}

// Resolver resolves type names against a host universe. Resolution results
// are cached for the process lifetime; the first resolution of a name wins
// and the underlying universe is assumed immutable after first use.
type Resolver struct {
	universe    model.Universe
	suggestions int

	mu         sync.RWMutex
	cache      map[string]model.TypeDescriptor
	aliases    map[string]string
	aliasNames []string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithAliases merges alias -> canonical name entries into the alias table.
// Aliases match case-insensitively, like canonical names.
func WithAliases(aliases map[string]string) Option {
	return func(r *Resolver) {
		for alias, canonical := range aliases {
			key := normalize(alias)
			if key == "" || canonical == "" {
				continue
			}
			if _, exists := r.aliases[key]; !exists {
				r.aliasNames = append(r.aliasNames, alias)
			}
			r.aliases[key] = canonical
		}
	}
}

// WithSuggestions overrides how many candidates a NotFoundError carries.
func WithSuggestions(n int) Option {
	return func(r *Resolver) {
		if n >= 0 {
			r.suggestions = n
		}
	}
}

// New returns a resolver over the given universe.
func New(universe model.Universe, options ...Option) *Resolver {
	r := &Resolver{
		universe:    universe,
		suggestions: DefaultSuggestions,
		cache:       make(map[string]model.TypeDescriptor),
		aliases:     make(map[string]string),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Resolve returns the descriptor for name. Exact canonical names and aliases
// match case-insensitively; anything else returns a *NotFoundError with
// ranked suggestions drawn from canonical names and aliases.
func (r *Resolver) Resolve(name string) (model.TypeDescriptor, error) {
	key := normalize(name)
	if key == "" {
		return model.TypeDescriptor{}, &NotFoundError{Name: name}
	}

	r.mu.RLock()
	cached, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	canonical, ok := r.lookupCanonical(key)
	if !ok {
		return model.TypeDescriptor{}, &NotFoundError{
			Name:        name,
			Suggestions: match.Closest(name, r.knownNames(), r.suggestions),
		}
	}
	desc, ok := r.universe.Describe(canonical)
	if !ok {
		// Alias points at a type the universe does not actually know.
		return model.TypeDescriptor{}, &NotFoundError{
			Name:        name,
			Suggestions: match.Closest(name, r.knownNames(), r.suggestions),
		}
	}

	r.mu.Lock()
	if prior, exists := r.cache[key]; exists {
		desc = prior
	} else {
		r.cache[key] = desc
	}
	r.mu.Unlock()
	return desc, nil
}

// lookupCanonical maps a normalized name to the canonical type name via the
// universe's type list or the alias table.
func (r *Resolver) lookupCanonical(key string) (string, bool) {
	for _, canonical := range r.universe.TypeNames() {
		if normalize(canonical) == key {
			return canonical, true
		}
	}
	r.mu.RLock()
	canonical, ok := r.aliases[key]
	r.mu.RUnlock()
	return canonical, ok
}

// knownNames returns every canonical name plus every alias, for suggestion
// ranking.
func (r *Resolver) knownNames() []string {
	names := r.universe.TypeNames()
	r.mu.RLock()
	aliases := append([]string(nil), r.aliasNames...)
	r.mu.RUnlock()
	return append(append([]string(nil), names...), aliases...)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
