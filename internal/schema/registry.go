package schema

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-translatable/internal/identity"
)

// TranslationType is the resolved handle for a translation model. Records
// are scoped by the handle's name.
type TranslationType struct {
	ID   uuid.UUID
	Name string
}

// ModelRef points a declaration at its translation type, either directly
// through a handle or by a name looked up once during Finalize.
type ModelRef struct {
	handle *TranslationType
	name   string
}

// ModelType references a translation type handle directly.
func ModelType(t *TranslationType) ModelRef {
	return ModelRef{handle: t}
}

// ModelNamed references a translation type by its registered name.
func ModelNamed(name string) ModelRef {
	return ModelRef{name: strings.TrimSpace(name)}
}

func (r ModelRef) resolve(base string, reg *Registry) (*TranslationType, error) {
	if r.handle != nil {
		if strings.TrimSpace(r.handle.Name) == "" {
			return nil, configError(base, "translation model handle has no name")
		}
		return r.handle, nil
	}
	if r.name == "" {
		return nil, configError(base, "translation model name is empty")
	}
	return reg.Lookup(r.name)
}

// Registry maps translation model names to handles and keeps the finalized
// definitions by base model.
type Registry struct {
	mu          sync.RWMutex
	types       map[string]*TranslationType
	definitions map[string]*Definition
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types:       make(map[string]*TranslationType),
		definitions: make(map[string]*Definition),
	}
}

// Register adds a translation type, returning the existing handle when the
// name is already known.
func (r *Registry) Register(name string) (*TranslationType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, configError("", "translation model name is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.types[name]; ok {
		return existing, nil
	}
	handle := &TranslationType{
		ID:   identity.TranslationTypeUUID(name),
		Name: name,
	}
	r.types[name] = handle
	return handle, nil
}

// Lookup resolves a translation type by name.
func (r *Registry) Lookup(name string) (*TranslationType, error) {
	name = strings.TrimSpace(name)
	r.mu.RLock()
	defer r.mu.RUnlock()
	handle, ok := r.types[name]
	if !ok {
		return nil, configError(name, "translation model %q is not registered", name)
	}
	return handle, nil
}

// Definition returns the finalized definition for a base model.
func (r *Registry) Definition(base string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[strings.TrimSpace(base)]
	return def, ok
}

// Definitions lists finalized definitions ordered by base model name.
func (r *Registry) Definitions() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Definition, 0, len(r.definitions))
	for _, def := range r.definitions {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Base < out[j].Base })
	return out
}

func (r *Registry) store(def *Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.definitions[def.Base]; exists {
		return configError(def.Base, "model is already translatable")
	}
	r.definitions[def.Base] = def
	return nil
}
