package translation

import (
	"context"

	"github.com/google/uuid"

	"github.com/goliatone/go-translatable/internal/schema"
)

// Instance is a loaded entity with locale aware attribute reads. Each
// instance owns its resolver and must be confined to one goroutine.
type Instance struct {
	entity       *Entity
	model        *Model
	translations *Association
	resolver     *Resolver
}

// ID returns the entity id.
func (i *Instance) ID() uuid.UUID {
	return i.entity.ID
}

// Entity returns the underlying entity.
func (i *Instance) Entity() *Entity {
	return i.entity
}

// Model returns the model the instance belongs to.
func (i *Instance) Model() *Model {
	return i.model
}

// Translations returns the translation collection.
func (i *Instance) Translations() *Association {
	return i.translations
}

// Resolver returns the locale resolver.
func (i *Instance) Resolver() *Resolver {
	return i.resolver
}

// Translation returns the record for the active locale, or nil.
func (i *Instance) Translation(ctx context.Context) (*Record, error) {
	return i.resolver.Resolve(ctx)
}

// Attribute reads a declared translatable attribute for the active locale.
func (i *Instance) Attribute(ctx context.Context, name string) (any, bool, error) {
	accessor, ok := i.model.Accessor(name)
	if !ok {
		return nil, false, &unknownAttributeError{model: i.model.Name(), name: name}
	}
	return accessor.Value(ctx, i)
}

// String reads a declared attribute as a string.
func (i *Instance) String(ctx context.Context, name string) (string, bool, error) {
	accessor, ok := i.model.Accessor(name)
	if !ok {
		return "", false, &unknownAttributeError{model: i.model.Name(), name: name}
	}
	return accessor.String(ctx, i)
}

// Reset forces the next attribute read to query the store.
func (i *Instance) Reset() {
	i.resolver.Reset()
}

type unknownAttributeError struct {
	model string
	name  string
}

func (e *unknownAttributeError) Error() string {
	return ErrUnknownAttribute.Error() + ": " + e.model + "." + schema.NormalizeName(e.name)
}

func (e *unknownAttributeError) Unwrap() error {
	return ErrUnknownAttribute
}
