package translatable

import (
	translationscmd "github.com/goliatone/go-translatable/internal/commands/translations"
	"github.com/goliatone/go-translatable/internal/di"
	"github.com/goliatone/go-translatable/internal/schema"
	"github.com/goliatone/go-translatable/internal/translation"
	"github.com/goliatone/go-translatable/pkg/interfaces"
)

// Entity is a stored base entity.
type Entity = translation.Entity

// Record is a stored translation of a base entity.
type Record = translation.Record

// Fields is a translation field map.
type Fields = translation.Fields

// Instance wraps a base entity with its translation resolver.
type Instance = translation.Instance

// Model is a finalized, store-bound translatable model.
type Model = translation.Model

// Accessor reads one declared attribute from an instance.
type Accessor = translation.Accessor

// Store is the persistence boundary for entities and translations.
type Store = translation.Store

// ResolutionState is the cache state of an instance's resolver.
type ResolutionState = translation.State

const (
	Unresolved      = translation.Unresolved
	ResolvedPresent = translation.ResolvedPresent
	ResolvedAbsent  = translation.ResolvedAbsent
)

// Declaration collects translatable properties before a model is defined.
type Declaration = schema.Declaration

// Definition is the finalized shape of a translatable model.
type Definition = schema.Definition

// PropertyKind enumerates the value types of a translatable property.
type PropertyKind = schema.Kind

// Constraint tunes a declared property.
type Constraint = schema.Constraint

// ModelRef names the translation type of a model.
type ModelRef = schema.ModelRef

const (
	String  = schema.String
	Text    = schema.Text
	Integer = schema.Integer
	Float   = schema.Float
	Boolean = schema.Boolean
)

// Required rejects missing values.
func Required() Constraint { return schema.Required() }

// Unique marks a property as unique across translations.
func Unique() Constraint { return schema.Unique() }

// MaxLength caps textual values at n characters.
func MaxLength(n int) Constraint { return schema.MaxLength(n) }

// ModelNamed references a translation type by name.
func ModelNamed(name string) ModelRef { return schema.ModelNamed(name) }

// Option configures the module container.
type Option = di.Option

var (
	WithBunDB           = di.WithBunDB
	WithCache           = di.WithCache
	WithLoggerProvider  = di.WithLoggerProvider
	WithLocaleProvider  = di.WithLocaleProvider
	WithStore           = di.WithStore
	WithCommandRegistry = di.WithCommandRegistry
)

// CommandHandlers groups the translation command handlers.
type CommandHandlers = translationscmd.HandlerSet

// Module represents the top level translatable runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Define declares a translatable base model. fn adds properties to the
// declaration and may override its model, origin and locale keys.
func (m *Module) Define(base string, fn func(*Declaration)) (*Model, error) {
	return m.container.Define(base, fn)
}

// Model returns a previously defined model.
func (m *Module) Model(base string) (*Model, error) {
	return m.container.Model(base)
}

// Models lists the defined models ordered by name.
func (m *Module) Models() []*Model {
	return m.container.Models()
}

// Locales returns the active locale provider.
func (m *Module) Locales() interfaces.LocaleProvider {
	return m.container.LocaleProvider()
}

// SetLocale switches the active locale when the provider supports it.
func (m *Module) SetLocale(code string) error {
	setter, ok := m.container.LocaleProvider().(interfaces.LocaleSetter)
	if !ok {
		return ErrLocaleReadOnly
	}
	return setter.SetLocale(code)
}

// Store returns the configured translation store.
func (m *Module) Store() Store {
	return m.container.Store()
}

// Commands returns the translation command handlers.
func (m *Module) Commands() *CommandHandlers {
	return m.container.Commands()
}

// Close releases resources opened by the module.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
