package translation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-translatable/internal/logging"
	"github.com/goliatone/go-translatable/internal/schema"
	"github.com/goliatone/go-translatable/pkg/interfaces"
)

// Model is a finalized translatable model bound to a store.
type Model struct {
	def               *schema.Definition
	store             Store
	locale            func() string
	logger            interfaces.Logger
	resolverLogger    interfaces.Logger
	invalidateOnWrite bool
	now               func() time.Time

	accessors map[string]Accessor
	ordered   []Accessor
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithLogger sets the model logger.
func WithLogger(logger interfaces.Logger) ModelOption {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithResolverLogger sets the logger handed to instance resolvers.
func WithResolverLogger(logger interfaces.Logger) ModelOption {
	return func(m *Model) {
		if logger != nil {
			m.resolverLogger = logger
		}
	}
}

// WithInvalidateOnWrite resets an instance's resolver whenever a translation
// is created through its collection. Without it a translation added for the
// active locale stays invisible until the locale changes or Reset is called.
func WithInvalidateOnWrite(enabled bool) ModelOption {
	return func(m *Model) {
		m.invalidateOnWrite = enabled
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

// NewModel binds a definition to a store and a current locale source.
func NewModel(def *schema.Definition, store Store, current func() string, opts ...ModelOption) (*Model, error) {
	if def == nil {
		return nil, ErrDefinitionRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}
	m := &Model{
		def:            def,
		store:          store,
		locale:         current,
		logger:         logging.NoOp(),
		resolverLogger: logging.NoOp(),
		now:            func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	m.accessors, m.ordered = buildAccessors(def)
	return m, nil
}

// Name returns the base model name.
func (m *Model) Name() string {
	return m.def.Base
}

// Definition returns the finalized definition.
func (m *Model) Definition() *schema.Definition {
	return m.def
}

// Accessor returns the accessor for a declared attribute.
func (m *Model) Accessor(name string) (Accessor, bool) {
	accessor, ok := m.accessors[schema.NormalizeName(name)]
	return accessor, ok
}

// Accessors lists accessors in declaration order.
func (m *Model) Accessors() []Accessor {
	return append([]Accessor(nil), m.ordered...)
}

// Create saves a new entity together with its translations. The origin key
// of every translation is set to the new entity. An entity without
// translations is valid.
func (m *Model) Create(ctx context.Context, attributes map[string]any, translations ...Fields) (*Instance, error) {
	logger := logging.FromContext(ctx, m.logger)
	now := m.now()
	entity := &Entity{
		ID:         newID(),
		Model:      m.def.Base,
		Attributes: cloneMap(attributes),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	records := make([]*Record, 0, len(translations))
	for _, fields := range translations {
		record, err := buildRecord(m.def, entity.ID, fields)
		if err != nil {
			logger.Warn("model.create.invalid", "model", m.def.Base, "error", err)
			return nil, err
		}
		record.CreatedAt = now
		record.UpdatedAt = now
		records = append(records, record)
	}

	saved, _, err := m.store.Save(ctx, entity, records)
	if err != nil {
		logger.Error("model.create.failed", "model", m.def.Base, "error", err)
		return nil, err
	}
	logger.Info("model.create.success", "model", m.def.Base, "id", saved.ID, "translations", len(records))
	return m.Wrap(saved), nil
}

// Get loads an entity of this model.
func (m *Model) Get(ctx context.Context, id uuid.UUID) (*Instance, error) {
	entity, err := m.store.GetEntity(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity.Model != m.def.Base {
		return nil, &NotFoundError{Resource: m.def.Base, Key: id.String()}
	}
	return m.Wrap(entity), nil
}

// Origin loads the entity that owns record. Records of another translation
// type fail with ErrOriginMismatch.
func (m *Model) Origin(ctx context.Context, record *Record) (*Instance, error) {
	if record == nil {
		return nil, ErrRecordRequired
	}
	if record.Model != m.def.Type.Name {
		return nil, fmt.Errorf("%w: %s record for %s", ErrOriginMismatch, record.Model, m.def.Base)
	}
	return m.Get(ctx, record.OriginID)
}

// List loads every entity of this model.
func (m *Model) List(ctx context.Context) ([]*Instance, error) {
	entities, err := m.store.ListEntities(ctx, m.def.Base)
	if err != nil {
		return nil, err
	}
	out := make([]*Instance, 0, len(entities))
	for _, entity := range entities {
		out = append(out, m.Wrap(entity))
	}
	return out, nil
}

// Wrap turns a loaded entity into an instance with a fresh, Unresolved
// resolver.
func (m *Model) Wrap(entity *Entity) *Instance {
	inst := &Instance{entity: entity, model: m}
	assoc := &Association{
		store:    m.store,
		def:      m.def,
		originID: entity.ID,
		logger:   logging.WithTranslationContext(m.logger, m.def.Type.Name, entity.ID.String(), ""),
	}
	resolverLogger := logging.WithTranslationContext(m.resolverLogger, m.def.Type.Name, entity.ID.String(), "")
	inst.resolver = NewResolver(assoc, m.locale, resolverLogger)
	if m.invalidateOnWrite {
		assoc.onCreate = func(*Record) { inst.resolver.Reset() }
	}
	inst.translations = assoc
	return inst
}
