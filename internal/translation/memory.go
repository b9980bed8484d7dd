package translation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store safe for concurrent use. Records are
// kept in insertion order.
type MemoryStore struct {
	mu       sync.RWMutex
	entities map[uuid.UUID]*Entity
	order    []uuid.UUID
	records  []*Record
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entities: make(map[uuid.UUID]*Entity),
	}
}

// FindByOriginAndLocale returns the first matching record.
func (m *MemoryStore) FindByOriginAndLocale(ctx context.Context, model string, originID uuid.UUID, locale string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, record := range m.records {
		if record.Model == model && record.OriginID == originID && record.Locale == locale {
			return cloneRecord(record), nil
		}
	}
	return nil, &NotFoundError{Resource: "translation", Key: fmt.Sprintf("%s:%s", originID, locale)}
}

// ListByOrigin returns the records of one entity.
func (m *MemoryStore) ListByOrigin(ctx context.Context, model string, originID uuid.UUID) ([]*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*Record{}
	for _, record := range m.records {
		if record.Model == model && record.OriginID == originID {
			out = append(out, cloneRecord(record))
		}
	}
	return out, nil
}

// Create appends a record owned by an existing entity.
func (m *MemoryStore) Create(ctx context.Context, record *Record) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entities[record.OriginID]; !ok {
		return nil, &NotFoundError{Resource: "entity", Key: record.OriginID.String()}
	}
	stored := prepareRecord(record, time.Now().UTC())
	m.records = append(m.records, stored)
	return cloneRecord(stored), nil
}

// Save stores the entity and its records in one step.
func (m *MemoryStore) Save(ctx context.Context, entity *Entity, records []*Record) (*Entity, []*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if entity == nil {
		return nil, nil, ErrEntityRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	stored := cloneEntity(entity)
	if stored.ID == uuid.Nil {
		stored.ID = newID()
	}
	if _, exists := m.entities[stored.ID]; exists {
		return nil, nil, fmt.Errorf("%w: %s", ErrEntityExists, stored.ID)
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = now
	}

	pending := make([]*Record, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		prepared := prepareRecord(record, now)
		prepared.OriginID = stored.ID
		pending = append(pending, prepared)
	}

	m.entities[stored.ID] = stored
	m.order = append(m.order, stored.ID)
	m.records = append(m.records, pending...)

	out := make([]*Record, len(pending))
	for i, record := range pending {
		out[i] = cloneRecord(record)
	}
	return cloneEntity(stored), out, nil
}

// GetEntity loads an entity by id.
func (m *MemoryStore) GetEntity(ctx context.Context, id uuid.UUID) (*Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	entity, ok := m.entities[id]
	if !ok {
		return nil, &NotFoundError{Resource: "entity", Key: id.String()}
	}
	return cloneEntity(entity), nil
}

// ListEntities returns the entities of a base model in creation order.
func (m *MemoryStore) ListEntities(ctx context.Context, model string) ([]*Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*Entity{}
	for _, id := range m.order {
		if entity := m.entities[id]; entity.Model == model {
			out = append(out, cloneEntity(entity))
		}
	}
	return out, nil
}

func prepareRecord(record *Record, now time.Time) *Record {
	prepared := cloneRecord(record)
	if prepared.ID == uuid.Nil {
		prepared.ID = newID()
	}
	if prepared.Fields == nil {
		prepared.Fields = map[string]any{}
	}
	if prepared.CreatedAt.IsZero() {
		prepared.CreatedAt = now
	}
	if prepared.UpdatedAt.IsZero() {
		prepared.UpdatedAt = now
	}
	return prepared
}

var _ Store = (*MemoryStore)(nil)
