package translation

import (
	"context"

	"github.com/google/uuid"
)

// Store persists entities and their translation records.
//
// FindByOriginAndLocale returns a *NotFoundError when no record matches and
// the first record in insertion order otherwise. ListByOrigin returns records
// in insertion order and an empty slice when there are none. Save writes the
// entity and its records atomically.
type Store interface {
	FindByOriginAndLocale(ctx context.Context, model string, originID uuid.UUID, locale string) (*Record, error)
	ListByOrigin(ctx context.Context, model string, originID uuid.UUID) ([]*Record, error)
	Create(ctx context.Context, record *Record) (*Record, error)
	Save(ctx context.Context, entity *Entity, records []*Record) (*Entity, []*Record, error)
	GetEntity(ctx context.Context, id uuid.UUID) (*Entity, error)
	ListEntities(ctx context.Context, model string) ([]*Entity, error)
}
