package translation

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-translatable/internal/logging"
	"github.com/goliatone/go-translatable/pkg/interfaces"
)

// BunStore implements Store over bun. Entity reads by id go through the
// optional cache; every other query hits the database.
type BunStore struct {
	db          *bun.DB
	entities    repository.Repository[*Entity]
	entityReads repository.Repository[*Entity]
	records     repository.Repository[*Record]
	logger      interfaces.Logger
}

// BunStoreOption configures a BunStore.
type BunStoreOption func(*BunStore)

// WithStoreLogger sets the store logger.
func WithStoreLogger(logger interfaces.Logger) BunStoreOption {
	return func(s *BunStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewBunStore constructs a store without caching.
func NewBunStore(db *bun.DB, opts ...BunStoreOption) *BunStore {
	return NewBunStoreWithCache(db, nil, nil, opts...)
}

// NewBunStoreWithCache constructs a store whose entity lookups are cached
// when both cacheService and keySerializer are set.
func NewBunStoreWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer, opts ...BunStoreOption) *BunStore {
	entities := NewEntityRepository(db)
	store := &BunStore{
		db:          db,
		entities:    entities,
		entityReads: wrapWithCache(entities, cacheService, keySerializer),
		records:     NewRecordRepository(db),
		logger:      logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	return store
}

// FindByOriginAndLocale returns the earliest matching record.
func (s *BunStore) FindByOriginAndLocale(ctx context.Context, model string, originID uuid.UUID, locale string) (*Record, error) {
	records, _, err := s.records.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.model = ?", model).
				Where("?TableAlias.origin_id = ?", originID).
				Where("?TableAlias.locale = ?", locale).
				OrderExpr("?TableAlias.id ASC")
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "translation", originID.String())
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "translation", Key: fmt.Sprintf("%s:%s", originID, locale)}
	}
	return records[0], nil
}

// ListByOrigin returns the records of one entity in insertion order.
func (s *BunStore) ListByOrigin(ctx context.Context, model string, originID uuid.UUID) ([]*Record, error) {
	records, _, err := s.records.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.model = ?", model).
				Where("?TableAlias.origin_id = ?", originID).
				OrderExpr("?TableAlias.id ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "translation", originID.String())
	}
	if records == nil {
		records = []*Record{}
	}
	return records, nil
}

// Create inserts a record owned by an existing entity.
func (s *BunStore) Create(ctx context.Context, record *Record) (*Record, error) {
	if record == nil {
		return nil, ErrRecordRequired
	}
	if _, err := s.GetEntity(ctx, record.OriginID); err != nil {
		return nil, err
	}
	prepared := prepareRecord(record, time.Now().UTC())
	created, err := s.records.Create(ctx, prepared)
	if err != nil {
		return nil, fmt.Errorf("translation repository error: %w", err)
	}
	s.logger.Debug("translation.store.create", "id", created.ID, "origin_id", created.OriginID, "locale", created.Locale)
	return created, nil
}

// Save inserts the entity and its records in one transaction.
func (s *BunStore) Save(ctx context.Context, entity *Entity, records []*Record) (*Entity, []*Record, error) {
	if entity == nil {
		return nil, nil, ErrEntityRequired
	}
	if s.db == nil {
		return nil, nil, fmt.Errorf("translation store: database not configured")
	}

	now := time.Now().UTC()
	stored := cloneEntity(entity)
	if stored.ID == uuid.Nil {
		stored.ID = newID()
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

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(stored).Exec(ctx); err != nil {
			return fmt.Errorf("insert entity: %w", err)
		}
		if len(pending) == 0 {
			return nil
		}
		if _, err := tx.NewInsert().Model(&pending).Exec(ctx); err != nil {
			return fmt.Errorf("insert translations: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	s.logger.Debug("translation.store.save", "id", stored.ID, "model", stored.Model, "translations", len(pending))
	return stored, pending, nil
}

// GetEntity loads an entity by id.
func (s *BunStore) GetEntity(ctx context.Context, id uuid.UUID) (*Entity, error) {
	entity, err := s.entityReads.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "entity", id.String())
	}
	return entity, nil
}

// ListEntities returns the entities of a base model in creation order.
func (s *BunStore) ListEntities(ctx context.Context, model string) ([]*Entity, error) {
	entities, _, err := s.entities.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.model = ?", model).
				OrderExpr("?TableAlias.id ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "entity", model)
	}
	if entities == nil {
		entities = []*Entity{}
	}
	return entities, nil
}

// CreateSchema creates the entity and translation tables when missing.
func CreateSchema(ctx context.Context, db bun.IDB) error {
	models := []any{(*Entity)(nil), (*Record)(nil)}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	if _, err := db.NewCreateIndex().
		Model((*Record)(nil)).
		Index("idx_translatable_translations_origin_locale").
		Column("model", "origin_id", "locale").
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}

var _ Store = (*BunStore)(nil)
