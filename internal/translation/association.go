package translation

import (
	"context"

	"github.com/google/uuid"

	"github.com/goliatone/go-translatable/internal/schema"
	"github.com/goliatone/go-translatable/pkg/interfaces"
)

// Association is the translation collection of one entity.
type Association struct {
	store    Store
	def      *schema.Definition
	originID uuid.UUID
	logger   interfaces.Logger
	onCreate func(*Record)
}

// Origin returns the owning entity id.
func (a *Association) Origin() uuid.UUID {
	return a.originID
}

// FindByLocale returns the first record for the locale in insertion order,
// or nil when there is none.
func (a *Association) FindByLocale(ctx context.Context, code string) (*Record, error) {
	record, err := a.store.FindByOriginAndLocale(ctx, a.def.Type.Name, a.originID, code)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

// List returns every record of the entity in insertion order.
func (a *Association) List(ctx context.Context) ([]*Record, error) {
	records, err := a.store.ListByOrigin(ctx, a.def.Type.Name, a.originID)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []*Record{}
	}
	return records, nil
}

// Locales lists the distinct locales the entity is translated into.
func (a *Association) Locales(ctx context.Context) ([]string, error) {
	records, err := a.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0, len(records))
	for _, record := range records {
		if _, ok := seen[record.Locale]; ok {
			continue
		}
		seen[record.Locale] = struct{}{}
		out = append(out, record.Locale)
	}
	return out, nil
}

// Create adds a translation. The origin key is filled in with the owning
// entity when the field map leaves it out.
func (a *Association) Create(ctx context.Context, fields Fields) (*Record, error) {
	record, err := buildRecord(a.def, a.originID, fields)
	if err != nil {
		return nil, err
	}
	created, err := a.store.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("translation.create.success", "id", created.ID, "locale", created.Locale)
	if a.onCreate != nil {
		a.onCreate(created)
	}
	return created, nil
}

func buildRecord(def *schema.Definition, originID uuid.UUID, fields Fields) (*Record, error) {
	input, err := def.Split(fields)
	if err != nil {
		return nil, err
	}
	if input.OriginID != uuid.Nil && input.OriginID != originID {
		return nil, ErrOriginMismatch
	}
	input.OriginID = originID
	if err := def.Validate(input); err != nil {
		return nil, err
	}
	return &Record{
		ID:       newID(),
		Model:    def.Type.Name,
		OriginID: originID,
		Locale:   input.Locale,
		Fields:   input.Payload,
	}, nil
}
