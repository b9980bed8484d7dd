package translation

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Fields is a caller supplied translation field map. It carries the payload
// together with the origin and locale keys of the model definition.
type Fields map[string]any

// Entity is the base record that owns translations.
type Entity struct {
	bun.BaseModel `bun:"table:translatable_entities,alias:te"`

	ID         uuid.UUID      `bun:",pk,type:uuid"                json:"id"`
	Model      string         `bun:"model,notnull"                json:"model"`
	Attributes map[string]any `bun:"attributes,type:jsonb"        json:"attributes,omitempty"`
	CreatedAt  time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Attribute returns an ordinary, non translated attribute.
func (e *Entity) Attribute(name string) (any, bool) {
	if e == nil || e.Attributes == nil {
		return nil, false
	}
	value, ok := e.Attributes[name]
	return value, ok
}

// Record stores the payload of one locale for one entity.
type Record struct {
	bun.BaseModel `bun:"table:translatable_translations,alias:tt"`

	ID        uuid.UUID      `bun:",pk,type:uuid"                 json:"id"`
	Model     string         `bun:"model,notnull"                 json:"model"`
	OriginID  uuid.UUID      `bun:"origin_id,notnull,type:uuid"   json:"origin_id"`
	Locale    string         `bun:"locale,notnull"                json:"locale"`
	Fields    map[string]any `bun:"fields,type:jsonb,notnull"     json:"fields"`
	CreatedAt time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Field returns a payload value.
func (r *Record) Field(name string) (any, bool) {
	if r == nil || r.Fields == nil {
		return nil, false
	}
	value, ok := r.Fields[name]
	return value, ok
}

// newID returns a time ordered identifier so that ordering by id follows
// insertion order.
func newID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

func cloneEntity(src *Entity) *Entity {
	if src == nil {
		return nil
	}
	copied := *src
	copied.Attributes = cloneMap(src.Attributes)
	return &copied
}

func cloneRecord(src *Record) *Record {
	if src == nil {
		return nil
	}
	copied := *src
	copied.Fields = cloneMap(src.Fields)
	return &copied
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for key, value := range src {
		if nested, ok := value.(map[string]any); ok {
			out[key] = cloneMap(nested)
			continue
		}
		out[key] = value
	}
	return out
}
