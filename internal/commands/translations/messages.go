package translationscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-translatable/internal/translation"
)

const (
	createTranslatableMessageType = "translatable.entity.create"
	addTranslationMessageType     = "translatable.translation.add"
)

// CreateTranslatableCommand creates an entity of a translatable model together
// with its translations.
type CreateTranslatableCommand struct {
	Model          string                      `json:"model"`
	Attributes     map[string]any              `json:"attributes,omitempty"`
	Translations   []map[string]any            `json:"translations,omitempty"`
	ResultCallback func(*translation.Instance) `json:"-"`
}

// Type implements command.Message.
func (CreateTranslatableCommand) Type() string { return createTranslatableMessageType }

// Target implements commands.Target.
func (m CreateTranslatableCommand) Target() (string, string) {
	return strings.TrimSpace(m.Model), ""
}

// Validate ensures the model is named and no translation is empty.
func (m CreateTranslatableCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.Model) == "" {
		errs["model"] = validation.NewError("translatable.entity.create.model_required", "model is required")
	}
	for _, fields := range m.Translations {
		if len(fields) == 0 {
			errs["translations"] = validation.NewError("translatable.entity.create.translation_empty", "translations must not contain empty field maps")
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AddTranslationCommand adds a translation to an existing entity.
type AddTranslationCommand struct {
	Model          string                    `json:"model"`
	EntityID       uuid.UUID                 `json:"entity_id"`
	Fields         map[string]any            `json:"fields"`
	ResultCallback func(*translation.Record) `json:"-"`
}

// Type implements command.Message.
func (AddTranslationCommand) Type() string { return addTranslationMessageType }

// Target implements commands.Target.
func (m AddTranslationCommand) Target() (string, string) {
	if m.EntityID == uuid.Nil {
		return strings.TrimSpace(m.Model), ""
	}
	return strings.TrimSpace(m.Model), m.EntityID.String()
}

// Validate ensures the target entity and the field map are present.
func (m AddTranslationCommand) Validate() error {
	err := validation.ValidateStruct(&m,
		validation.Field(&m.Model, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("translatable.translation.add.model_required", "model is required")
			}
			return nil
		})),
		validation.Field(&m.EntityID, validation.By(func(value any) error {
			if value.(uuid.UUID) == uuid.Nil {
				return validation.NewError("translatable.translation.add.entity_id_required", "entity_id is required")
			}
			return nil
		})),
		validation.Field(&m.Fields, validation.Required),
	)
	if err != nil {
		return err
	}
	return nil
}

func toFields(maps []map[string]any) []translation.Fields {
	out := make([]translation.Fields, 0, len(maps))
	for _, fields := range maps {
		out = append(out, translation.Fields(fields))
	}
	return out
}
