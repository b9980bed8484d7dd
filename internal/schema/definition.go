package schema

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-translatable/internal/locale"
	payloadschema "github.com/goliatone/go-translatable/internal/validation"
)

// Definition is a finalized translatable model declaration.
type Definition struct {
	Base       string
	Type       *TranslationType
	OriginKey  string
	LocaleKey  string
	Properties []Property

	index   map[string]int
	payload *payloadschema.PayloadSchema
}

// Input is a caller field map split into its storage parts.
type Input struct {
	OriginID uuid.UUID
	Locale   string
	Payload  map[string]any
}

func newDefinition(base string, handle *TranslationType, originKey, localeKey string, props []Property, index map[string]int) (*Definition, error) {
	def := &Definition{
		Base:       base,
		Type:       handle,
		OriginKey:  originKey,
		LocaleKey:  localeKey,
		Properties: append([]Property(nil), props...),
		index:      index,
	}
	compiled, err := payloadschema.Compile(def.JSONSchema())
	if err != nil {
		return nil, configError(base, "payload schema: %v", err)
	}
	def.payload = compiled
	return def, nil
}

// OriginField is the foreign key field name, e.g. origin_id.
func (d *Definition) OriginField() string {
	return d.OriginKey + "_id"
}

// Property returns the declared property by name.
func (d *Definition) Property(name string) (Property, bool) {
	idx, ok := d.index[NormalizeName(name)]
	if !ok {
		return Property{}, false
	}
	return d.Properties[idx], true
}

// PropertyNames lists property names in declaration order.
func (d *Definition) PropertyNames() []string {
	names := make([]string, len(d.Properties))
	for i, prop := range d.Properties {
		names[i] = prop.Name
	}
	return names
}

// JSONSchema renders the payload schema for the declared properties.
func (d *Definition) JSONSchema() map[string]any {
	properties := make(map[string]any, len(d.Properties))
	required := []any{}
	for _, prop := range d.Properties {
		properties[prop.Name] = prop.jsonSchema()
		if prop.Required {
			required = append(required, prop.Name)
		}
	}
	doc := map[string]any{
		"$schema":              "https://json-schema.org/draft/2020-12/schema",
		"title":                d.Type.Name,
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		doc["required"] = required
	}
	return doc
}

// Split separates the origin key, the locale and the payload of a caller
// field map. An empty origin string counts as missing. Payload keys are
// mapped onto declared property names. Split does not validate; see Validate.
func (d *Definition) Split(fields map[string]any) (Input, error) {
	input := Input{Payload: map[string]any{}}
	for key, value := range fields {
		switch key {
		case d.OriginField():
			id, err := parseOrigin(value)
			if err != nil {
				return Input{}, d.invalid(validation.Errors{
					d.OriginField(): validation.NewError("translatable.origin_invalid", err.Error()),
				})
			}
			input.OriginID = id
		case d.LocaleKey:
			code, ok := value.(string)
			if !ok && value != nil {
				return Input{}, d.invalid(validation.Errors{
					d.LocaleKey: validation.NewError("translatable.locale_invalid", "locale must be a string"),
				})
			}
			input.Locale = locale.Normalize(code)
		default:
			name := key
			if prop, ok := d.Property(key); ok {
				name = prop.Name
			}
			if _, dup := input.Payload[name]; dup {
				return Input{}, d.invalid(validation.Errors{
					name: validation.NewError("translatable.field_duplicate", "field is given more than once"),
				})
			}
			input.Payload[name] = value
		}
	}
	return input, nil
}

// Validate checks that an input carries an origin, a locale and a payload
// matching the declared properties.
func (d *Definition) Validate(input Input) error {
	errs := validation.Errors{}
	if input.OriginID == uuid.Nil {
		errs[d.OriginField()] = validation.NewError("translatable.origin_required", "origin is required")
	}
	if strings.TrimSpace(input.Locale) == "" {
		errs[d.LocaleKey] = validation.NewError("translatable.locale_required", "locale is required")
	}
	if len(errs) > 0 {
		return d.invalid(errs)
	}
	if err := d.payload.Validate(input.Payload); err != nil {
		return d.invalid(err)
	}
	return nil
}

func (d *Definition) invalid(err error) error {
	return goerrors.Wrap(errors.Join(ErrInvalidFields, err), goerrors.CategoryValidation,
		fmt.Sprintf("invalid %s fields", d.Type.Name)).
		WithTextCode(fieldsInvalidCode)
}

func parseOrigin(value any) (uuid.UUID, error) {
	switch v := value.(type) {
	case nil:
		return uuid.Nil, nil
	case uuid.UUID:
		return v, nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return uuid.Nil, nil
		}
		return uuid.Parse(trimmed)
	case fmt.Stringer:
		return uuid.Parse(v.String())
	default:
		return uuid.Nil, fmt.Errorf("unsupported origin value %T", value)
	}
}
