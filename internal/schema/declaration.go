package schema

import (
	"strings"
)

const (
	defaultOriginKey = "origin"
	defaultLocaleKey = "locale"
	reservedID       = "id"
)

// Declaration collects the translatable attributes of a base model before
// it is finalized into a Definition.
type Declaration struct {
	base       string
	properties []Property
	model      *ModelRef
	originKey  string
	localeKey  string
	err        *ConfigurationError
}

// Declare starts a declaration for the named base model.
func Declare(base string) *Declaration {
	return &Declaration{
		base:      strings.TrimSpace(base),
		originKey: defaultOriginKey,
		localeKey: defaultLocaleKey,
	}
}

// Base returns the base model name.
func (d *Declaration) Base() string {
	return d.base
}

// Property declares a translatable field.
func (d *Declaration) Property(name string, kind Kind, constraints ...Constraint) *Declaration {
	prop := Property{Name: NormalizeName(name), Kind: kind}
	for _, constraint := range constraints {
		if constraint != nil {
			constraint(&prop)
		}
	}
	if prop.Name == "" {
		d.fail("property name %q is empty", name)
	}
	if !kind.Valid() {
		d.fail("property %q has unsupported kind %q", prop.Name, kind)
	}
	d.properties = append(d.properties, prop)
	return d
}

// Model sets the translation model reference. When unset the model
// Translatable<Base> is registered on demand.
func (d *Declaration) Model(ref ModelRef) *Declaration {
	d.model = &ref
	return d
}

// Origin renames the foreign key. The key "news" names the field news_id.
func (d *Declaration) Origin(key string) *Declaration {
	d.originKey = strings.TrimSpace(key)
	return d
}

// Locale renames the locale field.
func (d *Declaration) Locale(key string) *Declaration {
	d.localeKey = strings.TrimSpace(key)
	return d
}

// Finalize validates the declaration, resolves the translation model
// through the registry and stores the resulting definition.
func (d *Declaration) Finalize(reg *Registry) (*Definition, error) {
	if reg == nil {
		return nil, configError(d.base, "registry is required")
	}
	if d.base == "" {
		return nil, configError("", "base model name is empty")
	}
	if d.err != nil {
		return nil, d.err
	}
	if d.originKey == "" {
		return nil, configError(d.base, "origin key is empty")
	}
	if d.localeKey == "" {
		return nil, configError(d.base, "locale key is empty")
	}
	if len(d.properties) == 0 {
		return nil, configError(d.base, "at least one translatable property is required")
	}

	originField := d.originKey + "_id"
	reserved := map[string]struct{}{
		reservedID:   {},
		originField:  {},
		d.originKey:  {},
		d.localeKey:  {},
		"fields":     {},
		"model":      {},
		"created_at": {},
		"updated_at": {},
	}
	index := make(map[string]int, len(d.properties))
	for i, prop := range d.properties {
		if _, ok := reserved[prop.Name]; ok {
			return nil, configError(d.base, "property name %q is reserved", prop.Name)
		}
		if _, dup := index[prop.Name]; dup {
			return nil, configError(d.base, "property %q is declared more than once", prop.Name)
		}
		index[prop.Name] = i
	}

	var handle *TranslationType
	var err error
	if d.model == nil {
		handle, err = reg.Register("Translatable" + d.base)
	} else {
		handle, err = d.model.resolve(d.base, reg)
	}
	if err != nil {
		return nil, err
	}

	def, err := newDefinition(d.base, handle, d.originKey, d.localeKey, d.properties, index)
	if err != nil {
		return nil, err
	}
	if err := reg.store(def); err != nil {
		return nil, err
	}
	return def, nil
}

func (d *Declaration) fail(format string, args ...any) {
	if d.err == nil {
		d.err = configError(d.base, format, args...)
	}
}
