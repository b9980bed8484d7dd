package schema

import (
	"strings"

	"github.com/goliatone/go-slug"
)

// Kind enumerates the value types a translatable property can hold.
type Kind string

const (
	String  Kind = "string"
	Text    Kind = "text"
	Integer Kind = "integer"
	Float   Kind = "float"
	Boolean Kind = "boolean"
)

// Valid reports whether the kind is one of the supported values.
func (k Kind) Valid() bool {
	switch k {
	case String, Text, Integer, Float, Boolean:
		return true
	default:
		return false
	}
}

func (k Kind) jsonType() string {
	switch k {
	case Integer:
		return "integer"
	case Float:
		return "number"
	case Boolean:
		return "boolean"
	default:
		return "string"
	}
}

func (k Kind) textual() bool {
	return k == String || k == Text
}

// Property describes one translatable field.
type Property struct {
	Name      string
	Kind      Kind
	Required  bool
	Unique    bool
	MaxLength int
}

// Constraint mutates a property while it is being declared.
type Constraint func(*Property)

// Required rejects missing values, and blank strings for textual kinds.
func Required() Constraint {
	return func(p *Property) { p.Required = true }
}

// Unique records that the value should be unique across translations of the
// model. Enforcement belongs to the store.
func Unique() Constraint {
	return func(p *Property) { p.Unique = true }
}

// MaxLength caps textual values at n characters.
func MaxLength(n int) Constraint {
	return func(p *Property) {
		if n > 0 {
			p.MaxLength = n
		}
	}
}

// NormalizeName turns a declared property name into its field key,
// e.g. "Sub Title" becomes "sub_title".
func NormalizeName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	normalized, err := slug.Normalize(trimmed)
	if err != nil || normalized == "" {
		normalized = strings.ToLower(trimmed)
	}
	return strings.ReplaceAll(normalized, "-", "_")
}

func (p Property) jsonSchema() map[string]any {
	node := map[string]any{}
	if p.Required {
		node["type"] = p.Kind.jsonType()
	} else {
		node["type"] = []any{p.Kind.jsonType(), "null"}
	}
	if p.Kind.textual() {
		if p.Required {
			node["minLength"] = 1
		}
		if p.MaxLength > 0 {
			node["maxLength"] = p.MaxLength
		}
	}
	return node
}
