package translation

import (
	"context"
	"encoding/json"
	"math"

	"github.com/goliatone/go-translatable/internal/schema"
)

// Accessor reads one declared attribute from an instance. Accessors are
// built once per model when it is defined.
type Accessor struct {
	property schema.Property
}

// Name returns the attribute name.
func (a Accessor) Name() string {
	return a.property.Name
}

// Property returns the declared property.
func (a Accessor) Property() schema.Property {
	return a.property
}

// Value returns the raw attribute value for the active locale.
func (a Accessor) Value(ctx context.Context, inst *Instance) (any, bool, error) {
	value, ok, err := inst.resolver.Attribute(ctx, a.property.Name)
	if err != nil || !ok || value == nil {
		return nil, false, err
	}
	return value, true, nil
}

// String returns the attribute as a string.
func (a Accessor) String(ctx context.Context, inst *Instance) (string, bool, error) {
	value, ok, err := a.Value(ctx, inst)
	if err != nil || !ok {
		return "", false, err
	}
	switch v := value.(type) {
	case string:
		return v, true, nil
	case []byte:
		return string(v), true, nil
	default:
		return "", false, a.typeError("string", value)
	}
}

// Int64 returns the attribute as an integer. Whole floating point values,
// which is how JSON columns decode numbers, are accepted.
func (a Accessor) Int64(ctx context.Context, inst *Instance) (int64, bool, error) {
	value, ok, err := a.Value(ctx, inst)
	if err != nil || !ok {
		return 0, false, err
	}
	switch v := value.(type) {
	case int:
		return int64(v), true, nil
	case int8:
		return int64(v), true, nil
	case int16:
		return int64(v), true, nil
	case int32:
		return int64(v), true, nil
	case int64:
		return v, true, nil
	case uint8:
		return int64(v), true, nil
	case uint16:
		return int64(v), true, nil
	case uint32:
		return int64(v), true, nil
	case uint:
		if uint64(v) <= math.MaxInt64 {
			return int64(v), true, nil
		}
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), true, nil
		}
	case float32:
		if n, ok := wholeInt64(float64(v)); ok {
			return n, true, nil
		}
	case float64:
		if n, ok := wholeInt64(v); ok {
			return n, true, nil
		}
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true, nil
		}
	}
	return 0, false, a.typeError("int64", value)
}

// wholeInt64 converts f when it is a whole number inside the int64 range.
// The upper bound is exclusive: float64(math.MaxInt64) rounds up to 2^63.
func wholeInt64(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// Float64 returns the attribute as a float.
func (a Accessor) Float64(ctx context.Context, inst *Instance) (float64, bool, error) {
	value, ok, err := a.Value(ctx, inst)
	if err != nil || !ok {
		return 0, false, err
	}
	switch v := value.(type) {
	case float64:
		return v, true, nil
	case float32:
		return float64(v), true, nil
	case int:
		return float64(v), true, nil
	case int32:
		return float64(v), true, nil
	case int64:
		return float64(v), true, nil
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f, true, nil
		}
	}
	return 0, false, a.typeError("float64", value)
}

// Bool returns the attribute as a boolean.
func (a Accessor) Bool(ctx context.Context, inst *Instance) (bool, bool, error) {
	value, ok, err := a.Value(ctx, inst)
	if err != nil || !ok {
		return false, false, err
	}
	if v, isBool := value.(bool); isBool {
		return v, true, nil
	}
	return false, false, a.typeError("bool", value)
}

func (a Accessor) typeError(want string, value any) error {
	return &AttributeTypeError{Attribute: a.property.Name, Want: want, Value: value}
}

func buildAccessors(def *schema.Definition) (map[string]Accessor, []Accessor) {
	table := make(map[string]Accessor, len(def.Properties))
	ordered := make([]Accessor, 0, len(def.Properties))
	for _, prop := range def.Properties {
		accessor := Accessor{property: prop}
		table[prop.Name] = accessor
		ordered = append(ordered, accessor)
	}
	return table, ordered
}
