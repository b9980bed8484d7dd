package translation

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownAttribute is returned when reading an attribute the model
	// does not declare.
	ErrUnknownAttribute = errors.New("translatable: unknown attribute")
	// ErrStoreRequired indicates a model was built without a store.
	ErrStoreRequired = errors.New("translatable: store is required")
	// ErrDefinitionRequired indicates a model was built without a definition.
	ErrDefinitionRequired = errors.New("translatable: definition is required")
	// ErrOriginMismatch is returned when a translation names another entity
	// than the one it is created for.
	ErrOriginMismatch = errors.New("translatable: translation origin does not match entity")
	// ErrEntityRequired and ErrRecordRequired guard store writes.
	ErrEntityRequired = errors.New("translatable: entity is required")
	ErrRecordRequired = errors.New("translatable: record is required")
	// ErrEntityExists is returned when saving an entity whose id is taken.
	ErrEntityExists = errors.New("translatable: entity already exists")
)

// NotFoundError is returned when a store lookup has no result.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// AttributeTypeError is returned by typed accessors when the stored value
// cannot be represented as the requested type.
type AttributeTypeError struct {
	Attribute string
	Want      string
	Value     any
}

func (e *AttributeTypeError) Error() string {
	return fmt.Sprintf("translatable: attribute %q holds %T, want %s", e.Attribute, e.Value, e.Want)
}
