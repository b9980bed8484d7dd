package translatable

import (
	"errors"

	"github.com/goliatone/go-translatable/internal/locale"
	"github.com/goliatone/go-translatable/internal/migrations"
	"github.com/goliatone/go-translatable/internal/schema"
	"github.com/goliatone/go-translatable/internal/translation"
	"github.com/goliatone/go-translatable/internal/validation"
)

// ErrLocaleReadOnly is returned by Module.SetLocale when the injected locale
// provider cannot be changed.
var ErrLocaleReadOnly = errors.New("translatable: locale provider is read-only")

var (
	ErrConfiguration    = schema.ErrConfiguration
	ErrInvalidFields    = schema.ErrInvalidFields
	ErrUnknownAttribute = translation.ErrUnknownAttribute
	ErrOriginMismatch   = translation.ErrOriginMismatch
	ErrEntityExists     = translation.ErrEntityExists
	ErrInvalidLocale    = locale.ErrInvalidLocale
	ErrSchemaValidation = validation.ErrSchemaValidation
	ErrNoSchemaVersion  = migrations.ErrNoSchemaVersion
	ErrSchemaDirty      = migrations.ErrDirty
	ErrSchemaBehind     = migrations.ErrBehind
)

type (
	ConfigurationError     = schema.ConfigurationError
	NotFoundError          = translation.NotFoundError
	AttributeTypeError     = translation.AttributeTypeError
	PayloadValidationError = validation.PayloadValidationError
)

// IsNotFound reports whether err is a store lookup miss.
func IsNotFound(err error) bool {
	return translation.IsNotFound(err)
}
