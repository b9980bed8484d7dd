package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration is the sentinel every ConfigurationError unwraps to.
	ErrConfiguration = errors.New("translatable: configuration error")
	// ErrInvalidFields marks translation field maps rejected by a definition.
	ErrInvalidFields = errors.New("translatable: invalid translation fields")
)

const fieldsInvalidCode = "TRANSLATION_FIELDS_INVALID"

// ConfigurationError reports a model declaration that cannot be finalized.
// The model must not be used until the declaration is fixed.
type ConfigurationError struct {
	Model  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return ErrConfiguration.Error()
	}
	model := strings.TrimSpace(e.Model)
	if model == "" {
		return fmt.Sprintf("%s: %s", ErrConfiguration.Error(), e.Reason)
	}
	return fmt.Sprintf("%s: model=%s: %s", ErrConfiguration.Error(), model, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

func configError(model, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Model: model, Reason: fmt.Sprintf(format, args...)}
}
