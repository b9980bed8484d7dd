package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-translatable/internal/schema"
	"github.com/goliatone/go-translatable/internal/translation"
)

const (
	codeInvalid  = "TRANSLATABLE_COMMAND_INVALID"
	codeCanceled = "TRANSLATABLE_COMMAND_CANCELED"
	codeTimeout  = "TRANSLATABLE_COMMAND_TIMEOUT"
	codeNotFound = "TRANSLATABLE_NOT_FOUND"
	codeConflict = "TRANSLATABLE_CONFLICT"
	codeBadInput = "TRANSLATABLE_BAD_INPUT"
	codeFailed   = "TRANSLATABLE_COMMAND_FAILED"
)

// invalidMessage tags a message that failed its own validation. ozzo field
// errors are carried over as go-errors field errors.
func invalidMessage(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.FromOzzoValidation(err, "translatable command is invalid").
		WithTextCode(codeInvalid)
}

func interrupted(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "translatable command timed out").
			WithTextCode(codeTimeout)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "translatable command cancelled").
		WithTextCode(codeCanceled)
}

// classify maps store and model errors onto go-errors categories. Errors that
// already carry a category, such as rejected translation fields, pass through.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case goerrors.IsWrapped(err):
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return interrupted(err)
	case translation.IsNotFound(err):
		return goerrors.Wrap(err, goerrors.CategoryNotFound, "translatable resource not found").
			WithTextCode(codeNotFound)
	case errors.Is(err, translation.ErrEntityExists):
		return goerrors.Wrap(err, goerrors.CategoryConflict, "translatable entity already exists").
			WithTextCode(codeConflict)
	case errors.Is(err, translation.ErrOriginMismatch),
		errors.Is(err, translation.ErrUnknownAttribute),
		errors.Is(err, schema.ErrConfiguration):
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "translatable command rejected").
			WithTextCode(codeBadInput)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "translatable command failed").
			WithTextCode(codeFailed)
	}
}
