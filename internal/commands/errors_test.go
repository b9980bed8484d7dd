package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-translatable/internal/schema"
	"github.com/goliatone/go-translatable/internal/translation"
)

func TestClassifyMapsDomainErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		category goerrors.Category
	}{
		{"not found", &translation.NotFoundError{Resource: "entity", Key: "1"}, goerrors.CategoryNotFound},
		{"exists", fmt.Errorf("save: %w", translation.ErrEntityExists), goerrors.CategoryConflict},
		{"origin mismatch", translation.ErrOriginMismatch, goerrors.CategoryBadInput},
		{"unknown attribute", translation.ErrUnknownAttribute, goerrors.CategoryBadInput},
		{"configuration", &schema.ConfigurationError{Model: "News", Reason: "bad"}, goerrors.CategoryBadInput},
		{"deadline", context.DeadlineExceeded, goerrors.CategoryCommand},
		{"other", errors.New("disk full"), goerrors.CategoryCommand},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.err)
			if !goerrors.IsCategory(got, tc.category) {
				t.Fatalf("expected %s, got %v", tc.category, got)
			}
			if !errors.Is(got, tc.err) {
				t.Fatalf("expected source to be kept, got %v", got)
			}
		})
	}
}

func TestClassifyKeepsCategorisedErrors(t *testing.T) {
	source := goerrors.New("fields rejected", goerrors.CategoryValidation)
	if got := classify(source); !goerrors.IsCategory(got, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category to pass through, got %v", got)
	}
	if classify(nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}

func TestInvalidMessageCarriesFieldErrors(t *testing.T) {
	err := invalidMessage(validation.Errors{"model": validation.NewError("model_required", "model is required")})

	var typed *goerrors.Error
	if !errors.As(err, &typed) {
		t.Fatalf("expected go-errors error, got %T", err)
	}
	if typed.Category != goerrors.CategoryValidation || typed.TextCode != codeInvalid {
		t.Fatalf("unexpected classification %+v", typed)
	}
	if len(typed.ValidationErrors) != 1 || typed.ValidationErrors[0].Field != "model" {
		t.Fatalf("expected model field error, got %+v", typed.ValidationErrors)
	}
}
