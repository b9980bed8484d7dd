package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-translatable/internal/logging"
)

type testMessage struct{}

func (testMessage) Type() string { return "translatable.test.message" }

func (testMessage) Validate() error { return nil }

type rejectedMessage struct{}

func (rejectedMessage) Type() string { return "translatable.test.invalid" }

func (rejectedMessage) Validate() error {
	return validationError()
}

func validationError() error {
	return errors.New("invalid")
}

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler[rejectedMessage](func(ctx context.Context, msg rejectedMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), rejectedMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, testMessage{})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	execErr := errors.New("boom")
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return execErr
	})

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected wrapped execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !goerrors.HasCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category to propagate, got %v", err)
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(20 * time.Millisecond):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
}

func TestHandlerReportsOutcomes(t *testing.T) {
	var outcomes []Outcome
	observer := func(_ context.Context, _ testMessage, outcome Outcome) {
		outcomes = append(outcomes, outcome)
	}
	execErr := errors.New("boom")
	fail := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		if fail {
			return execErr
		}
		return nil
	}, WithObserver[testMessage](observer), WithOperation[testMessage]("test.run"))

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	fail = true
	if err := h.Execute(context.Background(), testMessage{}); err == nil {
		t.Fatal("expected error")
	}

	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
	if outcomes[0].Status != StatusSucceeded || outcomes[0].Operation != "test.run" {
		t.Fatalf("unexpected success outcome %+v", outcomes[0])
	}
	if outcomes[1].Status != StatusFailed || !errors.Is(outcomes[1].Err, execErr) {
		t.Fatalf("unexpected failure outcome %+v", outcomes[1])
	}
	if outcomes[0].Command != "translatable.test.message" {
		t.Fatalf("expected message type, got %q", outcomes[0].Command)
	}
}

type targetedMessage struct{}

func (targetedMessage) Type() string { return "translatable.test.targeted" }

func (targetedMessage) Validate() error { return nil }

func (targetedMessage) Target() (string, string) { return "TranslatableNews", "abc" }

func TestHandlerOutcomeCarriesTarget(t *testing.T) {
	var got Outcome
	h := NewHandler[targetedMessage](func(ctx context.Context, msg targetedMessage) error {
		return ctx.Err()
	}, WithObserver[targetedMessage](func(_ context.Context, _ targetedMessage, outcome Outcome) {
		got = outcome
	}))

	if err := h.Execute(context.Background(), targetedMessage{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got.Model != "TranslatableNews" || got.OriginID != "abc" {
		t.Fatalf("expected target on outcome, got %+v", got)
	}
}

func TestHandlerTimeoutIsInterrupted(t *testing.T) {
	var status Status
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		<-ctx.Done()
		return ctx.Err()
	}, WithTimeout[testMessage](5*time.Millisecond), WithObserver[testMessage](func(_ context.Context, _ testMessage, outcome Outcome) {
		status = outcome.Status
	}))

	err := h.Execute(context.Background(), testMessage{})
	if status != StatusInterrupted {
		t.Fatalf("expected interrupted status, got %q", status)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error to be kept, got %v", err)
	}
}

func TestLogOutcomesAcceptsNilLogger(t *testing.T) {
	observe := LogOutcomes[testMessage](nil)
	observe(context.Background(), testMessage{}, Outcome{Status: StatusSucceeded})
	observe(context.Background(), testMessage{}, Outcome{Status: StatusFailed, Err: errors.New("x")})
	observe(context.Background(), testMessage{}, Outcome{Status: StatusInterrupted, Err: context.Canceled})
}

func TestHandlerTagsContextWithCommand(t *testing.T) {
	var fields map[string]any
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		fields = logging.ContextFields(ctx)
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if fields["command"] != "translatable.test.message" {
		t.Fatalf("expected command field on context, got %v", fields)
	}
}
