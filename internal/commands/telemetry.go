package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-translatable/internal/logging"
	"github.com/goliatone/go-translatable/pkg/interfaces"
)

// Status is the result category of one command execution.
type Status string

const (
	StatusSucceeded   Status = "succeeded"
	StatusFailed      Status = "failed"
	StatusInterrupted Status = "interrupted"
)

// Outcome describes a finished command execution.
type Outcome struct {
	Command   string
	Operation string
	Model     string
	OriginID  string
	Duration  time.Duration
	Err       error
	Status    Status
}

// Observer is called once per execution, after the command returns.
type Observer[T command.Message] func(ctx context.Context, msg T, outcome Outcome)

// LogOutcomes returns an observer writing one entry per execution. Handlers
// install it ahead of any caller supplied observer.
func LogOutcomes[T command.Message](logger interfaces.Logger) Observer[T] {
	if logger == nil {
		logger = logging.NoOp()
	}
	return func(_ context.Context, _ T, outcome Outcome) {
		entry := logging.WithTranslationContext(logger, outcome.Model, outcome.OriginID, "")
		entry = logging.WithFields(entry, map[string]any{
			"command":   outcome.Command,
			"operation": outcome.Operation,
		})
		args := []any{"duration_ms", outcome.Duration.Milliseconds()}
		switch outcome.Status {
		case StatusSucceeded:
			entry.Info("command.succeeded", args...)
		case StatusInterrupted:
			entry.Warn("command.interrupted", append(args, "error", outcome.Err)...)
		default:
			entry.Error("command.failed", append(args, "error", outcome.Err)...)
		}
	}
}
