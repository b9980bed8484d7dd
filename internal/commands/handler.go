package commands

import (
	"context"
	"errors"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-translatable/internal/logging"
	"github.com/goliatone/go-translatable/pkg/interfaces"
)

// DefaultTimeout bounds a command when no WithTimeout option is given.
const DefaultTimeout = 10 * time.Second

// Target is implemented by messages aimed at one translatable model, and
// optionally at one entity of it. The values are attached to log entries.
type Target interface {
	Target() (model, originID string)
}

// HandlerOption configures a Handler instance.
type HandlerOption[T command.Message] func(*Handler[T])

// Handler runs a translation command with validation, a deadline, outcome
// logging and go-errors classification of the returned error.
type Handler[T command.Message] struct {
	exec      command.CommandFunc[T]
	logger    interfaces.Logger
	timeout   time.Duration
	operation string
	observers []Observer[T]
}

// NewHandler creates a handler that satisfies go-command's Commander interface.
func NewHandler[T command.Message](fn command.CommandFunc[T], opts ...HandlerOption[T]) *Handler[T] {
	if fn == nil {
		panic("commands: handler function cannot be nil")
	}
	h := &Handler[T]{
		exec:    fn,
		logger:  logging.NoOp(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	h.observers = append([]Observer[T]{LogOutcomes[T](h.logger)}, h.observers...)
	return h
}

// Execute conforms to command.Commander[T].Execute.
func (h *Handler[T]) Execute(ctx context.Context, msg T) error {
	if err := command.ValidateMessage(msg); err != nil {
		return invalidMessage(err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return interrupted(err)
	}

	outcome := Outcome{
		Command:   command.GetMessageType(msg),
		Operation: h.operation,
	}
	if target, ok := any(msg).(Target); ok {
		outcome.Model, outcome.OriginID = target.Target()
	}
	ctx = logging.ContextWithFields(ctx, map[string]any{"command": outcome.Command})

	started := time.Now()
	err := h.exec(ctx, msg)
	if err == nil {
		err = ctx.Err()
	}
	outcome.Duration = time.Since(started)
	outcome.Err = err

	switch {
	case err == nil:
		outcome.Status = StatusSucceeded
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		outcome.Status = StatusInterrupted
	default:
		outcome.Status = StatusFailed
	}

	for _, observe := range h.observers {
		observe(ctx, msg, outcome)
	}
	return classify(err)
}

// WithTimeout overrides the default execution timeout. Zero or a negative
// value disables the deadline.
func WithTimeout[T command.Message](timeout time.Duration) HandlerOption[T] {
	return func(h *Handler[T]) {
		if timeout < 0 {
			timeout = 0
		}
		h.timeout = timeout
	}
}

// WithLogger injects the logger used for outcome entries.
func WithLogger[T command.Message](logger interfaces.Logger) HandlerOption[T] {
	return func(h *Handler[T]) {
		if logger == nil {
			logger = logging.NoOp()
		}
		h.logger = logger
	}
}

// WithOperation names the operation in outcome entries.
func WithOperation[T command.Message](operation string) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.operation = operation
	}
}

// WithObserver adds an observer called after every execution.
func WithObserver[T command.Message](observer Observer[T]) HandlerOption[T] {
	return func(h *Handler[T]) {
		if observer != nil {
			h.observers = append(h.observers, observer)
		}
	}
}
