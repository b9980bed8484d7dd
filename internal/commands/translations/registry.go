package translationscmd

import (
	"errors"

	"github.com/goliatone/go-command/dispatcher"

	"github.com/goliatone/go-translatable/internal/commands"
	"github.com/goliatone/go-translatable/internal/logging"
	"github.com/goliatone/go-translatable/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// Subscription is a dispatcher registration that can be released.
type Subscription interface {
	Unsubscribe()
}

// HandlerSet groups the translation command handlers.
type HandlerSet struct {
	Create *CreateTranslatableHandler
	Add    *AddTranslationHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	createHandlerOpts []commands.HandlerOption[CreateTranslatableCommand]
	addHandlerOpts    []commands.HandlerOption[AddTranslationCommand]
}

// WithCreateHandlerOptions forwards options to the CreateTranslatableHandler constructor.
func WithCreateHandlerOptions(opts ...commands.HandlerOption[CreateTranslatableCommand]) Option {
	return func(cfg *options) {
		cfg.createHandlerOpts = append(cfg.createHandlerOpts, opts...)
	}
}

// WithAddHandlerOptions forwards options to the AddTranslationHandler constructor.
func WithAddHandlerOptions(opts ...commands.HandlerOption[AddTranslationCommand]) Option {
	return func(cfg *options) {
		cfg.addHandlerOpts = append(cfg.addHandlerOpts, opts...)
	}
}

// RegisterTranslationCommands builds the translation command handlers and
// registers them with reg when it is not nil.
func RegisterTranslationCommands(reg CommandRegistry, models ModelResolver, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if models == nil {
		return nil, errors.New("translation command registration: model resolver is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := logging.CommandsLogger(provider)

	createHandler := NewCreateTranslatableHandler(models, logger, cfg.createHandlerOpts...)
	addHandler := NewAddTranslationHandler(models, logger, cfg.addHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(createHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(addHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{
		Create: createHandler,
		Add:    addHandler,
	}, nil
}

// Subscribe registers the handlers with the go-command dispatcher so the
// messages can be sent through dispatcher.Dispatch.
func (s *HandlerSet) Subscribe() []Subscription {
	if s == nil {
		return nil
	}
	return []Subscription{
		dispatcher.SubscribeCommand(s.Create),
		dispatcher.SubscribeCommand(s.Add),
	}
}
