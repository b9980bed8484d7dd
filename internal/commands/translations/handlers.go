package translationscmd

import (
	"context"

	"github.com/goliatone/go-translatable/internal/commands"
	"github.com/goliatone/go-translatable/internal/translation"
	"github.com/goliatone/go-translatable/pkg/interfaces"
)

// ModelResolver looks up defined translatable models by base name.
type ModelResolver interface {
	Model(name string) (*translation.Model, error)
}

// CreateTranslatableHandler creates entities through their model.
type CreateTranslatableHandler struct {
	inner *commands.Handler[CreateTranslatableCommand]
}

// NewCreateTranslatableHandler constructs a handler wired to the model resolver.
func NewCreateTranslatableHandler(models ModelResolver, logger interfaces.Logger, opts ...commands.HandlerOption[CreateTranslatableCommand]) *CreateTranslatableHandler {
	exec := func(ctx context.Context, msg CreateTranslatableCommand) error {
		model, err := models.Model(msg.Model)
		if err != nil {
			return err
		}
		inst, err := model.Create(ctx, msg.Attributes, toFields(msg.Translations)...)
		if err != nil {
			return err
		}
		if msg.ResultCallback != nil {
			msg.ResultCallback(inst)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[CreateTranslatableCommand]{
		commands.WithLogger[CreateTranslatableCommand](logger),
		commands.WithOperation[CreateTranslatableCommand]("entity.create"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CreateTranslatableHandler{
		inner: commands.NewHandler[CreateTranslatableCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[CreateTranslatableCommand].Execute.
func (h *CreateTranslatableHandler) Execute(ctx context.Context, msg CreateTranslatableCommand) error {
	return h.inner.Execute(ctx, msg)
}

// AddTranslationHandler adds translations to existing entities.
type AddTranslationHandler struct {
	inner *commands.Handler[AddTranslationCommand]
}

// NewAddTranslationHandler constructs a handler wired to the model resolver.
func NewAddTranslationHandler(models ModelResolver, logger interfaces.Logger, opts ...commands.HandlerOption[AddTranslationCommand]) *AddTranslationHandler {
	exec := func(ctx context.Context, msg AddTranslationCommand) error {
		model, err := models.Model(msg.Model)
		if err != nil {
			return err
		}
		inst, err := model.Get(ctx, msg.EntityID)
		if err != nil {
			return err
		}
		record, err := inst.Translations().Create(ctx, translation.Fields(msg.Fields))
		if err != nil {
			return err
		}
		if msg.ResultCallback != nil {
			msg.ResultCallback(record)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[AddTranslationCommand]{
		commands.WithLogger[AddTranslationCommand](logger),
		commands.WithOperation[AddTranslationCommand]("translation.add"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &AddTranslationHandler{
		inner: commands.NewHandler[AddTranslationCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[AddTranslationCommand].Execute.
func (h *AddTranslationHandler) Execute(ctx context.Context, msg AddTranslationCommand) error {
	return h.inner.Execute(ctx, msg)
}
