package di_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-translatable/internal/commands/fixtures"
	"github.com/goliatone/go-translatable/internal/di"
	"github.com/goliatone/go-translatable/internal/locale"
	"github.com/goliatone/go-translatable/internal/runtimeconfig"
	"github.com/goliatone/go-translatable/internal/schema"
	"github.com/goliatone/go-translatable/internal/translation"
	"github.com/goliatone/go-translatable/pkg/testsupport"
)

func defineNews(decl *schema.Declaration) {
	decl.Property("title", schema.String).Property("content", schema.Text)
}

func TestContainerDefaultsToMemoryStore(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	defer container.Close()

	if _, ok := container.Store().(*translation.MemoryStore); !ok {
		t.Fatalf("expected memory store, got %T", container.Store())
	}
	if container.BunDB() != nil {
		t.Fatalf("expected no database for memory storage")
	}
	if got := container.LocaleProvider().CurrentLocale(); got != "en" {
		t.Fatalf("expected default locale en, got %q", got)
	}
	if container.Commands() == nil || container.Commands().Create == nil || container.Commands().Add == nil {
		t.Fatalf("expected command handlers to be built")
	}
}

func TestContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.DefaultLocale = "not a locale!"

	if _, err := di.NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrDefaultLocaleInvalid) {
		t.Fatalf("expected ErrDefaultLocaleInvalid, got %v", err)
	}
}

func TestContainerDefineAndLookupModel(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	model, err := container.Define("News", defineNews)
	if err != nil {
		t.Fatalf("define: %v", err)
	}
	if model.Name() != "News" {
		t.Fatalf("expected model News, got %q", model.Name())
	}

	got, err := container.Model("News")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got != model {
		t.Fatalf("expected lookup to return the defined model")
	}
	if _, ok := container.Registry().Definition("News"); !ok {
		t.Fatalf("expected registry to hold the News definition")
	}

	if _, err := container.Model("Article"); !translation.IsNotFound(err) {
		t.Fatalf("expected not found for unknown model, got %v", err)
	}
}

func TestContainerDefineTwiceFails(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if _, err := container.Define("News", defineNews); err != nil {
		t.Fatalf("define: %v", err)
	}

	_, err = container.Define("News", defineNews)
	if !errors.Is(err, schema.ErrConfiguration) {
		t.Fatalf("expected configuration error on redefinition, got %v", err)
	}
	if len(container.Models()) != 1 {
		t.Fatalf("expected one model, got %d", len(container.Models()))
	}
}

func TestContainerModelsSortedByName(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	for _, base := range []string{"Page", "Article", "News"} {
		if _, err := container.Define(base, defineNews); err != nil {
			t.Fatalf("define %s: %v", base, err)
		}
	}

	models := container.Models()
	want := []string{"Article", "News", "Page"}
	for i, model := range models {
		if model.Name() != want[i] {
			t.Fatalf("expected %v order, got %q at %d", want, model.Name(), i)
		}
	}
}

func TestContainerModelsFollowLocaleProvider(t *testing.T) {
	provider, err := locale.NewProvider("ru")
	if err != nil {
		t.Fatalf("provider: %v", err)
	}
	container, err := di.NewContainer(runtimeconfig.DefaultConfig(), di.WithLocaleProvider(provider))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	model, err := container.Define("News", defineNews)
	if err != nil {
		t.Fatalf("define: %v", err)
	}

	ctx := context.Background()
	inst, err := model.Create(ctx, nil,
		translation.Fields{"title": "Заголовок", "locale": "ru"},
		translation.Fields{"title": "Title", "locale": "en"},
	)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	title, ok, err := inst.String(ctx, "title")
	if err != nil || !ok || title != "Заголовок" {
		t.Fatalf("expected ru title, got %q ok=%v err=%v", title, ok, err)
	}

	if err := provider.SetLocale("en"); err != nil {
		t.Fatalf("set locale: %v", err)
	}
	title, ok, err = inst.String(ctx, "title")
	if err != nil || !ok || title != "Title" {
		t.Fatalf("expected en title after locale change, got %q ok=%v err=%v", title, ok, err)
	}
}

func TestContainerBunStorageFromConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = runtimeconfig.StorageBun
	cfg.Storage.DSN = "file:di_config_storage?mode=memory&cache=shared"

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	defer container.Close()

	if _, ok := container.Store().(*translation.BunStore); !ok {
		t.Fatalf("expected bun store, got %T", container.Store())
	}

	model, err := container.Define("News", defineNews)
	if err != nil {
		t.Fatalf("define: %v", err)
	}

	ctx := context.Background()
	created, err := model.Create(ctx, nil, translation.Fields{"title": "Title", "locale": "en"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	loaded, err := model.Get(ctx, created.ID())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	title, ok, err := loaded.String(ctx, "title")
	if err != nil || !ok || title != "Title" {
		t.Fatalf("expected persisted title, got %q ok=%v err=%v", title, ok, err)
	}

	if err := container.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if container.BunDB() != nil {
		t.Fatalf("expected database to be released on close")
	}
}

func TestContainerWithBunDBKeepsCallerOwnership(t *testing.T) {
	db := testsupport.NewBunDB(t)

	container, err := di.NewContainer(runtimeconfig.DefaultConfig(), di.WithBunDB(db))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if err := container.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("expected injected database to stay open: %v", err)
	}

	var count int
	if err := db.NewSelect().TableExpr("translatable_translations").ColumnExpr("COUNT(*)").Scan(context.Background(), &count); err != nil {
		t.Fatalf("expected auto migration to create translations table: %v", err)
	}
}

func TestContainerWithStoreOverridesStorage(t *testing.T) {
	store := translation.NewMemoryStore()
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = runtimeconfig.StorageBun

	container, err := di.NewContainer(cfg, di.WithStore(store))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if container.Store() != store {
		t.Fatalf("expected injected store to be used")
	}
	if container.BunDB() != nil {
		t.Fatalf("expected no database to be opened")
	}
}

func TestContainerRegistersCommandHandlers(t *testing.T) {
	reg := fixtures.NewRecordingRegistry()

	if _, err := di.NewContainer(runtimeconfig.DefaultConfig(), di.WithCommandRegistry(reg)); err != nil {
		t.Fatalf("new container: %v", err)
	}
	if len(reg.Handlers) != 2 {
		t.Fatalf("expected 2 registered handlers, got %d", len(reg.Handlers))
	}
}

func TestContainerPropagatesCommandRegistryError(t *testing.T) {
	reg := fixtures.NewRecordingRegistry()
	reg.Err = errors.New("registry closed")

	_, err := di.NewContainer(runtimeconfig.DefaultConfig(), di.WithCommandRegistry(reg))
	if err == nil || err.Error() != "registry closed" {
		t.Fatalf("expected registry error, got %v", err)
	}
}

func TestContainerSharedRegistry(t *testing.T) {
	reg := schema.NewRegistry()
	container, err := di.NewContainer(runtimeconfig.DefaultConfig(), di.WithRegistry(reg))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if container.Registry() != reg {
		t.Fatalf("expected shared registry")
	}
	if _, err := container.Define("News", defineNews); err != nil {
		t.Fatalf("define: %v", err)
	}
	if _, err := reg.Lookup("TranslatableNews"); err != nil {
		t.Fatalf("expected translation type on shared registry: %v", err)
	}
}
