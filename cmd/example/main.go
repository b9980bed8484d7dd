package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	translatable "github.com/goliatone/go-translatable"
)

// News is a host type with static accessors over the translated attributes.
type News struct {
	*translatable.Instance
}

func (n News) Title(ctx context.Context) (string, bool, error) {
	return n.String(ctx, "title")
}

func (n News) Content(ctx context.Context) (string, bool, error) {
	return n.String(ctx, "content")
}

func main() {
	ctx := context.Background()

	sqlDB, err := sql.Open("sqlite3", "file:translatable_example?mode=memory&cache=shared")
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	defer db.Close()

	cfg := translatable.DefaultConfig()
	cfg.DefaultLocale = "en"

	module, err := translatable.New(cfg, translatable.WithBunDB(db))
	if err != nil {
		log.Fatalf("new module: %v", err)
	}
	defer module.Close()

	model, err := module.Define("News", func(decl *translatable.Declaration) {
		decl.Property("title", translatable.String, translatable.Required(), translatable.MaxLength(200)).
			Property("content", translatable.Text)
	})
	if err != nil {
		log.Fatalf("define News: %v", err)
	}

	steps := []struct {
		name string
		run  func(context.Context, *translatable.Module, *translatable.Model) error
	}{
		{"foreign translation only", foreignOnly},
		{"default locale wins", defaultLocaleWins},
		{"no translations", noTranslations},
		{"stale until locale changes", staleUntilLocaleChanges},
	}

	for _, step := range steps {
		if err := module.SetLocale(cfg.DefaultLocale); err != nil {
			log.Fatalf("reset locale: %v", err)
		}
		fmt.Printf("== %s\n", step.name)
		if err := step.run(ctx, module, model); err != nil {
			log.Fatalf("%s: %v", step.name, err)
		}
	}
}

func foreignOnly(ctx context.Context, module *translatable.Module, model *translatable.Model) error {
	inst, err := model.Create(ctx, nil, translatable.Fields{
		"title":   "Заголовок",
		"content": "Содержание",
		"locale":  "ru",
	})
	if err != nil {
		return err
	}
	news := News{inst}

	if err := printTitle(ctx, module, news); err != nil {
		return err
	}
	if err := module.SetLocale("ru"); err != nil {
		return err
	}
	return printTitle(ctx, module, news)
}

func defaultLocaleWins(ctx context.Context, module *translatable.Module, model *translatable.Model) error {
	inst, err := model.Create(ctx, nil,
		translatable.Fields{"title": "Заголовок", "content": "Содержание", "locale": "ru"},
		translatable.Fields{"title": "Title", "content": "Content", "locale": "en"},
	)
	if err != nil {
		return err
	}
	news := News{inst}

	if err := printTitle(ctx, module, news); err != nil {
		return err
	}
	if err := module.SetLocale("de"); err != nil {
		return err
	}
	if err := printTitle(ctx, module, news); err != nil {
		return err
	}
	content, ok, err := news.Content(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("  [de] content=%q present=%v\n", content, ok)
	return nil
}

func noTranslations(ctx context.Context, module *translatable.Module, model *translatable.Model) error {
	inst, err := model.Create(ctx, nil)
	if err != nil {
		return err
	}
	news := News{inst}

	if err := printTitle(ctx, module, news); err != nil {
		return err
	}
	records, err := news.Translations().List(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("  translations=%d\n", len(records))
	return nil
}

func staleUntilLocaleChanges(ctx context.Context, module *translatable.Module, model *translatable.Model) error {
	inst, err := model.Create(ctx, nil)
	if err != nil {
		return err
	}
	news := News{inst}

	if err := printTitle(ctx, module, news); err != nil {
		return err
	}
	if _, err := news.Translations().Create(ctx, translatable.Fields{"title": "Late title", "locale": "en"}); err != nil {
		return err
	}
	fmt.Println("  added en translation")
	if err := printTitle(ctx, module, news); err != nil {
		return err
	}
	news.Reset()
	fmt.Println("  reset cache")
	return printTitle(ctx, module, news)
}

func printTitle(ctx context.Context, module *translatable.Module, news News) error {
	title, ok, err := news.Title(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("  [%s] title=%q present=%v state=%s\n",
		module.Locales().CurrentLocale(), title, ok, news.Resolver().State())
	return nil
}
