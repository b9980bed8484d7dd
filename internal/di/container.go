package di

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	translationscmd "github.com/goliatone/go-translatable/internal/commands/translations"
	"github.com/goliatone/go-translatable/internal/locale"
	"github.com/goliatone/go-translatable/internal/logging"
	"github.com/goliatone/go-translatable/internal/logging/gologger"
	"github.com/goliatone/go-translatable/internal/migrations"
	"github.com/goliatone/go-translatable/internal/runtimeconfig"
	"github.com/goliatone/go-translatable/internal/schema"
	"github.com/goliatone/go-translatable/internal/translation"
	"github.com/goliatone/go-translatable/pkg/interfaces"
)

const defaultSQLiteDSN = "file:translatable?mode=memory&cache=shared"

// Container wires module dependencies.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	locales        interfaces.LocaleProvider
	registry       *schema.Registry

	bunDB  *bun.DB
	ownsDB bool
	store  translation.Store

	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	commandRegistry translationscmd.CommandRegistry
	commands        *translationscmd.HandlerSet

	mu     sync.RWMutex
	models map[string]*translation.Model
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB persists translations through the supplied database. The caller
// keeps ownership of the connection.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithLocaleProvider overrides the active locale source.
func WithLocaleProvider(provider interfaces.LocaleProvider) Option {
	return func(c *Container) {
		c.locales = provider
	}
}

// WithStore overrides the translation store. It takes precedence over the
// configured storage provider.
func WithStore(store translation.Store) Option {
	return func(c *Container) {
		c.store = store
	}
}

// WithRegistry shares a translation type registry between containers.
func WithRegistry(reg *schema.Registry) Option {
	return func(c *Container) {
		c.registry = reg
	}
}

// WithCommandRegistry registers the translation command handlers with reg.
func WithCommandRegistry(reg translationscmd.CommandRegistry) Option {
	return func(c *Container) {
		c.commandRegistry = reg
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cacheTTL,
		models:   map[string]*translation.Model{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogger(); err != nil {
		return nil, err
	}
	if err := c.configureLocales(); err != nil {
		return nil, err
	}
	if c.registry == nil {
		c.registry = schema.NewRegistry()
	}
	if err := c.configureStorage(); err != nil {
		return nil, err
	}

	handlers, err := translationscmd.RegisterTranslationCommands(c.commandRegistry, c, c.loggerProvider)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.commands = handlers

	logging.RootLogger(c.loggerProvider).Debug("container.configured",
		"storage", c.storageName(),
		"default_locale", c.locales.DefaultLocale(),
		"cache", c.cacheService != nil,
	)

	return c, nil
}

func (c *Container) configureLogger() error {
	if c.loggerProvider != nil {
		return nil
	}
	if !c.Config.Features.Logger {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case runtimeconfig.LoggingGoLogger:
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	}
	return nil
}

func (c *Container) configureLocales() error {
	if c.locales != nil {
		return nil
	}
	provider, err := locale.NewProvider(c.Config.DefaultLocale)
	if err != nil {
		return err
	}
	c.locales = provider
	return nil
}

func (c *Container) configureStorage() error {
	if c.store != nil {
		return nil
	}

	if c.bunDB == nil && strings.EqualFold(c.Config.Storage.Provider, runtimeconfig.StorageBun) {
		db, err := openDB(c.Config.Storage)
		if err != nil {
			return err
		}
		c.bunDB = db
		c.ownsDB = true
	}

	if c.bunDB == nil {
		c.store = translation.NewMemoryStore()
		return nil
	}

	if c.Config.Storage.AutoMigrate {
		if err := c.migrate(); err != nil {
			c.Close()
			return err
		}
	}

	c.configureCacheDefaults()

	storeOpts := []translation.BunStoreOption{
		translation.WithStoreLogger(logging.StoreLogger(c.loggerProvider)),
	}
	if c.cacheService != nil && c.keySerializer != nil {
		c.store = translation.NewBunStoreWithCache(c.bunDB, c.cacheService, c.keySerializer, storeOpts...)
	} else {
		c.store = translation.NewBunStore(c.bunDB, storeOpts...)
	}
	return nil
}

func (c *Container) migrate() error {
	if c.bunDB.Dialect().Name() == dialect.SQLite {
		if err := migrations.MigrateUp(c.bunDB.DB); err != nil {
			return fmt.Errorf("translatable: migrate: %w", err)
		}
		return nil
	}
	if err := translation.CreateSchema(context.Background(), c.bunDB); err != nil {
		return fmt.Errorf("translatable: create schema: %w", err)
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func openDB(cfg runtimeconfig.StorageConfig) (*bun.DB, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	dsn := strings.TrimSpace(cfg.DSN)

	switch driver {
	case "", runtimeconfig.DriverSQLite:
		if dsn == "" {
			dsn = defaultSQLiteDSN
		}
		sqlDB, err := sql.Open(runtimeconfig.DriverSQLite, dsn)
		if err != nil {
			return nil, fmt.Errorf("translatable: open sqlite: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	case runtimeconfig.DriverPostgres:
		if dsn == "" {
			return nil, fmt.Errorf("translatable: postgres storage requires a dsn")
		}
		sqlDB, err := sql.Open(runtimeconfig.DriverPostgres, dsn)
		if err != nil {
			return nil, fmt.Errorf("translatable: open postgres: %w", err)
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("%w: %q", runtimeconfig.ErrStorageDriverUnknown, cfg.Driver)
	}
}

func (c *Container) storageName() string {
	switch c.store.(type) {
	case *translation.MemoryStore:
		return runtimeconfig.StorageMemory
	case *translation.BunStore:
		return runtimeconfig.StorageBun
	default:
		return "custom"
	}
}

// Define declares a translatable base entity. fn registers its translated
// properties on the declaration before it is finalized.
func (c *Container) Define(base string, fn func(*schema.Declaration)) (*translation.Model, error) {
	decl := schema.Declare(base)
	if fn != nil {
		fn(decl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	def, err := decl.Finalize(c.registry)
	if err != nil {
		return nil, err
	}

	model, err := translation.NewModel(def, c.store, locale.Func(c.locales),
		translation.WithLogger(logging.RootLogger(c.loggerProvider)),
		translation.WithResolverLogger(logging.ResolverLogger(c.loggerProvider)),
		translation.WithInvalidateOnWrite(c.Config.Translations.InvalidateOnWrite),
	)
	if err != nil {
		return nil, err
	}
	c.models[def.Base] = model
	return model, nil
}

// Model returns the model defined for base.
func (c *Container) Model(base string) (*translation.Model, error) {
	key := strings.TrimSpace(base)
	c.mu.RLock()
	model, ok := c.models[key]
	c.mu.RUnlock()
	if !ok {
		return nil, &translation.NotFoundError{Resource: "model", Key: key}
	}
	return model, nil
}

// Models lists defined models ordered by base name.
func (c *Container) Models() []*translation.Model {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.models))
	for name := range c.models {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]*translation.Model, 0, len(names))
	for _, name := range names {
		out = append(out, c.models[name])
	}
	return out
}

// LocaleProvider exposes the active locale source.
func (c *Container) LocaleProvider() interfaces.LocaleProvider {
	return c.locales
}

// LoggerProvider exposes the configured logger provider. It is nil when
// logging is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Registry exposes the translation type registry.
func (c *Container) Registry() *schema.Registry {
	return c.registry
}

// Store exposes the translation store.
func (c *Container) Store() translation.Store {
	return c.store
}

// BunDB exposes the database handle when bun storage is configured.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

// Commands returns the translation command handlers.
func (c *Container) Commands() *translationscmd.HandlerSet {
	return c.commands
}

// Close releases the database connection when the container opened it.
func (c *Container) Close() error {
	if c == nil || c.bunDB == nil || !c.ownsDB {
		return nil
	}
	db := c.bunDB
	c.bunDB = nil
	c.ownsDB = false
	return db.Close()
}
