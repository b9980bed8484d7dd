package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-translatable/internal/locale"
)

// ErrDefaultLocaleInvalid indicates the default locale is not a BCP 47 tag.
var ErrDefaultLocaleInvalid = errors.New("translatable config: default locale is invalid")

// ErrStorageProviderUnknown indicates an unsupported storage provider.
var ErrStorageProviderUnknown = errors.New("translatable config: storage provider is invalid")
var ErrStorageDriverUnknown = errors.New("translatable config: storage driver is invalid")
var ErrCacheTTLInvalid = errors.New("translatable config: cache ttl must be zero or positive")
var ErrLoggingProviderRequired = errors.New("translatable config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("translatable config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("translatable config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("translatable config: logging format is invalid")

const (
	StorageMemory = "memory"
	StorageBun    = "bun"

	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"

	LoggingNoop     = "noop"
	LoggingGoLogger = "gologger"
)

// Config aggregates storage, cache and logging options for the module.
type Config struct {
	DefaultLocale string             `toml:"default_locale" env:"DEFAULT_LOCALE"`
	Storage       StorageConfig      `toml:"storage"        envPrefix:"STORAGE_"`
	Cache         CacheConfig        `toml:"cache"          envPrefix:"CACHE_"`
	Translations  TranslationsConfig `toml:"translations"   envPrefix:"TRANSLATIONS_"`
	Features      Features           `toml:"features"       envPrefix:"FEATURES_"`
	Logging       LoggingConfig      `toml:"logging"        envPrefix:"LOGGING_"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Provider    string `toml:"provider"     env:"PROVIDER"`
	Driver      string `toml:"driver"       env:"DRIVER"`
	DSN         string `toml:"dsn"          env:"DSN"`
	AutoMigrate bool   `toml:"auto_migrate" env:"AUTO_MIGRATE"`
}

// CacheConfig captures cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool          `toml:"enabled"     env:"ENABLED"`
	DefaultTTL time.Duration `toml:"default_ttl" env:"DEFAULT_TTL"`
}

// TranslationsConfig tunes translation resolution.
type TranslationsConfig struct {
	// InvalidateOnWrite resets an instance's cached translation when a
	// translation is added through it.
	InvalidateOnWrite bool `toml:"invalidate_on_write" env:"INVALIDATE_ON_WRITE"`
}

// Features toggles module functionality.
type Features struct {
	Logger bool `toml:"logger" env:"LOGGER"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `toml:"provider"   env:"PROVIDER"`
	Level     string   `toml:"level"      env:"LEVEL"`
	Format    string   `toml:"format"     env:"FORMAT"`
	AddSource bool     `toml:"add_source" env:"ADD_SOURCE"`
	Focus     []string `toml:"focus"      env:"FOCUS"`
}

// DefaultConfig returns defaults suited to tests and local runs.
func DefaultConfig() Config {
	return Config{
		DefaultLocale: "en",
		Storage: StorageConfig{
			Provider:    StorageMemory,
			Driver:      DriverSQLite,
			AutoMigrate: true,
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Logging: LoggingConfig{
			Provider: LoggingNoop,
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if _, err := locale.Parse(cfg.DefaultLocale); err != nil {
		return fmt.Errorf("%w: %v", ErrDefaultLocaleInvalid, err)
	}
	switch normalize(cfg.Storage.Provider) {
	case StorageMemory:
	case StorageBun:
		if driver := normalize(cfg.Storage.Driver); driver != "" && !isSupportedDriver(driver) {
			return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, driver)
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}
	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == LoggingGoLogger {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedDriver(driver string) bool {
	switch driver {
	case DriverSQLite, DriverPostgres:
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case LoggingNoop, LoggingGoLogger:
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
