package translatable

import (
	"context"
	"database/sql"
	"io/fs"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-translatable/internal/migrations"
	"github.com/goliatone/go-translatable/internal/translation"
)

// GetMigrationsFS returns the embedded SQL migration files.
func GetMigrationsFS() fs.FS {
	return migrations.Files()
}

// MigrateSQLite applies the embedded migrations to a SQLite database.
func MigrateSQLite(db *sql.DB) error {
	return migrations.MigrateUp(db)
}

// MigrationStatus reports whether a SQLite database is at the latest
// schema version.
func MigrationStatus(db *sql.DB) error {
	return migrations.Status(db)
}

// CreateSchema creates the entity and translation tables through bun. Use it
// for dialects without embedded migrations.
func CreateSchema(ctx context.Context, db bun.IDB) error {
	return translation.CreateSchema(ctx, db)
}
