package testsupport

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// NewSQLiteMemoryDB opens a named in-memory SQLite database. Connections
// opened with the same name share the database.
func NewSQLiteMemoryDB(name string) (*sql.DB, error) {
	if strings.TrimSpace(name) == "" {
		name = "translatable"
	}
	sqldb, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		return nil, err
	}
	sqldb.SetMaxOpenConns(1)
	return sqldb, nil
}

// NewBunDB opens an in-memory SQLite database private to the test and closes
// it when the test ends.
func NewBunDB(t testing.TB) *bun.DB {
	t.Helper()

	sqldb, err := NewSQLiteMemoryDB(databaseName(t.Name()))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func databaseName(testName string) string {
	replacer := strings.NewReplacer("/", "_", " ", "_", "#", "_", "?", "_", "&", "_")
	return replacer.Replace(testName)
}
