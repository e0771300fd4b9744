package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite driver
)

// sqlitePragmas are applied on every fresh handle. WAL keeps readers from
// blocking the writer; foreign_keys is off by default in sqlite.
var sqlitePragmas = []struct {
	name  string
	value string
}{
	{"journal_mode", "WAL"},
	{"synchronous", "NORMAL"},
	{"busy_timeout", "5000"},
	{"foreign_keys", "ON"},
}

// OpenSQLite opens the sqlite database at path, creating it if needed,
// and applies the embedded migrations.
func OpenSQLite(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	for _, pragma := range sqlitePragmas {
		query := fmt.Sprintf("PRAGMA %s = %s", pragma.name, pragma.value)
		if _, err := db.Exec(query); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set PRAGMA %s: %w", pragma.name, err)
		}
	}

	if err := runMigrations(db.DB, "sqlite3", "migrations/sqlite"); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
