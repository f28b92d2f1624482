// Package sqlite opens the SQLite backend: a single file on disk, no
// server process, nothing to install beyond the driver.
//
// The blank import below registers the "sqlite3" driver with database/sql.
// The driver's init() function does this automatically when the package
// is loaded; nothing from it is called directly.
package sqlite

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ucsb-cs156/campus-api/internal/config"
	"github.com/ucsb-cs156/campus-api/internal/storage/sqldb"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Dialect is SQLite's flavour of SQL: ? placeholders and the implicit
// rowid column for insertion order.
var Dialect = sqldb.Dialect{
	Driver:      "sqlite3",
	Placeholder: sq.Question,
	OrderColumn: "rowid",
}

// New opens the database at cfg.Path, brings the schema up to date, and
// returns a ready-to-use handle.
func New(ctx context.Context, cfg config.Storage) (*sqldb.DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite.New: storage path is empty")
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", cfg.Path)

	db, err := sqldb.Open(Dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: %w", err)
	}

	// SQLite allows one writer at a time; a single connection serializes
	// writes inside the pool instead of failing them.
	db.SetMaxOpenConns(1)

	scripts, err := fs.Sub(migrations, "migrations")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: migrations: %w", err)
	}
	if err := db.Migrate(ctx, scripts); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: %w", err)
	}

	return db, nil
}
