// Package sqldb holds the SQL plumbing shared by the sqlite and postgres
// backends: a dialect-aware connection, versioned migrations, and a
// generic table-backed storage.Store.
package sqldb

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// Dialect captures what differs between database engines.
type Dialect struct {
	// Driver is the database/sql driver name ("sqlite3", "pgx").
	Driver string

	Placeholder sq.PlaceholderFormat

	// OrderColumn gives a stable insertion order for FindAll. SQLite uses
	// its implicit rowid; Postgres tables carry a seq BIGSERIAL column.
	OrderColumn string
}

// DB is a connection pool plus the dialect it speaks.
// A single *DB is safe for concurrent use by multiple goroutines.
type DB struct {
	*sqlx.DB
	dialect Dialect
}

// Open connects using the dialect's driver. It does not run migrations.
func Open(dialect Dialect, dsn string) (*DB, error) {
	db, err := sqlx.Open(dialect.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqldb.Open: open %s: %w", dialect.Driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqldb.Open: ping %s: %w", dialect.Driver, err)
	}
	return &DB{DB: db, dialect: dialect}, nil
}

func (db *DB) Dialect() Dialect { return db.dialect }

// builder returns a squirrel statement builder using the dialect's placeholders.
func (db *DB) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(db.dialect.Placeholder)
}
