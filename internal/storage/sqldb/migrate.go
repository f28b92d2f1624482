package sqldb

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strconv"
	"strings"
)

const createMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY)`

// Migrate applies every script in source whose numeric prefix is greater
// than the highest version recorded in schema_migrations. Scripts are named
// like 0001_create_tables.sql and each runs in its own transaction.
func (db *DB) Migrate(ctx context.Context, source fs.FS) error {
	names, err := fs.Glob(source, "*.sql")
	if err != nil {
		return fmt.Errorf("Migrate: list scripts: %w", err)
	}
	// apply in version order
	sort.Strings(names)

	if _, err := db.ExecContext(ctx, createMigrationsTable); err != nil {
		return fmt.Errorf("Migrate: create schema_migrations: %w", err)
	}

	current, err := db.schemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, name := range names {
		v, err := scriptVersion(name)
		if err != nil {
			return err
		}
		if v <= current {
			continue
		}

		script, err := fs.ReadFile(source, name)
		if err != nil {
			return fmt.Errorf("Migrate: read %s: %w", name, err)
		}
		if err := db.applyScript(ctx, v, string(script)); err != nil {
			return fmt.Errorf("Migrate: apply %s: %w", name, err)
		}
		slog.Debug("applied migration", slog.String("name", name))
		current = v
	}

	return nil
}

func (db *DB) applyScript(ctx context.Context, version int, script string) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, script); err != nil {
		return err
	}

	query, args, err := db.builder().
		Insert("schema_migrations").
		Columns("version").
		Values(version).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return tx.Commit()
}

func (db *DB) schemaVersion(ctx context.Context) (int, error) {
	var v int
	if err := db.GetContext(ctx, &v, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`); err != nil {
		return 0, fmt.Errorf("Migrate: read schema version: %w", err)
	}
	return v, nil
}

// scriptVersion parses the leading number of a migration file name.
func scriptVersion(name string) (int, error) {
	prefix, _, ok := strings.Cut(name, "_")
	if !ok {
		return 0, fmt.Errorf("migration %q: name must look like 0001_description.sql", name)
	}
	v, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, fmt.Errorf("migration %q: %w", name, err)
	}
	return v, nil
}
