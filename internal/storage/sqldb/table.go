package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/ucsb-cs156/campus-api/internal/storage"
	"github.com/ucsb-cs156/campus-api/internal/types"
)

// Table describes how one record type maps onto one SQL table. Column
// names match the db:"..." tags on the record.
type Table struct {
	Name string
	Key  string
	// GeneratedKey is true when the database assigns the key on insert.
	GeneratedKey bool
	// Columns lists every non-key column.
	Columns []string
}

// Store is a storage.Store over a single table.
type Store[E types.Entity[E, K], K comparable] struct {
	db    *DB
	table Table
}

var _ storage.Store[types.Article, int64] = (*Store[types.Article, int64])(nil)

// NewStore binds table to db. The table is expected to exist already
// (see DB.Migrate).
func NewStore[E types.Entity[E, K], K comparable](db *DB, table Table) *Store[E, K] {
	return &Store[E, K]{db: db, table: table}
}

func (s *Store[E, K]) selectColumns() []string {
	return append([]string{s.table.Key}, s.table.Columns...)
}

func (s *Store[E, K]) FindAll(ctx context.Context) ([]E, error) {
	query, args, err := s.db.builder().
		Select(s.selectColumns()...).
		From(s.table.Name).
		OrderBy(s.db.dialect.OrderColumn).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s.FindAll: build: %w", s.table.Name, err)
	}

	// an empty (non-nil) slice encodes as [] rather than null
	out := make([]E, 0)
	if err := s.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("%s.FindAll: select: %w", s.table.Name, err)
	}
	return out, nil
}

func (s *Store[E, K]) FindByID(ctx context.Context, key K) (E, error) {
	var e E
	query, args, err := s.db.builder().
		Select(s.selectColumns()...).
		From(s.table.Name).
		Where(sq.Eq{s.table.Key: key}).
		Limit(1).
		ToSql()
	if err != nil {
		return e, fmt.Errorf("%s.FindByID: build: %w", s.table.Name, err)
	}

	if err := s.db.GetContext(ctx, &e, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return e, fmt.Errorf("%s.FindByID %v: %w", s.table.Name, key, storage.ErrNotFound)
		}
		return e, fmt.Errorf("%s.FindByID: get: %w", s.table.Name, err)
	}
	return e, nil
}

// Save inserts when the key is zero and the database generates keys;
// otherwise it upserts on the key column so every field is overwritten.
func (s *Store[E, K]) Save(ctx context.Context, entity E) (E, error) {
	values, err := s.columnValues(entity)
	if err != nil {
		return entity, fmt.Errorf("%s.Save: %w", s.table.Name, err)
	}

	var zero K
	if s.table.GeneratedKey && entity.Key() == zero {
		return s.insert(ctx, entity, values)
	}
	return s.upsert(ctx, entity, values)
}

func (s *Store[E, K]) insert(ctx context.Context, entity E, values map[string]any) (E, error) {
	query, args, err := s.db.builder().
		Insert(s.table.Name).
		SetMap(values).
		Suffix("RETURNING " + s.table.Key).
		ToSql()
	if err != nil {
		return entity, fmt.Errorf("%s.Save: build insert: %w", s.table.Name, err)
	}

	var key K
	if err := s.db.QueryRowxContext(ctx, query, args...).Scan(&key); err != nil {
		return entity, fmt.Errorf("%s.Save: insert: %w", s.table.Name, err)
	}
	return entity.WithKey(key), nil
}

func (s *Store[E, K]) upsert(ctx context.Context, entity E, values map[string]any) (E, error) {
	values[s.table.Key] = entity.Key()

	assignments := make([]string, 0, len(s.table.Columns))
	for _, c := range s.table.Columns {
		assignments = append(assignments, fmt.Sprintf("%s = excluded.%s", c, c))
	}

	query, args, err := s.db.builder().
		Insert(s.table.Name).
		SetMap(values).
		Suffix(fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s",
			s.table.Key, strings.Join(assignments, ", "))).
		ToSql()
	if err != nil {
		return entity, fmt.Errorf("%s.Save: build upsert: %w", s.table.Name, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return entity, fmt.Errorf("%s.Save: upsert: %w", s.table.Name, err)
	}
	return entity, nil
}

func (s *Store[E, K]) Delete(ctx context.Context, entity E) error {
	query, args, err := s.db.builder().
		Delete(s.table.Name).
		Where(sq.Eq{s.table.Key: entity.Key()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s.Delete: build: %w", s.table.Name, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s.Delete: exec: %w", s.table.Name, err)
	}
	return nil
}

// columnValues reads the non-key columns off entity through sqlx's
// db-tag mapper.
func (s *Store[E, K]) columnValues(entity E) (map[string]any, error) {
	fields := s.db.Mapper.FieldMap(reflect.ValueOf(entity))

	values := make(map[string]any, len(s.table.Columns)+1)
	for _, c := range s.table.Columns {
		f, ok := fields[c]
		if !ok {
			return nil, fmt.Errorf("column %q has no matching db tag on %T", c, entity)
		}
		values[c] = f.Interface()
	}
	return values, nil
}
