package sqldb

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	dialect := Dialect{Driver: "sqlite3", Placeholder: sq.Question, OrderColumn: "rowid"}
	db, err := Open(dialect, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := newTestDB(t)

	scripts := fstest.MapFS{
		"0001_first.sql":  {Data: []byte(`CREATE TABLE a (id INTEGER PRIMARY KEY);`)},
		"0002_second.sql": {Data: []byte(`CREATE TABLE b (id INTEGER PRIMARY KEY); CREATE TABLE c (id INTEGER PRIMARY KEY);`)},
	}

	require.NoError(t, db.Migrate(ctx, scripts))
	v, err := db.schemaVersion(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, v)

	// running again is a no-op; re-creating table a would fail otherwise
	require.NoError(t, db.Migrate(ctx, scripts))

	scripts["0003_third.sql"] = &fstest.MapFile{Data: []byte(`CREATE TABLE d (id INTEGER PRIMARY KEY);`)}
	require.NoError(t, db.Migrate(ctx, scripts))
	v, err = db.schemaVersion(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, v)

	var tables int
	require.NoError(t, db.GetContext(ctx, &tables,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('a', 'b', 'c', 'd')`))
	require.Equal(t, 4, tables)
}

func TestMigrate_FailedScriptIsNotRecorded(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := newTestDB(t)

	scripts := fstest.MapFS{
		"0001_broken.sql": {Data: []byte(`CREATE TABLE oops (`)},
	}
	require.Error(t, db.Migrate(ctx, scripts))

	v, err := db.schemaVersion(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, v)
}

func TestScriptVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		want     int
		wantErr  bool
	}{
		{"single digit number", "0001_some_file_name.sql", 1, false},
		{"larger number", "0921_another_file.sql", 921, false},
		{"bad name", "not_numbered_correctly.sql", 0, true},
		{"no separator", "0001.sql", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := scriptVersion(tt.filename)
			require.Equal(t, tt.want, got)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
