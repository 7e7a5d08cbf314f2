package migrations

import (
	"context"
	"database/sql"
	"io/fs"
	"testing"

	"github.com/dmitrijs2005/notevault/internal/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestFor(t *testing.T) {
	for _, d := range []dbx.Dialect{dbx.Postgres, dbx.SQLite} {
		fsys, err := For(d)
		require.NoError(t, err)

		names, err := fs.Glob(fsys, "*.sql")
		require.NoError(t, err)
		assert.Contains(t, names, "00001_init.sql", "dialect %s", d)
	}

	_, err := For("mysql")
	require.Error(t, err)
}

func TestUp_SQLite(t *testing.T) {
	db, err := sql.Open("sqlite", "file:migrations_up?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, Up(ctx, db, dbx.SQLite))
	// second run is a no-op
	require.NoError(t, Up(ctx, db, dbx.SQLite))

	for _, table := range []string{"users", "grants"} {
		var name string
		err := db.QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err)
		assert.Equal(t, table, name)
	}
}

func TestUp_UnknownDialect(t *testing.T) {
	require.Error(t, Up(context.Background(), nil, "oracle"))
}
