package dbx

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, ":memory:?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", SQLiteDSN(":memory:"))
	assert.Contains(t, SQLiteDSN("/tmp/v.db"), "journal_mode(WAL)")
}

func TestOpenSQLite_ForeignKeysOn(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, SQLite, filepath.Join(t.TempDir(), "fk.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var on int
	require.NoError(t, db.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&on))
	assert.Equal(t, 1, on)

	var mode string
	require.NoError(t, db.QueryRowContext(ctx, `PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)

	_, err = db.ExecContext(ctx, `CREATE TABLE p (id TEXT PRIMARY KEY)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `CREATE TABLE c (p_id TEXT NOT NULL REFERENCES p (id))`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO c (p_id) VALUES ('missing')`)
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err), "got %v", err)
}

func TestOpen_UnknownDialect(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "x")
	require.Error(t, err)
}
