package grants

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/notevault/internal/common"
	"github.com/dmitrijs2005/notevault/internal/dbx"
	"github.com/dmitrijs2005/notevault/internal/server/migrations"
	"github.com/dmitrijs2005/notevault/internal/server/models"
	"github.com/dmitrijs2005/notevault/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteRepo(t *testing.T, ids ...string) *SQLRepository {
	t.Helper()
	ctx := context.Background()

	db, err := dbx.OpenSQLite(ctx, filepath.Join(t.TempDir(), "grants.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Up(ctx, db, dbx.SQLite))

	ur := users.NewSQLiteRepository(db)
	for _, id := range ids {
		require.NoError(t, ur.Create(ctx, &models.User{ID: id, Email: id + "@x.io", HashedPassword: "h", Token: "t"}))
	}
	return NewRepository(db, dbx.SQLite)
}

func TestSQLite_InsertIsIdempotentAndDual(t *testing.T) {
	repo := newSQLiteRepo(t, "a", "b")
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Insert(ctx, "a", "b", now))
	require.NoError(t, repo.Insert(ctx, "a", "b", now.Add(time.Second)))

	to, err := repo.ListGrantedTo(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, to)

	from, err := repo.ListGrantedFrom(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, from)

	// not symmetric
	to, err = repo.ListGrantedTo(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, to)
}

func TestSQLite_InsertUnknownUser(t *testing.T) {
	repo := newSQLiteRepo(t, "a")

	err := repo.Insert(context.Background(), "a", "ghost", time.Now())
	require.ErrorIs(t, err, common.ErrorNotFound)
}
