package services

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/notevault/internal/dbx"
	"github.com/dmitrijs2005/notevault/internal/logging"
	"github.com/dmitrijs2005/notevault/internal/server/auth"
	"github.com/dmitrijs2005/notevault/internal/server/models"
	"github.com/dmitrijs2005/notevault/internal/server/payloads"
	"github.com/dmitrijs2005/notevault/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
	svc   *DirectoryService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return openTestEnv(t, filepath.Join(t.TempDir(), "vault.db"))
}

// openTestEnv opens (or reopens) the SQLite database at path.
func openTestEnv(t *testing.T, path string) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, rm, err := repomanager.Open(ctx, dbx.SQLite, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	minter := auth.NewHMACMinter("tc-test", []byte("secret"))
	svc := NewDirectoryService(DirectoryDeps{
		DB:       db,
		Repos:    rm,
		Payloads: payloads.NewDBStore(rm.Users(db)),
		Hasher:   &auth.Argon2id{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32},
		Minter:   minter,
		Logger:   logging.Discard(),
		ClientConfig: models.ClientConfig{
			TrustchainID:   "tc-test",
			PayloadStore:   payloads.BackendDB,
			TokenAlgorithm: minter.Algorithm(),
		},
	})

	var seq atomic.Int64
	svc.idGen = func() string { return fmt.Sprintf("id-%03d", seq.Add(1)) }

	return &testEnv{db: db, repos: rm, svc: svc}
}

// signup registers email with password "pw-<email>" and returns the verified record.
func (e *testEnv) signup(t *testing.T, email string) *models.User {
	t.Helper()
	ctx := context.Background()

	_, err := e.svc.Signup(ctx, email, "pw-"+email)
	require.NoError(t, err)
	u, err := e.svc.VerifyCredentials(ctx, email, "pw-"+email)
	require.NoError(t, err)
	return u
}

type failingHasher struct {
	hashErr, verifyErr error
}

func (f failingHasher) Hash(string) (string, error)         { return "", f.hashErr }
func (f failingHasher) Verify(string, string) (bool, error) { return false, f.verifyErr }
