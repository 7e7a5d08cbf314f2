// Package repomanager vends dialect-specific repository implementations and
// runs schema migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/notevault/internal/dbx"
	"github.com/dmitrijs2005/notevault/internal/server/migrations"
	"github.com/dmitrijs2005/notevault/internal/server/repositories/grants"
	"github.com/dmitrijs2005/notevault/internal/server/repositories/users"
)

type RepositoryManager interface {
	Dialect() dbx.Dialect
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Grants(db dbx.DBTX) grants.Repository
}

// SQLRepositoryManager binds repositories to one SQL dialect.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

func (m *SQLRepositoryManager) Dialect() dbx.Dialect { return m.dialect }

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewRepository(db, m.dialect)
}

// Grants returns a grants.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Grants(db dbx.DBTX) grants.Repository {
	return grants.NewRepository(db, m.dialect)
}

// migrateUp is a seam for testing.
var migrateUp = migrations.Up

// RunMigrations applies the embedded migrations of the manager's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrateUp(ctx, db, m.dialect)
}

// NewRepositoryManager constructs a RepositoryManager for the dialect.
func NewRepositoryManager(d dbx.Dialect) (RepositoryManager, error) {
	switch d {
	case dbx.Postgres, dbx.SQLite:
		return &SQLRepositoryManager{dialect: d}, nil
	default:
		return nil, fmt.Errorf("unsupported dialect %q", d)
	}
}

// Open connects to the database named by target, runs migrations and
// returns the pool together with its manager.
func Open(ctx context.Context, d dbx.Dialect, target string) (*sql.DB, RepositoryManager, error) {
	m, err := NewRepositoryManager(d)
	if err != nil {
		return nil, nil, err
	}
	db, err := dbx.Open(ctx, d, target)
	if err != nil {
		return nil, nil, err
	}
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db migrations: %w", err)
	}
	return db, m, nil
}
