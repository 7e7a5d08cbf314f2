// Package migrations embeds the goose SQL migrations for every supported
// dialect.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/notevault/internal/dbx"
	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql
var postgres embed.FS

//go:embed sqlite/*.sql
var sqlite embed.FS

// For returns the migration files of the dialect rooted at the top of the
// returned FS.
func For(d dbx.Dialect) (fs.FS, error) {
	switch d {
	case dbx.Postgres:
		return fs.Sub(postgres, "postgres")
	case dbx.SQLite:
		return fs.Sub(sqlite, "sqlite")
	default:
		return nil, fmt.Errorf("no migrations for dialect %q", d)
	}
}

func gooseDialect(d dbx.Dialect) (goose.Dialect, error) {
	switch d {
	case dbx.Postgres:
		return goose.DialectPostgres, nil
	case dbx.SQLite:
		return goose.DialectSQLite3, nil
	default:
		return "", fmt.Errorf("unsupported dialect %q", d)
	}
}

// Up applies every pending migration of the dialect to db. It uses a goose
// Provider rather than the package-level goose state, so databases of
// different dialects can be migrated from the same process.
func Up(ctx context.Context, db *sql.DB, d dbx.Dialect) error {
	fsys, err := For(d)
	if err != nil {
		return err
	}
	gd, err := gooseDialect(d)
	if err != nil {
		return err
	}

	p, err := goose.NewProvider(gd, db, fsys)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}
