package dbx

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// OpenPostgres opens a pgx-backed pool and checks it is reachable.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// SQLiteDSN builds a modernc.org/sqlite DSN for path with foreign keys on,
// a busy timeout and, for file databases, WAL journaling.
func SQLiteDSN(path string) string {
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if path != ":memory:" {
		dsn += "&_pragma=journal_mode(WAL)"
	}
	return dsn
}

// OpenSQLite opens a SQLite database restricted to a single connection.
// SQLite allows one writer at a time, and one connection keeps an
// in-memory database alive for the life of the pool.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", SQLiteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

// Open dispatches on dialect. For SQLite the target is a file path.
func Open(ctx context.Context, d Dialect, target string) (*sql.DB, error) {
	switch d {
	case Postgres:
		return OpenPostgres(ctx, target)
	case SQLite:
		return OpenSQLite(ctx, target)
	default:
		return nil, fmt.Errorf("unsupported dialect %q", d)
	}
}
