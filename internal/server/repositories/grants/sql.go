package grants

import (
	"context"
	"time"

	"github.com/dmitrijs2005/notevault/internal/common"
	"github.com/dmitrijs2005/notevault/internal/dbx"
	"github.com/dmitrijs2005/notevault/internal/timex"
)

const (
	insertQuery = `INSERT INTO grants (from_id, to_id, created_at) VALUES (?, ?, ?)
		ON CONFLICT (from_id, to_id) DO NOTHING`
	listToQuery   = `SELECT to_id FROM grants WHERE from_id = ? ORDER BY created_at, to_id`
	listFromQuery = `SELECT from_id FROM grants WHERE to_id = ? ORDER BY created_at, from_id`
)

type SQLRepository struct {
	db                       dbx.DBTX
	insert, listTo, listFrom string
}

func NewRepository(db dbx.DBTX, d dbx.Dialect) *SQLRepository {
	return &SQLRepository{
		db:       db,
		insert:   dbx.Rebind(d, insertQuery),
		listTo:   dbx.Rebind(d, listToQuery),
		listFrom: dbx.Rebind(d, listFromQuery),
	}
}

func (r *SQLRepository) Insert(ctx context.Context, fromID, toID string, at time.Time) error {
	if fromID == toID {
		return common.ErrorSelfGrant
	}
	_, err := r.db.ExecContext(ctx, r.insert, fromID, toID, timex.Millis(at))
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return common.ErrorNotFound
		}
		return dbx.Unavailable(err)
	}
	return nil
}

func (r *SQLRepository) ListGrantedTo(ctx context.Context, fromID string) ([]string, error) {
	return r.list(ctx, r.listTo, fromID)
}

func (r *SQLRepository) ListGrantedFrom(ctx context.Context, toID string) ([]string, error) {
	return r.list(ctx, r.listFrom, toID)
}

func (r *SQLRepository) list(ctx context.Context, query, id string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, dbx.Unavailable(err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var other string
		if err := rows.Scan(&other); err != nil {
			return nil, dbx.Unavailable(err)
		}
		ids = append(ids, other)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.Unavailable(err)
	}
	return ids, nil
}
