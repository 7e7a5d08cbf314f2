package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/notevault/internal/common"
	"github.com/dmitrijs2005/notevault/internal/dbx"
	"github.com/dmitrijs2005/notevault/internal/server/models"
	"github.com/dmitrijs2005/notevault/internal/timex"
)

const (
	createQuery = `INSERT INTO users (id, email, hashed_password, token, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	selectColumns = `SELECT id, email, hashed_password, token, created_at, updated_at FROM users`

	getByIDQuery    = selectColumns + ` WHERE id = ?`
	getByEmailQuery = selectColumns + ` WHERE email = ?`
	listAllQuery    = selectColumns + ` ORDER BY created_at, id`

	updateQuery = `UPDATE users SET email = ?, hashed_password = ?, updated_at = ? WHERE id = ?`

	setDataQuery = `UPDATE users SET data = ?, updated_at = ? WHERE id = ?`
	getDataQuery = `SELECT data FROM users WHERE id = ?`
)

type queries struct {
	create, getByID, getByEmail, listAll, update, setData, getData string
}

func newQueries(d dbx.Dialect) queries {
	return queries{
		create:     dbx.Rebind(d, createQuery),
		getByID:    dbx.Rebind(d, getByIDQuery),
		getByEmail: dbx.Rebind(d, getByEmailQuery),
		listAll:    dbx.Rebind(d, listAllQuery),
		update:     dbx.Rebind(d, updateQuery),
		setData:    dbx.Rebind(d, setDataQuery),
		getData:    dbx.Rebind(d, getDataQuery),
	}
}

// SQLRepository implements Repository over database/sql for every
// supported dialect.
type SQLRepository struct {
	db  dbx.DBTX
	q   queries
	now func() time.Time
}

func NewRepository(db dbx.DBTX, d dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, q: newQueries(d), now: time.Now}
}

func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return NewRepository(db, dbx.Postgres)
}

func NewSQLiteRepository(db dbx.DBTX) *SQLRepository {
	return NewRepository(db, dbx.SQLite)
}

func (r *SQLRepository) Create(ctx context.Context, user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.now().UTC()
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = user.CreatedAt
	}

	_, err := r.db.ExecContext(ctx, r.q.create,
		user.ID, user.Email, user.HashedPassword, user.Token,
		timex.Millis(user.CreatedAt), timex.Millis(user.UpdatedAt))
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorEmailTaken
		}
		return dbx.Unavailable(err)
	}
	return nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, r.q.getByID, id)
}

func (r *SQLRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, r.q.getByEmail, email)
}

func (r *SQLRepository) getOne(ctx context.Context, query string, arg string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, dbx.Unavailable(err)
	}
	return user, nil
}

func (r *SQLRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = r.now().UTC()

	res, err := r.db.ExecContext(ctx, r.q.update,
		user.Email, user.HashedPassword, timex.Millis(user.UpdatedAt), user.ID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorEmailTaken
		}
		return dbx.Unavailable(err)
	}
	return expectOneRow(res)
}

func (r *SQLRepository) ListAll(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx, r.q.listAll)
	if err != nil {
		return nil, dbx.Unavailable(err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, dbx.Unavailable(err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.Unavailable(err)
	}
	return result, nil
}

func (r *SQLRepository) SetData(ctx context.Context, id string, data []byte) error {
	var arg any
	if data != nil {
		arg = data
	}

	res, err := r.db.ExecContext(ctx, r.q.setData, arg, timex.Millis(r.now()), id)
	if err != nil {
		return dbx.Unavailable(err)
	}
	return expectOneRow(res)
}

func (r *SQLRepository) GetData(ctx context.Context, id string) ([]byte, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, r.q.getData, id).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, dbx.Unavailable(err)
	}
	return data, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*models.User, error) {
	var (
		u                models.User
		created, updated int64
	)
	if err := s.Scan(&u.ID, &u.Email, &u.HashedPassword, &u.Token, &created, &updated); err != nil {
		return nil, err
	}
	u.CreatedAt = timex.FromMillis(created)
	u.UpdatedAt = timex.FromMillis(updated)
	return &u, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return dbx.Unavailable(fmt.Errorf("rows affected: %w", err))
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
