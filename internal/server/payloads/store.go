// Package payloads keeps the opaque per-user payload bytes. The default
// backend is the users table itself; an S3-compatible bucket can be used
// instead.
package payloads

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/notevault/internal/server/repositories/users"
)

// Store holds at most one payload per user. Get returns (nil, nil) when the
// user has no payload.
type Store interface {
	Put(ctx context.Context, userID string, data []byte) error
	Get(ctx context.Context, userID string) ([]byte, error)
	Delete(ctx context.Context, userID string) error
	Name() string
}

const (
	BackendDB = "db"
	BackendS3 = "s3"
)

// DBStore keeps payloads in the users.data column.
type DBStore struct {
	users users.Repository
}

func NewDBStore(r users.Repository) *DBStore {
	return &DBStore{users: r}
}

func (s *DBStore) Name() string { return BackendDB }

func (s *DBStore) Put(ctx context.Context, userID string, data []byte) error {
	if err := s.users.SetData(ctx, userID, data); err != nil {
		return fmt.Errorf("put payload: %w", err)
	}
	return nil
}

func (s *DBStore) Get(ctx context.Context, userID string) ([]byte, error) {
	data, err := s.users.GetData(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get payload: %w", err)
	}
	return data, nil
}

func (s *DBStore) Delete(ctx context.Context, userID string) error {
	if err := s.users.SetData(ctx, userID, nil); err != nil {
		return fmt.Errorf("delete payload: %w", err)
	}
	return nil
}
