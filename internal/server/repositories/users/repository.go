// Package users stores user records. The email column carries a unique
// constraint on the same row, so a record and its email index entry are
// always written by a single statement.
package users

import (
	"context"

	"github.com/dmitrijs2005/notevault/internal/server/models"
)

// Repository is durable keyed storage of users. Returned records never carry
// grants; those live in the grants repository.
type Repository interface {
	// Create inserts a new record. A taken email yields common.ErrorEmailTaken.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Update rewrites email and hashed password of an existing record.
	// The id and token are never written.
	Update(ctx context.Context, user *models.User) error
	ListAll(ctx context.Context) ([]*models.User, error)
	// SetData replaces the payload column; nil clears it.
	SetData(ctx context.Context, id string, data []byte) error
	GetData(ctx context.Context, id string) ([]byte, error)
}
