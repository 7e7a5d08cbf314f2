// Package grants stores the "grants access to" relation between users.
// One row (from_id, to_id) records both directions of a grant.
package grants

import (
	"context"
	"time"
)

type Repository interface {
	// Insert records that fromID grants toID read access. Inserting an
	// existing edge is a no-op. A missing user yields common.ErrorNotFound.
	Insert(ctx context.Context, fromID, toID string, at time.Time) error
	// ListGrantedTo returns the ids fromID has granted access to.
	ListGrantedTo(ctx context.Context, fromID string) ([]string, error)
	// ListGrantedFrom returns the ids that granted toID access.
	ListGrantedFrom(ctx context.Context, toID string) ([]string, error)
}
