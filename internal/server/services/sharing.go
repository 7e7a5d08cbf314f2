// Package services contains the server-side business logic: the user
// directory facade and the sharing graph it composes.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/notevault/internal/common"
	"github.com/dmitrijs2005/notevault/internal/dbx"
	"github.com/dmitrijs2005/notevault/internal/server/models"
	"github.com/dmitrijs2005/notevault/internal/server/repositories/repomanager"
)

// SharingGraph maintains the "grants access to" relation. Each grant is one
// stored edge, so a.GrantedTo and b.GrantedFrom cannot disagree.
type SharingGraph struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewSharingGraph(db *sql.DB, m repomanager.RepositoryManager) *SharingGraph {
	return &SharingGraph{db: db, repomanager: m, now: time.Now}
}

// Grant lets toID read fromID's payload. Granting twice is a no-op.
func (g *SharingGraph) Grant(ctx context.Context, fromID, toID string) error {
	if fromID == toID {
		return common.ErrorSelfGrant
	}

	err := dbx.WithTx(ctx, g.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		users := g.repomanager.Users(tx)
		if _, err := users.GetByID(ctx, fromID); err != nil {
			return fmt.Errorf("grantor %s: %w", fromID, err)
		}
		if _, err := users.GetByID(ctx, toID); err != nil {
			return fmt.Errorf("grantee %s: %w", toID, err)
		}
		return g.repomanager.Grants(tx).Insert(ctx, fromID, toID, g.now().UTC())
	})
	if err != nil {
		if isDomainError(err) {
			return err
		}
		return dbx.Unavailable(err)
	}
	return nil
}

// Load fills user's GrantedTo and GrantedFrom from storage.
func (g *SharingGraph) Load(ctx context.Context, user *models.User) error {
	repo := g.repomanager.Grants(g.db)

	to, err := repo.ListGrantedTo(ctx, user.ID)
	if err != nil {
		return err
	}
	from, err := repo.ListGrantedFrom(ctx, user.ID)
	if err != nil {
		return err
	}
	user.GrantedTo, user.GrantedFrom = to, from
	return nil
}

func (g *SharingGraph) ResolveGrantedTo(ctx context.Context, user *models.User) ([]models.UserSummary, error) {
	return g.resolve(ctx, user.GrantedTo)
}

func (g *SharingGraph) ResolveGrantedFrom(ctx context.Context, user *models.User) ([]models.UserSummary, error) {
	return g.resolve(ctx, user.GrantedFrom)
}

// resolve maps ids to summaries. Ids that no longer resolve are skipped.
func (g *SharingGraph) resolve(ctx context.Context, ids []string) ([]models.UserSummary, error) {
	repo := g.repomanager.Users(g.db)

	out := make([]models.UserSummary, 0, len(ids))
	for _, id := range ids {
		u, err := repo.GetByID(ctx, id)
		if errors.Is(err, common.ErrorNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, u.Summary())
	}
	return out, nil
}

// isDomainError reports whether err already carries one of the sentinel
// kinds callers match on.
func isDomainError(err error) bool {
	for _, target := range []error{
		common.ErrorNotFound,
		common.ErrorSelfGrant,
		common.ErrorStorageUnavailable,
		common.ErrorEmailTaken,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
