package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/notevault/internal/common"
	"github.com/dmitrijs2005/notevault/internal/dbx"
	"github.com/dmitrijs2005/notevault/internal/logging"
	"github.com/dmitrijs2005/notevault/internal/server/auth"
	"github.com/dmitrijs2005/notevault/internal/server/models"
	"github.com/dmitrijs2005/notevault/internal/server/payloads"
	"github.com/dmitrijs2005/notevault/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// DirectoryService is the facade over user records, payloads and the
// sharing graph. It enforces every invariant before delegating to storage
// and holds no mutable state of its own, so it is safe for concurrent use.
type DirectoryService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	graph        *SharingGraph
	payloads     payloads.Store
	hasher       auth.PasswordHasher
	minter       auth.TokenMinter
	logger       logging.Logger
	clientConfig models.ClientConfig

	idGen func() string
	now   func() time.Time
}

type DirectoryDeps struct {
	DB           *sql.DB
	Repos        repomanager.RepositoryManager
	Payloads     payloads.Store
	Hasher       auth.PasswordHasher
	Minter       auth.TokenMinter
	Logger       logging.Logger
	ClientConfig models.ClientConfig
}

func NewDirectoryService(d DirectoryDeps) *DirectoryService {
	return &DirectoryService{
		db:           d.DB,
		repomanager:  d.Repos,
		graph:        NewSharingGraph(d.DB, d.Repos),
		payloads:     d.Payloads,
		hasher:       d.Hasher,
		minter:       d.Minter,
		logger:       d.Logger.With("module", "directory"),
		clientConfig: d.ClientConfig,
		idGen:        uuid.NewString,
		now:          time.Now,
	}
}

// Signup creates a user and returns its id with the token minted for it.
func (s *DirectoryService) Signup(ctx context.Context, email, password string) (*models.Credentials, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	digest, err := s.hash(ctx, password)
	if err != nil {
		return nil, err
	}

	id := s.idGen()
	token, err := s.minter.Mint(id)
	if err != nil {
		s.logger.Error(ctx, "token minting failed", "error", err)
		return nil, fmt.Errorf("%w: mint token", common.ErrorInternal)
	}

	now := s.now().UTC()
	user := &models.User{
		ID:             id,
		Email:          email,
		HashedPassword: digest,
		Token:          token,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repomanager.Users(s.db).Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrorEmailTaken) {
			s.logger.Info(ctx, "signup rejected, email taken", "email", email)
		}
		return nil, err
	}

	s.logger.Info(ctx, "user signed up", "user_id", id, "email", email)
	return &models.Credentials{ID: id, Token: token}, nil
}

// VerifyCredentials returns the full internal record, grants loaded, when
// password matches the stored digest. Email is trimmed as at signup.
func (s *DirectoryService) VerifyCredentials(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUserNotFound
		}
		return nil, err
	}

	if err := s.verify(ctx, user, password); err != nil {
		return nil, err
	}

	if err := s.graph.Load(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login re-issues the token stored at signup.
func (s *DirectoryService) Login(ctx context.Context, email, password string) (*models.Credentials, error) {
	user, err := s.VerifyCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return &models.Credentials{ID: user.ID, Token: user.Token}, nil
}

func (s *DirectoryService) ChangePassword(ctx context.Context, user *models.User, oldPassword, newPassword string) error {
	if err := s.verify(ctx, user, oldPassword); err != nil {
		return err
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	digest, err := s.hash(ctx, newPassword)
	if err != nil {
		return err
	}

	err = s.rewrite(ctx, user.ID, func(u *models.User) { u.HashedPassword = digest })
	if err != nil {
		return err
	}

	user.HashedPassword = digest
	s.logger.Info(ctx, "password changed", "user_id", user.ID)
	return nil
}

// ChangeEmail moves user to newEmail. Moving to the address the user already
// owns succeeds without writing.
func (s *DirectoryService) ChangeEmail(ctx context.Context, user *models.User, newEmail string) error {
	email, err := normalizeEmail(newEmail)
	if err != nil {
		return err
	}

	owner, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	switch {
	case err == nil && owner.ID == user.ID:
		return nil
	case err == nil:
		return common.ErrorEmailTaken
	case !errors.Is(err, common.ErrorNotFound):
		return err
	}

	// the unique constraint still decides if another signup races us here
	if err := s.rewrite(ctx, user.ID, func(u *models.User) { u.Email = email }); err != nil {
		return err
	}

	s.logger.Info(ctx, "email changed", "user_id", user.ID, "email", email)
	user.Email = email
	return nil
}

// rewrite re-reads the record inside a transaction, applies mutate and writes
// it back, so a concurrent change to the other mutable field is not undone
// from a stale copy.
func (s *DirectoryService) rewrite(ctx context.Context, id string, mutate func(*models.User)) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		current, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		mutate(current)
		return repo.Update(ctx, current)
	})
	if err != nil && !isDomainError(err) {
		return dbx.Unavailable(err)
	}
	return err
}

func (s *DirectoryService) ReplacePayload(ctx context.Context, user *models.User, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty payload, use clear instead", common.ErrorInvalidInput)
	}
	if err := s.payloads.Put(ctx, user.ID, data); err != nil {
		return err
	}
	s.logger.Debug(ctx, "payload replaced", "user_id", user.ID, "size", len(data))
	return nil
}

func (s *DirectoryService) ClearPayload(ctx context.Context, user *models.User) error {
	if err := s.payloads.Delete(ctx, user.ID); err != nil {
		return err
	}
	s.logger.Debug(ctx, "payload cleared", "user_id", user.ID)
	return nil
}

// GetPayload returns ownerID's payload to actor, who must be the owner or a
// grantee of the owner.
func (s *DirectoryService) GetPayload(ctx context.Context, actor *models.User, ownerID string) ([]byte, error) {
	owner, err := s.repomanager.Users(s.db).GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if owner.ID != actor.ID {
		if err := s.graph.Load(ctx, owner); err != nil {
			return nil, err
		}
		if !owner.HasGrantedTo(actor.ID) {
			return nil, common.ErrorForbidden
		}
	}

	data, err := s.payloads.Get(ctx, owner.ID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, common.ErrorNoPayload
	}
	return data, nil
}

// GrantAccess lets actor share their own payload with toID.
func (s *DirectoryService) GrantAccess(ctx context.Context, actor *models.User, fromID, toID string) error {
	if fromID != actor.ID {
		return common.ErrorForbidden
	}
	if err := s.graph.Grant(ctx, fromID, toID); err != nil {
		return err
	}
	if !actor.HasGrantedTo(toID) {
		actor.GrantedTo = append(actor.GrantedTo, toID)
	}
	s.logger.Info(ctx, "access granted", "from", fromID, "to", toID)
	return nil
}

// GetProfile builds the sanitized view of user with fresh grants and the
// current payload.
func (s *DirectoryService) GetProfile(ctx context.Context, user *models.User) (*models.Profile, error) {
	if err := s.graph.Load(ctx, user); err != nil {
		return nil, err
	}
	to, err := s.graph.ResolveGrantedTo(ctx, user)
	if err != nil {
		return nil, err
	}
	from, err := s.graph.ResolveGrantedFrom(ctx, user)
	if err != nil {
		return nil, err
	}
	data, err := s.payloads.Get(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &models.Profile{
		ID:          user.ID,
		Email:       user.Email,
		Data:        data,
		GrantedTo:   to,
		GrantedFrom: from,
	}, nil
}

func (s *DirectoryService) ListAll(ctx context.Context) ([]models.UserSummary, error) {
	all, err := s.repomanager.Users(s.db).ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.UserSummary, 0, len(all))
	for _, u := range all {
		out = append(out, u.Summary())
	}
	return out, nil
}

func (s *DirectoryService) ClientConfig() models.ClientConfig {
	return s.clientConfig
}

func (s *DirectoryService) hash(ctx context.Context, password string) (string, error) {
	digest, err := s.hasher.Hash(password)
	if err != nil {
		if !errors.Is(err, common.ErrorInvalidInput) {
			s.logger.Error(ctx, "password hashing failed", "error", err)
		}
		return "", err
	}
	return digest, nil
}

func (s *DirectoryService) verify(ctx context.Context, user *models.User, password string) error {
	ok, err := s.hasher.Verify(user.HashedPassword, password)
	if err != nil {
		s.logger.Error(ctx, "stored digest unusable", "user_id", user.ID, "error", err)
		if !errors.Is(err, common.ErrorHasher) {
			err = fmt.Errorf("%w: %v", common.ErrorHasher, err)
		}
		return err
	}
	if !ok {
		return common.ErrorBadCredential
	}
	return nil
}
