package grpc

import (
	"context"

	"github.com/dmitrijs2005/notevault/internal/server/models"
)

// fakeDirectory answers every call with the configured values and records
// the user the interceptor resolved.
type fakeDirectory struct {
	user      *models.User
	verifyErr error
	err       error
	creds     *models.Credentials
	profile   *models.Profile
	data      []byte
	users     []models.UserSummary
	config    models.ClientConfig

	gotEmail, gotPassword string
	gotActor              *models.User
	gotArgs               []string
}

func (f *fakeDirectory) Signup(_ context.Context, email, password string) (*models.Credentials, error) {
	f.gotEmail, f.gotPassword = email, password
	return f.creds, f.err
}

func (f *fakeDirectory) VerifyCredentials(_ context.Context, email, password string) (*models.User, error) {
	f.gotEmail, f.gotPassword = email, password
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.user, nil
}

func (f *fakeDirectory) Login(_ context.Context, email, password string) (*models.Credentials, error) {
	f.gotEmail, f.gotPassword = email, password
	return f.creds, f.err
}

func (f *fakeDirectory) ChangePassword(_ context.Context, user *models.User, oldPassword, newPassword string) error {
	f.gotActor, f.gotArgs = user, []string{oldPassword, newPassword}
	return f.err
}

func (f *fakeDirectory) ChangeEmail(_ context.Context, user *models.User, newEmail string) error {
	f.gotActor, f.gotArgs = user, []string{newEmail}
	return f.err
}

func (f *fakeDirectory) ReplacePayload(_ context.Context, user *models.User, data []byte) error {
	f.gotActor, f.data = user, data
	return f.err
}

func (f *fakeDirectory) ClearPayload(_ context.Context, user *models.User) error {
	f.gotActor = user
	return f.err
}

func (f *fakeDirectory) GetPayload(_ context.Context, actor *models.User, ownerID string) ([]byte, error) {
	f.gotActor, f.gotArgs = actor, []string{ownerID}
	return f.data, f.err
}

func (f *fakeDirectory) GrantAccess(_ context.Context, actor *models.User, fromID, toID string) error {
	f.gotActor, f.gotArgs = actor, []string{fromID, toID}
	return f.err
}

func (f *fakeDirectory) GetProfile(_ context.Context, user *models.User) (*models.Profile, error) {
	f.gotActor = user
	return f.profile, f.err
}

func (f *fakeDirectory) ListAll(context.Context) ([]models.UserSummary, error) {
	return f.users, f.err
}

func (f *fakeDirectory) ClientConfig() models.ClientConfig { return f.config }
