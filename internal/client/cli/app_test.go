package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pb "github.com/dmitrijs2005/notevault/internal/api"
	"github.com/dmitrijs2005/notevault/internal/client/client"
	"github.com/dmitrijs2005/notevault/internal/client/config"
	"github.com/dmitrijs2005/notevault/internal/cryptox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVault struct {
	email, password string
	calls           []string
	err             error

	profile *pb.ProfileResponse
	users   []pb.UserSummary
	data    []byte

	gotData        []byte
	gotOwner       string
	gotFrom, gotTo string
	gotOld, gotNew string
	gotEmail       string
	signupEmail    string
	signupPassword string
}

func (f *fakeVault) SetCredentials(email, password string) { f.email, f.password = email, password }

func (f *fakeVault) call(name string) error {
	f.calls = append(f.calls, name)
	return f.err
}

func (f *fakeVault) Ping(context.Context) error { return f.call("ping") }

func (f *fakeVault) Config(context.Context) (*pb.ConfigResponse, error) {
	return &pb.ConfigResponse{TrustchainID: "tc", PayloadStore: "s3", TokenAlgorithm: "EdDSA"}, f.call("config")
}

func (f *fakeVault) Signup(_ context.Context, email, password string) (*pb.CredentialsResponse, error) {
	f.signupEmail, f.signupPassword = email, password
	return &pb.CredentialsResponse{ID: "u1", Token: "tok"}, f.call("signup")
}

func (f *fakeVault) Login(context.Context) (*pb.CredentialsResponse, error) {
	return &pb.CredentialsResponse{ID: "u1", Token: "tok"}, f.call("login")
}

func (f *fakeVault) Me(context.Context) (*pb.ProfileResponse, error) {
	return f.profile, f.call("me")
}

func (f *fakeVault) ChangePassword(_ context.Context, oldPassword, newPassword string) error {
	f.gotOld, f.gotNew = oldPassword, newPassword
	return f.call("passwd")
}

func (f *fakeVault) ChangeEmail(_ context.Context, newEmail string) error {
	f.gotEmail = newEmail
	return f.call("email")
}

func (f *fakeVault) PutData(_ context.Context, data []byte) error {
	f.gotData = data
	return f.call("put")
}

func (f *fakeVault) ClearData(context.Context) error { return f.call("clear") }

func (f *fakeVault) GetData(_ context.Context, userID string) ([]byte, error) {
	f.gotOwner = userID
	return f.data, f.call("get")
}

func (f *fakeVault) ListUsers(context.Context) ([]pb.UserSummary, error) {
	return f.users, f.call("users")
}

func (f *fakeVault) Share(_ context.Context, fromID, toID string) error {
	f.gotFrom, f.gotTo = fromID, toID
	return f.call("share")
}

func (f *fakeVault) Close() error { return nil }

// stubPrompts answers password prompts from passwords in order and fails the
// test when an email prompt is unexpected.
func stubPrompts(t *testing.T, email string, passwords ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	t.Cleanup(func() { getSimpleText, getPassword = origST, origGP })

	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if email == "" {
			t.Fatal("unexpected email prompt")
		}
		return email, nil
	}
	getPassword = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(passwords) == 0 {
			t.Fatal("unexpected password prompt")
		}
		pw := passwords[0]
		passwords = passwords[1:]
		return pw, nil
	}
}

func newTestApp(f *fakeVault, cfg *config.Config, stdin string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	if cfg == nil {
		cfg = &config.Config{Email: "a@x.io", Password: "pw"}
	}
	return newApp(cfg, f, strings.NewReader(stdin), &out), &out
}

func TestRun_Help(t *testing.T) {
	a, out := newTestApp(&fakeVault{}, nil, "")

	require.NoError(t, a.Run(context.Background(), nil))
	assert.Contains(t, out.String(), "share")
	assert.Contains(t, out.String(), "passwd")
}

func TestRun_UnknownCommand(t *testing.T) {
	a, _ := newTestApp(&fakeVault{}, nil, "")

	err := a.Run(context.Background(), []string{"frobnicate"})
	require.ErrorIs(t, err, ErrUsage)
}

func TestRun_PublicCommandsSkipCredentials(t *testing.T) {
	f := &fakeVault{}
	a, out := newTestApp(f, &config.Config{}, "")
	stubPrompts(t, "")

	require.NoError(t, a.Run(context.Background(), []string{"config"}))
	assert.Contains(t, out.String(), "EdDSA")
	require.NoError(t, a.Run(context.Background(), []string{"ping"}))
	assert.Empty(t, f.email)
}

func TestRun_PromptsForCredentials(t *testing.T) {
	f := &fakeVault{}
	a, out := newTestApp(f, &config.Config{}, "")
	stubPrompts(t, "a@x.io", "pw")

	require.NoError(t, a.Run(context.Background(), []string{"login"}))
	assert.Equal(t, "a@x.io", f.email)
	assert.Equal(t, "pw", f.password)
	assert.Contains(t, out.String(), "token: tok")
}

func TestRun_ConfiguredCredentialsNoPrompt(t *testing.T) {
	f := &fakeVault{}
	a, _ := newTestApp(f, nil, "")
	stubPrompts(t, "")

	require.NoError(t, a.Run(context.Background(), []string{"clear"}))
	assert.Equal(t, "a@x.io", f.email)
	assert.Equal(t, []string{"clear"}, f.calls)
}

func TestSignup(t *testing.T) {
	f := &fakeVault{}
	a, out := newTestApp(f, &config.Config{}, "")
	stubPrompts(t, "new@x.io", "s3cret", "s3cret")

	require.NoError(t, a.Run(context.Background(), []string{"signup"}))
	assert.Equal(t, "new@x.io", f.signupEmail)
	assert.Equal(t, "s3cret", f.signupPassword)
	assert.Contains(t, out.String(), "id:    u1")
}

func TestSignup_PasswordMismatch(t *testing.T) {
	f := &fakeVault{}
	a, _ := newTestApp(f, &config.Config{}, "")
	stubPrompts(t, "new@x.io", "one", "two")

	require.Error(t, a.Run(context.Background(), []string{"signup"}))
	assert.Empty(t, f.calls)
}

func TestPut_FromFileAndStdin(t *testing.T) {
	f := &fakeVault{}
	path := filepath.Join(t.TempDir(), "note.bin")
	require.NoError(t, os.WriteFile(path, []byte("from file"), 0o600))

	a, out := newTestApp(f, nil, "from stdin")
	require.NoError(t, a.Run(context.Background(), []string{"put", path}))
	assert.Equal(t, []byte("from file"), f.gotData)
	assert.Contains(t, out.String(), "stored 9 bytes")

	require.NoError(t, a.Run(context.Background(), []string{"put", "-"}))
	assert.Equal(t, []byte("from stdin"), f.gotData)

	require.ErrorIs(t, a.Run(context.Background(), []string{"put", "a", "b"}), ErrUsage)
}

func TestGet(t *testing.T) {
	f := &fakeVault{
		profile: &pb.ProfileResponse{ID: "u1", Email: "a@x.io"},
		users:   []pb.UserSummary{{ID: "u1", Email: "a@x.io"}, {ID: "u2", Email: "b@x.io"}},
		data:    []byte("payload"),
	}
	a, out := newTestApp(f, nil, "")

	require.NoError(t, a.Run(context.Background(), []string{"get"}))
	assert.Equal(t, "u1", f.gotOwner)
	assert.Equal(t, "payload", out.String())

	require.NoError(t, a.Run(context.Background(), []string{"get", "b@x.io"}))
	assert.Equal(t, "u2", f.gotOwner)

	require.NoError(t, a.Run(context.Background(), []string{"get", "u9"}))
	assert.Equal(t, "u9", f.gotOwner)

	require.Error(t, a.Run(context.Background(), []string{"get", "ghost@x.io"}))
}

func TestShare(t *testing.T) {
	f := &fakeVault{
		profile: &pb.ProfileResponse{ID: "u1", Email: "a@x.io"},
		users:   []pb.UserSummary{{ID: "u2", Email: "b@x.io"}},
	}
	a, _ := newTestApp(f, nil, "")

	require.NoError(t, a.Run(context.Background(), []string{"share", "b@x.io"}))
	assert.Equal(t, "u1", f.gotFrom)
	assert.Equal(t, "u2", f.gotTo)

	require.ErrorIs(t, a.Run(context.Background(), []string{"share"}), ErrUsage)
}

func TestShare_ServerError(t *testing.T) {
	f := &fakeVault{profile: &pb.ProfileResponse{ID: "u1"}}
	a, _ := newTestApp(f, nil, "")
	f.err = client.ErrForbidden

	require.ErrorIs(t, a.Run(context.Background(), []string{"share", "u2"}), client.ErrForbidden)
}

func TestMe(t *testing.T) {
	f := &fakeVault{profile: &pb.ProfileResponse{
		ID:          "u1",
		Email:       "a@x.io",
		Data:        []byte("abc"),
		GrantedTo:   []pb.UserSummary{{ID: "u2", Email: "b@x.io"}},
		GrantedFrom: []pb.UserSummary{{ID: "u3", Email: "c@x.io"}},
	}}
	a, out := newTestApp(f, nil, "")

	require.NoError(t, a.Run(context.Background(), []string{"me"}))
	s := out.String()
	assert.Contains(t, s, "data:  3 bytes")
	assert.Contains(t, s, "u2  b@x.io")
	assert.Contains(t, s, "u3  c@x.io")
}

func TestUsers(t *testing.T) {
	f := &fakeVault{users: []pb.UserSummary{{ID: "u1", Email: "a@x.io"}, {ID: "u2", Email: "b@x.io"}}}
	a, out := newTestApp(f, nil, "")

	require.NoError(t, a.Run(context.Background(), []string{"users"}))
	assert.Equal(t, "u1  a@x.io\nu2  b@x.io\n", out.String())
}

func TestPasswd(t *testing.T) {
	f := &fakeVault{}
	a, _ := newTestApp(f, nil, "")
	stubPrompts(t, "", "next", "next")

	require.NoError(t, a.Run(context.Background(), []string{"passwd"}))
	assert.Equal(t, "pw", f.gotOld)
	assert.Equal(t, "next", f.gotNew)
}

func TestChangeEmail(t *testing.T) {
	f := &fakeVault{}
	a, _ := newTestApp(f, nil, "")

	require.NoError(t, a.Run(context.Background(), []string{"email", "z@x.io"}))
	assert.Equal(t, "z@x.io", f.gotEmail)

	require.ErrorIs(t, a.Run(context.Background(), []string{"email"}), ErrUsage)
}

func TestPutGet_WithPassphrase(t *testing.T) {
	f := &fakeVault{profile: &pb.ProfileResponse{ID: "u1"}}
	cfg := &config.Config{Email: "a@x.io", Password: "pw", Passphrase: "horse battery"}
	a, out := newTestApp(f, cfg, "top secret")

	require.NoError(t, a.Run(context.Background(), []string{"put"}))
	require.True(t, cryptox.IsSealed(f.gotData))
	assert.NotContains(t, string(f.gotData), "top secret")

	out.Reset()
	f.data = f.gotData
	require.NoError(t, a.Run(context.Background(), []string{"get"}))
	assert.Equal(t, "top secret", out.String())
}

func TestGet_PassphraseLeavesPlainData(t *testing.T) {
	f := &fakeVault{profile: &pb.ProfileResponse{ID: "u1"}, data: []byte("plain")}
	cfg := &config.Config{Email: "a@x.io", Password: "pw", Passphrase: "horse battery"}
	a, out := newTestApp(f, cfg, "")

	require.NoError(t, a.Run(context.Background(), []string{"get"}))
	assert.Equal(t, "plain", out.String())
}
