package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	pb "github.com/dmitrijs2005/notevault/internal/api"
	"github.com/dmitrijs2005/notevault/internal/client/client"
	"github.com/dmitrijs2005/notevault/internal/client/config"
)

// Vault is the server API the commands drive.
type Vault interface {
	SetCredentials(email, password string)
	Ping(ctx context.Context) error
	Config(ctx context.Context) (*pb.ConfigResponse, error)
	Signup(ctx context.Context, email, password string) (*pb.CredentialsResponse, error)
	Login(ctx context.Context) (*pb.CredentialsResponse, error)
	Me(ctx context.Context) (*pb.ProfileResponse, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	ChangeEmail(ctx context.Context, newEmail string) error
	PutData(ctx context.Context, data []byte) error
	ClearData(ctx context.Context) error
	GetData(ctx context.Context, userID string) ([]byte, error)
	ListUsers(ctx context.Context) ([]pb.UserSummary, error)
	Share(ctx context.Context, fromID, toID string) error
	Close() error
}

var ErrUsage = errors.New("usage")

type command struct {
	usage string
	auth  bool
	run   func(a *App, ctx context.Context, args []string) error
}

type App struct {
	config *config.Config
	vault  Vault
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	vault, err := client.NewVaultClient(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}
	return newApp(c, vault, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, v Vault, in io.Reader, out io.Writer) *App {
	return &App{config: c, vault: v, reader: bufio.NewReader(in), out: out}
}

func (a *App) Close() error {
	return a.vault.Close()
}

// Run executes the subcommand named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" {
		a.help()
		return nil
	}

	cmd, ok := commands[args[0]]
	if !ok {
		a.help()
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}

	if a.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.Timeout)
		defer cancel()
	}

	if cmd.auth {
		if err := a.authenticate(); err != nil {
			return err
		}
	}

	err := cmd.run(a, ctx, args[1:])
	if errors.Is(err, ErrUsage) {
		fmt.Fprintf(a.out, "usage: notevault %s %s\n", args[0], cmd.usage)
	}
	return err
}

// authenticate fills in missing email and password, prompting if needed.
func (a *App) authenticate() error {
	email, err := a.email()
	if err != nil {
		return err
	}

	password := a.config.Password
	if password == "" {
		password, err = getPassword(a.reader, "Password", a.out)
		if err != nil {
			return err
		}
	}

	a.config.Email, a.config.Password = email, password
	a.vault.SetCredentials(email, password)
	return nil
}

func (a *App) email() (string, error) {
	if a.config.Email != "" {
		return a.config.Email, nil
	}
	return getSimpleText(a.reader, "Email", a.out)
}

func (a *App) help() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.out, "usage: notevault [-a addr] [-u email] [-t timeout] <command> [args]")
	fmt.Fprintln(a.out, "commands:")
	for _, name := range names {
		fmt.Fprintf(a.out, "  %-7s %s\n", name, commands[name].usage)
	}
}

// seams for prompts
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)
