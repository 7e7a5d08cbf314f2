package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/notevault/internal/cryptox"
)

var commands = map[string]command{
	"ping":   {usage: "", run: (*App).ping},
	"config": {usage: "", run: (*App).showConfig},
	"signup": {usage: "", run: (*App).signup},
	"login":  {usage: "", auth: true, run: (*App).login},
	"me":     {usage: "", auth: true, run: (*App).me},
	"put":    {usage: "[file|-]", auth: true, run: (*App).put},
	"get":    {usage: "[user-id|email]", auth: true, run: (*App).get},
	"clear":  {usage: "", auth: true, run: (*App).clear},
	"users":  {usage: "", auth: true, run: (*App).users},
	"share":  {usage: "<user-id|email>", auth: true, run: (*App).share},
	"passwd": {usage: "", auth: true, run: (*App).passwd},
	"email":  {usage: "<new-email>", auth: true, run: (*App).changeEmail},
}

func (a *App) ping(ctx context.Context, _ []string) error {
	if err := a.vault.Ping(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "ok")
	return nil
}

func (a *App) showConfig(ctx context.Context, _ []string) error {
	c, err := a.vault.Config(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "trustchain: %s\npayloads:   %s\ntokens:     %s\n",
		c.TrustchainID, c.PayloadStore, c.TokenAlgorithm)
	return nil
}

func (a *App) signup(ctx context.Context, _ []string) error {
	email, err := a.email()
	if err != nil {
		return err
	}
	password := a.config.Password
	if password == "" {
		if password, err = a.newPassword(); err != nil {
			return err
		}
	}

	creds, err := a.vault.Signup(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "id:    %s\ntoken: %s\n", creds.ID, creds.Token)
	return nil
}

func (a *App) login(ctx context.Context, _ []string) error {
	creds, err := a.vault.Login(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "id:    %s\ntoken: %s\n", creds.ID, creds.Token)
	return nil
}

func (a *App) me(ctx context.Context, _ []string) error {
	p, err := a.vault.Me(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "id:    %s\nemail: %s\n", p.ID, p.Email)
	if len(p.Data) > 0 {
		fmt.Fprintf(a.out, "data:  %d bytes\n", len(p.Data))
	} else {
		fmt.Fprintln(a.out, "data:  none")
	}
	fmt.Fprintln(a.out, "shared with:")
	for _, u := range p.GrantedTo {
		fmt.Fprintf(a.out, "  %s  %s\n", u.ID, u.Email)
	}
	fmt.Fprintln(a.out, "shared by:")
	for _, u := range p.GrantedFrom {
		fmt.Fprintf(a.out, "  %s  %s\n", u.ID, u.Email)
	}
	return nil
}

func (a *App) put(ctx context.Context, args []string) error {
	var (
		data []byte
		err  error
	)
	switch {
	case len(args) == 0 || args[0] == "-":
		data, err = io.ReadAll(a.reader)
	case len(args) == 1:
		data, err = os.ReadFile(args[0])
	default:
		return ErrUsage
	}
	if err != nil {
		return err
	}

	if a.config.Passphrase != "" {
		if data, err = cryptox.Seal([]byte(a.config.Passphrase), data); err != nil {
			return err
		}
	}

	if err := a.vault.PutData(ctx, data); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "stored %d bytes\n", len(data))
	return nil
}

func (a *App) get(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return ErrUsage
	}

	var target string
	if len(args) == 1 {
		target = args[0]
	}
	ownerID, err := a.resolveUser(ctx, target)
	if err != nil {
		return err
	}

	data, err := a.vault.GetData(ctx, ownerID)
	if err != nil {
		return err
	}
	if a.config.Passphrase != "" && cryptox.IsSealed(data) {
		if data, err = cryptox.Open([]byte(a.config.Passphrase), data); err != nil {
			return err
		}
	}
	_, err = a.out.Write(data)
	return err
}

func (a *App) clear(ctx context.Context, _ []string) error {
	if err := a.vault.ClearData(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "cleared")
	return nil
}

func (a *App) users(ctx context.Context, _ []string) error {
	users, err := a.vault.ListUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		fmt.Fprintf(a.out, "%s  %s\n", u.ID, u.Email)
	}
	return nil
}

func (a *App) share(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}

	me, err := a.vault.Me(ctx)
	if err != nil {
		return err
	}
	toID, err := a.resolveUser(ctx, args[0])
	if err != nil {
		return err
	}

	if err := a.vault.Share(ctx, me.ID, toID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "shared with %s\n", args[0])
	return nil
}

func (a *App) passwd(ctx context.Context, _ []string) error {
	newPassword, err := a.newPassword()
	if err != nil {
		return err
	}
	if err := a.vault.ChangePassword(ctx, a.config.Password, newPassword); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "password changed")
	return nil
}

func (a *App) changeEmail(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if err := a.vault.ChangeEmail(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "email changed to %s\n", args[0])
	return nil
}

// resolveUser turns an id or email into a user id. An empty target is the
// caller's own account.
func (a *App) resolveUser(ctx context.Context, target string) (string, error) {
	if target == "" {
		me, err := a.vault.Me(ctx)
		if err != nil {
			return "", err
		}
		return me.ID, nil
	}
	if !strings.Contains(target, "@") {
		return target, nil
	}

	users, err := a.vault.ListUsers(ctx)
	if err != nil {
		return "", err
	}
	for _, u := range users {
		if u.Email == target {
			return u.ID, nil
		}
	}
	return "", fmt.Errorf("no user with email %s", target)
}

// newPassword prompts twice and requires both entries to match.
func (a *App) newPassword() (string, error) {
	first, err := getPassword(a.reader, "New password", a.out)
	if err != nil {
		return "", err
	}
	second, err := getPassword(a.reader, "Repeat password", a.out)
	if err != nil {
		return "", err
	}
	if first != second {
		return "", fmt.Errorf("passwords do not match")
	}
	return first, nil
}
