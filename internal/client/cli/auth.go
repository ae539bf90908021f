package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fitlog/internal/client/api"
	"github.com/dmitrijs2005/fitlog/internal/client/models"
	"github.com/dmitrijs2005/fitlog/internal/client/tokenstore"
	"github.com/dmitrijs2005/fitlog/internal/common"
)

// Signup prompts for name, email and password and creates an account.
// On success the shell loads every collection and the landing view is shown.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	_, err = a.authService.Signup(ctx, models.SignupData{Name: name, Email: email, Password: string(password)})
	if err != nil {
		return explainAuth(err)
	}
	return a.signedIn(ctx)
}

// Login prompts for credentials and authenticates.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	_, err = a.authService.Login(ctx, models.Credentials{Email: email, Password: string(password)})
	if err != nil {
		return explainAuth(err)
	}
	return a.signedIn(ctx)
}

func (a *App) signedIn(ctx context.Context) error {
	if err := a.shell.SignedIn(ctx); err != nil {
		a.report(err)
	}
	printlnFn("Success!")
	return a.render(ctx)
}

// ChangePassword asks for the current and the new password. The server
// answers with a fresh token which replaces the stored one.
func (a *App) ChangePassword(ctx context.Context) error {
	fmt.Fprintln(a.out, "Current password")
	current, err := getPassword(a.out)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "New password")
	next, err := getPassword(a.out)
	if err != nil {
		return err
	}

	_, err = a.authService.ChangePassword(ctx, models.PasswordChange{Password: string(current), NewPassword: string(next)})
	if err != nil {
		return explainAuth(err)
	}
	printlnFn("Password changed")
	return nil
}

// Logout forgets the stored token and returns to the landing view.
func (a *App) Logout(ctx context.Context) error {
	if err := a.shell.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Logged out")
	return a.render(ctx)
}

// Whoami reports the session, telling an expired token apart from none.
func (a *App) Whoami(ctx context.Context) error {
	d, err := a.authService.Session(ctx)
	if err != nil {
		return err
	}
	switch d.Status {
	case tokenstore.StatusValid:
		fmt.Fprintf(a.out, "%s <%s> profile %s\n", d.Identity.Name, d.Identity.Email, d.Identity.Profile)
	case tokenstore.StatusExpired:
		fmt.Fprintln(a.out, "session expired, please log in again")
	case tokenstore.StatusMalformed:
		fmt.Fprintln(a.out, "stored token is unreadable, please log in again")
	default:
		fmt.Fprintln(a.out, "not signed in")
	}
	return nil
}

func explainAuth(err error) error {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		return fmt.Errorf("rejected: %w", err)
	case api.IsTemporary(err):
		return fmt.Errorf("server unavailable, try again later: %w", err)
	case tokenstore.IsDecodeError(err):
		return fmt.Errorf("server sent an unusable token: %w", err)
	default:
		return err
	}
}
