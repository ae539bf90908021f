// Package services contains application services for the fitlog client.
// This file defines the session accessor: login, signup, password change,
// logout and the canonical "who is signed in" check.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/fitlog/internal/client/api"
	"github.com/dmitrijs2005/fitlog/internal/client/models"
	"github.com/dmitrijs2005/fitlog/internal/client/tokenstore"
	"github.com/dmitrijs2005/fitlog/internal/common"
	"github.com/dmitrijs2005/fitlog/internal/logging"
)

// AuthService is the sole entry point other components use to learn who is
// signed in.
//
// Contract:
//   - Login / Signup / ChangePassword: obtain a token from the server, persist
//     it, return the identity it carries. Nothing is persisted on failure.
//   - Logout: erase the token locally; the server is not contacted.
//   - GetUser: identity or nil. Never fails.
//   - Session: the tagged decode result, for callers that care why there is
//     no identity.
//
// Failures from the server are either common.ErrInvalidCredentials (the
// server rejected what was sent) or api.ErrUnavailable (retry later).
type AuthService interface {
	Login(ctx context.Context, creds models.Credentials) (*models.Identity, error)
	Signup(ctx context.Context, data models.SignupData) (*models.Identity, error)
	ChangePassword(ctx context.Context, change models.PasswordChange) (*models.Identity, error)
	Logout(ctx context.Context) error
	GetUser(ctx context.Context) *models.Identity
	Session(ctx context.Context) (tokenstore.Decoded, error)
}

// AuthAPI is the server side of authentication.
type AuthAPI interface {
	Login(ctx context.Context, creds models.Credentials) (string, error)
	Signup(ctx context.Context, data models.SignupData) (string, error)
	ChangePassword(ctx context.Context, data models.PasswordChange) (string, error)
}

// TokenStore is the durable token slot.
type TokenStore interface {
	Save(ctx context.Context, token string) error
	Remove(ctx context.Context) error
	GetUser(ctx context.Context) *models.Identity
	Decode(ctx context.Context) (tokenstore.Decoded, error)
	DecodeToken(token string) tokenstore.Decoded
}

type authService struct {
	api   AuthAPI
	store TokenStore
	log   logging.Logger
}

func NewAuthService(api AuthAPI, store TokenStore, log logging.Logger) AuthService {
	return &authService{api: api, store: store, log: log}
}

func (a *authService) Login(ctx context.Context, creds models.Credentials) (*models.Identity, error) {
	token, err := a.api.Login(ctx, creds)
	if err != nil {
		return nil, authError("login", err)
	}
	return a.persist(ctx, "login", token)
}

func (a *authService) Signup(ctx context.Context, data models.SignupData) (*models.Identity, error) {
	token, err := a.api.Signup(ctx, data)
	if err != nil {
		return nil, authError("signup", err)
	}
	return a.persist(ctx, "signup", token)
}

func (a *authService) ChangePassword(ctx context.Context, change models.PasswordChange) (*models.Identity, error) {
	token, err := a.api.ChangePassword(ctx, change)
	if err != nil {
		return nil, authError("change password", err)
	}
	return a.persist(ctx, "change password", token)
}

// persist saves token only if it carries a usable identity.
func (a *authService) persist(ctx context.Context, op, token string) (*models.Identity, error) {
	d := a.store.DecodeToken(token)
	if !d.Present() {
		a.log.Warn(ctx, "server issued unusable token", "op", op, "status", d.Status.String())
		return nil, fmt.Errorf("%s error: %w", op, common.ErrInvalidToken)
	}

	if err := a.store.Save(ctx, token); err != nil {
		return nil, fmt.Errorf("%s error: token saving error: %w", op, err)
	}

	a.log.Info(ctx, "signed in", "op", op, "user", d.Identity.Email)
	return d.Identity, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.store.Remove(ctx); err != nil {
		return fmt.Errorf("logout error: %w", err)
	}
	return nil
}

func (a *authService) GetUser(ctx context.Context) *models.Identity {
	return a.store.GetUser(ctx)
}

func (a *authService) Session(ctx context.Context) (tokenstore.Decoded, error) {
	return a.store.Decode(ctx)
}

// authError keeps "the server said no" apart from "the server is not there".
func authError(op string, err error) error {
	switch api.KindOf(err) {
	case api.KindUnauthenticated, api.KindForbidden, api.KindInvalid:
		return fmt.Errorf("%s error: %w: %w", op, common.ErrInvalidCredentials, err)
	default:
		return fmt.Errorf("%s error: %w", op, err)
	}
}
