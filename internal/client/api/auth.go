package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/fitlog/internal/client/models"
)

// Auth talks to /api/auth. Login and signup go out without a bearer token.
type Auth struct {
	c *Client
}

func (a *Auth) Login(ctx context.Context, creds models.Credentials) (string, error) {
	var out models.TokenResponse
	if err := a.c.DoAnonymous(ctx, http.MethodPost, "/api/auth/login", creds, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (a *Auth) Signup(ctx context.Context, data models.SignupData) (string, error) {
	var out models.TokenResponse
	if err := a.c.DoAnonymous(ctx, http.MethodPost, "/api/auth/signup", data, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (a *Auth) ChangePassword(ctx context.Context, data models.PasswordChange) (string, error) {
	var out models.TokenResponse
	if err := a.c.Do(ctx, http.MethodPost, "/api/auth/change-password", data, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}
