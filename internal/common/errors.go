// Package common defines shared constants and sentinel errors used across
// client layers of fitlog. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")

	// Credentials rejected by the auth endpoints.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Identifier missing on a record that must carry one.
	ErrMissingID = errors.New("missing identifier")
)
