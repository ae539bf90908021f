package models

import "github.com/golang-jwt/jwt/v5"

// Identity is the signed-in user as embedded in the token payload.
type Identity struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Profile string `json:"profile"`
}

// Claims is the token payload: the identity under "user" plus the
// registered claims (exp, iat).
type Claims struct {
	User Identity `json:"user"`
	jwt.RegisteredClaims
}

// Credentials are posted to the login endpoint.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupData is posted to the signup endpoint.
type SignupData struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordChange is posted to the change-password endpoint.
type PasswordChange struct {
	Password    string `json:"password"`
	NewPassword string `json:"newPassword"`
}

// TokenResponse is the body returned by every auth endpoint.
type TokenResponse struct {
	Token string `json:"token"`
	Err   string `json:"err,omitempty"`
}
