// Package common contains shared constants and sentinel errors used across
// fitlog components.
package common

const (
	// TokenMetadataKey is the single durable slot holding the raw bearer token.
	TokenMetadataKey = "token"

	// TokenSavedAtMetadataKey records when the token slot was last written.
	TokenSavedAtMetadataKey = "token_saved_at"

	// AuthorizationHeaderName carries the bearer credential on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName correlates client log lines with server logs.
	RequestIDHeaderName = "X-Request-ID"

	// BearerPrefix precedes the token in the Authorization header.
	BearerPrefix = "Bearer "
)
