// Package models holds the client-side shapes of server records and of the
// identity decoded from the bearer token. The server owns every identifier;
// the client never fills ID fields itself.
package models
