// Package tokenstore keeps the bearer token in one durable slot and is the
// only place that decodes or erases it.
//
// The slot survives restarts (it lives in the local SQLite database). There
// is exactly one slot: no namespacing, no multiple accounts. Decoding reads
// the identity claims without verifying the signature; the server remains
// the authority on whether a token is acceptable.
package tokenstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fitlog/internal/client/models"
	"github.com/dmitrijs2005/fitlog/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/fitlog/internal/common"
	"github.com/dmitrijs2005/fitlog/internal/dbx"
	"github.com/dmitrijs2005/fitlog/internal/logging"
	"github.com/dmitrijs2005/fitlog/internal/timex"
	"github.com/golang-jwt/jwt/v5"
)

// Status tags the outcome of decoding the stored token.
type Status int

const (
	StatusAbsent Status = iota
	StatusValid
	StatusExpired
	StatusMalformed
)

func (s Status) String() string {
	switch s {
	case StatusAbsent:
		return "absent"
	case StatusValid:
		return "valid"
	case StatusExpired:
		return "expired"
	case StatusMalformed:
		return "malformed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Decoded is the tagged result of reading the slot. Identity is set only
// when Status is StatusValid; Err is set for expired and malformed tokens.
type Decoded struct {
	Status   Status
	Identity *models.Identity
	Err      error
}

// Present reports whether the token yields a usable identity.
func (d Decoded) Present() bool { return d.Status == StatusValid }

type Store struct {
	db     *sql.DB
	repo   metadata.Repository
	now    timex.Clock
	log    logging.Logger
	parser *jwt.Parser
}

type Option func(*Store)

// WithClock overrides the clock used for expiry checks.
func WithClock(c timex.Clock) Option {
	return func(s *Store) { s.now = c }
}

// WithLogger sets the logger used to report discarded tokens.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

func New(db *sql.DB, opts ...Option) *Store {
	s := &Store{
		db:     db,
		repo:   metadata.NewSQLiteRepository(db),
		now:    time.Now,
		log:    logging.Discard(),
		parser: jwt.NewParser(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Save overwrites the slot with token. No validation is performed.
func (s *Store) Save(ctx context.Context, token string) error {
	savedAt := s.now().UTC().Format(time.RFC3339)

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.TokenMetadataKey, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, common.TokenSavedAtMetadataKey, []byte(savedAt))
	})
}

// GetToken returns the stored token, or "" when the slot is empty.
func (s *Store) GetToken(ctx context.Context) (string, error) {
	raw, err := s.repo.Get(ctx, common.TokenMetadataKey)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// Remove erases the slot.
func (s *Store) Remove(ctx context.Context) error {
	return s.repo.Delete(ctx, common.TokenMetadataKey, common.TokenSavedAtMetadataKey)
}

// Decode reads the slot and decodes the identity it carries.
// A storage failure is returned as error; a bad token is not an error,
// it is a Decoded with StatusExpired or StatusMalformed.
func (s *Store) Decode(ctx context.Context) (Decoded, error) {
	token, err := s.GetToken(ctx)
	if err != nil {
		return Decoded{}, err
	}
	return s.DecodeToken(token), nil
}

// DecodeToken decodes a raw token without touching storage.
func (s *Store) DecodeToken(token string) Decoded {
	if token == "" {
		return Decoded{Status: StatusAbsent}
	}

	claims := &models.Claims{}
	if _, _, err := s.parser.ParseUnverified(token, claims); err != nil {
		return Decoded{Status: StatusMalformed, Err: fmt.Errorf("%w: %w", common.ErrInvalidToken, err)}
	}

	if claims.User.ID == "" {
		return Decoded{Status: StatusMalformed, Err: fmt.Errorf("%w: no user in payload", common.ErrInvalidToken)}
	}

	if claims.ExpiresAt != nil && !s.now().Before(claims.ExpiresAt.Time) {
		return Decoded{Status: StatusExpired, Err: common.ErrTokenExpired}
	}

	identity := claims.User
	return Decoded{Status: StatusValid, Identity: &identity}
}

// GetUser returns the identity carried by the stored token, or nil when
// there is none. Expired, malformed and unreadable tokens all mean nil;
// the reason is logged and never surfaced.
func (s *Store) GetUser(ctx context.Context) *models.Identity {
	d, err := s.Decode(ctx)
	if err != nil {
		s.log.Warn(ctx, "token slot unreadable", "error", err)
		return nil
	}
	if !d.Present() {
		if d.Err != nil {
			s.log.Warn(ctx, "stored token discarded", "status", d.Status.String(), "error", d.Err)
		}
		return nil
	}
	return d.Identity
}

// IsDecodeError reports whether err came from a bad token rather than storage.
func IsDecodeError(err error) bool {
	return errors.Is(err, common.ErrInvalidToken) || errors.Is(err, common.ErrTokenExpired)
}
