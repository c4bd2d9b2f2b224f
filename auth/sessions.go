package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"oasis/globals"
	"oasis/models"
)

// Revoker remembers signed-out token ids.
type Revoker interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Sessions turns a bearer token into a live Session.
type Sessions struct {
	Bridge  *Bridge
	Tokens  *Tokens
	Revoked Revoker
}

// BearerToken extracts the token of an "Authorization: Bearer <token>" header value.
func BearerToken(header string) (string, bool) {
	if len(header) < 8 || !strings.EqualFold(header[:7], "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(header[7:])
	return token, token != ""
}

// Resolve verifies raw, rejects revoked tokens and re-reads the guest behind it.
func (s *Sessions) Resolve(ctx context.Context, raw string) (Session, *Claims, error) {
	claims, err := s.Tokens.Parse(raw)
	if err != nil {
		return Session{}, nil, err
	}
	revoked, err := s.Revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return Session{}, nil, fmt.Errorf("%w: revocation check: %w", models.ErrLoadFailed, err)
	}
	if revoked {
		return Session{}, nil, fmt.Errorf("%w: session signed out", models.ErrUnauthorized)
	}
	session, err := s.Bridge.Session(ctx, claims.Identity())
	if err != nil {
		return Session{}, nil, err
	}
	return session, claims, nil
}

// Revoke signs the token out until it would have expired.
func (s *Sessions) Revoke(ctx context.Context, claims *Claims) error {
	until := time.Now()
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	return s.Revoked.Revoke(ctx, claims.ID, until)
}

// WithSession stores the session and its token claims on ctx.
func WithSession(ctx context.Context, s Session, claims *Claims) context.Context {
	ctx = context.WithValue(ctx, globals.SessionKey, s)
	if claims != nil {
		ctx = context.WithValue(ctx, globals.TokenIDKey, claims)
	}
	return ctx
}

// SessionFromContext returns the session attached by the auth middleware.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(globals.SessionKey).(Session)
	if !ok || s.GuestID == "" {
		return nil, false
	}
	return &s, true
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(globals.TokenIDKey).(*Claims)
	return c, ok
}
