package auth

import (
	"errors"
	"fmt"
	"time"

	"oasis/models"
	"oasis/utils"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of a session token.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
	jwt.RegisteredClaims
}

// Identity returns the provider identity carried by the token.
func (c *Claims) Identity() Identity {
	return Identity{Email: c.Email, Name: c.Name, Image: c.Image}
}

// Tokens signs and verifies HS256 session tokens.
type Tokens struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func NewTokens(secret []byte, ttl time.Duration) *Tokens {
	return &Tokens{Secret: secret, TTL: ttl, Now: time.Now}
}

// Issue signs a token for id. Every token gets its own jti so it can be revoked alone.
func (t *Tokens) Issue(id Identity) (string, *Claims, error) {
	now := t.Now()
	claims := &Claims{
		Email: id.Email,
		Name:  id.Name,
		Image: id.Image,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        utils.GetUUID(),
			Subject:   id.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.TTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.Secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}
	return signed, claims, nil
}

// Parse verifies the signature and expiry of raw.
func (t *Tokens) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		return t.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrUnauthorized, err)
	}
	if !token.Valid {
		return nil, models.ErrUnauthorized
	}
	if claims.ID == "" || claims.Email == "" {
		return nil, fmt.Errorf("%w: %w", models.ErrUnauthorized, errors.New("token without id or email"))
	}
	return claims, nil
}
