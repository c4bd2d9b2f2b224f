package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"oasis/db"
	"oasis/models"
	"oasis/utils"
)

// Identity is what the upstream identity provider tells us about a signed-in person.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// Session is the provider identity plus the guest row it maps to.
type Session struct {
	GuestID string `json:"guestId"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Image   string `json:"image,omitempty"`
}

// Bridge maps provider identities onto guest rows.
type Bridge struct {
	Store db.Store
	Now   func() time.Time
}

func NewBridge(store db.Store) *Bridge {
	return &Bridge{Store: store, Now: time.Now}
}

// SignIn makes sure a guest row exists for the identity. It fails closed: any
// lookup or insert error refuses the sign-in.
func (b *Bridge) SignIn(ctx context.Context, id Identity) bool {
	email := strings.TrimSpace(id.Email)
	name := strings.TrimSpace(id.Name)
	if email == "" || name == "" {
		log.Printf("[auth] sign-in refused: identity without email or name")
		return false
	}

	_, err := b.Store.GuestByEmail(ctx, email)
	if err == nil {
		return true
	}
	if !errors.Is(err, models.ErrNotFound) {
		log.Printf("[auth] sign-in refused: guest lookup for %s: %v", email, err)
		return false
	}

	guest := models.Guest{
		ID:        utils.GetUUID(),
		CreatedAt: b.Now().UTC(),
		FullName:  name,
		Email:     email,
	}
	if err := b.Store.CreateGuest(ctx, guest); err != nil {
		log.Printf("[auth] sign-in refused: creating guest %s: %v", email, err)
		return false
	}
	log.Printf("[auth] created guest %s for %s", guest.ID, email)
	return true
}

// Session resolves the guest behind the identity. It runs on every authenticated
// request so a guest deleted after sign-in stops having a session.
func (b *Bridge) Session(ctx context.Context, id Identity) (Session, error) {
	if id.Email == "" {
		return Session{}, models.ErrUnauthorized
	}
	guest, err := b.Store.GuestByEmail(ctx, strings.TrimSpace(id.Email))
	if errors.Is(err, models.ErrNotFound) {
		return Session{}, fmt.Errorf("%w: no guest for %s", models.ErrUnauthorized, id.Email)
	}
	if err != nil {
		return Session{}, fmt.Errorf("%w: guest lookup: %w", models.ErrLoadFailed, err)
	}
	return Session{
		GuestID: guest.ID,
		Email:   guest.Email,
		Name:    id.Name,
		Image:   id.Image,
	}, nil
}
