package profile

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	"oasis/auth"
	"oasis/db"
	"oasis/models"
	"oasis/rdx"
)

const profileViewTTL = 10 * time.Minute

var nationalIDPattern = regexp.MustCompile(`^[a-zA-Z0-9]{6,12}$`)

// ParseProfileForm reads nationality as "<country>%<flag url>" and a 6 to 12
// character alphanumeric nationalID.
func ParseProfileForm(v url.Values) (models.GuestProfileUpdate, error) {
	parts := strings.Split(v.Get("nationality"), "%")
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return models.GuestProfileUpdate{}, fmt.Errorf("%w: please select a country", models.ErrInvalidInput)
	}
	nationalID := v.Get("nationalID")
	if !nationalIDPattern.MatchString(nationalID) {
		return models.GuestProfileUpdate{}, fmt.Errorf("%w: please provide a valid national ID", models.ErrInvalidInput)
	}
	return models.GuestProfileUpdate{
		Nationality: strings.TrimSpace(parts[0]),
		CountryFlag: strings.TrimSpace(parts[1]),
		NationalID:  nationalID,
	}, nil
}

// Service reads and updates the signed-in guest's profile. Views is optional.
type Service struct {
	Store db.Store
	Views rdx.Cache
}

func NewService(store db.Store, views rdx.Cache) *Service {
	return &Service{Store: store, Views: views}
}

// Profile returns the guest row behind the session.
func (s *Service) Profile(ctx context.Context, session *auth.Session) (models.Guest, error) {
	if session == nil || session.GuestID == "" {
		return models.Guest{}, models.ErrUnauthorized
	}
	key := rdx.ProfileView(session.GuestID)
	var g models.Guest
	if s.Views != nil {
		if hit, err := s.Views.Get(ctx, key, &g); err == nil && hit {
			return g, nil
		}
	}

	g, err := s.Store.GuestByEmail(ctx, session.Email)
	if errors.Is(err, models.ErrNotFound) {
		return models.Guest{}, fmt.Errorf("guest %w", models.ErrNotFound)
	}
	if err != nil {
		return models.Guest{}, fmt.Errorf("guest %w: %w", models.ErrLoadFailed, err)
	}
	if s.Views != nil {
		if err := s.Views.Set(ctx, key, g, profileViewTTL); err != nil {
			log.Printf("[profile] cache %s: %v", key, err)
		}
	}
	return g, nil
}

// Update writes nationality, flag and national id for the session's guest.
func (s *Service) Update(ctx context.Context, session *auth.Session, u models.GuestProfileUpdate) error {
	if session == nil || session.GuestID == "" {
		return models.ErrUnauthorized
	}
	if err := s.Store.UpdateGuest(ctx, session.GuestID, u); err != nil {
		return fmt.Errorf("guest %w: %w", models.ErrUpdateFailed, err)
	}
	if s.Views != nil {
		_ = s.Views.Revalidate(ctx, rdx.ProfileView(session.GuestID))
	}
	log.Printf("[profile] guest %s updated profile", session.GuestID)
	return nil
}
